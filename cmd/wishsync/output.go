package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/bharatshaala/wishsync/internal/events"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
)

func printSuccess(format string, args ...interface{}) {
	successColor.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	infoColor.Fprintf(os.Stdout, format+"\n", args...)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// cliNotifier renders collection notifications on the terminal. With
// --json every notification is suppressed; results carry the outcome.
type cliNotifier struct{}

func (cliNotifier) Notify(message string, kind events.NoticeKind) {
	switch kind {
	case events.NoticeSuccess:
		printSuccess("%s", message)
	case events.NoticeError:
		printError("%s", message)
	default:
		printInfo("%s", message)
	}
}

func notifier() events.Notifier {
	if jsonOutput {
		return events.NewRecordingNotifier()
	}
	return cliNotifier{}
}
