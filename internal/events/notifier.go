package events

import "sync"

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notifier is the sink for user-facing notifications. Implementations are
// fire-and-forget; callers never consume a return value.
type Notifier interface {
	Notify(message string, kind NoticeKind)
}

// LogNotifier forwards notifications to the structured log. It is the
// default sink when no UI-facing emitter is wired in.
type LogNotifier struct {
	logger *Logger
}

// NewLogNotifier creates a notifier backed by the logger.
func NewLogNotifier(logger *Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithField("component", "notifier")}
}

// Notify emits the notification as a log entry.
func (n *LogNotifier) Notify(message string, kind NoticeKind) {
	entry := n.logger.WithField("kind", string(kind))
	if kind == NoticeError {
		entry.Error(message)
		return
	}
	entry.Info(message)
}

// Notice is a captured notification.
type Notice struct {
	Message string
	Kind    NoticeKind
}

// RecordingNotifier captures notifications for tests.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecordingNotifier creates an empty recorder.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify records the notification.
func (n *RecordingNotifier) Notify(message string, kind NoticeKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Message: message, Kind: kind})
}

// Notices returns a copy of everything recorded so far.
func (n *RecordingNotifier) Notices() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.notices))
	copy(out, n.notices)
	return out
}

// Reset clears recorded notifications.
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = nil
}
