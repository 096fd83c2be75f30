package events_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatshaala/wishsync/internal/events"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := events.NewLogNotifier(events.NewTestLogger(events.InfoLevel, &buf))

	notifier.Notify("Added to your wishlist!", events.NoticeSuccess)
	notifier.Notify("Could not update your cart. Please try again.", events.NoticeError)

	out := buf.String()
	assert.Contains(t, out, "[INFO] Added to your wishlist!")
	assert.Contains(t, out, "kind=success")
	assert.Contains(t, out, "[ERROR] Could not update your cart. Please try again.")
}

func TestRecordingNotifier(t *testing.T) {
	rec := events.NewRecordingNotifier()

	rec.Notify("first", events.NoticeSuccess)
	rec.Notify("second", events.NoticeInfo)

	notices := rec.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, events.Notice{Message: "first", Kind: events.NoticeSuccess}, notices[0])
	assert.Equal(t, events.Notice{Message: "second", Kind: events.NoticeInfo}, notices[1])

	rec.Reset()
	assert.Empty(t, rec.Notices())
}
