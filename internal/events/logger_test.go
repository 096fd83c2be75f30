package events_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatshaala/wishsync/internal/events"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.WarnLevel, &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown")
	assert.Contains(t, out, "[ERROR] also shown")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, &buf)

	child := logger.WithField("component", "cart")
	child.Info("child entry")
	logger.Info("parent entry")

	out := buf.String()
	assert.Contains(t, out, "child entry component=cart")
	assert.Contains(t, out, "parent entry\n")
	assert.NotContains(t, out, "parent entry component=cart")
}

func TestWithFieldsMergesAndSorts(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, &buf)

	logger.WithFields(map[string]interface{}{
		"user_id": "u1",
		"count":   3,
	}).Info("merged")

	// Keys are emitted in sorted order.
	assert.Contains(t, buf.String(), "merged count=3 user_id=u1")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, &buf)

	logger.WithError(errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), "error=boom")

	buf.Reset()
	logger.WithError(nil).Info("clean")
	assert.NotContains(t, buf.String(), "error=")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewLoggerTo("debug", "json", &buf)

	logger.WithField("item_id", "prod-1").Info(`said "hello"`)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, `said "hello"`, entry["msg"])
	assert.Equal(t, "prod-1", entry["item_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, events.DebugLevel, events.ParseLevel("debug"))
	assert.Equal(t, events.WarnLevel, events.ParseLevel("WARN"))
	assert.Equal(t, events.ErrorLevel, events.ParseLevel("error"))
	assert.Equal(t, events.InfoLevel, events.ParseLevel("anything else"))
}
