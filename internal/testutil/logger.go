package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a text-handler logger writing into a buffer,
// plus the buffer, so tests can assert on the emitted lines.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return logger, &buf
}
