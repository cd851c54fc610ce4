// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newCapturedSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewSlogHandlerWithLogger(zerolog.New(buf)))
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		newCapturedSlog(&buf).Log(context.Background(), tt.level, "msg")
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("level %v: output %s missing %s", tt.level, buf.String(), tt.want)
		}
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newCapturedSlog(&buf).With("service", "similarity").WithGroup("run")
	logger.Info("service terminated",
		"count", 3,
		"ok", true,
		"took", 1500*time.Millisecond,
		"err", errors.New("boom"),
		slog.Group("batch", "size", 10),
	)

	out := buf.String()
	for _, want := range []string{
		`"service":"similarity"`,
		`"run.count":3`,
		`"run.ok":true`,
		`"run.err":"boom"`,
		`"run.batch.size":10`,
		`"message":"service terminated"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	if slogToZerologLevel(slog.LevelDebug-4) != zerolog.TraceLevel {
		t.Error("below debug should map to trace")
	}
	if slogToZerologLevel(slog.LevelError+4) != zerolog.ErrorLevel {
		t.Error("above error should map to error")
	}
}
