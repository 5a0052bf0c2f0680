// Copyright 2025 KaliAgent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kaliagent/kaliagent/pkg/output"
)

// DiagnosticSubscriber renders diagnostic events to a writer (usually stderr).
// Only events at or below the configured verbosity are shown; everything else
// is dropped silently.
type DiagnosticSubscriber struct {
	maxLevel output.OutputLevel
	writer   io.Writer
}

// NewDiagnosticSubscriber creates a subscriber showing diagnostics up to
// maxLevel (LevelVerbose for -v, LevelDebug for -vv, LevelTrace for -vvv).
func NewDiagnosticSubscriber(maxLevel output.OutputLevel, writer io.Writer) *DiagnosticSubscriber {
	return &DiagnosticSubscriber{
		maxLevel: maxLevel,
		writer:   writer,
	}
}

// Name returns the subscriber identifier.
func (s *DiagnosticSubscriber) Name() string {
	return "diagnostic-subscriber"
}

// ShouldHandle accepts only diagnostic events within the verbosity budget.
func (s *DiagnosticSubscriber) ShouldHandle(event output.OutputEvent) bool {
	return event.Type == output.EventDiag && event.Level <= s.maxLevel
}

// Handle writes the diagnostic line: [LEVEL] HH:MM:SS message key:value ...
func (s *DiagnosticSubscriber) Handle(event output.OutputEvent) {
	parts := []string{
		levelTag(event.Level),
		event.Timestamp.Format("15:04:05"),
		event.Message,
	}

	// Sort metadata keys so output is stable
	if len(event.Metadata) > 0 {
		keys := make([]string, 0, len(event.Metadata))
		for k := range event.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s:%v", k, event.Metadata[k]))
		}
	}

	_, _ = fmt.Fprintln(s.writer, strings.Join(parts, " "))
}

func levelTag(level output.OutputLevel) string {
	switch level {
	case output.LevelTrace:
		return "[TRACE]"
	case output.LevelDebug:
		return "[DEBUG]"
	case output.LevelVerbose:
		return "[VERBOSE]"
	default:
		return "[INFO]"
	}
}
