// Copyright 2025 KaliAgent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kaliagent/kaliagent/pkg/output"
)

// jsonEvent is the wire shape of one emitted line. Empty fields are
// omitted so validation verdicts and table payloads stay compact.
type jsonEvent struct {
	Type      output.OutputEventType `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Message   string                 `json:"message,omitempty"`
	Data      any                    `json:"data,omitempty"`
	Metadata  map[string]any         `json:"metadata,omitempty"`
}

// JSONFormatter renders events as JSON Lines, one object per event, for
// consumption by the conversational assistant driving the CLI with --json.
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a JSON Lines subscriber writing to writer.
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	return &JSONFormatter{encoder: json.NewEncoder(writer)}
}

func (s *JSONFormatter) Name() string {
	return "json-formatter"
}

// ShouldHandle accepts everything except diagnostics, which belong to the
// DiagnosticSubscriber on stderr.
func (s *JSONFormatter) ShouldHandle(event output.OutputEvent) bool {
	return event.Type != output.EventDiag
}

// Handle encodes one event. Encoding errors (broken pipe) drop the event;
// subscribers have no error channel to report through.
func (s *JSONFormatter) Handle(event output.OutputEvent) {
	_ = s.encoder.Encode(jsonEvent{
		Type:      event.Type,
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Message:   event.Message,
		Data:      event.Data,
		Metadata:  event.Metadata,
	})
}
