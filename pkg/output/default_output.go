// Copyright 2025 KaliAgent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "time"

// DefaultOutput is the standard implementation of the Output interface.
// It converts method calls into OutputEvent structs and emits them to the stream.
type DefaultOutput struct {
	stream *OutputEventStream
}

// NewDefaultOutput creates a new DefaultOutput that emits events to the given stream.
func NewDefaultOutput(stream *OutputEventStream) *DefaultOutput {
	return &DefaultOutput{
		stream: stream,
	}
}

func (o *DefaultOutput) emit(event OutputEvent) {
	event.Timestamp = time.Now()
	o.stream.Emit(event)
}

// Info emits a general information message (always visible).
func (o *DefaultOutput) Info(message string) {
	o.emit(OutputEvent{Type: EventInfo, Level: LevelNormal, Message: message})
}

// Error emits an error message.
func (o *DefaultOutput) Error(err error) {
	o.emit(OutputEvent{Type: EventError, Level: LevelNormal, Message: err.Error()})
}

// Warning emits a warning message.
func (o *DefaultOutput) Warning(message string) {
	o.emit(OutputEvent{Type: EventWarning, Level: LevelNormal, Message: message})
}

// Table emits tabular data with headers and rows.
func (o *DefaultOutput) Table(headers []string, rows [][]string) {
	o.emit(OutputEvent{
		Type:  EventTable,
		Level: LevelNormal,
		Data: map[string]any{
			"headers": headers,
			"rows":    rows,
		},
	})
}

// Progress emits a progress update, current out of total.
func (o *DefaultOutput) Progress(current, total int, message string) {
	o.emit(OutputEvent{
		Type:    EventProgress,
		Level:   LevelNormal,
		Message: message,
		Data: map[string]any{
			"current": current,
			"total":   total,
		},
	})
}

// Diag emits diagnostic information (only visible with -v/-vv/-vvv).
func (o *DefaultOutput) Diag(level OutputLevel, message string, metadata map[string]any) {
	o.emit(OutputEvent{
		Type:     EventDiag,
		Level:    level,
		Message:  message,
		Metadata: metadata,
	})
}
