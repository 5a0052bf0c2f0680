// Copyright 2025 KaliAgent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output decouples what the gateway says from how it is rendered.
// Commands emit typed events through the Output interface; subscribers on
// the event stream turn them into human-readable text, JSON lines, or
// diagnostic traces depending on how the CLI was invoked.
package output

import "time"

// contextKey avoids collisions with other packages' context keys.
type contextKey string

// OutputKey is the context key under which an Output may travel.
const OutputKey contextKey = "output"

// OutputEventType categorizes an event for subscribers.
type OutputEventType string

const (
	EventInfo     OutputEventType = "info"
	EventError    OutputEventType = "error"
	EventWarning  OutputEventType = "warning"
	EventTable    OutputEventType = "table"
	EventProgress OutputEventType = "progress"

	// EventDiag carries diagnostics that stay hidden unless the operator
	// raised verbosity with -v/-vv/-vvv.
	EventDiag OutputEventType = "diag"
)

// OutputLevel is the verbosity gate on diagnostic events. Higher levels
// require more -v flags to become visible.
type OutputLevel int

const (
	LevelNormal  OutputLevel = 0
	LevelVerbose OutputLevel = 1 // -v
	LevelDebug   OutputLevel = 2 // -vv
	LevelTrace   OutputLevel = 3 // -vvv
)

// OutputEvent is one unit of output flowing from a command to the
// subscribers. Message carries the primary text; Data carries structured
// payloads (table headers/rows, progress counters); Metadata carries the
// key-value context attached to diagnostics.
type OutputEvent struct {
	Type      OutputEventType
	Level     OutputLevel
	Message   string
	Data      any
	Metadata  map[string]any
	Timestamp time.Time
}

// Output is what command implementations talk to. They never know whether
// the run is interactive, piped, or JSON-consumed; the pipeline wiring in
// the CLI decides that per invocation.
type Output interface {
	// Info reports normal progress, like the command about to be executed.
	Info(message string)

	// Error reports a failure, like a rejected command or a timed-out tool.
	Error(err error)

	// Warning reports something the operator should see but that does not
	// stop the run, like a target resolving into a cloud provider range.
	Warning(message string)

	// Table renders rows under headers, like the allowed-tools report.
	Table(headers []string, rows [][]string)

	// Progress reports step current of total during a playbook replay.
	Progress(current, total int, message string)

	// Diag attaches leveled diagnostics, hidden below the given verbosity.
	Diag(level OutputLevel, message string, metadata map[string]any)
}
