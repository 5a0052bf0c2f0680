// Copyright 2025 KaliAgent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package subscribers holds the event-stream subscribers that render
// gateway output: a human terminal formatter, a JSON Lines formatter, and
// a leveled diagnostic trace.
package subscribers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/kaliagent/kaliagent/pkg/output"
)

// palette groups the lipgloss styles the human formatter draws from.
type palette struct {
	info      lipgloss.Style
	err       lipgloss.Style
	warning   lipgloss.Style
	header    lipgloss.Style
	command   lipgloss.Style
	denied    lipgloss.Style
	dim       lipgloss.Style
	tableHead lipgloss.Style
	rowLabel  lipgloss.Style
}

func defaultPalette() palette {
	return palette{
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		// Denied commands and out-of-scope targets get the loudest style
		// in the palette; these are the lines an operator must not miss.
		denied: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		tableHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Padding(0, 1),
		rowLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// HumanFormatter renders events for a person at a terminal: colored
// verdicts, command echoes, and tabular reports. Active whenever --json is
// not given.
type HumanFormatter struct {
	stdout       io.Writer
	stderr       io.Writer
	colorEnabled bool
	styles       palette
}

// NewHumanFormatter builds a formatter writing normal output to stdout and
// errors to stderr. colorEnabled should reflect whether stdout is a TTY.
func NewHumanFormatter(stdout, stderr io.Writer, colorEnabled bool) *HumanFormatter {
	return &HumanFormatter{
		stdout:       stdout,
		stderr:       stderr,
		colorEnabled: colorEnabled,
		styles:       defaultPalette(),
	}
}

func (s *HumanFormatter) Name() string {
	return "human-formatter"
}

// ShouldHandle accepts everything except diagnostics.
func (s *HumanFormatter) ShouldHandle(event output.OutputEvent) bool {
	return event.Type != output.EventDiag
}

func (s *HumanFormatter) Handle(event output.OutputEvent) {
	switch event.Type {
	case output.EventInfo:
		s.printInfo(event.Message)
	case output.EventError:
		s.printError(event.Message)
	case output.EventWarning:
		s.printWarning(event.Message)
	case output.EventTable:
		data, ok := event.Data.(map[string]any)
		if !ok {
			return
		}
		headers, _ := data["headers"].([]string)
		rows, _ := data["rows"].([][]string)
		s.printTable(headers, rows)
	case output.EventProgress:
		data, ok := event.Data.(map[string]any)
		if !ok {
			return
		}
		current, _ := data["current"].(int)
		total, _ := data["total"].(int)
		s.printProgress(current, total, event.Message)
	}
}

// printInfo styles a line by what it carries: section headers, command
// echoes, separators, execution banners, and step status lines each read
// differently at a glance.
func (s *HumanFormatter) printInfo(message string) {
	if !s.colorEnabled {
		fmt.Fprintln(s.stdout, message)
		return
	}

	var line string
	switch {
	case strings.HasPrefix(message, "##"):
		line = s.styles.header.Render(message)
	case strings.HasPrefix(message, "$ ") || strings.HasPrefix(message, "Command:"):
		line = s.styles.command.Render(message)
	case strings.Contains(message, "---"):
		line = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(message)
	case strings.HasPrefix(message, "Executing"):
		line = s.styles.info.Bold(true).Render("🚀 " + message)
	case strings.ContainsAny(message, "⏳✓✗"):
		line = s.styles.dim.Render(message)
	default:
		line = s.styles.info.Render(message)
	}
	fmt.Fprintln(s.stdout, line)
}

func (s *HumanFormatter) printError(message string) {
	if !s.colorEnabled {
		fmt.Fprintf(s.stderr, "Error: %s\n", message)
		return
	}
	fmt.Fprintln(s.stderr, s.styles.err.Render("❌ Error: "+message))
}

func (s *HumanFormatter) printWarning(message string) {
	if !s.colorEnabled {
		fmt.Fprintf(s.stdout, "Warning: %s\n", message)
		return
	}
	if strings.Contains(message, "not in the allowed") || strings.Contains(message, "not allowed") {
		fmt.Fprintln(s.stdout, s.styles.denied.Render("⚠️  "+message))
		return
	}
	fmt.Fprintln(s.stdout, s.styles.warning.Render("⚠️  Warning: "+message))
}

func (s *HumanFormatter) printTable(headers []string, rows [][]string) {
	if !s.colorEnabled {
		w := tabwriter.NewWriter(s.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		w.Flush()
		return
	}

	w := tabwriter.NewWriter(s.stdout, 0, 0, 3, ' ', 0)
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = s.styles.tableHead.Render(strings.ToUpper(h))
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == 0 {
				cells[i] = s.styles.rowLabel.Render(cell)
			} else {
				cells[i] = cell
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

// printProgress redraws a single line with a percentage; a trailing
// newline lands only when the run completes.
func (s *HumanFormatter) printProgress(current, total int, message string) {
	if total <= 0 {
		return
	}
	percentage := float64(current) / float64(total) * 100
	fmt.Fprintf(s.stdout, "\r[%3.0f%%] %s", percentage, message)
	if current == total {
		fmt.Fprintln(s.stdout)
	}
}
