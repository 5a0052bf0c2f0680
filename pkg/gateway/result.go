// Package gateway stands between a requested tool invocation and an actual
// process execution. It decides whether a command string is permitted to run
// (allow-list membership, host installation), tokenizes it without involving
// a shell, and executes it as a direct child process with a hard timeout.
//
// Every public operation is total: failures come back as structured values,
// never as panics or propagated faults.
package gateway

// FailureKind classifies why a command was rejected or why execution failed.
type FailureKind string

const (
	// FailureNone means no failure occurred.
	FailureNone FailureKind = ""

	// FailureRejectedByPolicy means the base command is not on the allow-list.
	FailureRejectedByPolicy FailureKind = "rejected_by_policy"

	// FailureNotInstalled means the tool is allowed but absent from the host path.
	FailureNotInstalled FailureKind = "not_installed"

	// FailureSyntax means the command string could not be tokenized.
	FailureSyntax FailureKind = "syntax_error"

	// FailureTimeout means the child process exceeded the execution ceiling.
	FailureTimeout FailureKind = "timeout"

	// FailureSpawn means the child process could not be started, or the
	// executable vanished between the installation probe and the spawn.
	FailureSpawn FailureKind = "spawn_failure"
)

// Verdict is the outcome of a command admissibility check. It is a pure
// function of the command string, the configured policy, and the host's
// installed tools; computing it has no side effects.
type Verdict struct {
	Allowed bool        `json:"allowed"`
	Reason  string      `json:"reason"`
	Kind    FailureKind `json:"kind,omitempty"`
}

// Result is the outcome of one execution attempt.
//
// Invariants: Success implies ExitCode == 0 and Error == "". A command that
// failed validation has ExitCode == -1 and empty Stdout/Stderr. ExitCode -1
// always means the command never ran to completion.
type Result struct {
	Success  bool        `json:"success"`
	Stdout   string      `json:"stdout"`
	Stderr   string      `json:"stderr"`
	ExitCode int         `json:"exit_code"`
	Error    string      `json:"error,omitempty"`
	Kind     FailureKind `json:"kind,omitempty"`

	// Command echoes the input for correlation by the caller.
	Command string `json:"command"`
}

// neverRan builds the Result shape shared by all paths where no child
// process completed.
func neverRan(command, reason string, kind FailureKind) Result {
	return Result{
		Success:  false,
		ExitCode: -1,
		Error:    reason,
		Kind:     kind,
		Command:  command,
	}
}
