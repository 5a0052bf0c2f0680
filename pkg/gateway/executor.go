package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout is the hard ceiling for a single command execution.
const DefaultTimeout = 300 * time.Second

// Executor validates and runs commands as direct child processes. The
// argument vector produced by Tokenize is handed to the kernel as-is; no
// shell interpreter ever sees the command string, so shell metacharacters
// inside arguments are data, not syntax.
type Executor struct {
	validator *Validator
	timeout   time.Duration

	// runCommand is swapped out by tests to avoid spawning real processes.
	runCommand func(ctx context.Context, args []string) (string, string, int, error)
}

// NewExecutor builds an Executor sharing the given validator's policy and
// host view. A zero timeout selects DefaultTimeout.
func NewExecutor(validator *Validator, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	e := &Executor{validator: validator, timeout: timeout}
	e.runCommand = e.spawn
	return e
}

// Execute runs one command to completion or timeout and returns a Result.
// It never returns an error: every fault is folded into the Result so the
// caller's process cannot be taken down by a misbehaving tool.
func (e *Executor) Execute(ctx context.Context, command string) Result {
	verdict := e.validator.Validate(command)
	if !verdict.Allowed {
		return neverRan(command, verdict.Reason, verdict.Kind)
	}

	// Validate already tokenized once; re-derive the argv here so the
	// executed vector is exactly what validation saw.
	args, err := Tokenize(command)
	if err != nil {
		return neverRan(command, err.Error(), FailureSyntax)
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, exitCode, err := e.runCommand(execCtx, args)
	elapsed := time.Since(start)

	logger := log.With().Str("component", "gateway").Str("tool", args[0]).Dur("elapsed", elapsed).Logger()

	switch {
	case execCtx.Err() == context.DeadlineExceeded:
		logger.Warn().Msg("command execution timed out")
		res := neverRan(command, fmt.Sprintf("command execution timed out (%s limit)", e.timeout), FailureTimeout)
		res.Stderr = "timeout"
		return res

	case execCtx.Err() == context.Canceled:
		return neverRan(command, "command execution canceled", FailureSpawn)

	case err != nil && errors.Is(err, exec.ErrNotFound):
		// The executable vanished between the installation probe and the
		// spawn. Reported the same way a failed probe would have been.
		return neverRan(command, fmt.Sprintf("command not found: %s", args[0]), FailureSpawn)

	case err != nil && exitCode < 0:
		// The process could not be started at all.
		logger.Warn().Err(err).Msg("command spawn failed")
		return neverRan(command, err.Error(), FailureSpawn)
	}

	logger.Debug().Int("exit_code", exitCode).Msg("command completed")
	return Result{
		Success:  exitCode == 0,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Command:  command,
	}
}

// spawn starts the child in its own process group and kills the whole
// group on cancellation, so a tool that forks workers cannot leak them
// past the timeout.
func (e *Executor) spawn(ctx context.Context, args []string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Non-zero exit is a normal completion, not a spawn fault.
		err = nil
	}
	return stdout.String(), stderr.String(), exitCode, err
}
