package gateway

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T, host Host, timeout time.Duration) *Executor {
	t.Helper()
	policy := Policy{AllowedTools: []string{"nmap", "echo", "sleep", "sh"}}
	return NewExecutor(NewValidator(policy, host), timeout)
}

func TestExecutor_ValidationFailureNeverSpawns(t *testing.T) {
	e := newTestExecutor(t, fakeHost{}, 0)
	spawned := false
	e.runCommand = func(ctx context.Context, args []string) (string, string, int, error) {
		spawned = true
		return "", "", 0, nil
	}

	res := e.Execute(context.Background(), "rm -rf /")
	assert.False(t, spawned, "rejected command must not spawn a process")
	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.Empty(t, res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.Equal(t, FailureRejectedByPolicy, res.Kind)
	assert.Equal(t, "rm -rf /", res.Command)
}

func TestExecutor_SuccessfulRun(t *testing.T) {
	e := newTestExecutor(t, fakeHost{installed: map[string]bool{"nmap": true}}, 0)
	var gotArgs []string
	e.runCommand = func(ctx context.Context, args []string) (string, string, int, error) {
		gotArgs = args
		return "host is up\n", "", 0, nil
	}

	res := e.Execute(context.Background(), "nmap -sn 192.168.1.1")
	require.True(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "host is up\n", res.Stdout)
	assert.Empty(t, res.Error)
	assert.Equal(t, []string{"nmap", "-sn", "192.168.1.1"}, gotArgs)
}

func TestExecutor_NonZeroExitIsNotAnError(t *testing.T) {
	e := newTestExecutor(t, fakeHost{installed: map[string]bool{"nmap": true}}, 0)
	e.runCommand = func(ctx context.Context, args []string) (string, string, int, error) {
		return "", "no targets matched\n", 2, nil
	}

	res := e.Execute(context.Background(), "nmap -sn 203.0.113.9")
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.ExitCode)
	assert.Empty(t, res.Error, "a completed process is not an execution fault")
	assert.Equal(t, "no targets matched\n", res.Stderr)
}

func TestExecutor_ExecutableVanishedBetweenProbeAndSpawn(t *testing.T) {
	e := newTestExecutor(t, fakeHost{installed: map[string]bool{"nmap": true}}, 0)
	e.runCommand = func(ctx context.Context, args []string) (string, string, int, error) {
		return "", "", -1, &exec.Error{Name: args[0], Err: exec.ErrNotFound}
	}

	res := e.Execute(context.Background(), "nmap -sn 10.0.0.1")
	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, FailureSpawn, res.Kind)
	assert.Contains(t, res.Error, "command not found: nmap")
}

func TestExecutor_SpawnFaultIsReturnedNotRaised(t *testing.T) {
	e := newTestExecutor(t, fakeHost{installed: map[string]bool{"nmap": true}}, 0)
	e.runCommand = func(ctx context.Context, args []string) (string, string, int, error) {
		return "", "", -1, errors.New("fork/exec: resource temporarily unavailable")
	}

	res := e.Execute(context.Background(), "nmap 10.0.0.1")
	assert.False(t, res.Success)
	assert.Equal(t, FailureSpawn, res.Kind)
	assert.Contains(t, res.Error, "resource temporarily unavailable")
}

func TestExecutor_TimeoutConcludesAtCeiling(t *testing.T) {
	e := newTestExecutor(t, SystemHost{}, 150*time.Millisecond)

	start := time.Now()
	res := e.Execute(context.Background(), "sleep 5")
	elapsed := time.Since(start)

	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, FailureTimeout, res.Kind)
	assert.Contains(t, res.Error, "timed out")
	assert.Equal(t, "timeout", res.Stderr)
	assert.Less(t, elapsed, 10*time.Second, "caller must not block past the ceiling plus overhead")
}

func TestExecutor_RealSpawnIsDirect(t *testing.T) {
	// Metacharacters inside a quoted argument must reach the child
	// verbatim; /bin/echo prints its argv, proving no shell interpreted it.
	e := newTestExecutor(t, SystemHost{}, 5*time.Second)

	res := e.Execute(context.Background(), `echo "; rm -rf /"`)
	require.True(t, res.Success, "echo should run: %s", res.Error)
	assert.Equal(t, "; rm -rf /\n", res.Stdout)
}

func TestExecutor_ZeroTimeoutUsesDefault(t *testing.T) {
	e := newTestExecutor(t, fakeHost{}, 0)
	assert.Equal(t, DefaultTimeout, e.timeout)
}
