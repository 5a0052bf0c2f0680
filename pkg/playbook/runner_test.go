package playbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaliagent/kaliagent/pkg/gateway"
)

// fakeExecutor records commands and returns canned results.
type fakeExecutor struct {
	executed []string
	fail     map[string]string // command -> error message
}

func (f *fakeExecutor) Execute(ctx context.Context, command string) gateway.Result {
	f.executed = append(f.executed, command)
	if msg, ok := f.fail[command]; ok {
		return gateway.Result{
			Success:  false,
			ExitCode: 1,
			Error:    msg,
			Command:  command,
			Kind:     gateway.FailureRejectedByPolicy,
		}
	}
	return gateway.Result{
		Success: true,
		Stdout:  "ok\n",
		Command: command,
	}
}

func TestRunner_ReplaysAllStepsThroughExecutor(t *testing.T) {
	exec := &fakeExecutor{}
	runner := NewRunner(exec)
	p := samplePlaybook()

	vars := map[string]string{"network": "192.168.1.0/24", "target": "192.168.1.10"}
	report, err := runner.Run(context.Background(), p, 1, vars)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"nmap -sn 192.168.1.0/24",
		"nmap -sV 192.168.1.10",
	}, exec.executed)

	require.Len(t, report.Steps, 2)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.Aborted)
	for _, sr := range report.Steps {
		assert.True(t, sr.Executed)
		assert.True(t, sr.Success)
		assert.Equal(t, "ok\n", sr.Output)
	}

	// Bookkeeping lands on the playbook itself
	require.NotNil(t, p.Steps[0].Success)
	assert.True(t, *p.Steps[0].Success)
	require.NotNil(t, p.Steps[0].Timestamp)
}

func TestRunner_SafeModeNeverExecutes(t *testing.T) {
	exec := &fakeExecutor{}
	runner := NewRunner(exec, WithSafeMode(true))
	p := samplePlaybook()

	vars := map[string]string{"network": "10.0.0.0/24", "target": "10.0.0.5"}
	report, err := runner.Run(context.Background(), p, 1, vars)
	require.NoError(t, err)

	assert.Empty(t, exec.executed, "safe mode must not spawn anything")
	for _, sr := range report.Steps {
		assert.False(t, sr.Executed)
	}
	assert.Nil(t, p.Steps[0].Success, "safe mode records no outcome")
}

func TestRunner_FailedStepDoesNotStopTheRun(t *testing.T) {
	exec := &fakeExecutor{
		fail: map[string]string{"nmap -sn 10.0.0.0/24": "tool \"nmap\" is not in the allowed tools list"},
	}
	runner := NewRunner(exec)
	p := samplePlaybook()

	vars := map[string]string{"network": "10.0.0.0/24", "target": "10.0.0.5"}
	report, err := runner.Run(context.Background(), p, 1, vars)
	require.NoError(t, err)

	require.Len(t, report.Steps, 2)
	assert.False(t, report.Steps[0].Success)
	assert.Contains(t, report.Steps[0].Error, "not in the allowed tools list")
	assert.True(t, report.Steps[1].Success, "later steps still run")

	require.NotNil(t, p.Steps[0].Success)
	assert.False(t, *p.Steps[0].Success)
}

func TestRunner_UnresolvedPlaceholderSkipsExecution(t *testing.T) {
	exec := &fakeExecutor{}
	runner := NewRunner(exec)
	p := samplePlaybook()

	// No vars at all: both steps have placeholders
	report, err := runner.Run(context.Background(), p, 1, nil)
	require.NoError(t, err)

	assert.Empty(t, exec.executed)
	for _, sr := range report.Steps {
		assert.False(t, sr.Executed)
		assert.Contains(t, sr.Error, "missing parameters")
	}
}

func TestRunner_ConfirmSkipAndQuit(t *testing.T) {
	exec := &fakeExecutor{}
	decisions := []Decision{DecisionSkip, DecisionRun}
	runner := NewRunner(exec, WithConfirm(func(index, total int, step Step) Decision {
		return decisions[index-1]
	}))
	p := samplePlaybook()
	vars := map[string]string{"network": "10.0.0.0/24", "target": "10.0.0.5"}

	report, err := runner.Run(context.Background(), p, 1, vars)
	require.NoError(t, err)
	assert.Equal(t, []string{"nmap -sV 10.0.0.5"}, exec.executed)
	assert.True(t, report.Steps[0].Skipped)
	assert.False(t, report.Steps[1].Skipped)

	// Quit aborts immediately
	exec = &fakeExecutor{}
	runner = NewRunner(exec, WithConfirm(func(index, total int, step Step) Decision {
		return DecisionQuit
	}))
	report, err = runner.Run(context.Background(), samplePlaybook(), 1, vars)
	require.NoError(t, err)
	assert.True(t, report.Aborted)
	assert.Empty(t, exec.executed)
	assert.Len(t, report.Steps, 1)
}

func TestRunner_StartStepBounds(t *testing.T) {
	exec := &fakeExecutor{}
	runner := NewRunner(exec)
	vars := map[string]string{"network": "10.0.0.0/24", "target": "10.0.0.5"}

	// Start at step 2: only the second command runs
	report, err := runner.Run(context.Background(), samplePlaybook(), 2, vars)
	require.NoError(t, err)
	assert.Equal(t, []string{"nmap -sV 10.0.0.5"}, exec.executed)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, 2, report.Steps[0].Index)

	// Beyond the end is an error
	_, err = runner.Run(context.Background(), samplePlaybook(), 3, vars)
	assert.Error(t, err)

	// Empty playbook is an error
	_, err = runner.Run(context.Background(), &Playbook{Name: "empty"}, 1, nil)
	assert.Error(t, err)
}
