package playbook

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kaliagent/kaliagent/pkg/catalog"
	"github.com/kaliagent/kaliagent/pkg/gateway"
	"github.com/kaliagent/kaliagent/pkg/output"
)

// Decision is the operator's answer for one step.
type Decision int

const (
	DecisionRun Decision = iota
	DecisionSkip
	DecisionQuit
)

// ConfirmFunc is asked before each step. index is 1-based.
type ConfirmFunc func(index, total int, step Step) Decision

// CommandExecutor runs one validated command. Satisfied by *gateway.Executor.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) gateway.Result
}

// StepResult records what happened to one step during a run.
type StepResult struct {
	Index    int    `json:"index"` // 1-based
	Command  string `json:"command"`
	Skipped  bool   `json:"skipped"`
	Executed bool   `json:"executed"`
	Success  bool   `json:"success"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Report summarizes one playbook run.
type Report struct {
	RunID     string       `json:"run_id"`
	Playbook  string       `json:"playbook"`
	Started   time.Time    `json:"started"`
	Completed time.Time    `json:"completed"`
	Aborted   bool         `json:"aborted"`
	Steps     []StepResult `json:"steps"`
}

// Runner replays playbooks through the command safety gateway. Every step
// command passes the same validation and execution path as a hand-typed
// command; the runner never spawns processes itself.
type Runner struct {
	executor CommandExecutor
	out      output.Output
	safeMode bool
	confirm  ConfirmFunc
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput routes run progress to out.
func WithOutput(out output.Output) RunnerOption {
	return func(r *Runner) { r.out = out }
}

// WithSafeMode displays step commands without executing them.
func WithSafeMode(enabled bool) RunnerOption {
	return func(r *Runner) { r.safeMode = enabled }
}

// WithConfirm installs a per-step confirmation callback.
func WithConfirm(confirm ConfirmFunc) RunnerOption {
	return func(r *Runner) { r.confirm = confirm }
}

// NewRunner creates a runner executing through executor.
func NewRunner(executor CommandExecutor, opts ...RunnerOption) *Runner {
	r := &Runner{executor: executor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays the playbook from startStep (1-based; values below 1 mean the
// beginning), filling {name} placeholders in step commands from vars. Step
// bookkeeping (Timestamp, Output, Success) is updated on the playbook in
// place; the returned report carries the per-run view.
func (r *Runner) Run(ctx context.Context, p *Playbook, startStep int, vars map[string]string) (*Report, error) {
	if p == nil || len(p.Steps) == 0 {
		return nil, fmt.Errorf("playbook has no steps")
	}
	if startStep < 1 {
		startStep = 1
	}
	if startStep > len(p.Steps) {
		return nil, fmt.Errorf("start step %d is beyond the last step %d", startStep, len(p.Steps))
	}

	report := &Report{
		RunID:    uuid.New().String(),
		Playbook: p.Name,
		Started:  time.Now(),
	}
	logger := log.With().Str("component", "playbook").Str("run_id", report.RunID).Str("playbook", p.Name).Logger()
	logger.Info().Int("steps", len(p.Steps)).Int("start", startStep).Msg("starting playbook run")

	r.info(fmt.Sprintf("## Playbook: %s", p.Name))
	r.info(p.Description)

	total := len(p.Steps)
	for i := startStep; i <= total; i++ {
		step := &p.Steps[i-1]
		result := StepResult{Index: i, Command: step.Command}

		r.info(fmt.Sprintf("Step %d/%d: %s", i, total, step.Description))

		if r.confirm != nil {
			switch r.confirm(i, total, *step) {
			case DecisionQuit:
				report.Aborted = true
				result.Skipped = true
				report.Steps = append(report.Steps, result)
				r.warn("Playbook run canceled")
				logger.Info().Int("step", i).Msg("run canceled by operator")
				report.Completed = time.Now()
				return report, nil
			case DecisionSkip:
				result.Skipped = true
				report.Steps = append(report.Steps, result)
				continue
			}
		}

		command, err := catalog.RenderCommand(step.Command, vars)
		if err != nil {
			result.Error = err.Error()
			report.Steps = append(report.Steps, result)
			r.errorf("step %d: %v", i, err)
			logger.Warn().Int("step", i).Err(err).Msg("step command has unresolved placeholders")
			continue
		}
		result.Command = command

		now := time.Now()
		step.Timestamp = &now

		if r.safeMode {
			r.info("$ " + command)
			report.Steps = append(report.Steps, result)
			continue
		}

		execResult := r.executor.Execute(ctx, command)
		result.Executed = true
		result.Success = execResult.Success
		result.Output = execResult.Stdout
		result.Error = execResult.Error

		step.Success = &execResult.Success
		if execResult.Success {
			out := execResult.Stdout
			step.Output = &out
			r.info(fmt.Sprintf("✓ Step %d completed", i))
		} else {
			msg := execResult.Error
			if msg == "" {
				msg = execResult.Stderr
			}
			step.Output = &msg
			r.errorf("✗ step %d failed: %s", i, msg)
			logger.Warn().Int("step", i).Str("kind", string(execResult.Kind)).Msg("step failed")
		}
		report.Steps = append(report.Steps, result)

		// A canceled context ends the run; later steps would all fail the
		// same way.
		if ctx.Err() != nil {
			report.Aborted = true
			break
		}
	}

	report.Completed = time.Now()
	logger.Info().Bool("aborted", report.Aborted).Msg("playbook run finished")
	return report, nil
}

func (r *Runner) info(msg string) {
	if r.out != nil {
		r.out.Info(msg)
	}
}

func (r *Runner) warn(msg string) {
	if r.out != nil {
		r.out.Warning(msg)
	}
}

func (r *Runner) errorf(format string, args ...any) {
	if r.out != nil {
		r.out.Error(fmt.Errorf(format, args...))
	}
}
