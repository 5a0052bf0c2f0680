package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/gateway"
	"github.com/kaliagent/kaliagent/pkg/output"
	"github.com/kaliagent/kaliagent/pkg/target"
)

// NewExecCommand validates a command and, when policy permits, executes it
// through the safety gateway.
func NewExecCommand() *cobra.Command {
	var (
		targetSpec string
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:     "exec <command>",
		Short:   "Validate and execute a security tool command",
		Long:    `Validates a command against the allow-list, optionally vets the target
it is aimed at, and executes it as a direct child process. A shell is never
involved; metacharacters in arguments stay literal.`,
		GroupID: "gateway",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)
			ctx := cmd.Context()

			command := strings.Join(args, " ")
			logger := log.With().Str("command", "exec").Logger()

			// Target gate first: refuse to aim anything at an unvetted target.
			if targetSpec != "" {
				tv := target.NewValidator(target.WithProbeTimeout(cfg.Execution.ProbeTimeout()))
				ok, reason, details := tv.Validate(ctx, targetSpec, cfg.Security.AllowPrivateTargets)
				if !ok {
					out.Warning(reason)
					return fmt.Errorf("target rejected: %s", reason)
				}
				for _, issue := range target.CheckCommonIssues(targetSpec) {
					out.Warning(issue)
				}

				if !assumeYes {
					prompt := target.ScopePrompt{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
					confirmed, err := prompt.Confirm(details)
					if err != nil {
						return err
					}
					if !confirmed {
						out.Warning("Target not confirmed; aborting")
						return fmt.Errorf("target %s not confirmed in scope", targetSpec)
					}
				}
			}

			validator := gateway.NewValidator(policyFrom(cfg), nil)
			verdict := validator.Validate(command)
			if !verdict.Allowed {
				out.Warning(verdict.Reason)
				return fmt.Errorf("command rejected: %s", verdict.Reason)
			}

			if cfg.Security.SafeMode {
				out.Info("Safe mode is on; the command was validated but not executed:")
				out.Info("$ " + command)
				return nil
			}

			if cfg.Security.RequireConfirmation && !assumeYes {
				out.Info("$ " + command)
				if !promptYesNo(cmd, "Execute this command?") {
					out.Warning("Execution declined")
					return nil
				}
			}

			out.Info("Executing " + command)
			executor := gateway.NewExecutor(validator, cfg.Execution.Timeout())
			result := executor.Execute(ctx, command)

			logger.Info().
				Bool("success", result.Success).
				Int("exit_code", result.ExitCode).
				Str("kind", string(result.Kind)).
				Msg("execution finished")
			out.Diag(output.LevelVerbose, "execution result", map[string]any{
				"exit_code": result.ExitCode,
				"kind":      string(result.Kind),
			})

			if result.Stdout != "" {
				out.Info(result.Stdout)
			}
			if result.Stderr != "" {
				out.Warning(result.Stderr)
			}
			if !result.Success {
				if result.Error != "" {
					return fmt.Errorf("execution failed: %s", result.Error)
				}
				return fmt.Errorf("command exited with code %d", result.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetSpec, "target", "t", "", "Target to vet before execution (IP or hostname)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")

	return cmd
}
