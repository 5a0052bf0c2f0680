package commands

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/gateway"
	"github.com/kaliagent/kaliagent/pkg/playbook"
)

// NewPlaybooksCommand groups the playbook operations.
func NewPlaybooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playbooks",
		Short:   "Manage and replay multi-step testing playbooks",
		GroupID: "library",
	}
	cmd.AddCommand(newPlaybooksListCommand())
	cmd.AddCommand(newPlaybooksShowCommand())
	cmd.AddCommand(newPlaybooksInitCommand())
	cmd.AddCommand(newPlaybooksRunCommand())
	cmd.AddCommand(newPlaybooksExportCommand())
	return cmd
}

func newPlaybooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved playbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			summaries, err := playbook.NewManager(cfg.Workspace.Dir).List()
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				out.Warning("no playbooks saved; run `kaliagent playbooks init` to seed the defaults")
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{s.Slug, s.Name, s.Category, strconv.Itoa(s.Steps)})
			}
			out.Table([]string{"Slug", "Name", "Category", "Steps"}, rows)
			return nil
		},
	}
}

func newPlaybooksShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a playbook's steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			p, err := playbook.NewManager(cfg.Workspace.Dir).Load(args[0])
			if err != nil {
				return err
			}

			out.Info("## " + p.Name)
			if p.Description != "" {
				out.Info(p.Description)
			}
			for i, step := range p.Steps {
				out.Info(fmt.Sprintf("Step %d: %s", i+1, step.Description))
				out.Info("$ " + step.Command)
				if step.ExpectedOutcome != "" {
					out.Info("  Expected: " + step.ExpectedOutcome)
				}
			}
			return nil
		},
	}
}

func newPlaybooksInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the workspace with the default playbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			if err := playbook.NewManager(cfg.Workspace.Dir).InitDefaults(); err != nil {
				return err
			}
			out.Info("Default playbooks installed; existing playbooks were left untouched")
			return nil
		},
	}
}

func newPlaybooksRunCommand() *cobra.Command {
	var (
		vars      []string
		startStep int
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Replay a playbook step by step through the gateway",
		Long: `Replays each step of a saved playbook, substituting --var parameters
into placeholders and routing every command through the same validation
and execution path as exec. Safe mode displays commands instead of
running them. Each step asks for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			params, err := parseVars(vars)
			if err != nil {
				return err
			}

			mgr := playbook.NewManager(cfg.Workspace.Dir)
			p, err := mgr.Load(args[0])
			if err != nil {
				return err
			}

			validator := gateway.NewValidator(policyFrom(cfg), nil)
			executor := gateway.NewExecutor(validator, cfg.Execution.Timeout())

			opts := []playbook.RunnerOption{
				playbook.WithOutput(out),
				playbook.WithSafeMode(cfg.Security.SafeMode),
			}
			if !yes && cfg.Security.RequireConfirmation {
				opts = append(opts, playbook.WithConfirm(stepConfirm(cmd)))
			}

			runner := playbook.NewRunner(executor, opts...)
			report, err := runner.Run(cmd.Context(), p, startStep, params)
			if err != nil {
				return err
			}

			// Persist the step bookkeeping (timestamps, output, outcomes).
			if err := mgr.Save(p); err != nil {
				out.Warning("could not record run results: " + err.Error())
			}

			executed, failed := 0, 0
			for _, step := range report.Steps {
				if step.Executed {
					executed++
					if !step.Success {
						failed++
					}
				}
			}
			if report.Aborted {
				out.Warning(fmt.Sprintf("Run %s aborted after %d of %d steps", report.RunID, executed, len(report.Steps)))
				return nil
			}
			if failed > 0 {
				out.Warning(fmt.Sprintf("Run %s finished: %d steps executed, %d failed", report.RunID, executed, failed))
				return nil
			}
			out.Info(fmt.Sprintf("Run %s finished: %d steps executed", report.RunID, executed))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "placeholder value as key=value (repeatable)")
	cmd.Flags().IntVar(&startStep, "from", 1, "step number to start from")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "run every step without asking")
	return cmd
}

// stepConfirm prompts before each step, offering run, skip, or quit.
func stepConfirm(cmd *cobra.Command) playbook.ConfirmFunc {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	return func(index, total int, step playbook.Step) playbook.Decision {
		fmt.Fprintf(cmd.OutOrStdout(), "\nStep %d/%d: %s\n$ %s\nExecute? [y]es / [s]kip / [q]uit: ", index, total, step.Description, step.Command)
		if !scanner.Scan() {
			return playbook.DecisionQuit
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return playbook.DecisionRun
		case "s", "skip":
			return playbook.DecisionSkip
		default:
			return playbook.DecisionQuit
		}
	}
}

func newPlaybooksExportCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a playbook as a markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			mgr := playbook.NewManager(cfg.Workspace.Dir)
			p, err := mgr.Load(args[0])
			if err != nil {
				return err
			}

			path := outputPath
			if path == "" {
				path = p.Slug() + ".md"
			}
			if err := mgr.ExportMarkdown(p, path); err != nil {
				return err
			}
			out.Info("Exported " + p.Name + " to " + path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (defaults to <slug>.md)")
	return cmd
}
