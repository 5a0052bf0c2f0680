package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/catalog"
	"github.com/kaliagent/kaliagent/pkg/gateway"
)

// NewTemplatesCommand groups the command template operations.
func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Short:   "Browse and render security command templates",
		GroupID: "library",
	}
	cmd.AddCommand(newTemplatesListCommand())
	cmd.AddCommand(newTemplatesShowCommand())
	cmd.AddCommand(newTemplatesUseCommand())
	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available command templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			mgr := catalog.NewManager(cfg.Workspace.Dir)
			templates := mgr.List(category)
			if len(templates) == 0 {
				out.Warning("no templates found")
				return nil
			}

			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				rows = append(rows, []string{t.Name, t.Category, string(t.RiskLevel), t.Description})
			}
			out.Table([]string{"Name", "Category", "Risk", "Description"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list templates in this category")
	return cmd
}

func newTemplatesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one template in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			mgr := catalog.NewManager(cfg.Workspace.Dir)
			t, err := mgr.Get(args[0])
			if err != nil {
				return err
			}

			out.Info("## " + t.Name)
			out.Info(t.Description)
			out.Info("Command: " + t.Command)
			if len(t.Parameters) > 0 {
				rows := make([][]string, 0, len(t.Parameters))
				for _, name := range t.Placeholders() {
					rows = append(rows, []string{name, t.Parameters[name]})
				}
				out.Table([]string{"Parameter", "Description"}, rows)
			}
			for _, example := range t.Examples {
				out.Info("$ " + example)
			}
			if t.Notes != "" {
				out.Info(t.Notes)
			}
			out.Info(fmt.Sprintf("Risk level: %s", t.RiskLevel))
			return nil
		},
	}
}

func newTemplatesUseCommand() *cobra.Command {
	var (
		params []string
		run    bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Render a template with parameters, optionally executing it",
		Long: `Fills a template's placeholders from -p key=value pairs and prints the
resulting command. With --run the command is passed through the gateway
like exec, honoring safe mode and the allow-list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			vars, err := parseVars(params)
			if err != nil {
				return err
			}

			mgr := catalog.NewManager(cfg.Workspace.Dir)
			command, err := mgr.Render(args[0], vars)
			if err != nil {
				return err
			}

			if !run || cfg.Security.SafeMode {
				if run && cfg.Security.SafeMode {
					out.Warning("safe mode is on; displaying the command instead of executing it")
				}
				out.Info("$ " + command)
				return nil
			}

			validator := gateway.NewValidator(policyFrom(cfg), nil)
			verdict := validator.Validate(command)
			if !verdict.Allowed {
				out.Warning(verdict.Reason)
				return fmt.Errorf("command rejected: %s", verdict.Reason)
			}

			if cfg.Security.RequireConfirmation && !yes {
				if !promptYesNo(cmd, "Execute: "+command+"?") {
					out.Info("Execution cancelled")
					return nil
				}
			}

			out.Info("Executing " + command)
			executor := gateway.NewExecutor(validator, cfg.Execution.Timeout())
			result := executor.Execute(cmd.Context(), command)
			if result.Stdout != "" {
				out.Info(result.Stdout)
			}
			if result.Stderr != "" {
				out.Warning(result.Stderr)
			}
			if !result.Success {
				if result.Error != "" {
					return fmt.Errorf("command failed: %s", result.Error)
				}
				return fmt.Errorf("command exited with code %d", result.ExitCode)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "template parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&run, "run", false, "execute the rendered command through the gateway")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the execution confirmation prompt")
	return cmd
}
