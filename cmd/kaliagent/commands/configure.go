package commands

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/config"
)

// NewConfigureCommand shows and persists the security configuration.
func NewConfigureCommand() *cobra.Command {
	var (
		show         bool
		safeMode     string
		requireConf  string
		allowPrivate string
		timeout      int
		addTools     []string
		removeTools  []string
	)

	cmd := &cobra.Command{
		Use:     "configure",
		Short:   "Show or change the security configuration",
		GroupID: "gateway",
		Long: `Displays the active configuration, or persists changes to the
workspace config file. Boolean settings take on/off.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			changed := false
			applyBool := func(flagValue string, dst *bool) error {
				if flagValue == "" {
					return nil
				}
				switch flagValue {
				case "on", "true", "yes":
					*dst = true
				case "off", "false", "no":
					*dst = false
				default:
					return fmt.Errorf("expected on or off, got %q", flagValue)
				}
				changed = true
				return nil
			}

			if err := applyBool(safeMode, &cfg.Security.SafeMode); err != nil {
				return fmt.Errorf("invalid --safe-mode: %w", err)
			}
			if err := applyBool(requireConf, &cfg.Security.RequireConfirmation); err != nil {
				return fmt.Errorf("invalid --require-confirmation: %w", err)
			}
			if err := applyBool(allowPrivate, &cfg.Security.AllowPrivateTargets); err != nil {
				return fmt.Errorf("invalid --allow-private: %w", err)
			}
			if timeout > 0 {
				cfg.Execution.TimeoutSeconds = timeout
				changed = true
			}
			for _, tool := range addTools {
				if tool == "" {
					continue
				}
				if !slices.Contains(cfg.Security.AllowedTools, tool) {
					cfg.Security.AllowedTools = append(cfg.Security.AllowedTools, tool)
					out.Info(fmt.Sprintf("Added %s to the allowed tools", tool))
				}
				changed = true
			}
			for _, tool := range removeTools {
				if i := slices.Index(cfg.Security.AllowedTools, tool); i >= 0 {
					cfg.Security.AllowedTools = slices.Delete(cfg.Security.AllowedTools, i, i+1)
					out.Info(fmt.Sprintf("Removed %s from the allowed tools", tool))
					changed = true
				}
			}

			if changed {
				if err := config.Save(cfg.Workspace.Dir, cfg); err != nil {
					return fmt.Errorf("saving configuration: %w", err)
				}
				out.Info("Configuration saved to " + cfg.Workspace.Dir)
			}

			if show || !changed {
				out.Info("## Security Configuration")
				out.Table([]string{"Setting", "Value"}, [][]string{
					{"Safe mode", onOff(cfg.Security.SafeMode)},
					{"Require confirmation", onOff(cfg.Security.RequireConfirmation)},
					{"Allow private targets", onOff(cfg.Security.AllowPrivateTargets)},
					{"Command timeout", strconv.Itoa(cfg.Execution.TimeoutSeconds) + "s"},
					{"Allowed tools", strconv.Itoa(len(cfg.Security.AllowedTools))},
					{"Workspace", cfg.Workspace.Dir},
				})
				for _, tool := range cfg.Security.AllowedTools {
					out.Info("  - " + tool)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the active configuration")
	cmd.Flags().StringVar(&safeMode, "safe-mode", "", "enable or disable safe mode (on|off)")
	cmd.Flags().StringVar(&requireConf, "require-confirmation", "", "require confirmation before execution (on|off)")
	cmd.Flags().StringVar(&allowPrivate, "allow-private", "", "allow private network targets (on|off)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "command timeout in seconds")
	cmd.Flags().StringSliceVar(&addTools, "add-tool", nil, "add a tool to the allow-list")
	cmd.Flags().StringSliceVar(&removeTools, "remove-tool", nil, "remove a tool from the allow-list")
	return cmd
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
