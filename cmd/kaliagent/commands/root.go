package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/cli"
	"github.com/kaliagent/kaliagent/pkg/config"
)

const cliExecutable = "kaliagent"

// NewCommand constructs the top-level kaliagent CLI command, wiring global
// flags, config loading, and shared workspace preparation.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		workspaceDir   string
		verbosityCount int
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "kaliagent is a safety gateway for security testing tools",
		Long: `kaliagent validates, vets, and executes security tool invocations.
Commands pass an allow-list check and never touch a shell; targets are
classified and confirmed before anything is pointed at them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewManager()
			if err := manager.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			cfg := manager.Get()
			if workspaceDir != "" {
				cfg.Workspace.Dir = workspaceDir
			}
			if err := config.EnsureWorkspace(cfg.Workspace.Dir); err != nil {
				return err
			}

			// Configure global log level based on verbosity flags
			// If explicit --verbose is set, show debug and above
			// Else use -v count: 0=>Error, 1=>Info, 2+=>Debug
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				switch {
				case verbosityCount <= 0:
					zerolog.SetGlobalLevel(zerolog.ErrorLevel)
				case verbosityCount == 1:
					zerolog.SetGlobalLevel(zerolog.InfoLevel)
				default:
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
			}

			log.Debug().Str("workspace", cfg.Workspace.Dir).Msg("workspace ready")

			ctx := appctx.WithConfig(cmd.Context(), cfg)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringVar(&workspaceDir, "workspace", "", "Override workspace directory")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON output")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddGroup(&cobra.Group{ID: "gateway", Title: "Gateway Commands"})
	cmd.AddGroup(&cobra.Group{ID: "target", Title: "Target Commands"})
	cmd.AddGroup(&cobra.Group{ID: "library", Title: "Library Commands"})

	cmd.AddCommand(NewConfigureCommand())
	cmd.AddCommand(NewToolsCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewExecCommand())
	cmd.AddCommand(NewTargetCommand())
	cmd.AddCommand(NewRangeCommand())
	cmd.AddCommand(NewTemplatesCommand())
	cmd.AddCommand(NewPlaybooksCommand())
	cmd.AddCommand(cli.NewVersionCommand(cliExecutable))

	return cmd
}
