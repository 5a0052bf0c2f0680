package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/gateway"
	"github.com/kaliagent/kaliagent/pkg/output"
)

// NewValidateCommand checks a command against the safety gateway without
// running it.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "validate <command>",
		Short:   "Check a command against the allow-list without executing it",
		GroupID: "gateway",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			command := strings.Join(args, " ")
			validator := gateway.NewValidator(policyFrom(cfg), nil)

			verdict := validator.Validate(command)
			log.Debug().Str("command", command).Bool("allowed", verdict.Allowed).Msg("validation verdict")
			out.Diag(output.LevelVerbose, "validation verdict", map[string]any{
				"allowed": verdict.Allowed,
				"kind":    string(verdict.Kind),
			})

			if !verdict.Allowed {
				out.Warning(verdict.Reason)
				return fmt.Errorf("command rejected: %s", verdict.Reason)
			}

			out.Info("✓ " + verdict.Reason)
			return nil
		},
	}
}
