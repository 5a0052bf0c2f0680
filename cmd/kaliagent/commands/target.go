package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/target"
)

// NewTargetCommand classifies and vets a single target.
func NewTargetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "target <ip-or-hostname>",
		Short:   "Classify a target: IP or hostname, private or public, reachable or not",
		GroupID: "target",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			tv := target.NewValidator(target.WithProbeTimeout(cfg.Execution.ProbeTimeout()))
			ok, reason, details := tv.Validate(cmd.Context(), args[0], cfg.Security.AllowPrivateTargets)

			rows := [][]string{
				{"Target", details.Target},
				{"Type", string(details.Kind)},
			}
			if details.ResolvedIP != "" {
				rows = append(rows, []string{"Resolved IP", details.ResolvedIP})
			}
			if details.DNSResolved != nil {
				rows = append(rows, []string{"DNS resolved", yesNo(*details.DNSResolved)})
			}
			if details.IsPrivate != nil {
				network := "public"
				if *details.IsPrivate {
					network = "private"
				}
				rows = append(rows, []string{"Network", network})
			}
			if details.IsReachable != nil {
				rows = append(rows, []string{"Reachable", yesNo(*details.IsReachable)})
			}
			out.Table([]string{"Field", "Value"}, rows)

			for _, issue := range target.CheckCommonIssues(args[0]) {
				out.Warning(issue)
			}

			if !ok {
				out.Warning(reason)
				return fmt.Errorf("target rejected: %s", reason)
			}
			out.Info("✓ " + reason)
			return nil
		},
	}
}

// NewRangeCommand vets a CIDR network range.
func NewRangeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "range <cidr>",
		Short:   "Validate a CIDR network range and report its size",
		GroupID: "target",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := setupOutputPipeline(cmd)

			verdict := target.ValidateRange(args[0])
			if !verdict.Valid {
				out.Warning(verdict.Message)
				return fmt.Errorf("range rejected: %s", verdict.Message)
			}

			if verdict.LargeNetwork {
				out.Warning(verdict.Message)
			} else {
				out.Info("✓ " + verdict.Message)
			}
			return nil
		},
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
