package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/appctx"
	"github.com/kaliagent/kaliagent/pkg/gateway"
)

// NewToolsCommand reports which allowed tools are present on this host.
func NewToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tools",
		Short:   "List allowed security tools and whether they are installed",
		GroupID: "gateway",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appctx.ConfigFrom(cmd.Context())
			out := setupOutputPipeline(cmd)

			host := gateway.SystemHost{}
			installed := 0
			rows := make([][]string, 0, len(cfg.Security.AllowedTools))
			for _, tool := range cfg.Security.AllowedTools {
				status := "no"
				if _, err := host.LookPath(tool); err == nil {
					status = "yes"
					installed++
				}
				rows = append(rows, []string{tool, status})
			}

			out.Table([]string{"Tool", "Installed"}, rows)
			out.Info(fmt.Sprintf("%d of %d allowed tools installed", installed, len(cfg.Security.AllowedTools)))
			return nil
		},
	}
}
