package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/config"
	"github.com/kaliagent/kaliagent/pkg/gateway"
)

// policyFrom converts the loaded security config into an explicit gateway
// policy value.
func policyFrom(cfg config.Config) gateway.Policy {
	return gateway.Policy{
		AllowedTools:        cfg.Security.AllowedTools,
		SafeMode:            cfg.Security.SafeMode,
		RequireConfirmation: cfg.Security.RequireConfirmation,
	}
}

// promptYesNo asks on the command's streams and accepts only "yes" or "y".
func promptYesNo(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (yes/no): ", question)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "yes" || answer == "y"
}

// parseVars turns repeated key=value flags into a map.
func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		vars[key] = value
	}
	return vars, nil
}
