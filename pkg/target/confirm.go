package target

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	confirmTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")). // Yellow
				Bold(true)

	confirmLabelStyle = lipgloss.NewStyle().
				Bold(true)

	confirmWarnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")). // Red
				Bold(true)

	privateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow

	publicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	unreachableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")) // Red
)

// ScopePrompt renders accumulated target Details and requires an explicit
// affirmative answer before the caller may proceed. It is a boundary
// interaction: the reader and writer are injected, the verdict is a plain
// boolean, and nothing here touches the network.
type ScopePrompt struct {
	In  io.Reader
	Out io.Writer
}

// Confirm shows the validation summary and asks whether the operator has
// authorization to scan this target. Only "yes" or "y" (case-insensitive)
// count as consent; anything else, including a closed input stream, is a
// refusal.
func (p *ScopePrompt) Confirm(details Details) (bool, error) {
	w := p.Out

	fmt.Fprintf(w, "\n%s\n", confirmTitleStyle.Render("Target Validation"))
	fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("Target:"), details.Target)
	fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("Type:"), details.Kind)

	if details.ResolvedIP != "" {
		fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("IP Address:"), details.ResolvedIP)
	}
	if details.IsPrivate != nil {
		if *details.IsPrivate {
			fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("Network:"), privateStyle.Render("Private"))
		} else {
			fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("Network:"), publicStyle.Render("Public"))
		}
	}
	if details.IsReachable != nil {
		if *details.IsReachable {
			fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("Status:"), publicStyle.Render("Reachable"))
		} else {
			fmt.Fprintf(w, "%s %s\n", confirmLabelStyle.Render("Status:"), unreachableStyle.Render("Not Reachable"))
		}
	}

	fmt.Fprintf(w, "\n%s Only scan systems you have explicit permission to test.\n",
		confirmWarnStyle.Render("IMPORTANT:"))
	fmt.Fprintln(w, "Unauthorized scanning may be illegal in your jurisdiction.")
	fmt.Fprintf(w, "\n%s ", confirmLabelStyle.Render("Do you have authorization to scan this target? (yes/no):"))

	scanner := bufio.NewScanner(p.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "yes" || answer == "y", nil
}
