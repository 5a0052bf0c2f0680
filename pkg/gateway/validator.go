package gateway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Policy is the caller-owned configuration the gateway validates against.
// It is passed in explicitly rather than read from ambient state, so a
// Validator is a pure function of (command, policy, host).
type Policy struct {
	// AllowedTools lists the base command names permitted to run.
	AllowedTools []string

	// SafeMode renders commands without executing them. It is enforced by
	// the callers that own execution flow, not by Validate itself.
	SafeMode bool

	// RequireConfirmation requires an explicit operator go-ahead before
	// execution. Like SafeMode, it is a caller concern carried here so
	// policy travels as one value.
	RequireConfirmation bool
}

// Allows reports whether tool is on the allow-list. Matching is exact and
// case-sensitive, same as invoking the tool would be.
func (p Policy) Allows(tool string) bool {
	for _, t := range p.AllowedTools {
		if t == tool {
			return true
		}
	}
	return false
}

// Validator decides whether a command string is admissible under a policy.
type Validator struct {
	policy Policy
	host   Host
}

// NewValidator builds a Validator for the given policy. A nil host defaults
// to the real system host.
func NewValidator(policy Policy, host Host) *Validator {
	if host == nil {
		host = SystemHost{}
	}
	return &Validator{policy: policy, host: host}
}

// Validate checks a command string and returns a verdict with a reason an
// operator can act on. The allow-list is consulted before the installation
// probe, so a categorically disallowed tool is reported as "not permitted"
// even when it happens to be present on the host.
func (v *Validator) Validate(command string) Verdict {
	if strings.TrimSpace(command) == "" {
		return Verdict{Allowed: false, Reason: "empty command", Kind: FailureSyntax}
	}

	args, err := Tokenize(command)
	if err != nil {
		return Verdict{Allowed: false, Reason: err.Error(), Kind: FailureSyntax}
	}

	base := args[0]
	if !v.policy.Allows(base) {
		log.Debug().Str("component", "gateway").Str("tool", base).Msg("command rejected by policy")
		return Verdict{
			Allowed: false,
			Reason:  fmt.Sprintf("tool %q is not in the allowed tools list", base),
			Kind:    FailureRejectedByPolicy,
		}
	}

	if _, err := v.host.LookPath(base); err != nil {
		return Verdict{
			Allowed: false,
			Reason:  fmt.Sprintf("tool %q is not installed on this system", base),
			Kind:    FailureNotInstalled,
		}
	}

	return Verdict{Allowed: true, Reason: "command is valid"}
}

// InstalledTools returns the subset of the allow-list that is present on
// the host's search path, sorted by name.
func (v *Validator) InstalledTools() []string {
	var installed []string
	for _, tool := range v.policy.AllowedTools {
		if _, err := v.host.LookPath(tool); err == nil {
			installed = append(installed, tool)
		}
	}
	sort.Strings(installed)
	return installed
}
