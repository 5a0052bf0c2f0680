package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost reports a fixed set of tools as installed.
type fakeHost struct {
	installed map[string]bool
}

func (f fakeHost) LookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func testPolicy() Policy {
	return Policy{AllowedTools: []string{"nmap", "nikto", "hydra", "sqlmap"}}
}

func TestValidator_AllowsKnownInstalledTool(t *testing.T) {
	v := NewValidator(testPolicy(), fakeHost{installed: map[string]bool{"nmap": true}})

	verdict := v.Validate("nmap -sn 192.168.1.0/24")
	assert.True(t, verdict.Allowed)
	assert.Equal(t, FailureNone, verdict.Kind)
}

func TestValidator_RejectsEmptyCommand(t *testing.T) {
	v := NewValidator(testPolicy(), fakeHost{})

	for _, command := range []string{"", "   ", "\t\n"} {
		verdict := v.Validate(command)
		assert.False(t, verdict.Allowed)
		assert.Equal(t, "empty command", verdict.Reason)
	}
}

func TestValidator_RejectsToolOutsidePolicy(t *testing.T) {
	// rm is installed on any host; the policy check must still win.
	v := NewValidator(testPolicy(), fakeHost{installed: map[string]bool{"rm": true}})

	verdict := v.Validate("rm -rf /")
	require.False(t, verdict.Allowed)
	assert.Equal(t, FailureRejectedByPolicy, verdict.Kind)
	assert.Contains(t, verdict.Reason, `"rm"`)
	assert.Contains(t, verdict.Reason, "not in the allowed tools list")
}

func TestValidator_PolicyCheckedBeforeInstallation(t *testing.T) {
	// A disallowed tool that is not installed must be reported as a policy
	// rejection, not as missing.
	v := NewValidator(testPolicy(), fakeHost{})

	verdict := v.Validate("metasploit")
	require.False(t, verdict.Allowed)
	assert.Equal(t, FailureRejectedByPolicy, verdict.Kind)
}

func TestValidator_RejectsAllowedButMissingTool(t *testing.T) {
	v := NewValidator(testPolicy(), fakeHost{})

	verdict := v.Validate("nikto -h http://example.com")
	require.False(t, verdict.Allowed)
	assert.Equal(t, FailureNotInstalled, verdict.Kind)
	assert.Contains(t, verdict.Reason, "not installed")
}

func TestValidator_RejectsBadSyntax(t *testing.T) {
	v := NewValidator(testPolicy(), fakeHost{installed: map[string]bool{"nmap": true}})

	verdict := v.Validate(`nmap "unterminated`)
	require.False(t, verdict.Allowed)
	assert.Equal(t, FailureSyntax, verdict.Kind)
}

func TestValidator_IsIdempotent(t *testing.T) {
	v := NewValidator(testPolicy(), fakeHost{installed: map[string]bool{"nmap": true}})

	first := v.Validate("nmap -sV 10.0.0.5")
	second := v.Validate("nmap -sV 10.0.0.5")
	assert.Equal(t, first, second)
}

func TestValidator_InstalledTools(t *testing.T) {
	v := NewValidator(testPolicy(), fakeHost{installed: map[string]bool{
		"sqlmap": true,
		"nmap":   true,
		"rm":     true, // installed but not allowed, must not appear
	}})

	assert.Equal(t, []string{"nmap", "sqlmap"}, v.InstalledTools())
}

func TestValidator_NilHostDefaultsToSystem(t *testing.T) {
	v := NewValidator(testPolicy(), nil)
	assert.NotNil(t, v.host)
}
