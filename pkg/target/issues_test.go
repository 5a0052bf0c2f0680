package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommonIssues_Localhost(t *testing.T) {
	for _, tgt := range []string{"localhost", "LOCALHOST", "127.0.0.1", "::1", "0.0.0.0"} {
		issues := CheckCommonIssues(tgt)
		require.NotEmpty(t, issues, tgt)
		assert.Contains(t, issues[0], "localhost", tgt)
	}
}

func TestCheckCommonIssues_AWSPrefix(t *testing.T) {
	issues := CheckCommonIssues("52.31.4.100")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "AWS")
}

func TestCheckCommonIssues_GatewayOctets(t *testing.T) {
	issues := CheckCommonIssues("192.168.1.1")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "gateway")

	issues = CheckCommonIssues("192.168.1.254")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "routers")
}

func TestCheckCommonIssues_HostnamesSkipOctetChecks(t *testing.T) {
	// A hostname ending in .1 is not an IP; no octet heuristics apply.
	assert.Empty(t, CheckCommonIssues("example.com"))
}

func TestCheckCommonIssues_CleanPublicTarget(t *testing.T) {
	assert.Empty(t, CheckCommonIssues("203.0.113.77"))
}

func TestCheckCommonIssues_Stack(t *testing.T) {
	// 3.x.x.1 is both AWS-looking and gateway-looking.
	issues := CheckCommonIssues("3.0.0.1")
	assert.Len(t, issues, 2)
}
