package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_PlainCommand(t *testing.T) {
	args, err := Tokenize("nmap -sn 192.168.1.0/24")
	require.NoError(t, err)
	assert.Equal(t, []string{"nmap", "-sn", "192.168.1.0/24"}, args)
}

func TestTokenize_QuotedArgumentsStayWhole(t *testing.T) {
	args, err := Tokenize(`hydra -l admin -P 'pass list.txt' 10.0.0.5 ssh`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hydra", "-l", "admin", "-P", "pass list.txt", "10.0.0.5", "ssh"}, args)
}

func TestTokenize_MetacharactersInsideQuotesAreVerbatim(t *testing.T) {
	// Injected shell metacharacters must survive as data in a single
	// argument, never as syntax.
	args, err := Tokenize(`nmap -p 80 "; rm -rf /"`)
	require.NoError(t, err)
	require.Len(t, args, 4)
	assert.Equal(t, "; rm -rf /", args[3])
}

func TestTokenize_DoubleQuotesWithEscapes(t *testing.T) {
	args, err := Tokenize(`sqlmap -u "http://example.com/page.php?id=1" --batch`)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/page.php?id=1", args[2])
}

func TestTokenize_UnbalancedQuotesFail(t *testing.T) {
	_, err := Tokenize(`nmap -p "80`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid command syntax")
}

func TestTokenize_BareOperatorsFail(t *testing.T) {
	for _, command := range []string{
		"nmap 10.0.0.1; rm -rf /",
		"nmap 10.0.0.1 | tee out.txt",
		"nmap 10.0.0.1 && reboot",
		"nmap 10.0.0.1 > /etc/passwd",
	} {
		_, err := Tokenize(command)
		assert.Error(t, err, "expected %q to be rejected", command)
	}
}

func TestTokenize_ExpansionsRejected(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"nmap $TARGET", "parameter expansion"},
		{"nmap $(cat targets.txt)", "command substitution"},
		{`nmap "$TARGET"`, "parameter expansion"},
	}
	for _, tt := range tests {
		_, err := Tokenize(tt.command)
		require.Error(t, err, tt.command)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	_, err := Tokenize("   ")
	assert.Error(t, err)
}
