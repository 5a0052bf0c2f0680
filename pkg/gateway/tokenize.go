package gateway

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Tokenize splits a command string into an argument vector using shell
// word-splitting semantics: quotes group, backslash escapes apply, and the
// result is exactly what will be handed to the child process.
//
// It is deliberately narrower than a shell. Control operators (;, |, &&,
// redirections) are a tokenization error rather than syntax to interpret,
// and expansion constructs ($var, $(...), backquotes, globs inside
// quoting) are rejected outright. Nothing that reaches the argv can have
// been rewritten on the way.
func Tokenize(command string) ([]string, error) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))

	var words []*syntax.Word
	err := parser.Words(strings.NewReader(command), func(w *syntax.Word) bool {
		words = append(words, w)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("invalid command syntax: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cfg := &expand.Config{Env: expand.ListEnviron()}
	args := make([]string, 0, len(words))
	for _, w := range words {
		if err := requireLiteral(w); err != nil {
			return nil, err
		}
		lit, err := expand.Literal(cfg, w)
		if err != nil {
			return nil, fmt.Errorf("invalid command syntax: %w", err)
		}
		args = append(args, lit)
	}
	return args, nil
}

// requireLiteral rejects any word part whose value would depend on shell
// state. Quote removal is the only transformation Tokenize performs.
func requireLiteral(w *syntax.Word) error {
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
		case *syntax.SglQuoted:
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				if _, ok := inner.(*syntax.Lit); !ok {
					return fmt.Errorf("shell expansion is not supported: %s", partName(inner))
				}
			}
		default:
			return fmt.Errorf("shell expansion is not supported: %s", partName(p))
		}
	}
	return nil
}

func partName(part syntax.WordPart) string {
	switch part.(type) {
	case *syntax.ParamExp:
		return "parameter expansion"
	case *syntax.CmdSubst:
		return "command substitution"
	case *syntax.ArithmExp:
		return "arithmetic expansion"
	case *syntax.ProcSubst:
		return "process substitution"
	case *syntax.ExtGlob:
		return "extended glob"
	default:
		return "non-literal word"
	}
}
