package sqlast

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// refLexer tokenizes dotted SQL references such as `"app".orders o`.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Quoted", Pattern: `"(?:[^"]|"")*"`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$#@]*`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type rawTableRef struct {
	Parts []string `@(Ident | Quoted) ( "." @(Ident | Quoted) )?`
	Alias string   `( "AS"? @(Ident | Quoted) )?`
}

type rawColumnRef struct {
	Parts []string `@(Ident | Quoted | Star) ( "." @(Ident | Quoted | Star) )*`
}

func unquoteIdent(t lexer.Token) (lexer.Token, error) {
	v := t.Value[1 : len(t.Value)-1]
	t.Value = strings.ReplaceAll(v, `""`, `"`)
	return t, nil
}

var (
	tableRefParser = participle.MustBuild[rawTableRef](
		participle.Lexer(refLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.Map(unquoteIdent, "Quoted"),
	)
	columnRefParser = participle.MustBuild[rawColumnRef](
		participle.Lexer(refLexer),
		participle.Elide("Whitespace"),
		participle.Map(unquoteIdent, "Quoted"),
	)
)

// ParseTableRef parses `[schema.]name [[AS] alias]`. Identifiers may be
// double-quoted; a doubled quote inside stands for one quote character.
func ParseTableRef(s string) (*Table, error) {
	raw, err := tableRefParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table reference %q: %w", s, err)
	}

	t := &Table{Alias: raw.Alias}
	switch len(raw.Parts) {
	case 1:
		t.Name = raw.Parts[0]
	case 2:
		t.Schema, t.Name = raw.Parts[0], raw.Parts[1]
	}
	return t, nil
}

// ParseColumnRef parses `[qualifier.]...name` and returns the qualifier
// parts separately from the column name, which may be "*".
func ParseColumnRef(s string) (qualifier []string, name string, err error) {
	raw, err := columnRefParser.ParseString("", s)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse column reference %q: %w", s, err)
	}

	last := len(raw.Parts) - 1
	for _, part := range raw.Parts[:last] {
		if part == Wildcard {
			return nil, "", fmt.Errorf("failed to parse column reference %q: wildcard must be the last part", s)
		}
	}
	return raw.Parts[:last], raw.Parts[last], nil
}
