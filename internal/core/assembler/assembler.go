// Package assembler renders sqlast statements as Ingres SQL.
package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/sqlast"
)

// ErrMalformedStatement is returned when a statement tree is incomplete.
var ErrMalformedStatement = errors.New("malformed statement")

// DefaultDelimiter is the Ingres identifier delimiter.
const DefaultDelimiter = '"'

// Query represents a SQL statement with its bind arguments
type Query struct {
	SQL  string
	Args []interface{}
}

// Flags alter how identifiers are rendered.
type Flags uint

const (
	// OmitAlias drops the correlation name from table identifiers.
	OmitAlias Flags = 1 << iota
	// Unqualified renders column names without a qualifier.
	Unqualified
	// QualifyByTable qualifies columns by the table identifier even when
	// the table has an alias.
	QualifyByTable
)

// Assembler renders statements for Ingres. The zero value is not usable;
// call New.
type Assembler struct {
	delimiter   rune
	delimit     bool
	placeholder func(int) string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithDelimiter sets the identifier delimiter.
func WithDelimiter(d rune) Option {
	return func(a *Assembler) { a.delimiter = d }
}

// WithDelimitIdentifiers turns identifier delimiting on or off for both
// tables and columns.
func WithDelimitIdentifiers(on bool) Option {
	return func(a *Assembler) { a.delimit = on }
}

// WithPlaceholder sets the bind placeholder generator; n is 1-based.
func WithPlaceholder(fn func(n int) string) Option {
	return func(a *Assembler) { a.placeholder = fn }
}

// New returns an Ingres assembler. Identifiers are delimited by default.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		delimiter:   DefaultDelimiter,
		delimit:     true,
		placeholder: func(int) string { return "?" },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Quote delimits a single identifier, doubling embedded delimiters.
func (a *Assembler) Quote(name string) string {
	if !a.delimit {
		return name
	}
	d := string(a.delimiter)
	return d + strings.ReplaceAll(name, d, d+d) + d
}

// Unquote reverses Quote. Names that are not delimited are returned as is.
func (a *Assembler) Unquote(name string) string {
	d := string(a.delimiter)
	if len(name) < 2 || !strings.HasPrefix(name, d) || !strings.HasSuffix(name, d) {
		return name
	}
	return strings.ReplaceAll(name[len(d):len(name)-len(d)], d+d, d)
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedStatement, fmt.Sprintf(format, args...))
}

// TableIdentifier renders ["schema".]"name"[ "alias"].
func (a *Assembler) TableIdentifier(t *sqlast.Table, flags Flags) (string, error) {
	if t == nil {
		return "", malformed("nil table")
	}
	if t.Name == "" {
		return "", malformed("table without name")
	}

	var sb strings.Builder
	if t.Schema != "" {
		sb.WriteString(a.Quote(t.Schema))
		sb.WriteByte('.')
	}
	sb.WriteString(a.Quote(t.Name))
	if t.Alias != "" && flags&OmitAlias == 0 {
		sb.WriteByte(' ')
		sb.WriteString(a.Quote(t.Alias))
	}
	return sb.String(), nil
}

// ColumnQualifier renders the prefix placed before a column name,
// including the trailing dot, or "" when the column has no owner.
func (a *Assembler) ColumnQualifier(c *sqlast.Column, flags Flags) (string, error) {
	if c == nil {
		return "", malformed("nil column")
	}
	if c.Owner == nil || flags&Unqualified != 0 {
		return "", nil
	}

	if alias := c.Owner.QualifierAlias(); alias != "" && flags&QualifyByTable == 0 {
		return a.Quote(alias) + ".", nil
	}
	if t, ok := c.Owner.(*sqlast.Table); ok {
		id, err := a.TableIdentifier(t, OmitAlias)
		if err != nil {
			return "", err
		}
		return id + ".", nil
	}
	return c.Owner.String() + ".", nil
}

// Column renders a column reference. The wildcard is never delimited.
func (a *Assembler) Column(c *sqlast.Column, flags Flags) (string, error) {
	if c == nil {
		return "", malformed("nil column")
	}
	if c.Name == "" {
		return "", malformed("column without name")
	}

	qualifier, err := a.ColumnQualifier(c, flags)
	if err != nil {
		return "", err
	}
	if c.IsWildcard() {
		return qualifier + sqlast.Wildcard, nil
	}
	return qualifier + a.Quote(c.Name), nil
}

// RowLimit renders the Ingres pagination suffix for the given window.
func (a *Assembler) RowLimit(offset, limit *int) string {
	switch {
	case offset != nil && limit != nil:
		return fmt.Sprintf("OFFSET %d FETCH FIRST %d ROWS ONLY", *offset, *limit)
	case limit != nil:
		return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", *limit)
	case offset != nil:
		return fmt.Sprintf("OFFSET %d", *offset)
	default:
		return ""
	}
}
