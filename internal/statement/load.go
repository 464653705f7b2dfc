package statement

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/ingres-go/internal/core/assembler"
	"github.com/satishbabariya/ingres-go/internal/core/sqlast"
)

// Kind is the statement type of a document.
type Kind string

const (
	KindSelect Kind = "select"
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Statement is a built statement tree. Exactly the field matching Kind is
// set.
type Statement struct {
	Kind   Kind
	Select *sqlast.Select
	Insert *sqlast.Insert
	Update *sqlast.Update
	Delete *sqlast.Delete
}

// Render renders the statement with a.
func (s *Statement) Render(a *assembler.Assembler) (*assembler.Query, error) {
	switch s.Kind {
	case KindSelect:
		return a.Select(s.Select)
	case KindInsert:
		return a.Insert(s.Insert)
	case KindUpdate:
		return a.Update(s.Update)
	case KindDelete:
		return a.Delete(s.Delete)
	default:
		return nil, fmt.Errorf("unknown statement kind %q", s.Kind)
	}
}

// Parse reads every YAML document in data. Unknown keys are rejected.
func Parse(data []byte) ([]*Statement, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var out []*Statement
	for n := 1; ; n++ {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: document %d: %v", ErrInvalidDocument, n, err)
		}

		stmt, err := Build(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", n, err)
		}
		out = append(out, stmt)
	}

	if len(out) == 0 {
		return nil, invalid("no statements")
	}
	return out, nil
}

// Load parses the statement file at path on fs.
func Load(fs afero.Fs, path string) ([]*Statement, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}
	return Parse(data)
}
