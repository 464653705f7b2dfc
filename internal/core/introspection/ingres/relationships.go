package ingres

import (
	"context"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
)

// foreignKeysQuery returns one row per referencing column. Rows of one
// constraint are contiguous and ordered by key position.
const foreignKeysQuery = `SELECT DISTINCT p.schema_name, p.table_name, p.column_name, ` +
	`f.schema_name, f.table_name, f.column_name, f.key_position, f.constraint_name, p.constraint_name ` +
	`FROM iikeys p, iiconstraints c, iiref_constraints rc, iikeys f ` +
	`WHERE c.constraint_type = 'R' AND c.constraint_name = rc.ref_constraint_name ` +
	`AND p.constraint_name = rc.unique_constraint_name AND f.constraint_name = rc.ref_constraint_name ` +
	`AND p.key_position = f.key_position AND p.schema_name = ? ` +
	`ORDER BY 4, 5, 8, 7`

// Column positions in foreignKeysQuery.
const (
	fkPrimaryTable = iota + 1
	fkPrimaryColumn
	_
	fkForeignTable
	fkForeignColumn
	fkKeyPosition
	fkConstraint
)

// EntityRelationshipModel builds relationships between the given tables.
// Views are ignored, as are relationships with either end outside the set.
func (i *Introspector) EntityRelationshipModel(ctx context.Context, mon domain.ProgressMonitor, tables ...domain.TableInfo) (*domain.EntityRelationshipModel, error) {
	model := domain.NewEntityRelationshipModel()

	names := make(map[string]bool, len(tables))
	for _, t := range tables {
		if t.Type == domain.TableTypeTable {
			names[t.Name] = true
		}
	}
	if len(names) == 0 {
		return model, nil
	}

	c, err := i.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	mon = domain.Monitor(mon)
	mon.BeginTask("Loading relationships", domain.UnknownTotal)
	defer mon.Done()

	rs, err := i.query(ctx, c, true, foreignKeysQuery, i.owner())
	if err != nil {
		return nil, i.fail("load foreign keys", err)
	}

	acc := &relationshipAccumulator{tables: names, model: model}
	for _, r := range rs.rows {
		pos, _ := asInt(r.At(fkKeyPosition))
		acc.add(foreignKeyRow{
			primaryTable:  asString(r.At(fkPrimaryTable)),
			primaryColumn: asString(r.At(fkPrimaryColumn)),
			foreignTable:  asString(r.At(fkForeignTable)),
			foreignColumn: asString(r.At(fkForeignColumn)),
			keyPosition:   pos,
			constraint:    asString(r.At(fkConstraint)),
		})
	}
	acc.flush()

	i.logger.Debug("loaded relationships", "count", model.Len())
	return model, nil
}

type foreignKeyRow struct {
	primaryTable  string
	primaryColumn string
	foreignTable  string
	foreignColumn string
	keyPosition   int
	constraint    string
}

// relationshipAccumulator collects the columns of one foreign key at a time.
// A row at key position 1, or of a different constraint, closes the
// previous key. flush always resets the accumulator.
type relationshipAccumulator struct {
	tables map[string]bool
	model  *domain.EntityRelationshipModel

	constraint     string
	primaryTable   string
	foreignTable   string
	primaryColumns []string
	foreignColumns []string
}

func (a *relationshipAccumulator) add(r foreignKeyRow) {
	if len(a.foreignColumns) > 0 && (r.keyPosition == 1 || r.constraint != a.constraint) {
		a.flush()
	}
	if len(a.foreignColumns) == 0 {
		a.constraint = r.constraint
		a.primaryTable = r.primaryTable
		a.foreignTable = r.foreignTable
	}
	a.primaryColumns = append(a.primaryColumns, r.primaryColumn)
	a.foreignColumns = append(a.foreignColumns, r.foreignColumn)
}

func (a *relationshipAccumulator) flush() {
	if len(a.foreignColumns) > 0 && a.tables[a.primaryTable] && a.tables[a.foreignTable] {
		a.model.Add(domain.EntityRelationship{
			Primary: domain.Entity{Table: a.primaryTable, Columns: a.primaryColumns, Cardinality: domain.One},
			Foreign: domain.Entity{Table: a.foreignTable, Columns: a.foreignColumns, Cardinality: domain.Many},
		})
	}

	a.constraint = ""
	a.primaryTable = ""
	a.foreignTable = ""
	a.primaryColumns = nil
	a.foreignColumns = nil
}
