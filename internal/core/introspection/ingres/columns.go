package ingres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/core/types"
)

const (
	columnsQuery = `SELECT * FROM iicolumns WHERE table_owner = ? AND table_name NOT LIKE '$%' ` +
		`ORDER BY table_name, column_sequence`

	primaryKeysQuery = `SELECT DISTINCT k.schema_name, k.table_name, k.column_name, k.key_position, k.constraint_name ` +
		`FROM iikeys k, iiconstraints c ` +
		`WHERE c.constraint_type = 'P' AND k.constraint_name = c.constraint_name AND k.schema_name = ? ` +
		`ORDER BY k.table_name, k.key_position`

	uniqueIndexesQuery = `SELECT idx.base_owner, idx.base_name, idx.unique_rule, idx.index_owner, idx.index_name, ` +
		`idc.key_sequence, idc.column_name, idc.sort_direction ` +
		`FROM iiindexes idx, iiindex_columns idc ` +
		`WHERE idx.index_owner = idc.index_owner AND idx.index_name = idc.index_name ` +
		`AND idx.unique_rule = 'U' AND idx.base_owner = ? ` +
		`ORDER BY 3 DESC, 5, 6`
)

// TableMetadata describes the given tables with one bulk query per catalog.
// Tables that cannot be assembled are logged and left out. On cancellation
// the tables finished so far are returned together with the context error.
func (i *Introspector) TableMetadata(ctx context.Context, mon domain.ProgressMonitor, flags domain.MetadataFlags, tables ...domain.TableInfo) ([]domain.TableMetadata, error) {
	if len(tables) == 0 {
		return []domain.TableMetadata{}, nil
	}

	c, err := i.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	mon = domain.Monitor(mon)
	mon.BeginTask("Loading table metadata", len(tables))
	defer mon.Done()

	mon.SetTaskName("Loading columns")
	columns, err := i.query(ctx, c, true, columnsQuery, i.owner())
	if err != nil {
		return nil, i.fail("load columns", err)
	}
	columnsByTable := columns.groupBy("table_name")

	mon.SetTaskName("Evaluating column defaults")
	var defaults map[string]any
	if ctx.Err() == nil {
		defaults = i.evaluateDefaults(ctx, c, columns)
	}

	var primaryKeys, uniqueIndexes map[string][]row
	if flags&domain.Indices != 0 && ctx.Err() == nil {
		mon.SetTaskName("Loading primary keys")
		pks, err := i.query(ctx, c, true, primaryKeysQuery, i.owner())
		if err != nil {
			return nil, i.fail("load primary keys", err)
		}
		primaryKeys = pks.groupBy("table_name")

		mon.SetTaskName("Loading indexes")
		idx, err := i.query(ctx, c, true, uniqueIndexesQuery, i.owner())
		if err != nil {
			return nil, i.fail("load indexes", err)
		}
		uniqueIndexes = idx.groupBy("base_name")
	}

	out := make([]domain.TableMetadata, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		mon.SetTaskName(t.QualifiedName())

		md, err := buildTableMetadata(t, columnsByTable[t.Name], defaults)
		if err != nil {
			i.logger.Warn("skipping table", "table", t.QualifiedName(), "error", err)
			mon.Worked(1)
			continue
		}
		if t.Type == domain.TableTypeTable && flags&domain.Indices != 0 {
			md.Indexes = buildIndexes(primaryKeys[t.Name], uniqueIndexes[t.Name])
		}

		out = append(out, md)
		mon.Worked(1)
	}

	return out, nil
}

func buildTableMetadata(t domain.TableInfo, rows []row, defaults map[string]any) (domain.TableMetadata, error) {
	if len(rows) == 0 {
		return domain.TableMetadata{}, fmt.Errorf("%s: %w", t.QualifiedName(), domain.ErrNoColumns)
	}

	md := domain.TableMetadata{
		Table:    t,
		Columns:  make([]domain.ColumnMetadata, 0, len(rows)),
		RowCount: domain.UnknownRowCount,
	}
	for _, r := range rows {
		md.Columns = append(md.Columns, buildColumn(t.Name, r, defaults))
	}
	return md, nil
}

func buildColumn(table string, r row, defaults map[string]any) domain.ColumnMetadata {
	code := types.Unspecified
	if v, ok := r.Int("column_ingdatatype"); ok && v != int(types.Unspecified) {
		code = types.Code(v)
	}

	length, _ := r.Int("column_length")
	scale, _ := r.Int("column_scale")
	sqlType, _, length := types.Resolve(code, r.String("column_datatype"), length)

	col := domain.ColumnMetadata{
		TableName: table,
		Name:      r.String("column_name"),
		Type:      sqlType,
		Length:    length,
		Scale:     scale,
		Nullable:  r.String("column_nulls") == "Y",
	}

	if r.Value("column_default_val") != nil {
		if v, ok := defaults[r.String("column_default_val")]; ok {
			col.DefaultValue = v
		}
	}

	// Identity columns exist from Ingres 10 on; older catalogs lack the column.
	if r.Has("column_bydefault_ident") {
		col.AutoIncrement = r.String("column_bydefault_ident") == "Y"
	}

	return col
}

// buildIndexes returns the primary key followed by the unique indexes.
// Primary key columns are never repeated in the other indexes, and an index
// left without columns is dropped.
func buildIndexes(pkRows, indexRows []row) []domain.Index {
	var indexes []domain.Index

	pkColumns := make(map[string]bool, len(pkRows))
	if len(pkRows) > 0 {
		pk := domain.Index{IndexInfo: domain.IndexInfo{
			Name: pkRows[0].String("constraint_name"),
			Type: domain.IndexPrimaryKey,
		}}
		for _, r := range pkRows {
			name := r.String("column_name")
			pkColumns[name] = true
			pk.Columns = append(pk.Columns, name)
		}
		indexes = append(indexes, pk)
	}

	var order []domain.IndexInfo
	byInfo := make(map[domain.IndexInfo]*domain.Index)
	for _, r := range indexRows {
		name := r.String("column_name")
		if pkColumns[name] {
			continue
		}

		kind := domain.IndexNormal
		if r.String("unique_rule") == "U" {
			kind = domain.IndexUnique
		}
		info := domain.IndexInfo{Name: r.String("index_name"), Type: kind}

		idx, ok := byInfo[info]
		if !ok {
			idx = &domain.Index{IndexInfo: info}
			byInfo[info] = idx
			order = append(order, info)
		}
		if !idx.HasColumn(name) {
			idx.Columns = append(idx.Columns, name)
		}
	}

	for _, info := range order {
		indexes = append(indexes, *byInfo[info])
	}
	return indexes
}

// evaluateDefaults resolves literal column defaults with a single SELECT,
// keyed by the raw catalog expression. Sequence defaults are skipped. A
// failed evaluation is logged and yields no defaults.
func (i *Introspector) evaluateDefaults(ctx context.Context, c *sql.Conn, columns *rowSet) map[string]any {
	seen := make(map[string]bool)
	for _, r := range columns.rows {
		if r.Has("column_has_default") && r.String("column_has_default") != "Y" {
			continue
		}
		if r.Value("column_default_val") == nil {
			continue
		}
		raw := r.String("column_default_val")
		if strings.HasPrefix(strings.ToLower(raw), "next value for") {
			continue
		}
		seen[raw] = true
	}
	if len(seen) == 0 {
		return nil
	}

	exprs := make([]string, 0, len(seen))
	for raw := range seen {
		exprs = append(exprs, raw)
	}
	sort.Strings(exprs)

	selectList := make([]string, len(exprs))
	for n, raw := range exprs {
		if raw == "" {
			raw = "''"
		}
		selectList[n] = raw
	}

	rs, err := i.query(ctx, c, false, "SELECT "+strings.Join(selectList, ", "))
	if err != nil {
		i.logger.Warn("failed to evaluate column defaults", "count", len(exprs), "error", err)
		return nil
	}
	if len(rs.rows) == 0 {
		i.logger.Warn("column default evaluation returned no row", "count", len(exprs))
		return nil
	}

	values := make(map[string]any, len(exprs))
	for n, raw := range exprs {
		values[raw] = rs.rows[0].At(n)
	}
	return values
}
