package ingres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// rowSet is a buffered query result with case-insensitive column lookup.
// Catalog values are CHAR padded, so strings are trimmed when trim is set.
type rowSet struct {
	columns map[string]int
	rows    []row
}

type row struct {
	set    *rowSet
	values []any
}

func scanRowSet(ctx context.Context, rows *sql.Rows, trim bool) (*rowSet, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &rowSet{columns: make(map[string]int, len(names))}
	for i, name := range names {
		key := strings.ToLower(name)
		if _, dup := rs.columns[key]; !dup {
			rs.columns[key] = i
		}
	}

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalizeValue(v, trim)
		}
		rs.rows = append(rs.rows, row{set: rs, values: values})
	}

	return rs, rows.Err()
}

func normalizeValue(v any, trim bool) any {
	switch v := v.(type) {
	case []byte:
		s := string(v)
		if trim {
			s = strings.TrimSpace(s)
		}
		return s
	case string:
		if trim {
			return strings.TrimSpace(v)
		}
		return v
	default:
		return v
	}
}

// groupBy partitions rows by the string value of column, keeping the
// original row order inside each group.
func (rs *rowSet) groupBy(column string) map[string][]row {
	groups := make(map[string][]row)
	for _, r := range rs.rows {
		key := r.String(column)
		groups[key] = append(groups[key], r)
	}
	return groups
}

// Has reports whether the result contains column.
func (r row) Has(column string) bool {
	_, ok := r.set.columns[column]
	return ok
}

// Value returns the raw value of column, nil when absent or NULL.
func (r row) Value(column string) any {
	i, ok := r.set.columns[column]
	if !ok {
		return nil
	}
	return r.values[i]
}

// At returns the value at a 0-based position.
func (r row) At(i int) any {
	if i < 0 || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// String returns column as a string, "" when absent or NULL.
func (r row) String(column string) string {
	return asString(r.Value(column))
}

// Int returns column as an integer.
func (r row) Int(column string) (int, bool) {
	return asInt(r.Value(column))
}

func asString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func asInt(v any) (int, bool) {
	switch v := v.(type) {
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case int16:
		return int(v), true
	case int8:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}
