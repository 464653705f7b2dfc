package assembler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/sqlast"
)

// renderer accumulates bind arguments while a statement is rendered.
type renderer struct {
	a    *Assembler
	args []interface{}
}

func (r *renderer) bind(v interface{}) string {
	r.args = append(r.args, v)
	return r.a.placeholder(len(r.args))
}

// Select renders a SELECT statement including unions and the row limit.
func (a *Assembler) Select(q *sqlast.Select) (*Query, error) {
	r := &renderer{a: a}
	sql, err := r.selectStmt(q)
	if err != nil {
		return nil, err
	}
	return &Query{SQL: sql, Args: r.args}, nil
}

// Insert renders an INSERT statement.
func (a *Assembler) Insert(q *sqlast.Insert) (*Query, error) {
	if q == nil {
		return nil, malformed("nil insert")
	}
	if q.Select != nil && len(q.Values) > 0 {
		return nil, malformed("insert with both values and select")
	}

	r := &renderer{a: a}
	table, err := a.TableIdentifier(q.Table, OmitAlias)
	if err != nil {
		return nil, fmt.Errorf("insert target: %w", err)
	}

	parts := []string{"INSERT INTO", table}

	if len(q.Columns) > 0 {
		cols := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			if cols[i], err = a.Column(c, Unqualified); err != nil {
				return nil, fmt.Errorf("insert column %d: %w", i, err)
			}
		}
		parts = append(parts, "("+strings.Join(cols, ", ")+")")
	}

	switch {
	case q.Select != nil:
		sub, err := r.selectStmt(q.Select)
		if err != nil {
			return nil, fmt.Errorf("insert select: %w", err)
		}
		parts = append(parts, sub)
	case len(q.Values) > 0:
		vals, err := r.exprList(q.Values, 0)
		if err != nil {
			return nil, fmt.Errorf("insert values: %w", err)
		}
		parts = append(parts, "VALUES ("+vals+")")
	default:
		parts = append(parts, "DEFAULT VALUES")
	}

	return &Query{SQL: strings.Join(parts, " "), Args: r.args}, nil
}

// Update renders an UPDATE statement. Columns are rendered unqualified.
func (a *Assembler) Update(q *sqlast.Update) (*Query, error) {
	if q == nil {
		return nil, malformed("nil update")
	}
	if len(q.Set) == 0 {
		return nil, malformed("update without assignments")
	}

	r := &renderer{a: a}
	table, err := a.TableIdentifier(q.Table, OmitAlias)
	if err != nil {
		return nil, fmt.Errorf("update target: %w", err)
	}

	sets := make([]string, len(q.Set))
	for i, s := range q.Set {
		col, err := a.Column(s.Column, Unqualified)
		if err != nil {
			return nil, fmt.Errorf("update assignment %d: %w", i, err)
		}
		val, err := r.expr(s.Value, Unqualified)
		if err != nil {
			return nil, fmt.Errorf("update assignment %d: %w", i, err)
		}
		sets[i] = col + " = " + val
	}

	parts := []string{"UPDATE", table, "SET", strings.Join(sets, ", ")}
	if !q.Where.IsEmpty() {
		where, err := r.where(q.Where, Unqualified)
		if err != nil {
			return nil, err
		}
		if where != "" {
			parts = append(parts, "WHERE", where)
		}
	}

	return &Query{SQL: strings.Join(parts, " "), Args: r.args}, nil
}

// Delete renders a DELETE statement. Columns are rendered unqualified.
func (a *Assembler) Delete(q *sqlast.Delete) (*Query, error) {
	if q == nil {
		return nil, malformed("nil delete")
	}

	r := &renderer{a: a}
	table, err := a.TableIdentifier(q.Table, OmitAlias)
	if err != nil {
		return nil, fmt.Errorf("delete target: %w", err)
	}

	parts := []string{"DELETE FROM", table}
	if !q.Where.IsEmpty() {
		where, err := r.where(q.Where, Unqualified)
		if err != nil {
			return nil, err
		}
		if where != "" {
			parts = append(parts, "WHERE", where)
		}
	}

	return &Query{SQL: strings.Join(parts, " "), Args: r.args}, nil
}

func (r *renderer) selectStmt(q *sqlast.Select) (string, error) {
	if q == nil {
		return "", malformed("nil select")
	}

	parts := []string{"SELECT"}
	if q.Distinct {
		parts = append(parts, "DISTINCT")
	}

	if len(q.Items) == 0 {
		parts = append(parts, sqlast.Wildcard)
	} else {
		items, err := r.exprList(q.Items, 0)
		if err != nil {
			return "", fmt.Errorf("select list: %w", err)
		}
		parts = append(parts, items)
	}

	if len(q.From) > 0 {
		from := make([]string, len(q.From))
		for i, t := range q.From {
			s, err := r.tableRef(t)
			if err != nil {
				return "", fmt.Errorf("from %d: %w", i, err)
			}
			from[i] = s
		}
		parts = append(parts, "FROM", strings.Join(from, ", "))
	}

	for i, j := range q.Joins {
		s, err := r.join(j)
		if err != nil {
			return "", fmt.Errorf("join %d: %w", i, err)
		}
		parts = append(parts, s)
	}

	if !q.Where.IsEmpty() {
		where, err := r.where(q.Where, 0)
		if err != nil {
			return "", err
		}
		if where != "" {
			parts = append(parts, "WHERE", where)
		}
	}

	if len(q.GroupBy) > 0 {
		group, err := r.exprList(q.GroupBy, 0)
		if err != nil {
			return "", fmt.Errorf("group by: %w", err)
		}
		parts = append(parts, "GROUP BY", group)
	}

	if !q.Having.IsEmpty() {
		having, err := r.where(q.Having, 0)
		if err != nil {
			return "", err
		}
		if having != "" {
			parts = append(parts, "HAVING", having)
		}
	}

	for i, u := range q.Unions {
		sub, err := r.selectStmt(u.Select)
		if err != nil {
			return "", fmt.Errorf("union %d: %w", i, err)
		}
		keyword := "UNION"
		if u.All {
			keyword = "UNION ALL"
		}
		parts = append(parts, keyword, sub)
	}

	if len(q.OrderBy) > 0 {
		order := make([]string, len(q.OrderBy))
		for i, ob := range q.OrderBy {
			s, err := r.expr(ob.Expr, 0)
			if err != nil {
				return "", fmt.Errorf("order by %d: %w", i, err)
			}
			order[i] = s + " " + sqlast.NormalizeDirection(ob.Direction)
		}
		parts = append(parts, "ORDER BY", strings.Join(order, ", "))
	}

	if limit := r.a.RowLimit(q.Offset, q.Limit); limit != "" {
		parts = append(parts, limit)
	}

	return strings.Join(parts, " "), nil
}

func (r *renderer) tableRef(t sqlast.TableRef) (string, error) {
	switch t := t.(type) {
	case *sqlast.Table:
		return r.a.TableIdentifier(t, 0)
	case *sqlast.Derived:
		if t.Alias == "" {
			return "", malformed("derived table without alias")
		}
		sub, err := r.selectStmt(t.Query)
		if err != nil {
			return "", err
		}
		return "(" + sub + ") " + r.a.Quote(t.Alias), nil
	case nil:
		return "", malformed("nil table reference")
	default:
		return "", malformed("unsupported table reference %T", t)
	}
}

func (r *renderer) join(j sqlast.Join) (string, error) {
	table, err := r.tableRef(j.Table)
	if err != nil {
		return "", err
	}

	kind := strings.ToUpper(strings.TrimSpace(j.Type))
	switch kind {
	case "":
		kind = "INNER"
	case "INNER", "LEFT", "RIGHT", "FULL", "CROSS":
	default:
		return "", malformed("unsupported join type %q", j.Type)
	}

	if kind == "CROSS" {
		return "CROSS JOIN " + table, nil
	}
	if j.On.IsEmpty() {
		return "", malformed("%s join without condition", strings.ToLower(kind))
	}
	on, err := r.where(j.On, 0)
	if err != nil {
		return "", err
	}
	if on == "" {
		return "", malformed("%s join without condition", strings.ToLower(kind))
	}
	return fmt.Sprintf("%s JOIN %s ON %s", kind, table, on), nil
}

func (r *renderer) exprList(list []sqlast.Expr, flags Flags) (string, error) {
	out := make([]string, len(list))
	for i, e := range list {
		s, err := r.expr(e, flags)
		if err != nil {
			return "", err
		}
		out[i] = s
	}
	return strings.Join(out, ", "), nil
}

func (r *renderer) expr(e sqlast.Expr, flags Flags) (string, error) {
	switch e := e.(type) {
	case *sqlast.Column:
		return r.a.Column(e, flags)
	case sqlast.Raw:
		return e.SQL, nil
	case *sqlast.Raw:
		return e.SQL, nil
	case sqlast.Param:
		return r.bind(e.Value), nil
	case *sqlast.Param:
		return r.bind(e.Value), nil
	case sqlast.Literal:
		return literal(e.Value), nil
	case *sqlast.Literal:
		return literal(e.Value), nil
	case sqlast.Aliased:
		return r.aliased(e, flags)
	case *sqlast.Aliased:
		return r.aliased(*e, flags)
	case sqlast.Func:
		return r.function(e, flags)
	case *sqlast.Func:
		return r.function(*e, flags)
	case *sqlast.Select:
		sub, err := r.selectStmt(e)
		if err != nil {
			return "", err
		}
		return "(" + sub + ")", nil
	case nil:
		return "", malformed("nil expression")
	default:
		return "", malformed("unsupported expression %T", e)
	}
}

func (r *renderer) aliased(e sqlast.Aliased, flags Flags) (string, error) {
	s, err := r.expr(e.Expr, flags)
	if err != nil {
		return "", err
	}
	if e.Alias == "" {
		return s, nil
	}
	return s + " AS " + r.a.Quote(e.Alias), nil
}

func (r *renderer) function(f sqlast.Func, flags Flags) (string, error) {
	if f.Name == "" {
		return "", malformed("function without name")
	}
	args, err := r.exprList(f.Args, flags)
	if err != nil {
		return "", fmt.Errorf("%s arguments: %w", f.Name, err)
	}
	if f.Distinct {
		args = "DISTINCT " + args
	}
	return strings.ToUpper(f.Name) + "(" + args + ")", nil
}

// literal renders a constant inline. Strings are quoted with embedded
// quotes doubled.
func literal(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(v), "'", "''") + "'"
	}
}
