package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/sqlast"
)

var ErrInvalidDocument = errors.New("invalid statement document")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// scope holds the tables column qualifiers are resolved against. Sub-selects
// see the tables of enclosing queries.
type scope struct {
	refs   []sqlast.TableRef
	parent *scope
}

func (s *scope) with(refs ...sqlast.TableRef) *scope {
	return &scope{refs: refs, parent: s}
}

// resolve finds the FROM entry a qualifier names, by alias or by
// [schema.]table. Unknown qualifiers are kept verbatim.
func (s *scope) resolve(qualifier []string) sqlast.Owner {
	if len(qualifier) == 0 {
		return nil
	}
	for sc := s; sc != nil; sc = sc.parent {
		for _, ref := range sc.refs {
			switch t := ref.(type) {
			case *sqlast.Table:
				if len(qualifier) == 1 && (qualifier[0] == t.Alias || qualifier[0] == t.Name) {
					return t
				}
				if len(qualifier) == 2 && qualifier[0] == t.Schema && qualifier[1] == t.Name {
					return t
				}
			case *sqlast.Derived:
				if len(qualifier) == 1 && qualifier[0] == t.Alias {
					return t
				}
			}
		}
	}
	return sqlast.Ref(strings.Join(qualifier, "."))
}

func (s *scope) column(ref string) (*sqlast.Column, error) {
	qualifier, name, err := sqlast.ParseColumnRef(ref)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return &sqlast.Column{Owner: s.resolve(qualifier), Name: name}, nil
}

// Build converts a document into a statement.
func Build(doc *Document) (*Statement, error) {
	set := 0
	for _, present := range []bool{doc.Select != nil, doc.Insert != nil, doc.Update != nil, doc.Delete != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, invalid("expected exactly one of select, insert, update or delete, found %d", set)
	}

	var root *scope
	switch {
	case doc.Select != nil:
		q, err := root.query(doc.Select)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: KindSelect, Select: q}, nil
	case doc.Insert != nil:
		q, err := buildInsert(doc.Insert)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: KindInsert, Insert: q}, nil
	case doc.Update != nil:
		q, err := buildUpdate(doc.Update)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: KindUpdate, Update: q}, nil
	default:
		q, err := buildDelete(doc.Delete)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: KindDelete, Delete: q}, nil
	}
}

func (s *scope) query(doc *Query) (*sqlast.Select, error) {
	q := &sqlast.Select{
		Distinct: doc.Distinct,
		Offset:   doc.Offset,
		Limit:    doc.Limit,
	}

	for _, f := range doc.From {
		ref, err := s.fromEntry(f)
		if err != nil {
			return nil, err
		}
		q.From = append(q.From, ref)
	}
	if len(q.From) == 0 {
		return nil, invalid("select without from")
	}

	inner := s.with(q.From...)
	for _, j := range doc.Joins {
		ref, err := s.fromEntry(j.Table)
		if err != nil {
			return nil, err
		}
		inner.refs = append(inner.refs, ref)
		q.Joins = append(q.Joins, sqlast.Join{Type: strings.ToUpper(j.Type), Table: ref})
	}
	// ON clauses may refer to any joined table.
	for n, j := range doc.Joins {
		if j.On == nil {
			continue
		}
		on, err := inner.where(j.On)
		if err != nil {
			return nil, err
		}
		q.Joins[n].On = on
	}

	var err error
	if q.Items, err = inner.exprs(doc.Columns); err != nil {
		return nil, err
	}
	if q.Where, err = inner.where(doc.Where); err != nil {
		return nil, err
	}
	if q.GroupBy, err = inner.exprs(doc.GroupBy); err != nil {
		return nil, err
	}
	if q.Having, err = inner.where(doc.Having); err != nil {
		return nil, err
	}

	for _, u := range doc.Union {
		if u.Select == nil {
			return nil, invalid("union without select")
		}
		sub, err := s.query(u.Select)
		if err != nil {
			return nil, err
		}
		q.Unions = append(q.Unions, sqlast.Union{All: u.All, Select: sub})
	}

	for _, term := range doc.OrderBy {
		ob, err := inner.orderBy(term)
		if err != nil {
			return nil, err
		}
		q.OrderBy = append(q.OrderBy, ob)
	}

	return q, nil
}

func (s *scope) fromEntry(f FromEntry) (sqlast.TableRef, error) {
	switch {
	case f.Select != nil && f.Table != "":
		return nil, invalid("from entry has both table and select")
	case f.Select != nil:
		if f.As == "" {
			return nil, invalid("derived table without alias")
		}
		sub, err := s.query(f.Select)
		if err != nil {
			return nil, err
		}
		return &sqlast.Derived{Query: sub, Alias: f.As}, nil
	case f.Table != "":
		t, err := sqlast.ParseTableRef(f.Table)
		if err != nil {
			return nil, invalid("%v", err)
		}
		if f.As != "" {
			t.Alias = f.As
		}
		return t, nil
	default:
		return nil, invalid("empty from entry")
	}
}

// orderBy parses "column [ASC|DESC]".
func (s *scope) orderBy(term string) (sqlast.OrderBy, error) {
	ref, dir := strings.TrimSpace(term), "ASC"
	if i := strings.LastIndexByte(ref, ' '); i > 0 {
		switch last := strings.ToUpper(ref[i+1:]); last {
		case "ASC", "DESC":
			ref, dir = strings.TrimSpace(ref[:i]), last
		}
	}
	col, err := s.column(ref)
	if err != nil {
		return sqlast.OrderBy{}, err
	}
	return sqlast.OrderBy{Expr: col, Direction: sqlast.NormalizeDirection(dir)}, nil
}

func (s *scope) exprs(docs []Expr) ([]sqlast.Expr, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]sqlast.Expr, 0, len(docs))
	for _, d := range docs {
		e, err := s.expr(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *scope) expr(d Expr) (sqlast.Expr, error) {
	var (
		e   sqlast.Expr
		err error
		set int
	)
	if d.Column != "" {
		set++
		e, err = s.column(d.Column)
	}
	if d.Raw != "" {
		set++
		e = sqlast.Raw{SQL: d.Raw}
	}
	if d.Param != nil {
		set++
		e = sqlast.Param{Value: d.Param}
	}
	if d.Literal != nil {
		set++
		e = sqlast.Literal{Value: d.Literal}
	}
	if d.Func != "" {
		set++
		e, err = s.function(d)
	}
	if d.Select != nil {
		set++
		e, err = s.query(d.Select)
	}
	if err != nil {
		return nil, err
	}
	if set != 1 {
		return nil, invalid("expression needs exactly one of column, raw, param, literal, func or select")
	}

	if d.As != "" {
		e = sqlast.Aliased{Expr: e, Alias: d.As}
	}
	return e, nil
}

func (s *scope) function(d Expr) (sqlast.Expr, error) {
	f := sqlast.Func{Name: strings.ToUpper(d.Func), Distinct: d.Distinct}
	for _, a := range d.Args {
		// A bare "*" argument is COUNT(*), not a column.
		if a.Column == sqlast.Wildcard {
			f.Args = append(f.Args, sqlast.Raw{SQL: sqlast.Wildcard})
			continue
		}
		arg, err := s.expr(a)
		if err != nil {
			return nil, err
		}
		f.Args = append(f.Args, arg)
	}
	return f, nil
}

func (s *scope) where(doc *WhereDoc) (*sqlast.WhereClause, error) {
	if doc == nil {
		return nil, nil
	}

	w := sqlast.NewWhereClause()
	w.IsNot = doc.Not
	switch op := strings.ToUpper(strings.TrimSpace(doc.Op)); op {
	case "", "AND":
	case "OR":
		w.Operator = op
	default:
		return nil, invalid("unknown logical operator %q", doc.Op)
	}

	for _, c := range doc.Conditions {
		cond, err := s.condition(c)
		if err != nil {
			return nil, err
		}
		w.AddCondition(cond)
	}
	for n := range doc.Groups {
		g, err := s.where(&doc.Groups[n])
		if err != nil {
			return nil, err
		}
		w.AddGroup(g)
	}
	return w, nil
}

func (s *scope) condition(doc ConditionDoc) (sqlast.Condition, error) {
	var c sqlast.Condition

	switch {
	case doc.Column != "" && doc.Left != nil:
		return c, invalid("condition has both column and left")
	case doc.Column != "":
		col, err := s.column(doc.Column)
		if err != nil {
			return c, err
		}
		c.Left = col
	case doc.Left != nil:
		left, err := s.expr(*doc.Left)
		if err != nil {
			return c, err
		}
		c.Left = left
	default:
		return c, invalid("condition without column")
	}

	c.Operator = strings.ToUpper(strings.Join(strings.Fields(doc.Op), " "))
	if c.Operator == "" {
		c.Operator = "="
	}

	switch {
	case doc.Ref != "":
		col, err := s.column(doc.Ref)
		if err != nil {
			return c, err
		}
		c.Value = col
	case doc.Raw != "":
		c.Value = sqlast.Raw{SQL: doc.Raw}
	case doc.Select != nil:
		sub, err := s.query(doc.Select)
		if err != nil {
			return c, err
		}
		c.Value = sub
	default:
		c.Value = doc.Value
	}
	return c, nil
}

func targetTable(ref string) (*sqlast.Table, *scope, error) {
	if ref == "" {
		return nil, nil, invalid("missing table")
	}
	t, err := sqlast.ParseTableRef(ref)
	if err != nil {
		return nil, nil, invalid("%v", err)
	}
	var root *scope
	return t, root.with(t), nil
}

func buildInsert(doc *InsertDoc) (*sqlast.Insert, error) {
	t, s, err := targetTable(doc.Table)
	if err != nil {
		return nil, err
	}

	q := &sqlast.Insert{Table: t}
	for _, name := range doc.Columns {
		col, err := s.column(name)
		if err != nil {
			return nil, err
		}
		q.Columns = append(q.Columns, col)
	}
	for _, v := range doc.Values {
		e, err := s.expr(v.Expr)
		if err != nil {
			return nil, err
		}
		q.Values = append(q.Values, e)
	}
	if doc.Select != nil {
		var root *scope
		if q.Select, err = root.query(doc.Select); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func buildUpdate(doc *UpdateDoc) (*sqlast.Update, error) {
	t, s, err := targetTable(doc.Table)
	if err != nil {
		return nil, err
	}
	if len(doc.Set) == 0 {
		return nil, invalid("update without set")
	}

	q := &sqlast.Update{Table: t}
	for _, a := range doc.Set {
		col, err := s.column(a.Column)
		if err != nil {
			return nil, err
		}
		v, err := s.expr(a.Value.Expr)
		if err != nil {
			return nil, err
		}
		q.Set = append(q.Set, sqlast.Assignment{Column: col, Value: v})
	}
	if q.Where, err = s.where(doc.Where); err != nil {
		return nil, err
	}
	return q, nil
}

func buildDelete(doc *DeleteDoc) (*sqlast.Delete, error) {
	t, s, err := targetTable(doc.Table)
	if err != nil {
		return nil, err
	}

	q := &sqlast.Delete{Table: t}
	if q.Where, err = s.where(doc.Where); err != nil {
		return nil, err
	}
	return q, nil
}
