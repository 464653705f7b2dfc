package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ingres-go/internal/core/sqlast"
)

func TestRowLimit(t *testing.T) {
	a := New()

	tests := []struct {
		name   string
		offset *int
		limit  *int
		want   string
	}{
		{"offset and limit", sqlast.Int(20), sqlast.Int(10), "OFFSET 20 FETCH FIRST 10 ROWS ONLY"},
		{"limit only", nil, sqlast.Int(10), "FETCH FIRST 10 ROWS ONLY"},
		{"offset only", sqlast.Int(20), nil, "OFFSET 20"},
		{"neither", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.RowLimit(tt.offset, tt.limit))

			q, err := a.Select(&sqlast.Select{
				From:   []sqlast.TableRef{sqlast.NewTable("", "orders", "")},
				Offset: tt.offset,
				Limit:  tt.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(`SELECT * FROM "orders" `+tt.want), q.SQL)
		})
	}
}

func TestTableIdentifier(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("app", "orders", "o")

	got, err := a.TableIdentifier(orders, 0)
	require.NoError(t, err)
	assert.Equal(t, `"app"."orders" "o"`, got)

	got, err = a.TableIdentifier(orders, OmitAlias)
	require.NoError(t, err)
	assert.Equal(t, `"app"."orders"`, got)

	got, err = a.TableIdentifier(sqlast.NewTable("", "orders", ""), 0)
	require.NoError(t, err)
	assert.Equal(t, `"orders"`, got)

	got, err = New(WithDelimitIdentifiers(false)).TableIdentifier(orders, 0)
	require.NoError(t, err)
	assert.Equal(t, `app.orders o`, got)
}

func TestTableIdentifierMalformed(t *testing.T) {
	a := New()

	_, err := a.TableIdentifier(nil, 0)
	assert.ErrorIs(t, err, ErrMalformedStatement)

	_, err = a.TableIdentifier(&sqlast.Table{Schema: "app"}, 0)
	assert.ErrorIs(t, err, ErrMalformedStatement)
}

func TestColumn(t *testing.T) {
	a := New()
	aliased := sqlast.NewTable("app", "orders", "o")
	plain := sqlast.NewTable("app", "orders", "")

	tests := []struct {
		name   string
		column *sqlast.Column
		flags  Flags
		want   string
	}{
		{"by alias", aliased.Col("id"), 0, `"o"."id"`},
		{"by table when requested", aliased.Col("id"), QualifyByTable, `"app"."orders"."id"`},
		{"by table without alias", plain.Col("id"), 0, `"app"."orders"."id"`},
		{"unqualified", aliased.Col("id"), Unqualified, `"id"`},
		{"no owner", &sqlast.Column{Name: "id"}, 0, `"id"`},
		{"wildcard", sqlast.Star(aliased), 0, `"o".*`},
		{"bare wildcard", &sqlast.Column{Name: "*"}, 0, `*`},
		{"free qualifier", &sqlast.Column{Owner: sqlast.Ref("session.tmp"), Name: "x"}, 0, `session.tmp."x"`},
		{"derived owner", (&sqlast.Derived{Alias: "d"}).Col("n"), 0, `"d"."n"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Column(tt.column, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := a.Column(nil, 0)
	assert.ErrorIs(t, err, ErrMalformedStatement)
}

func TestIdentifierRoundTrip(t *testing.T) {
	a := New()
	names := []string{"orders", "Order Lines", `say "hi"`, `"`, `""x""`, "weird.name", "ümlaut"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			quoted := a.Quote(name)
			assert.Equal(t, 0, strings.Count(quoted, `"`)%2, "odd delimiter count in %s", quoted)
			assert.Equal(t, name, a.Unquote(quoted))

			id, err := a.TableIdentifier(&sqlast.Table{Name: name}, 0)
			require.NoError(t, err)
			assert.Equal(t, 0, strings.Count(id, `"`)%2)
		})
	}
}

func TestSelect(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("app", "orders", "o")
	customers := sqlast.NewTable("app", "customers", "c")

	where := sqlast.Where(
		sqlast.Eq(orders.Col("status"), "open"),
		sqlast.Condition{Left: orders.Col("total"), Operator: ">", Value: 100},
	)
	either := sqlast.NewWhereClause()
	either.Operator = "OR"
	either.AddCondition(sqlast.Condition{Left: customers.Col("region"), Operator: "IN", Value: []interface{}{"EU", "US"}})
	either.AddCondition(sqlast.Condition{Left: customers.Col("region"), Operator: "IS NULL"})
	where.AddGroup(either)

	q, err := a.Select(&sqlast.Select{
		Distinct: true,
		Items: []sqlast.Expr{
			orders.Col("id"),
			sqlast.Aliased{Expr: customers.Col("name"), Alias: "customer"},
		},
		From: []sqlast.TableRef{orders},
		Joins: []sqlast.Join{{
			Type:  "left",
			Table: customers,
			On:    sqlast.Where(sqlast.Eq(orders.Col("customer_id"), customers.Col("id"))),
		}},
		Where:   where,
		OrderBy: []sqlast.OrderBy{{Expr: orders.Col("id"), Direction: "desc"}},
		Offset:  sqlast.Int(5),
		Limit:   sqlast.Int(10),
	})
	require.NoError(t, err)

	assert.Equal(t, `SELECT DISTINCT "o"."id", "c"."name" AS "customer" FROM "app"."orders" "o" `+
		`LEFT JOIN "app"."customers" "c" ON "o"."customer_id" = "c"."id" `+
		`WHERE "o"."status" = ? AND "o"."total" > ? AND ("c"."region" IN (?, ?) OR "c"."region" IS NULL) `+
		`ORDER BY "o"."id" DESC OFFSET 5 FETCH FIRST 10 ROWS ONLY`, q.SQL)
	assert.Equal(t, []interface{}{"open", 100, "EU", "US"}, q.Args)
}

func TestSelectGroupingAndUnion(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("", "orders", "")
	archive := sqlast.NewTable("", "orders_archive", "")

	having := sqlast.Where(sqlast.Condition{
		Left:     sqlast.Func{Name: "count", Args: []sqlast.Expr{sqlast.Raw{SQL: "*"}}},
		Operator: ">",
		Value:    sqlast.Literal{Value: 1},
	})

	q, err := a.Select(&sqlast.Select{
		Items:   []sqlast.Expr{orders.Col("status"), sqlast.Func{Name: "count", Args: []sqlast.Expr{sqlast.Raw{SQL: "*"}}}},
		From:    []sqlast.TableRef{orders},
		GroupBy: []sqlast.Expr{orders.Col("status")},
		Having:  having,
		Unions: []sqlast.Union{{All: true, Select: &sqlast.Select{
			Items:   []sqlast.Expr{archive.Col("status"), sqlast.Literal{Value: 0}},
			From:    []sqlast.TableRef{archive},
			GroupBy: []sqlast.Expr{archive.Col("status")},
		}}},
		Limit: sqlast.Int(3),
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "orders"."status", COUNT(*) FROM "orders" GROUP BY "orders"."status" HAVING COUNT(*) > 1 `+
		`UNION ALL SELECT "orders_archive"."status", 0 FROM "orders_archive" GROUP BY "orders_archive"."status" `+
		`FETCH FIRST 3 ROWS ONLY`, q.SQL)
	assert.Empty(t, q.Args)
}

func TestSelectDerivedTable(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("", "orders", "")
	recent := &sqlast.Derived{
		Alias: "r",
		Query: &sqlast.Select{
			Items: []sqlast.Expr{orders.Col("id")},
			From:  []sqlast.TableRef{orders},
			Where: sqlast.Where(sqlast.Condition{Left: orders.Col("placed"), Operator: ">=", Value: sqlast.Param{Value: "2024-01-01"}}),
		},
	}

	q, err := a.Select(&sqlast.Select{
		Items: []sqlast.Expr{sqlast.Star(recent)},
		From:  []sqlast.TableRef{recent},
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "r".* FROM (SELECT "orders"."id" FROM "orders" WHERE "orders"."placed" >= ?) "r"`, q.SQL)
	assert.Equal(t, []interface{}{"2024-01-01"}, q.Args)
}

func TestSelectMalformed(t *testing.T) {
	a := New()

	_, err := a.Select(nil)
	assert.ErrorIs(t, err, ErrMalformedStatement)

	_, err = a.Select(&sqlast.Select{Items: []sqlast.Expr{nil}})
	assert.ErrorIs(t, err, ErrMalformedStatement)

	_, err = a.Select(&sqlast.Select{
		From:  []sqlast.TableRef{sqlast.NewTable("", "t", "")},
		Where: sqlast.Where(sqlast.Condition{Left: &sqlast.Column{Name: "a"}, Operator: "~"}),
	})
	assert.ErrorIs(t, err, ErrMalformedStatement)

	_, err = a.Select(&sqlast.Select{
		Joins: []sqlast.Join{{Table: sqlast.NewTable("", "t", "")}},
	})
	assert.ErrorIs(t, err, ErrMalformedStatement)
}

func TestInsert(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("app", "orders", "o")
	staged := sqlast.NewTable("app", "staged", "s")

	q, err := a.Insert(&sqlast.Insert{
		Table:   orders,
		Columns: []*sqlast.Column{orders.Col("id"), orders.Col("status")},
		Values:  []sqlast.Expr{sqlast.Param{Value: 7}, sqlast.Literal{Value: "it's open"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "app"."orders" ("id", "status") VALUES (?, 'it''s open')`, q.SQL)
	assert.Equal(t, []interface{}{7}, q.Args)

	q, err = a.Insert(&sqlast.Insert{
		Table:   orders,
		Columns: []*sqlast.Column{orders.Col("id")},
		Select: &sqlast.Select{
			Items: []sqlast.Expr{staged.Col("id")},
			From:  []sqlast.TableRef{staged},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "app"."orders" ("id") SELECT "s"."id" FROM "app"."staged" "s"`, q.SQL)

	q, err = a.Insert(&sqlast.Insert{Table: orders})
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "app"."orders" DEFAULT VALUES`, q.SQL)

	_, err = a.Insert(&sqlast.Insert{
		Table:  orders,
		Values: []sqlast.Expr{sqlast.Param{Value: 1}},
		Select: &sqlast.Select{},
	})
	assert.ErrorIs(t, err, ErrMalformedStatement)

	_, err = a.Insert(&sqlast.Insert{})
	assert.ErrorIs(t, err, ErrMalformedStatement)
}

func TestUpdateAndDelete(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("app", "orders", "o")

	q, err := a.Update(&sqlast.Update{
		Table: orders,
		Set:   []sqlast.Assignment{{Column: orders.Col("status"), Value: sqlast.Param{Value: "closed"}}},
		Where: sqlast.Where(sqlast.Eq(orders.Col("id"), 3)),
	})
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "app"."orders" SET "status" = ? WHERE "id" = ?`, q.SQL)
	assert.Equal(t, []interface{}{"closed", 3}, q.Args)

	q, err = a.Delete(&sqlast.Delete{Table: orders, Where: sqlast.Where(sqlast.Eq(orders.Col("id"), 3))})
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "app"."orders" WHERE "id" = ?`, q.SQL)

	_, err = a.Update(&sqlast.Update{Table: orders})
	assert.ErrorIs(t, err, ErrMalformedStatement)
}

func TestEmptyInList(t *testing.T) {
	a := New()
	orders := sqlast.NewTable("", "orders", "")
	in := func(op string) sqlast.Condition {
		return sqlast.Condition{Left: orders.Col("id"), Operator: op, Value: []interface{}{}}
	}

	tests := []struct {
		name  string
		where *sqlast.WhereClause
		sql   string
		args  []interface{}
	}{
		{"in only", sqlast.Where(in("IN")), `DELETE FROM "orders" WHERE 1=0`, nil},
		{"not in only", sqlast.Where(in("NOT IN")), `DELETE FROM "orders" WHERE 1=1`, nil},
		{
			"in with sibling",
			sqlast.Where(sqlast.Eq(orders.Col("status"), "open"), in("IN")),
			`DELETE FROM "orders" WHERE "status" = ? AND 1=0`,
			[]interface{}{"open"},
		},
		{
			"not in with sibling",
			sqlast.Where(sqlast.Eq(orders.Col("status"), "open"), in("not in")),
			`DELETE FROM "orders" WHERE "status" = ? AND 1=1`,
			[]interface{}{"open"},
		},
		{"empty group", &sqlast.WhereClause{Groups: []*sqlast.WhereClause{sqlast.NewWhereClause()}}, `DELETE FROM "orders"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := a.Delete(&sqlast.Delete{Table: orders, Where: tt.where})
			require.NoError(t, err)
			assert.Equal(t, tt.sql, q.SQL)
			assert.Equal(t, tt.args, q.Args)
		})
	}

	q, err := a.Select(&sqlast.Select{
		From:  []sqlast.TableRef{orders},
		Where: sqlast.Where(in("IN")),
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "orders" WHERE 1=0`, q.SQL)
}

func TestPlaceholderOption(t *testing.T) {
	a := New(WithPlaceholder(func(n int) string { return "$" + string(rune('0'+n)) }), WithDelimiter('`'))

	q, err := a.Select(&sqlast.Select{
		From:  []sqlast.TableRef{sqlast.NewTable("", "t", "")},
		Where: sqlast.Where(sqlast.Eq(&sqlast.Column{Name: "a"}, 1), sqlast.Eq(&sqlast.Column{Name: "b"}, 2)),
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE `a` = $1 AND `b` = $2", q.SQL)
}
