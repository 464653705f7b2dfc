package sqlast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableRef(t *testing.T) {
	tests := []struct {
		input string
		want  Table
	}{
		{"orders", Table{Name: "orders"}},
		{"app.orders", Table{Schema: "app", Name: "orders"}},
		{"app.orders o", Table{Schema: "app", Name: "orders", Alias: "o"}},
		{"app.orders AS o", Table{Schema: "app", Name: "orders", Alias: "o"}},
		{"orders as o", Table{Name: "orders", Alias: "o"}},
		{`"My Schema"."order ""lines""" ol`, Table{Schema: "My Schema", Name: `order "lines"`, Alias: "ol"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTableRef(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseTableRefErrors(t *testing.T) {
	for _, input := range []string{"", "a.b.c", "orders o extra", `"unterminated`} {
		_, err := ParseTableRef(input)
		assert.Error(t, err, input)
	}
}

func TestParseColumnRef(t *testing.T) {
	qualifier, name, err := ParseColumnRef("o.id")
	require.NoError(t, err)
	assert.Equal(t, []string{"o"}, qualifier)
	assert.Equal(t, "id", name)

	qualifier, name, err = ParseColumnRef(`app."Orders".*`)
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "Orders"}, qualifier)
	assert.Equal(t, "*", name)

	qualifier, name, err = ParseColumnRef("total")
	require.NoError(t, err)
	assert.Empty(t, qualifier)
	assert.Equal(t, "total", name)

	_, _, err = ParseColumnRef("*.id")
	assert.Error(t, err)
}

func TestTableString(t *testing.T) {
	assert.Equal(t, "orders", NewTable("", "orders", "o").String())
	assert.Equal(t, "app.orders", NewTable("app", "orders", "").String())
	assert.Equal(t, "o", NewTable("app", "orders", "o").QualifierAlias())
	assert.True(t, Star(Ref("x")).IsWildcard())
}

func TestWhereClause(t *testing.T) {
	var nilClause *WhereClause
	assert.True(t, nilClause.IsEmpty())

	w := NewWhereClause()
	assert.True(t, w.IsEmpty())
	w.AddCondition(Eq(&Column{Name: "id"}, 1))
	assert.False(t, w.IsEmpty())
	assert.Equal(t, "AND", w.Operator)

	assert.Equal(t, "DESC", NormalizeDirection(" desc"))
	assert.Equal(t, "ASC", NormalizeDirection("sideways"))
}
