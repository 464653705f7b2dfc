package commands

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ingres-go/internal/config"
	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/ui"
)

var catalog = []string{
	`CREATE TABLE iitables (table_name TEXT, table_owner TEXT, table_type TEXT, system_use TEXT)`,
	`CREATE TABLE iicolumns (table_name TEXT, table_owner TEXT, column_name TEXT, column_datatype TEXT,
		column_ingdatatype INTEGER, column_length INTEGER, column_scale INTEGER, column_nulls TEXT,
		column_has_default TEXT, column_default_val TEXT, column_sequence INTEGER, column_bydefault_ident TEXT)`,
	`CREATE TABLE iikeys (schema_name TEXT, table_name TEXT, column_name TEXT, key_position INTEGER, constraint_name TEXT)`,
	`CREATE TABLE iiconstraints (schema_name TEXT, table_name TEXT, constraint_name TEXT, constraint_type TEXT)`,
	`CREATE TABLE iiref_constraints (ref_constraint_name TEXT, unique_constraint_name TEXT)`,
	`CREATE TABLE iiindexes (base_owner TEXT, base_name TEXT, unique_rule TEXT, index_owner TEXT, index_name TEXT)`,
	`CREATE TABLE iiindex_columns (index_owner TEXT, index_name TEXT, key_sequence INTEGER, column_name TEXT, sort_direction TEXT)`,
	`CREATE TABLE iiprocedures (procedure_name TEXT, procedure_owner TEXT)`,
	`CREATE TABLE iiproc_params (procedure_name TEXT, procedure_owner TEXT, param_name TEXT, param_sequence INTEGER,
		param_datatype_code INTEGER, param_length INTEGER, param_input TEXT, param_output TEXT, param_inout TEXT)`,
	`CREATE TABLE iiproc_rescols (procedure_name TEXT, rescol_name TEXT, rescol_sequence INTEGER,
		rescol_datatype_code INTEGER, rescol_length INTEGER)`,

	`INSERT INTO iitables VALUES
		('customers', 'shop', 'T', 'U'),
		('orders', 'shop', 'T', 'U'),
		('open_orders', 'shop', 'V', 'U')`,
	`INSERT INTO iicolumns VALUES
		('customers', 'shop', 'id', 'INTEGER', 30, 4, 0, 'N', 'N', NULL, 1, 'Y'),
		('orders', 'shop', 'id', 'INTEGER', 30, 8, 0, 'N', 'N', NULL, 1, 'Y'),
		('orders', 'shop', 'customer', 'INTEGER', 30, 4, 0, 'N', 'N', NULL, 2, 'N'),
		('orders', 'shop', 'status', 'CHAR', 20, 8, 0, 'N', 'Y', '''new''', 3, 'N'),
		('open_orders', 'shop', 'id', 'INTEGER', 30, 8, 0, 'N', 'N', NULL, 1, 'N')`,
	`INSERT INTO iiconstraints VALUES
		('shop', 'customers', 'customers_pk', 'P'),
		('shop', 'orders', 'orders_pk', 'P'),
		('shop', 'orders', 'orders_customer_fk', 'R')`,
	`INSERT INTO iikeys VALUES
		('shop', 'customers', 'id', 1, 'customers_pk'),
		('shop', 'orders', 'id', 1, 'orders_pk'),
		('shop', 'orders', 'customer', 1, 'orders_customer_fk')`,
	`INSERT INTO iiref_constraints VALUES ('orders_customer_fk', 'customers_pk')`,
	`INSERT INTO iiprocedures VALUES ('next_order_id', 'shop')`,
	`INSERT INTO iiproc_rescols VALUES ('next_order_id', 'result_column1', 1, 30, 8)`,
}

// setup isolates configuration and output, and returns the path of a
// SQLite database laid out like the Ingres catalogs.
func setup(t *testing.T) (afero.Fs, string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	prevFs := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = prevFs })

	t.Setenv("HOME", "/home/tester")
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range catalog {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return fs, path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	prevOut, prevErr := ui.Out, ui.Err
	ui.Out, ui.Err = &out, io.Discard
	t.Cleanup(func() { ui.Out, ui.Err = prevOut, prevErr })

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func connArgs(path string, args ...string) []string {
	return append(args, "--driver", "sqlite3", "--dsn", path, "--user", "shop", "--host", "local", "--database", "shop")
}

func TestTablesCommand(t *testing.T) {
	_, path := setup(t)

	out, err := execute(t, connArgs(path, "tables")...)
	require.NoError(t, err)
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "open_orders")
	assert.Contains(t, out, "VIEW")

	out, err = execute(t, connArgs(path, "tables", "--views")...)
	require.NoError(t, err)
	assert.Contains(t, out, "open_orders")
	assert.NotContains(t, out, "customers")
}

func TestDescribeCommand(t *testing.T) {
	_, path := setup(t)

	out, err := execute(t, connArgs(path, "describe", "orders")...)
	require.NoError(t, err)
	assert.Contains(t, out, "SHOP.orders")
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "CHAR")
	assert.Contains(t, out, "orders_pk")
	assert.NotContains(t, out, "customers_pk")

	out, err = execute(t, connArgs(path, "describe", "--markdown", "--no-indexes", "ORDERS")...)
	require.NoError(t, err)
	assert.Contains(t, out, "status")
	assert.NotContains(t, out, "orders_pk")

	_, err = execute(t, connArgs(path, "describe", "orders", "missing")...)
	assert.EqualError(t, err, "unknown table: missing")
}

func TestRelationsAndProceduresCommands(t *testing.T) {
	_, path := setup(t)

	out, err := execute(t, connArgs(path, "relations")...)
	require.NoError(t, err)
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "customer")

	out, err = execute(t, connArgs(path, "procedures")...)
	require.NoError(t, err)
	assert.Contains(t, out, "next_order_id")
	assert.Contains(t, out, "BIGINT")
}

func TestConnectionFailure(t *testing.T) {
	setup(t)

	_, err := execute(t, connArgs("file:/nonexistent/dir/catalog.db?mode=ro", "tables")...)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConnectionFailed)
}

func TestRenderCommand(t *testing.T) {
	fs, _ := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/work/q.yaml", []byte(`
select:
  columns: [o.id]
  from: [shop.orders o]
  where: {conditions: [{column: o.status, value: new}, {column: o.id, op: ">", value: 10}]}
  offset: 20
  limit: 10
---
delete: {table: shop.orders}
`), 0644))

	out, err := execute(t, "render", "/work/q.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `SELECT "o"."id" FROM "shop"."orders" "o" WHERE "o"."status" = ? AND "o"."id" > ? OFFSET 20 FETCH FIRST 10 ROWS ONLY`)
	assert.Contains(t, out, `$1 = "new"`)
	assert.Contains(t, out, `$2 = 10`)
	assert.Contains(t, out, `DELETE FROM "shop"."orders"`)

	out, err = execute(t, "render", "--numbered", "/work/q.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `WHERE "o"."status" = $1 AND "o"."id" > $2`)

	t.Setenv("INGRES_GO_DELIMIT_IDENTIFIERS", "false")
	out, err = execute(t, "render", "/work/q.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `SELECT o.id FROM shop.orders o`)

	_, err = execute(t, "render", "/work/missing.yaml")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	fs, _ := setup(t)

	out, err := execute(t, "config", "show", "--host", "db1", "--database", "shop", "--password", "hunter2")
	require.NoError(t, err)
	assert.Contains(t, out, "ingres://db1:21071/shop")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")

	out, err = execute(t, "config", "save", "--host", "db1", "--database", "shop", "--password", "hunter2")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration saved")

	data, err := afero.ReadFile(fs, "/home/tester/.config/ingres-go/.ingres-go.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "host: db1")
	assert.NotContains(t, string(data), "hunter2")
}

func TestVersionCommand(t *testing.T) {
	setup(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ingres version dev")
}
