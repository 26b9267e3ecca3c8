package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/agenttools/tool"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	_, err := QuerySQLite(ctx, path, `CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, age INTEGER)`, QueryOptions{AllowWrite: true})
	require.NoError(t, err)

	res, err := QuerySQLite(ctx, path, `INSERT INTO people (name, age) VALUES ('ada', 36), ('grace', 45), ('alan', 41)`, QueryOptions{AllowWrite: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.RowsAffected)
	return path
}

func TestQuerySQLite(t *testing.T) {
	path := newTestDB(t)
	ctx := context.Background()

	res, err := QuerySQLite(ctx, path, `SELECT name, age FROM people ORDER BY age`, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, res.Columns)
	require.Equal(t, 3, res.RowCount)
	assert.Equal(t, "ada", res.Rows[0]["name"])
	assert.EqualValues(t, 36, res.Rows[0]["age"])
	assert.False(t, res.Truncated)

	t.Run("parameters", func(t *testing.T) {
		res, err := QuerySQLite(ctx, path, `SELECT name FROM people WHERE age > ?`, QueryOptions{Args: []any{40}})
		require.NoError(t, err)
		assert.Equal(t, 2, res.RowCount)
	})

	t.Run("row cap", func(t *testing.T) {
		res, err := QuerySQLite(ctx, path, `SELECT name FROM people`, QueryOptions{MaxRows: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, res.RowCount)
		assert.True(t, res.Truncated)
	})

	t.Run("write gate", func(t *testing.T) {
		_, err := QuerySQLite(ctx, path, `DELETE FROM people`, QueryOptions{})
		assert.ErrorIs(t, err, tool.ErrInvalidInput)

		res, err := QuerySQLite(ctx, path, `DELETE FROM people WHERE name = 'alan'`, QueryOptions{AllowWrite: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.RowsAffected)
	})

	t.Run("missing database file", func(t *testing.T) {
		_, err := QuerySQLite(ctx, filepath.Join(t.TempDir(), "absent.db"), `SELECT 1`, QueryOptions{})
		assert.ErrorIs(t, err, tool.ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := QuerySQLite(ctx, "", `SELECT 1`, QueryOptions{})
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
		_, err = QuerySQLite(ctx, path, "   ", QueryOptions{})
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestCheckStatement(t *testing.T) {
	for _, ok := range []string{"SELECT 1", "select * from t", "  WITH x AS (SELECT 1) SELECT * FROM x", "PRAGMA table_info(t)", "EXPLAIN SELECT 1"} {
		assert.NoError(t, checkStatement(ok, false), "statement %q", ok)
	}
	for _, blocked := range []string{"INSERT INTO t VALUES (1)", "UPDATE t SET a = 1", "DROP TABLE t", "CREATE TABLE t (a)"} {
		assert.ErrorIs(t, checkStatement(blocked, false), tool.ErrInvalidInput, "statement %q", blocked)
		assert.NoError(t, checkStatement(blocked, true), "statement %q with allow_write", blocked)
	}
}

func TestDBTools(t *testing.T) {
	defs := Tools()
	require.Len(t, defs, 3)
	for _, d := range defs {
		assert.Equal(t, Category, d.Category())
		assert.False(t, d.ReadOnly(), "db tools can write when allowed")
	}

	path := newTestDB(t)
	out, err := defs[0].Call(context.Background(), `{"path": "`+path+`", "query": "SELECT count(*) AS n FROM people"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"n":3`)
}
