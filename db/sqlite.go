package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/agenttools/tool"
)

const defaultMaxRows = 500

// QueryResult holds the rows of one query, each keyed by column name.
type QueryResult struct {
	Columns      []string         `json:"columns"`
	Rows         []map[string]any `json:"rows"`
	RowCount     int              `json:"row_count"`
	RowsAffected int64            `json:"rows_affected,omitempty"`
	Truncated    bool             `json:"truncated,omitempty"`
}

// QueryOptions controls one query call.
type QueryOptions struct {
	// Args are positional statement parameters.
	Args []any
	// AllowWrite permits statements other than SELECT/PRAGMA/EXPLAIN/WITH.
	AllowWrite bool
	// MaxRows caps returned rows. 0 means the default of 500.
	MaxRows int
}

// readOnlyPrefixes are the statement heads the write gate lets through.
var readOnlyPrefixes = []string{"SELECT", "PRAGMA", "EXPLAIN", "WITH", "SHOW"}

func checkStatement(query string, allowWrite bool) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return tool.Invalidf("query", "must not be empty")
	}
	if allowWrite {
		return nil
	}
	upper := strings.ToUpper(trimmed)
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return nil
		}
	}
	return tool.Invalidf("query", "statement is not read-only; set allow_write to run it")
}

func clampRows(n int) int {
	if n <= 0 {
		return defaultMaxRows
	}
	return n
}

// QuerySQLite runs one statement against a SQLite database file. The
// file must already exist unless AllowWrite is set, so a typoed path
// fails instead of silently creating an empty database.
func QuerySQLite(ctx context.Context, path, query string, opts QueryOptions) (*QueryResult, error) {
	if path == "" {
		return nil, tool.Invalidf("path", "must not be empty")
	}
	if err := checkStatement(query, opts.AllowWrite); err != nil {
		return nil, err
	}
	if path != ":memory:" && !opts.AllowWrite {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer conn.Close()

	if !isQueryStatement(query) {
		res, err := conn.ExecContext(ctx, query, opts.Args...)
		if err != nil {
			return nil, fmt.Errorf("exec: %w", err)
		}
		affected, _ := res.RowsAffected()
		return &QueryResult{Columns: []string{}, Rows: []map[string]any{}, RowsAffected: affected}, nil
	}

	rows, err := conn.QueryContext(ctx, query, opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows, clampRows(opts.MaxRows))
}

// isQueryStatement reports whether the statement produces a row set.
func isQueryStatement(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return strings.Contains(upper, "RETURNING")
}

func scanRows(rows *sql.Rows, maxRows int) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &QueryResult{Columns: columns, Rows: []map[string]any{}}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if len(result.Rows) >= maxRows {
			result.Truncated = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	result.RowCount = len(result.Rows)
	return result, nil
}

// normalizeValue converts driver values into JSON-friendly ones. Byte
// slices become strings rather than base64 blobs.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
