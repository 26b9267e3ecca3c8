package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallnest/agenttools/tool"
)

// Querier is the slice of a pgx pool these tools need. Both *pgxpool.Pool
// and pgxmock satisfy it, so tests run without a server.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// QueryPostgres connects to a PostgreSQL DSN, runs one statement and
// closes the pool before returning.
func QueryPostgres(ctx context.Context, dsn, query string, opts QueryOptions) (*QueryResult, error) {
	if dsn == "" {
		return nil, tool.Invalidf("dsn", "must not be empty")
	}
	if err := checkStatement(query, opts.AllowWrite); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	return queryPG(ctx, pool, query, opts)
}

// QueryPostgresWith runs one statement over an existing connection
// surface. Tests hand it a pgxmock pool.
func QueryPostgresWith(ctx context.Context, q Querier, query string, opts QueryOptions) (*QueryResult, error) {
	if err := checkStatement(query, opts.AllowWrite); err != nil {
		return nil, err
	}
	return queryPG(ctx, q, query, opts)
}

func queryPG(ctx context.Context, q Querier, query string, opts QueryOptions) (*QueryResult, error) {
	if !isQueryStatement(query) {
		tag, err := q.Exec(ctx, query, opts.Args...)
		if err != nil {
			return nil, fmt.Errorf("exec: %w", err)
		}
		return &QueryResult{Columns: []string{}, Rows: []map[string]any{}, RowsAffected: tag.RowsAffected()}, nil
	}

	rows, err := q.Query(ctx, query, opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	maxRows := clampRows(opts.MaxRows)
	result := &QueryResult{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		if len(result.Rows) >= maxRows {
			result.Truncated = true
			break
		}
		values, err := rows.Values()
		if err != nil {
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
