package db

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "db"

type sqliteParams struct {
	Path       string `json:"path"`
	Query      string `json:"query"`
	Args       []any  `json:"args"`
	AllowWrite bool   `json:"allow_write"`
	MaxRows    int    `json:"max_rows"`
}

type postgresParams struct {
	DSN        string `json:"dsn"`
	Query      string `json:"query"`
	Args       []any  `json:"args"`
	AllowWrite bool   `json:"allow_write"`
	MaxRows    int    `json:"max_rows"`
}

type redisParams struct {
	Addr       string `json:"addr"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	Command    string `json:"command"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Tools returns the database tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		sqliteTool(),
		postgresTool(),
		redisTool(),
	}
}

func sqliteTool() *tool.Definition {
	return tool.New("sqlite_query",
		"Runs one statement against a SQLite database file. Read-only unless allow_write is set.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p sqliteParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return QuerySQLite(ctx, p.Path, p.Query, QueryOptions{
				Args:       p.Args,
				AllowWrite: p.AllowWrite,
				MaxRows:    p.MaxRows,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("sqlite", "sql", "query"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":        tool.StringProp("Path of the SQLite database file, or :memory:."),
			"query":       tool.StringProp("SQL statement. Positional parameters use ?."),
			"args":        tool.ArrayProp("Positional statement parameters.", tool.StringProp("")),
			"allow_write": tool.BoolProp("Permit statements that modify data."),
			"max_rows":    tool.IntProp("Row cap. Defaults to 500."),
		}, "path", "query")),
	)
}

func postgresTool() *tool.Definition {
	return tool.New("postgres_query",
		"Runs one statement against a PostgreSQL server. Read-only unless allow_write is set.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p postgresParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return QueryPostgres(ctx, p.DSN, p.Query, QueryOptions{
				Args:       p.Args,
				AllowWrite: p.AllowWrite,
				MaxRows:    p.MaxRows,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("postgres", "sql", "query"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"dsn":         tool.StringProp("PostgreSQL connection string."),
			"query":       tool.StringProp("SQL statement. Positional parameters use $1, $2, ..."),
			"args":        tool.ArrayProp("Positional statement parameters.", tool.StringProp("")),
			"allow_write": tool.BoolProp("Permit statements that modify data."),
			"max_rows":    tool.IntProp("Row cap. Defaults to 500."),
		}, "dsn", "query")),
	)
}

func redisTool() *tool.Definition {
	return tool.New("redis_command",
		"Runs one whitelisted Redis command: ping, get, set, del, exists, keys, ttl, incr, dbsize.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p redisParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return RedisCommand(ctx, RedisOptions{
				Addr:       p.Addr,
				Password:   p.Password,
				DB:         p.DB,
				TTLSeconds: p.TTLSeconds,
			}, p.Command, p.Key, p.Value)
		},
		tool.WithCategory(Category),
		tool.WithTags("redis", "cache", "kv"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"addr":        tool.StringProp("Redis server address, host:port."),
			"password":    tool.StringProp("Server password, if any."),
			"db":          tool.IntProp("Database number. Defaults to 0."),
			"command":     tool.EnumProp("Command to run.", "ping", "get", "set", "del", "exists", "keys", "ttl", "incr", "dbsize"),
			"key":         tool.StringProp("Key, or pattern for keys."),
			"value":       tool.StringProp("Value for set."),
			"ttl_seconds": tool.IntProp("Expiration for set. 0 means none."),
		}, "addr", "command")),
	)
}
