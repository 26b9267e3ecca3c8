package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/agenttools/tool"
)

// RedisOptions names the server and the command to run against it.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTLSeconds applies to set. 0 means no expiration.
	TTLSeconds int
}

// RedisResult is the outcome of one Redis command.
type RedisResult struct {
	Command string   `json:"command"`
	Found   bool     `json:"found"`
	Value   string   `json:"value,omitempty"`
	Values  []string `json:"values,omitempty"`
	Number  int64    `json:"number,omitempty"`
}

// redisCommands is the whitelist. Anything else is rejected before a
// connection is opened.
var redisCommands = map[string]bool{
	"ping": true, "get": true, "set": true, "del": true,
	"exists": true, "keys": true, "ttl": true, "incr": true,
	"dbsize": true,
}

// RedisCommand runs one whitelisted command against a Redis server and
// closes the client before returning.
func RedisCommand(ctx context.Context, opts RedisOptions, command, key, value string) (*RedisResult, error) {
	if opts.Addr == "" {
		return nil, tool.Invalidf("addr", "must not be empty")
	}
	command = strings.ToLower(strings.TrimSpace(command))
	if !redisCommands[command] {
		return nil, tool.Invalidf("command", "unsupported command %q", command)
	}
	needsKey := command != "ping" && command != "dbsize"
	if needsKey && key == "" {
		return nil, tool.Invalidf("key", "command %s needs a key", command)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	res := &RedisResult{Command: command, Found: true}
	switch command {
	case "ping":
		pong, err := client.Ping(ctx).Result()
		if err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		res.Value = pong

	case "get":
		val, err := client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			res.Found = false
			break
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		res.Value = val

	case "set":
		ttl := time.Duration(opts.TTLSeconds) * time.Second
		if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set %s: %w", key, err)
		}
		res.Value = "OK"

	case "del":
		n, err := client.Del(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis del %s: %w", key, err)
		}
		res.Number = n
		res.Found = n > 0

	case "exists":
		n, err := client.Exists(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis exists %s: %w", key, err)
		}
		res.Number = n
		res.Found = n > 0

	case "keys":
		keys, err := client.Keys(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis keys %s: %w", key, err)
		}
		res.Values = keys
		res.Number = int64(len(keys))
		res.Found = len(keys) > 0

	case "ttl":
		d, err := client.TTL(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis ttl %s: %w", key, err)
		}
		// -2 means the key does not exist, -1 means no expiration.
		res.Number = int64(d.Seconds())
		if d == -2*time.Second {
			res.Found = false
			res.Number = -2
		} else if d == -1*time.Second {
			res.Number = -1
		}

	case "incr":
		n, err := client.Incr(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis incr %s: %w", key, err)
		}
		res.Number = n

	case "dbsize":
		n, err := client.DBSize(ctx).Result()
		if err != nil {
			return nil, fmt.Errorf("redis dbsize: %w", err)
		}
		res.Number = n
	}

	return res, nil
}
