package system

import (
	"context"
	"encoding/json"
	"time"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "system"

type cpuParams struct {
	IntervalSeconds float64 `json:"interval_seconds"`
}

type diskParams struct {
	Path string `json:"path"`
}

type processParams struct {
	SortBy string `json:"sort_by"`
	Top    int    `json:"top"`
}

// Tools returns the system tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		infoTool(),
		cpuTool(),
		memoryTool(),
		diskTool(),
		processTool(),
		runtimeTool(),
	}
}

func infoTool() *tool.Definition {
	return tool.New("system_info",
		"Reports hostname, OS, platform, kernel, uptime and the Go runtime version.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return Info(ctx)
		},
		tool.WithCategory(Category),
		tool.WithTags("host", "os", "uptime"),
		tool.WithSchema(tool.NewSchema(nil)),
	)
}

func cpuTool() *tool.Definition {
	return tool.New("cpu_usage",
		"Samples CPU usage over an interval and reports core counts and load averages.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p cpuParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return CPU(ctx, time.Duration(p.IntervalSeconds*float64(time.Second)))
		},
		tool.WithCategory(Category),
		tool.WithTags("cpu", "load", "usage"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"interval_seconds": tool.NumberProp("Sampling interval. Defaults to 1, capped at 5."),
		})),
	)
}

func memoryTool() *tool.Definition {
	return tool.New("memory_usage",
		"Reports total, available and used virtual memory.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return Memory(ctx)
		},
		tool.WithCategory(Category),
		tool.WithTags("memory", "ram", "usage"),
		tool.WithSchema(tool.NewSchema(nil)),
	)
}

func diskTool() *tool.Definition {
	return tool.New("disk_usage",
		"Reports usage of the file system holding a path. Defaults to the root file system.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p diskParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Disk(ctx, p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("disk", "storage", "usage"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path whose file system to inspect. Defaults to /."),
		})),
	)
}

func processTool() *tool.Definition {
	return tool.New("process_list",
		"Lists the top processes by CPU or memory usage.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p processParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Processes(ctx, p.SortBy, p.Top)
		},
		tool.WithCategory(Category),
		tool.WithTags("processes", "top"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"sort_by": tool.EnumProp("Sort metric. Defaults to cpu.", "cpu", "memory"),
			"top":     tool.IntProp("Number of processes to return, 1-100. Defaults to 10."),
		})),
	)
}

func runtimeTool() *tool.Definition {
	return tool.New("runtime_stats",
		"Reports goroutine count, heap usage and GC statistics of this process.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return Runtime(), nil
		},
		tool.WithCategory(Category),
		tool.WithTags("runtime", "goroutines", "gc"),
		tool.WithSchema(tool.NewSchema(nil)),
	)
}
