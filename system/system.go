package system

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/smallnest/agenttools/tool"
)

const (
	maxCPUInterval    = 5 * time.Second
	defaultProcessTop = 10
	maxProcessTop     = 100
)

// InfoResult describes the host and the Go runtime it runs on.
type InfoResult struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Platform      string `json:"platform"`
	KernelVersion string `json:"kernel_version,omitempty"`
	UptimeSeconds uint64 `json:"uptime_seconds"`
	BootTime      string `json:"boot_time"`
	GoVersion     string `json:"go_version"`
	GoArch        string `json:"go_arch"`
}

// CPUResult holds CPU counts, usage percent and load averages.
type CPUResult struct {
	LogicalCores  int      `json:"logical_cores"`
	PhysicalCores int      `json:"physical_cores"`
	UsagePercent  float64  `json:"usage_percent"`
	LoadAvg       *LoadAvg `json:"load_avg,omitempty"`
}

// LoadAvg is the classic 1/5/15 minute load triple.
type LoadAvg struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// MemoryResult holds virtual memory usage.
type MemoryResult struct {
	TotalBytes     uint64  `json:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	UsedPercent    float64 `json:"used_percent"`
}

// DiskResult holds usage of the file system holding one path.
type DiskResult struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"total_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// ProcessInfo is one row of a process listing.
type ProcessInfo struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float32 `json:"mem_percent"`
}

// ProcessListResult is the top-N processes by one metric.
type ProcessListResult struct {
	SortBy    string        `json:"sort_by"`
	Processes []ProcessInfo `json:"processes"`
	Count     int           `json:"count"`
	Total     int           `json:"total"`
}

// RuntimeResult is the Go runtime's view of this process.
type RuntimeResult struct {
	Goroutines    int    `json:"goroutines"`
	HeapAllocated uint64 `json:"heap_alloc_bytes"`
	HeapSystem    uint64 `json:"heap_sys_bytes"`
	GCCount       uint32 `json:"gc_count"`
	GCPauseTotal  uint64 `json:"gc_pause_total_ns"`
	NumCPU        int    `json:"num_cpu"`
}

// Info returns host identification and uptime.
func Info(ctx context.Context) (*InfoResult, error) {
	h, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}
	platform := h.Platform
	if h.PlatformVersion != "" {
		platform = h.Platform + " " + h.PlatformVersion
	}
	return &InfoResult{
		Hostname:      h.Hostname,
		OS:            h.OS,
		Platform:      platform,
		KernelVersion: h.KernelVersion,
		UptimeSeconds: h.Uptime,
		BootTime:      time.Unix(int64(h.BootTime), 0).UTC().Format(time.RFC3339),
		GoVersion:     runtime.Version(),
		GoArch:        runtime.GOARCH,
	}, nil
}

// CPU samples CPU usage over the given interval. The interval is capped
// at 5 seconds so a tool call cannot stall an agent for long.
func CPU(ctx context.Context, interval time.Duration) (*CPUResult, error) {
	if interval <= 0 {
		interval = time.Second
	}
	if interval > maxCPUInterval {
		return nil, tool.Invalidf("interval_seconds", "must not exceed %s", maxCPUInterval)
	}

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("cpu counts: %w", err)
	}
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		physical = 0 // not fatal; some platforms cannot report it
	}
	percents, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return nil, fmt.Errorf("cpu percent: %w", err)
	}
	usage := 0.0
	if len(percents) > 0 {
		usage = round2(percents[0])
	}

	res := &CPUResult{
		LogicalCores:  logical,
		PhysicalCores: physical,
		UsagePercent:  usage,
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		res.LoadAvg = &LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}
	return res, nil
}

// Memory returns virtual memory usage.
func Memory(ctx context.Context) (*MemoryResult, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}
	return &MemoryResult{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedBytes:      vm.Used,
		UsedPercent:    round2(vm.UsedPercent),
	}, nil
}

// Disk returns usage of the file system holding path. An empty path means
// the root file system.
func Disk(ctx context.Context, path string) (*DiskResult, error) {
	if path == "" {
		path = "/"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("disk usage %s: %w", path, err)
	}
	return &DiskResult{
		Path:        path,
		TotalBytes:  usage.Total,
		FreeBytes:   usage.Free,
		UsedBytes:   usage.Used,
		UsedPercent: round2(usage.UsedPercent),
	}, nil
}

// Processes returns the top-N processes sorted by cpu or memory usage.
// Processes that disappear mid-listing are skipped.
func Processes(ctx context.Context, sortBy string, top int) (*ProcessListResult, error) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	switch sortBy {
	case "":
		sortBy = "cpu"
	case "cpu", "memory":
	default:
		return nil, tool.Invalidf("sort_by", "must be cpu or memory, got %q", sortBy)
	}
	if top <= 0 {
		top = defaultProcessTop
	}
	if top > maxProcessTop {
		return nil, tool.Invalidf("top", "must not exceed %d", maxProcessTop)
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	rows := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		rows = append(rows, ProcessInfo{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: round2(cpuPct),
			MemPercent: memPct,
		})
	}

	if sortBy == "cpu" {
		sort.Slice(rows, func(i, j int) bool { return rows[i].CPUPercent > rows[j].CPUPercent })
	} else {
		sort.Slice(rows, func(i, j int) bool { return rows[i].MemPercent > rows[j].MemPercent })
	}

	total := len(rows)
	if len(rows) > top {
		rows = rows[:top]
	}
	return &ProcessListResult{SortBy: sortBy, Processes: rows, Count: len(rows), Total: total}, nil
}

// Runtime returns the Go runtime's statistics for this process.
func Runtime() *RuntimeResult {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return &RuntimeResult{
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocated: ms.HeapAlloc,
		HeapSystem:    ms.HeapSys,
		GCCount:       ms.NumGC,
		GCPauseTotal:  ms.PauseTotalNs,
		NumCPU:        runtime.NumCPU(),
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
