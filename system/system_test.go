package system

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/agenttools/tool"
)

func TestInfo(t *testing.T) {
	res, err := Info(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Hostname)
	assert.NotEmpty(t, res.OS)
	assert.NotEmpty(t, res.GoVersion)
	_, perr := time.Parse(time.RFC3339, res.BootTime)
	assert.NoError(t, perr, "boot time must be RFC3339")
}

func TestCPU(t *testing.T) {
	res, err := CPU(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.Positive(t, res.LogicalCores)
	assert.GreaterOrEqual(t, res.UsagePercent, 0.0)
	assert.LessOrEqual(t, res.UsagePercent, 100.0)

	_, err = CPU(context.Background(), time.Minute)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestMemory(t *testing.T) {
	res, err := Memory(context.Background())
	require.NoError(t, err)
	assert.Positive(t, res.TotalBytes)
	assert.LessOrEqual(t, res.UsedBytes, res.TotalBytes)
}

func TestDisk(t *testing.T) {
	res, err := Disk(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/", res.Path)
	assert.Positive(t, res.TotalBytes)

	_, err = Disk(context.Background(), "/definitely/not/a/mountpoint")
	assert.ErrorIs(t, err, tool.ErrNotFound)
}

func TestProcesses(t *testing.T) {
	res, err := Processes(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Equal(t, "cpu", res.SortBy)
	assert.LessOrEqual(t, res.Count, 5)
	assert.GreaterOrEqual(t, res.Total, res.Count)
	for i := 1; i < len(res.Processes); i++ {
		assert.GreaterOrEqual(t, res.Processes[i-1].CPUPercent, res.Processes[i].CPUPercent)
	}

	_, err = Processes(context.Background(), "disk", 5)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)

	_, err = Processes(context.Background(), "cpu", 1000)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestRuntime(t *testing.T) {
	res := Runtime()
	assert.Positive(t, res.Goroutines)
	assert.Positive(t, res.HeapAllocated)
	assert.Positive(t, res.NumCPU)
}

func TestStopwatch(t *testing.T) {
	sw := NewStopwatch()
	time.Sleep(10 * time.Millisecond)
	first := sw.Reset()
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.Less(t, sw.Elapsed(), first)
}

func TestMeasure(t *testing.T) {
	m, err := Measure(5, func() error {
		time.Sleep(time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Runs)
	assert.GreaterOrEqual(t, m.Min, time.Millisecond)
	assert.LessOrEqual(t, m.Min, m.Avg)
	assert.LessOrEqual(t, m.Avg, m.Max)
	assert.GreaterOrEqual(t, m.Total, 5*time.Millisecond)

	_, err = Measure(0, func() error { return nil })
	assert.ErrorIs(t, err, tool.ErrInvalidInput)

	sentinel := assert.AnError
	_, err = Measure(3, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestSystemTools(t *testing.T) {
	defs := Tools()
	require.Len(t, defs, 6)
	for _, d := range defs {
		assert.Equal(t, Category, d.Category())
		assert.True(t, d.ReadOnly())
	}

	out, err := defs[5].Call(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "goroutines")
}
