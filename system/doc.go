// Package system provides host and process monitoring tools backed by
// gopsutil: host information, CPU, memory and disk usage, a process list
// and the Go runtime's own statistics.
//
// The package also exports Stopwatch and Measure, small wall-clock timing
// helpers for profiling a function over repeated runs. They are plain Go
// helpers, not agent tools.
package system
