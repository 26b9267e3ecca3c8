package system

import (
	"time"

	"github.com/smallnest/agenttools/tool"
)

// Stopwatch measures elapsed wall-clock time from its creation or last
// reset. Zero value is not usable; call NewStopwatch.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch returns a running stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{start: time.Now()}
}

// Elapsed returns the time since the stopwatch started.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Reset restarts the stopwatch and returns the elapsed time up to the
// reset.
func (s *Stopwatch) Reset() time.Duration {
	elapsed := time.Since(s.start)
	s.start = time.Now()
	return elapsed
}

// Measurement holds wall-clock statistics of repeated runs of a function.
type Measurement struct {
	Runs  int           `json:"runs"`
	Total time.Duration `json:"total"`
	Min   time.Duration `json:"min"`
	Avg   time.Duration `json:"avg"`
	Max   time.Duration `json:"max"`
}

// Measure runs fn n times sequentially and reports min/avg/max/total
// wall-clock time. A failing run aborts the measurement.
func Measure(n int, fn func() error) (*Measurement, error) {
	if n <= 0 {
		return nil, tool.Invalidf("runs", "must be positive, got %d", n)
	}

	m := &Measurement{Runs: n}
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return nil, err
		}
		elapsed := time.Since(start)

		m.Total += elapsed
		if i == 0 || elapsed < m.Min {
			m.Min = elapsed
		}
		if elapsed > m.Max {
			m.Max = elapsed
		}
	}
	m.Avg = m.Total / time.Duration(n)
	return m, nil
}
