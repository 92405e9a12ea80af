package pool

import (
	"fmt"
	"strings"

	"github.com/VictoriaMetrics/metrics"
)

// poolMetrics holds the counters of one pool. Every pool has its own set, so several
// managers in one process never collide on metric names.
type poolMetrics struct {
	set          *metrics.Set
	borrowed     *metrics.Counter
	returned     *metrics.Counter
	created      *metrics.Counter
	destroyed    *metrics.Counter
	borrowErrors *metrics.Counter
}

func newPoolMetrics(name string, idle, active func() int) *poolMetrics {
	set := metrics.NewSet()
	metricName := func(metric string) string {
		return fmt.Sprintf("kvconn_pool_%s{pool=%q}", metric, name)
	}

	m := &poolMetrics{
		set:          set,
		borrowed:     set.NewCounter(metricName("borrowed_total")),
		returned:     set.NewCounter(metricName("returned_total")),
		created:      set.NewCounter(metricName("created_total")),
		destroyed:    set.NewCounter(metricName("destroyed_total")),
		borrowErrors: set.NewCounter(metricName("borrow_errors_total")),
	}
	set.NewGauge(metricName("idle"), func() float64 { return float64(idle()) })
	set.NewGauge(metricName("active"), func() float64 { return float64(active()) })

	return m
}

// Stats is a snapshot of the counters of a pool
type Stats struct {
	Name         string
	Idle         int
	Active       int
	Created      uint64
	Destroyed    uint64
	Borrowed     uint64
	Returned     uint64
	BorrowErrors uint64
}

func (m *poolMetrics) stats(name string, idle, active int) Stats {
	return Stats{
		Name:         name,
		Idle:         idle,
		Active:       active,
		Created:      m.created.Get(),
		Destroyed:    m.destroyed.Get(),
		Borrowed:     m.borrowed.Get(),
		Returned:     m.returned.Get(),
		BorrowErrors: m.borrowErrors.Get(),
	}
}

// String returns a formatted string representation of the stats
func (s Stats) String() string {
	var sb strings.Builder

	addField := func(name string, value any) {
		sb.WriteString(fmt.Sprintf("  %-22s: %v\n", name, value))
	}

	sb.WriteString(fmt.Sprintf("Pool %s:\n", s.Name))
	addField("Idle", s.Idle)
	addField("Active", s.Active)
	addField("Created", s.Created)
	addField("Destroyed", s.Destroyed)
	addField("Borrowed", s.Borrowed)
	addField("Returned", s.Returned)
	addField("Borrow Errors", s.BorrowErrors)

	return sb.String()
}
