// Tracks run-wide counters the engine maintains while executing events.
// Per-order outcomes live in stats.OrderRecord; these are the numbers
// that only the engine can see (peaks, truncation).

package sim

import "fmt"

// Metrics aggregates engine-level statistics for final reporting and
// for checking the pool invariant from the outside.
type Metrics struct {
	OrdersArrived   int // orders whose arrival event fired before the horizon
	OrdersCompleted int // orders that produced a record
	OrdersTruncated int // orders still in flight when the horizon hit

	PeakDriversInUse int // max simultaneously held drivers; never exceeds capacity
	PeakQueueLen     int // max orders waiting for a driver at once
}

// NewMetrics returns a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) observeInUse(inUse int) {
	if inUse > m.PeakDriversInUse {
		m.PeakDriversInUse = inUse
	}
}

func (m *Metrics) observeQueue(queueLen int) {
	if queueLen > m.PeakQueueLen {
		m.PeakQueueLen = queueLen
	}
}

// Print displays the engine counters at the end of a run.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Orders arrived       : %d\n", m.OrdersArrived)
	fmt.Printf("Orders completed     : %d\n", m.OrdersCompleted)
	fmt.Printf("Truncated at horizon : %d\n", m.OrdersTruncated)
	fmt.Printf("Peak drivers in use  : %d\n", m.PeakDriversInUse)
	fmt.Printf("Peak driver queue    : %d\n", m.PeakQueueLen)
}
