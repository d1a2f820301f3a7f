// Package stats holds the simulation's result types. It has no
// dependency on sim/; it stores pure data that the engine produces and
// the harness layer consumes.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
)

// OrderRecord is the immutable outcome of one completed order.
// Records are appended in completion order and never mutated afterwards.
type OrderRecord struct {
	OrderID       int     // monotonic arrival sequence number, starting at 1
	WaitForDriver float64 // minutes between prep completion and driver assignment
	TotalTime     float64 // minutes between arrival and completion
	SLAMet        bool    // TotalTime <= the run's SLA target
}

// Collector accumulates one OrderRecord per completed order.
// Append-only and insertion-ordered; orders still in flight at the
// horizon never reach it.
type Collector struct {
	records []OrderRecord
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append adds one completed-order record.
func (c *Collector) Append(r OrderRecord) {
	c.records = append(c.records, r)
}

// Len returns the number of collected records.
func (c *Collector) Len() int {
	return len(c.records)
}

// Records returns the collected records in completion order. The
// returned slice is the collector's internal storage; callers read it,
// they do not append to or reslice it.
func (c *Collector) Records() []OrderRecord {
	return c.records
}

// WriteCSV writes the collected records as CSV with a header row.
func (c *Collector) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"order_id", "wait_for_driver", "total_time", "sla_met"}); err != nil {
		return err
	}
	for _, r := range c.records {
		row := []string{
			fmt.Sprintf("%d", r.OrderID),
			fmt.Sprintf("%.6f", r.WaitForDriver),
			fmt.Sprintf("%.6f", r.TotalTime),
			fmt.Sprintf("%t", r.SLAMet),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
