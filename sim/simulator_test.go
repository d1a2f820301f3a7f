package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delivery-sim/delivery-sim/sim/stats"
)

// probeEvent is a minimal event that records its tag when executed.
type probeEvent struct {
	time float64
	tag  string
	log  *[]string
}

func (e *probeEvent) Timestamp() float64 { return e.time }
func (e *probeEvent) Execute(*Simulator) { *e.log = append(*e.log, e.tag) }

// newBareSimulator builds a simulator with an empty event queue, for
// driving the scheduler directly with probe events.
func newBareSimulator(horizon float64) *Simulator {
	return &Simulator{
		Horizon:    horizon,
		eventQueue: make(EventQueue, 0),
		Drivers:    NewDriverPool(0),
		Collector:  stats.NewCollector(),
		Metrics:    NewMetrics(),
	}
}

func TestEventQueue_EqualDueTimesFireInInsertionOrder(t *testing.T) {
	// GIVEN several events due at the same instant, interleaved with others
	s := newBareSimulator(100)
	var log []string
	s.Schedule(&probeEvent{time: 5, tag: "a", log: &log})
	s.Schedule(&probeEvent{time: 5, tag: "b", log: &log})
	s.Schedule(&probeEvent{time: 3, tag: "early", log: &log})
	s.Schedule(&probeEvent{time: 5, tag: "c", log: &log})
	s.Schedule(&probeEvent{time: 9, tag: "late", log: &log})

	// WHEN the loop runs
	s.Run()

	// THEN equal-time events fire in the order they were scheduled
	assert.Equal(t, []string{"early", "a", "b", "c", "late"}, log)
}

func TestSchedule_PastEventPanics(t *testing.T) {
	s := newBareSimulator(100)
	s.Clock = 10

	defer func() {
		if recover() == nil {
			t.Error("scheduling before the clock did not panic")
		}
	}()
	var log []string
	s.Schedule(&probeEvent{time: 5, tag: "x", log: &log})
}

func TestRun_StopsAtHorizon(t *testing.T) {
	// GIVEN events on, at, and beyond the horizon
	s := newBareSimulator(10)
	var log []string
	s.Schedule(&probeEvent{time: 5, tag: "inside", log: &log})
	s.Schedule(&probeEvent{time: 10, tag: "at-horizon", log: &log})
	s.Schedule(&probeEvent{time: 10.5, tag: "beyond", log: &log})

	s.Run()

	// THEN events due past the horizon never execute and the clock
	// finishes exactly at the horizon
	assert.Equal(t, []string{"inside", "at-horizon"}, log)
	assert.Equal(t, 10.0, s.Clock)
}

func TestRun_DeterministicPerSeed(t *testing.T) {
	// GIVEN two simulators with identical configuration and seed
	cfg := DefaultConfig()
	r1, err := Run(cfg)
	assert.NoError(t, err)
	r2, err := Run(cfg)
	assert.NoError(t, err)

	// THEN the record sequences are identical, element for element
	assert.Equal(t, r1, r2)
	assert.NotEmpty(t, r1)
}

func TestRun_StageOrderingInvariants(t *testing.T) {
	s, err := NewSimulator(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	records := s.Run()

	if len(records) == 0 {
		t.Fatal("baseline scenario completed no orders")
	}
	if len(records) != s.Metrics.OrdersCompleted {
		t.Errorf("records: got %d, metrics say %d completed", len(records), s.Metrics.OrdersCompleted)
	}

	for _, o := range s.Orders() {
		if o.State != StateCompleted {
			continue
		}
		if !(o.CompletionTime >= o.AssignedTime && o.AssignedTime >= o.ReadyTime && o.ReadyTime >= o.ArrivalTime) {
			t.Errorf("order %d: timestamps out of order: %v %v %v %v",
				o.ID, o.ArrivalTime, o.ReadyTime, o.AssignedTime, o.CompletionTime)
		}
		if o.CompletionTime > s.Horizon {
			t.Errorf("order %d completed at %v, after the horizon", o.ID, o.CompletionTime)
		}

		wait := o.AssignedTime - o.ReadyTime
		total := o.CompletionTime - o.ArrivalTime
		if wait < 0 {
			t.Errorf("order %d: negative wait %v", o.ID, wait)
		}
		if total < wait {
			t.Errorf("order %d: total %v below wait %v", o.ID, total, wait)
		}
		// total decomposes exactly into prep + wait + delivery
		decomposed := (o.ReadyTime - o.ArrivalTime) + wait + (o.CompletionTime - o.AssignedTime)
		if math.Abs(total-decomposed) > 1e-9 {
			t.Errorf("order %d: total %v does not decompose (%v)", o.ID, total, decomposed)
		}
	}
}

func TestRun_CapacityNeverExceeded(t *testing.T) {
	for _, capacity := range []int{1, 3, 5} {
		cfg := DefaultConfig()
		cfg.Drivers = capacity

		s, err := NewSimulator(cfg)
		if err != nil {
			t.Fatal(err)
		}
		s.Run()

		if s.Metrics.PeakDriversInUse > capacity {
			t.Errorf("capacity %d: peak in-use reached %d", capacity, s.Metrics.PeakDriversInUse)
		}
		if s.Drivers.InUse() > capacity {
			t.Errorf("capacity %d: final in-use %d", capacity, s.Drivers.InUse())
		}
	}
}

func TestRun_FIFOGrantOrder(t *testing.T) {
	// GIVEN a congested scenario so the wait queue is exercised
	cfg := DefaultConfig()
	cfg.Drivers = 3

	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Run()

	// THEN no order that became ready later was assigned a driver earlier
	var completed []*Order
	for _, o := range s.Orders() {
		if o.State == StateCompleted {
			completed = append(completed, o)
		}
	}
	for i, a := range completed {
		for _, b := range completed[i+1:] {
			if a.ReadyTime < b.ReadyTime && a.AssignedTime > b.AssignedTime {
				t.Fatalf("FIFO violated: order %d (ready %v, assigned %v) overtaken by order %d (ready %v, assigned %v)",
					a.ID, a.ReadyTime, a.AssignedTime, b.ID, b.ReadyTime, b.AssignedTime)
			}
		}
	}
}

func TestRun_MoreDriversNeverWorse(t *testing.T) {
	// GIVEN the same seed at capacity 5 and capacity 20: arrival times
	// and every stage duration are identical, only contention differs
	cfg5 := DefaultConfig()
	cfg5.Drivers = 5
	cfg20 := DefaultConfig()
	cfg20.Drivers = 20

	r5, err := Run(cfg5)
	assert.NoError(t, err)
	r20, err := Run(cfg20)
	assert.NoError(t, err)

	s5 := stats.Summarize(r5)
	s20 := stats.Summarize(r20)

	// THEN more drivers never increase mean total time or decrease SLA compliance
	assert.LessOrEqual(t, s20.MeanTotal, s5.MeanTotal+1e-9)
	assert.GreaterOrEqual(t, s20.SLACompliance, s5.SLACompliance-1e-9)
	assert.LessOrEqual(t, s20.MeanWait, s5.MeanWait+1e-9)
}

func TestRun_ZeroCapacityBoundary(t *testing.T) {
	// GIVEN a pool that can never grant
	cfg := DefaultConfig()
	cfg.Drivers = 0

	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	records := s.Run()

	// THEN the run finishes cleanly with an empty result sequence and
	// every prepped order parked awaiting a driver
	assert.Empty(t, records)
	assert.Equal(t, 0, s.Metrics.OrdersCompleted)
	assert.Equal(t, s.Metrics.OrdersArrived, s.Metrics.OrdersTruncated)
	for _, o := range s.Orders() {
		if o.State == StateCompleted || o.State == StateDelivering {
			t.Errorf("order %d reached %s with zero drivers", o.ID, o.State)
		}
	}
}

func TestRun_RecordsAppendInCompletionOrder(t *testing.T) {
	s, err := NewSimulator(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	records := s.Run()

	byID := make(map[int]*Order, len(s.Orders()))
	for _, o := range s.Orders() {
		byID[o.ID] = o
	}

	prev := math.Inf(-1)
	for _, r := range records {
		o := byID[r.OrderID]
		if o == nil {
			t.Fatalf("record for unknown order %d", r.OrderID)
		}
		if o.CompletionTime < prev {
			t.Errorf("order %d: completion %v before previous record's %v", o.ID, o.CompletionTime, prev)
		}
		prev = o.CompletionTime
	}
}

func TestRun_TruncationAccounting(t *testing.T) {
	s, err := NewSimulator(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.Run()

	completed, inFlight := 0, 0
	for _, o := range s.Orders() {
		if o.State == StateCompleted {
			completed++
		} else {
			inFlight++
		}
	}
	assert.Equal(t, completed, s.Metrics.OrdersCompleted)
	assert.Equal(t, inFlight, s.Metrics.OrdersTruncated)
	assert.Equal(t, len(s.Orders()), s.Metrics.OrdersArrived)
}
