// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/delivery-sim/delivery-sim/sim/stats"
)

// eventEntry pairs an event with its scheduling sequence number. The
// sequence breaks due-time ties in insertion order, so two events due at
// the same instant always fire in the order they were scheduled. Without
// it the heap could reorder equal-time events and a run would no longer
// be a pure function of the seed.
type eventEntry struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by
// (timestamp, scheduling sequence).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds virtual time, system state,
// and the event loop. It is single-threaded: all concurrency in the
// modeled system is logical, multiplexed onto the loop.
type Simulator struct {
	Clock   float64
	Horizon float64

	eventQueue EventQueue
	nextSeq    uint64

	Drivers   *DriverPool
	Collector *stats.Collector
	Metrics   *Metrics

	cfg         Config
	rng         *PartitionedRNG
	gapGen      ExponentialGap
	prepGen     FlooredNormal
	deliveryGen FlooredNormal

	nextOrderID int
	orders      []*Order
}

// NewSimulator validates the configuration and wires a ready-to-run
// simulator. Arrivals are generated up front (see generateArrivals);
// Run then consumes the event queue.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rng := NewPartitionedRNG(cfg.Seed)
	s := &Simulator{
		Horizon:     cfg.Horizon,
		eventQueue:  make(EventQueue, 0),
		Drivers:     NewDriverPool(cfg.Drivers),
		Collector:   stats.NewCollector(),
		Metrics:     NewMetrics(),
		cfg:         cfg,
		rng:         rng,
		gapGen:      NewExponentialGap(cfg.InterArrivalRate(), rng.ForSubsystem(SubsystemArrivals)),
		prepGen:     NewFlooredNormal(cfg.Prep.Mean, cfg.Prep.Std, cfg.Prep.Floor, rng.ForSubsystem(SubsystemPrep)),
		deliveryGen: NewFlooredNormal(cfg.Delivery.Mean, cfg.Delivery.Std, cfg.Delivery.Floor, rng.ForSubsystem(SubsystemDelivery)),
	}

	s.generateArrivals()
	return s, nil
}

// Config returns the configuration this simulator was built from.
func (sim *Simulator) Config() Config {
	return sim.cfg
}

// Orders returns every generated order, completed or not, in arrival
// order. In-flight orders keep whatever partial state the horizon left
// them with; only the Collector holds reportable results.
func (sim *Simulator) Orders() []*Order {
	return sim.orders
}

// Schedule pushes an event into the event queue. Scheduling into the
// past means a caller computed a negative delay; that is a bug, not a
// condition to recover from.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Schedule: event at t=%v is before clock t=%v", ev.Timestamp(), sim.Clock))
	}
	heap.Push(&sim.eventQueue, eventEntry{ev: ev, seq: sim.nextSeq})
	sim.nextSeq++
}

// Run drives the event loop: repeatedly pop the earliest-due event,
// advance the clock to its due time, and execute it, until the queue is
// empty or the next due time lies beyond the horizon. Events left in the
// queue at that point belong to orders that never completed; their
// partial state is discarded, not reported.
func (sim *Simulator) Run() []stats.OrderRecord {
	for len(sim.eventQueue) > 0 {
		if sim.eventQueue[0].ev.Timestamp() > sim.Horizon {
			break
		}
		entry := heap.Pop(&sim.eventQueue).(eventEntry)
		// advance the clock
		sim.Clock = entry.ev.Timestamp()
		// process the event
		entry.ev.Execute(sim)
	}
	sim.Clock = sim.Horizon
	sim.Metrics.OrdersTruncated = sim.Metrics.OrdersArrived - sim.Metrics.OrdersCompleted
	logrus.Debugf("[t=%09.3f] simulation ended: %d completed, %d truncated in flight",
		sim.Clock, sim.Metrics.OrdersCompleted, sim.Metrics.OrdersTruncated)
	return sim.Collector.Records()
}

// generateArrivals walks virtual time forward by Exponential(lambda)
// gaps and schedules one ArrivalEvent per order until the horizon.
// Order IDs are assigned in arrival order starting at 1. Each order's
// stage durations are drawn here, once, from their own subsystem
// streams, so the draw sequence per seed is fixed no matter how the
// downstream contention plays out.
func (sim *Simulator) generateArrivals() {
	currentTime := 0.0
	for {
		currentTime += sim.gapGen.Sample()
		if currentTime > sim.Horizon {
			break
		}
		sim.nextOrderID++
		order := &Order{
			ID:               sim.nextOrderID,
			State:            StateArrived,
			ArrivalTime:      currentTime,
			PrepDuration:     sim.prepGen.Sample(),
			DeliveryDuration: sim.deliveryGen.Sample(),
		}
		sim.orders = append(sim.orders, order)
		sim.Schedule(&ArrivalEvent{time: currentTime, Order: order})
	}
	logrus.Debugf("generated %d arrivals over %.1f minutes", sim.nextOrderID, sim.Horizon)
}

// Run executes one simulation described by cfg and returns the records
// of every order that completed before the horizon. The record count is
// data-dependent: in-flight orders at the horizon are simply absent.
func Run(cfg Config) ([]stats.OrderRecord, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
