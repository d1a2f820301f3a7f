package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (virtual minutes) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents a new order entering the system. The kitchen
// starts preparing immediately; no shared resource is involved yet.
type ArrivalEvent struct {
	time  float64
	Order *Order
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute moves the order into Preparing and schedules its prep completion.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t=%09.3f] << arrival: %s", e.time, e.Order)

	e.Order.State = StatePreparing
	sim.Metrics.OrdersArrived++
	sim.Schedule(&PrepCompleteEvent{
		time:  e.time + e.Order.PrepDuration,
		Order: e.Order,
	})
}

// PrepCompleteEvent fires when the kitchen finishes an order. The order
// requests a driver and either starts delivery at once or waits in the
// pool's FIFO queue, possibly forever if no driver frees up before
// the horizon.
type PrepCompleteEvent struct {
	time  float64
	Order *Order
}

// Timestamp returns the scheduled time of the PrepCompleteEvent.
func (e *PrepCompleteEvent) Timestamp() float64 {
	return e.time
}

// Execute transitions Preparing → AwaitingDriver and issues the driver request.
func (e *PrepCompleteEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t=%09.3f] << prep done: %s", e.time, e.Order)

	e.Order.ReadyTime = e.time
	e.Order.State = StateAwaitingDriver

	if sim.Drivers.Request(e.Order) {
		sim.startDelivery(e.Order, e.time)
		return
	}
	logrus.Debugf("[t=%09.3f] %s queued for driver (%d waiting)",
		e.time, e.Order, sim.Drivers.QueueLen())
	sim.Metrics.observeQueue(sim.Drivers.QueueLen())
}

// DeliveryCompleteEvent fires when a driver finishes the trip. The order
// completes, its driver is released (resuming the longest waiter, if
// any), and its record is appended to the collector.
type DeliveryCompleteEvent struct {
	time  float64
	Order *Order
}

// Timestamp returns the scheduled time of the DeliveryCompleteEvent.
func (e *DeliveryCompleteEvent) Timestamp() float64 {
	return e.time
}

// Execute transitions Delivering → Completed, releases the driver, and
// emits the order's record.
func (e *DeliveryCompleteEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t=%09.3f] << delivered: %s", e.time, e.Order)

	e.Order.CompletionTime = e.time
	e.Order.State = StateCompleted
	sim.Metrics.OrdersCompleted++
	sim.Collector.Append(e.Order.Record(sim.cfg.SLATarget))

	if next := sim.Drivers.Release(); next != nil {
		sim.startDelivery(next, e.time)
	}
}

// startDelivery marks the driver assignment and schedules the trip's end.
// Called on an immediate grant and on a hand-off at release; both happen
// at a single logical instant.
func (sim *Simulator) startDelivery(o *Order, now float64) {
	o.AssignedTime = now
	o.State = StateDelivering
	sim.Metrics.observeInUse(sim.Drivers.InUse())
	sim.Schedule(&DeliveryCompleteEvent{
		time:  now + o.DeliveryDuration,
		Order: o,
	})
}
