package sim

import (
	"fmt"

	"github.com/delivery-sim/delivery-sim/sim/stats"
)

// OrderState tags where an order is in its workflow. Transitions only
// move forward: Arrived → Preparing → AwaitingDriver → Delivering →
// Completed. No stage is skipped, retried, or abandoned.
type OrderState string

const (
	StateArrived        OrderState = "arrived"
	StatePreparing      OrderState = "preparing"
	StateAwaitingDriver OrderState = "awaiting-driver"
	StateDelivering     OrderState = "delivering"
	StateCompleted      OrderState = "completed"
)

// Order tracks one customer order from arrival to completion. It is
// created by arrival generation and mutated only by its own workflow
// events; on completion it is summarized into an immutable
// stats.OrderRecord and discarded.
type Order struct {
	ID    int
	State OrderState

	ArrivalTime    float64 // when the order entered the system
	ReadyTime      float64 // when prep finished and the driver request was issued
	AssignedTime   float64 // when a driver was granted
	CompletionTime float64 // when delivery finished

	// Stage durations are drawn once, at arrival generation, from their
	// own RNG subsystems. Drawing up front keeps the duration assigned
	// to order N identical across runs that differ only in capacity.
	PrepDuration     float64
	DeliveryDuration float64
}

// Record freezes the order's timing outcome against the given SLA target.
// Only valid once the order is Completed.
func (o *Order) Record(slaTarget float64) stats.OrderRecord {
	if o.State != StateCompleted {
		panic(fmt.Sprintf("Record: order %d is %s, not completed", o.ID, o.State))
	}
	total := o.CompletionTime - o.ArrivalTime
	return stats.OrderRecord{
		OrderID:       o.ID,
		WaitForDriver: o.AssignedTime - o.ReadyTime,
		TotalTime:     total,
		SLAMet:        total <= slaTarget,
	}
}

func (o *Order) String() string {
	return fmt.Sprintf("order %d [%s]", o.ID, o.State)
}
