// Implements the DriverPool, the only shared mutable state between
// in-flight order workflows. Drivers are interchangeable; what matters
// is how many are free and who has been waiting longest.

package sim

import "fmt"

// DriverPool models a fixed-capacity pool of interchangeable drivers.
// Requests that cannot be granted immediately wait in FIFO order; a
// release hands the freed unit straight to the longest waiter. All
// calls happen inside event execution, so there is no locking; the
// event loop is the serialization point.
type DriverPool struct {
	capacity int
	inUse    int
	waiting  []*Order // FIFO queue of orders awaiting a driver
}

// NewDriverPool creates a pool of the given capacity. Capacity 0 is a
// legal degenerate pool that never grants.
func NewDriverPool(capacity int) *DriverPool {
	if capacity < 0 {
		panic(fmt.Sprintf("NewDriverPool: capacity must be >= 0, got %d", capacity))
	}
	return &DriverPool{capacity: capacity}
}

// Request asks for a driver on behalf of an order. It returns true and
// takes a unit when one is free; otherwise the order joins the back of
// the wait queue and the caller hears back through Release.
func (p *DriverPool) Request(o *Order) bool {
	if o == nil {
		panic("Request: order must not be nil")
	}
	if p.inUse < p.capacity {
		p.inUse++
		return true
	}
	p.waiting = append(p.waiting, o)
	return false
}

// Release returns a driver to the pool and, if anyone is waiting, hands
// the unit to the longest waiter, returning that order so the caller can
// resume its workflow. Returns nil when nobody was waiting.
//
// Calling Release with no outstanding grant is a caller bug, never a
// runtime condition, so it panics.
func (p *DriverPool) Release() *Order {
	if p.inUse == 0 {
		panic("Release: no driver is held")
	}
	if len(p.waiting) == 0 {
		p.inUse--
		return nil
	}
	// The freed unit never actually becomes idle: it transfers to the
	// head of the queue within the same logical instant.
	next := p.waiting[0]
	p.waiting = p.waiting[1:]
	return next
}

// Capacity returns the configured pool size.
func (p *DriverPool) Capacity() int { return p.capacity }

// InUse returns the number of drivers currently held.
func (p *DriverPool) InUse() int { return p.inUse }

// QueueLen returns the number of orders waiting for a driver.
func (p *DriverPool) QueueLen() int { return len(p.waiting) }
