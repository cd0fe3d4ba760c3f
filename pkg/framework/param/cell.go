package param

import (
	"math"
	"sync/atomic"
)

// Cell holds the live normalized value of one parameter. It is shared by the
// control and processing contexts without a lock: every store publishes the
// full 64-bit pattern atomically, so a reader on the other side never sees a
// torn value. Only one context writes a given cell during a flush cycle.
type Cell struct {
	bits atomic.Uint64
}

// Load returns the current value.
func (c *Cell) Load() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Store clamps v to 0-1 and publishes it.
func (c *Cell) Store(v float64) {
	c.bits.Store(math.Float64bits(clamp01(v)))
}
