package flush

import (
	"fmt"
	"sync/atomic"
)

// Stats counts what happened to events across flush cycles. Counters only
// grow; the processing context increments them and any context may read.
type Stats struct {
	drained        atomic.Uint64
	forwarded      atomic.Uint64
	forwardDropped atomic.Uint64
	malformed      atomic.Uint64
	ignored        atomic.Uint64
	hostApplied    atomic.Uint64
	hostSuppressed atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Drained        uint64 // control events applied
	Forwarded      uint64 // control events accepted by the host sink
	ForwardDropped uint64 // control events the host sink refused
	Malformed      uint64 // truncated records or unknown parameter ids
	Ignored        uint64 // foreign namespace or unhandled type
	HostApplied    uint64 // host automation values written
	HostSuppressed uint64 // host automation values discarded during a gesture
}

func (s *Stats) snapshot() Snapshot {
	return Snapshot{
		Drained:        s.drained.Load(),
		Forwarded:      s.forwarded.Load(),
		ForwardDropped: s.forwardDropped.Load(),
		Malformed:      s.malformed.Load(),
		Ignored:        s.ignored.Load(),
		HostApplied:    s.hostApplied.Load(),
		HostSuppressed: s.hostSuppressed.Load(),
	}
}

// Sub returns the counter deltas from prev to s.
func (s Snapshot) Sub(prev Snapshot) Snapshot {
	return Snapshot{
		Drained:        s.Drained - prev.Drained,
		Forwarded:      s.Forwarded - prev.Forwarded,
		ForwardDropped: s.ForwardDropped - prev.ForwardDropped,
		Malformed:      s.Malformed - prev.Malformed,
		Ignored:        s.Ignored - prev.Ignored,
		HostApplied:    s.HostApplied - prev.HostApplied,
		HostSuppressed: s.HostSuppressed - prev.HostSuppressed,
	}
}

// Dropped returns the number of events lost to a full sink or bad input.
func (s Snapshot) Dropped() uint64 {
	return s.ForwardDropped + s.Malformed
}

func (s Snapshot) String() string {
	return fmt.Sprintf("drained=%d forwarded=%d forward_dropped=%d malformed=%d ignored=%d host_applied=%d host_suppressed=%d",
		s.Drained, s.Forwarded, s.ForwardDropped, s.Malformed, s.Ignored, s.HostApplied, s.HostSuppressed)
}
