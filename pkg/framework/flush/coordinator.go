// Package flush merges parameter events from the control context and the host
// into the live parameter values once per processing cycle.
//
// The control context talks to the processing context through a single
// ringqueue.Queue, written by an Editor and drained by the Coordinator. The
// Coordinator is the only consumer of that queue and the only writer of value
// cells on behalf of host automation.
package flush

import (
	"encoding/binary"

	"github.com/justyntemme/parambridge/pkg/event"
	"github.com/justyntemme/parambridge/pkg/framework/gesture"
	"github.com/justyntemme/parambridge/pkg/framework/param"
	"github.com/justyntemme/parambridge/pkg/ringqueue"
)

// Coordinator applies pending parameter events. Flush runs on the processing
// context only, once per cycle and never concurrently with itself. It does
// not allocate, block or lock.
type Coordinator struct {
	queue    *ringqueue.Queue
	params   *param.Registry
	gestures *gesture.Tracker
	scratch  []byte // receives one queue drain; sized to the queue capacity

	stats Stats
}

// NewCoordinator creates a coordinator draining queue into the cells of a
// sealed registry, arbitrated by gestures.
func NewCoordinator(queue *ringqueue.Queue, params *param.Registry, gestures *gesture.Tracker) *Coordinator {
	return &Coordinator{
		queue:    queue,
		params:   params,
		gestures: gestures,
		scratch:  make([]byte, queue.Capacity()),
	}
}

// Flush runs one cycle. Phase one drains the control queue: gesture events
// update the tracker, value events overwrite the cell unconditionally, and
// every drained record is forwarded verbatim to out in arrival order. Phase
// two applies the host's value events, discarding those aimed at a parameter
// the user is editing. A nil in or out is treated as empty or as a sink that
// refuses everything.
func (c *Coordinator) Flush(in event.InputEvents, out event.OutputEvents) {
	c.drainQueue(out)
	if in != nil {
		c.applyHost(in)
	}
}

func (c *Coordinator) drainQueue(out event.OutputEvents) {
	// Records are released only after they are applied, so an empty queue
	// tells the producer its edits have reached the cells.
	n := c.queue.Peek(c.scratch)
	defer c.queue.Release(n)
	buf := c.scratch[:n]

	for len(buf) > 0 {
		h, ok := event.DecodeHeader(buf)
		if !ok {
			// The queue frames records by their leading length, so a record
			// too short for a header is skipped on its own.
			c.stats.malformed.Add(1)
			if len(buf) < 4 {
				return
			}
			size := binary.LittleEndian.Uint32(buf)
			if size < 4 || uint64(size) > uint64(len(buf)) {
				return
			}
			buf = buf[size:]
			continue
		}
		rec := buf[:h.Size]
		buf = buf[h.Size:]

		if c.applyLocal(h, rec) {
			c.forward(out, rec)
		}
	}
}

// applyLocal applies one record from the control queue and reports whether
// it should be forwarded to the host.
func (c *Coordinator) applyLocal(h event.Header, rec []byte) bool {
	if h.SpaceID != event.CoreSpaceID {
		c.stats.ignored.Add(1)
		return false
	}

	switch h.Type {
	case event.TypeParamValue:
		ev, ok := event.DecodeParamValue(rec)
		if !ok {
			c.stats.malformed.Add(1)
			return false
		}
		cell := c.params.Cell(ev.ParamID)
		if cell == nil {
			c.stats.malformed.Add(1)
			return false
		}
		cell.Store(ev.Value)
		c.stats.drained.Add(1)
		return true

	case event.TypeParamGestureBegin, event.TypeParamGestureEnd:
		ev, ok := event.DecodeParamGesture(rec)
		if !ok {
			c.stats.malformed.Add(1)
			return false
		}
		var known bool
		if ev.Type == event.TypeParamGestureBegin {
			known = c.gestures.Begin(ev.ParamID)
		} else {
			known = c.gestures.End(ev.ParamID)
		}
		if !known {
			c.stats.malformed.Add(1)
			return false
		}
		c.stats.drained.Add(1)
		return true
	}

	c.stats.ignored.Add(1)
	return false
}

func (c *Coordinator) forward(out event.OutputEvents, rec []byte) {
	if out != nil && out.TryPush(rec) {
		c.stats.forwarded.Add(1)
		return
	}
	c.stats.forwardDropped.Add(1)
}

func (c *Coordinator) applyHost(in event.InputEvents) {
	size := in.Size()
	for i := uint32(0); i < size; i++ {
		rec := in.Get(i)

		h, ok := event.DecodeHeader(rec)
		if !ok {
			c.stats.malformed.Add(1)
			continue
		}
		if h.SpaceID != event.CoreSpaceID || h.Type != event.TypeParamValue {
			c.stats.ignored.Add(1)
			continue
		}

		ev, ok := event.DecodeParamValue(rec)
		if !ok {
			c.stats.malformed.Add(1)
			continue
		}
		cell := c.params.Cell(ev.ParamID)
		if cell == nil {
			c.stats.malformed.Add(1)
			continue
		}
		if c.gestures.Editing(ev.ParamID) {
			c.stats.hostSuppressed.Add(1)
			continue
		}
		cell.Store(ev.Value)
		c.stats.hostApplied.Add(1)
	}
}

// Stats returns a snapshot of the coordinator counters. Safe from any
// context.
func (c *Coordinator) Stats() Snapshot {
	return c.stats.snapshot()
}
