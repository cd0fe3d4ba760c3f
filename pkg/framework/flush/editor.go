package flush

import (
	"sync/atomic"

	"github.com/justyntemme/parambridge/pkg/event"
	"github.com/justyntemme/parambridge/pkg/framework/debug"
	"github.com/justyntemme/parambridge/pkg/ringqueue"
)

// HostNotifier asks the host to schedule a parameter flush while audio
// processing is stopped, so edits made in the editor still reach the host.
type HostNotifier interface {
	RequestFlush()
}

// Editor is the control-context producer for the flush queue. It must be the
// only writer of its queue.
type Editor struct {
	queue  *ringqueue.Queue
	notify HostNotifier
	logger *debug.Logger

	failed atomic.Uint64
}

// NewEditor creates an editor writing to queue. notify and logger may be nil.
func NewEditor(queue *ringqueue.Queue, notify HostNotifier, logger *debug.Logger) *Editor {
	if logger == nil {
		logger = debug.Default()
	}
	return &Editor{queue: queue, notify: notify, logger: logger}
}

// BeginEdit announces that the user grabbed a control.
func (e *Editor) BeginEdit(id uint32) bool {
	var buf [event.ParamGestureSize]byte
	n, _ := event.NewGestureBegin(id).Encode(buf[:])
	return e.send(buf[:n], "gesture begin", id)
}

// SetValue sends a new normalized value for a parameter.
func (e *Editor) SetValue(id uint32, value float64) bool {
	var buf [event.ParamValueSize]byte
	n, _ := event.NewParamValue(id, value).Encode(buf[:])
	return e.send(buf[:n], "value", id)
}

// EndEdit announces that the user released a control.
func (e *Editor) EndEdit(id uint32) bool {
	var buf [event.ParamGestureSize]byte
	n, _ := event.NewGestureEnd(id).Encode(buf[:])
	return e.send(buf[:n], "gesture end", id)
}

// Send enqueues an already encoded record.
func (e *Editor) Send(rec []byte) bool {
	return e.send(rec, "record", 0)
}

func (e *Editor) send(rec []byte, what string, id uint32) bool {
	if !e.queue.Send(rec) {
		e.failed.Add(1)
		e.logger.Warn("dropped %s for param %d: queue full (%d bytes free)", what, id, e.queue.AvailableWrite())
		return false
	}
	if e.notify != nil {
		e.notify.RequestFlush()
	}
	return true
}

// Pending reports whether records sent by this editor have not yet been
// applied by a flush. The editor is the only producer on its queue.
func (e *Editor) Pending() bool {
	return e.queue.AvailableRead() > 0
}

// Failed returns the number of records the queue refused.
func (e *Editor) Failed() uint64 {
	return e.failed.Load()
}
