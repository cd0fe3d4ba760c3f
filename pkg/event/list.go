package event

import "encoding/binary"

// InputEvents is the ordered, read-only event list a host hands to a flush.
type InputEvents interface {
	Size() uint32
	// Get returns the i-th record, or nil if i is out of range.
	Get(i uint32) []byte
}

// OutputEvents is the host-side sink for events produced during a flush.
// TryPush must not block; a false result means the record was not taken.
type OutputEvents interface {
	TryPush(rec []byte) bool
}

// List is a fixed-capacity event list backed by preallocated storage. It
// implements both InputEvents and OutputEvents and never grows, so it can be
// filled and drained from the processing context.
type List struct {
	buf     []byte
	offsets []uint32
	used    uint32
}

// NewList creates a list that holds at most maxEvents records and maxBytes
// bytes of record data.
func NewList(maxEvents, maxBytes int) *List {
	return &List{
		buf:     make([]byte, maxBytes),
		offsets: make([]uint32, 0, maxEvents),
	}
}

// Size returns the number of records in the list.
func (l *List) Size() uint32 {
	return uint32(len(l.offsets))
}

// Get returns the i-th record. The slice aliases the list storage and is
// valid until the next Reset.
func (l *List) Get(i uint32) []byte {
	if i >= uint32(len(l.offsets)) {
		return nil
	}
	start := l.offsets[i]
	size := binary.LittleEndian.Uint32(l.buf[start : start+4])
	return l.buf[start : start+size]
}

// TryPush copies rec into the list. It fails if the list is full or rec is
// not a well-formed record.
func (l *List) TryPush(rec []byte) bool {
	h, ok := DecodeHeader(rec)
	if !ok {
		return false
	}
	if len(l.offsets) == cap(l.offsets) || uint64(l.used)+uint64(h.Size) > uint64(len(l.buf)) {
		return false
	}
	copy(l.buf[l.used:], rec[:h.Size])
	l.offsets = append(l.offsets, l.used)
	l.used += h.Size
	return true
}

// PushParamValue encodes and appends a plain automation event.
func (l *List) PushParamValue(paramID uint32, value float64, time uint32) bool {
	var b [ParamValueSize]byte
	ev := NewParamValue(paramID, value)
	ev.Time = time
	n, _ := ev.Encode(b[:])
	return l.TryPush(b[:n])
}

// Reset empties the list without releasing storage.
func (l *List) Reset() {
	l.offsets = l.offsets[:0]
	l.used = 0
}

// Empty is an InputEvents with no records.
var Empty InputEvents = emptyList{}

type emptyList struct{}

func (emptyList) Size() uint32      { return 0 }
func (emptyList) Get(uint32) []byte { return nil }
