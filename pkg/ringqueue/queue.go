// Package ringqueue provides a fixed-capacity, single-producer/single-consumer,
// wait-free byte queue for variable-length records.
//
// A record is any byte slice whose first four bytes hold its own total length
// as a little-endian uint32. Event records from package event satisfy this by
// construction. The length prefix lets the consumer pull only whole records
// without any framing of its own, so Recv output is the byte-identical
// concatenation of what was sent.
package ringqueue

import (
	"encoding/binary"
	"errors"
	"sync/atomic"
)

// lengthSize is the size of the leading length field of every record.
const lengthSize = 4

// minCapacity is the smallest ring the queue will allocate.
const minCapacity = 64

// ErrCapacity is returned by New for a non-positive capacity.
var ErrCapacity = errors.New("ringqueue: capacity must be positive")

// cacheLinePad separates the producer and consumer indices.
type cacheLinePad [64 - 8]byte

// Queue is a circular byte buffer with one producer and one consumer. The
// producer owns the write index and the consumer owns the read index; each is
// a monotonic byte count published with an atomic store after the data it
// covers has been copied. Neither side ever blocks or allocates.
type Queue struct {
	w atomic.Uint64 // next write position, bytes since creation
	_ cacheLinePad
	r atomic.Uint64 // next read position, bytes since creation
	_ cacheLinePad

	buf  []byte
	mask uint64
	cap  uint64

	failed atomic.Uint64 // sends refused since creation
}

// roundUpPowerOfTwo returns the next power of two >= n, never less than
// minCapacity.
func roundUpPowerOfTwo(n int) uint64 {
	if n < minCapacity {
		return minCapacity
	}
	x := uint64(n)
	if x&(x-1) == 0 {
		return x
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}

// New returns a queue holding at least minCap bytes. The actual capacity is
// the next power of two and never changes afterwards.
func New(minCap int) (*Queue, error) {
	if minCap <= 0 {
		return nil, ErrCapacity
	}
	capacity := roundUpPowerOfTwo(minCap)
	return &Queue{
		buf:  make([]byte, capacity),
		mask: capacity - 1,
		cap:  capacity,
	}, nil
}

// Capacity returns the queue size in bytes.
func (q *Queue) Capacity() int {
	return int(q.cap)
}

// AvailableRead returns the number of bytes published but not yet received.
func (q *Queue) AvailableRead() int {
	return int(q.w.Load() - q.r.Load())
}

// AvailableWrite returns the free space in bytes. The value is exact for the
// producer and a lower bound for anyone else.
func (q *Queue) AvailableWrite() int {
	return int(q.cap - (q.w.Load() - q.r.Load()))
}

// Failed returns how many sends have been refused.
func (q *Queue) Failed() uint64 {
	return q.failed.Load()
}

// Send appends one record. It returns false, leaving the queue untouched, if
// the record does not fit in the remaining space or its length field does not
// match len(rec). Producer side only.
func (q *Queue) Send(rec []byte) bool {
	n := uint64(len(rec))
	if n < lengthSize || uint64(binary.LittleEndian.Uint32(rec)) != n {
		q.failed.Add(1)
		return false
	}

	w := q.w.Load()
	r := q.r.Load()
	if q.cap-(w-r) < n {
		q.failed.Add(1)
		return false
	}

	off := w & q.mask
	c := copy(q.buf[off:], rec)
	if c < len(rec) {
		copy(q.buf, rec[c:])
	}

	// Publish only after the whole record is in place.
	q.w.Store(w + n)
	return true
}

// Recv copies every complete record currently published into out, in send
// order, and returns the number of bytes copied. Records that do not fit into
// out stay queued for the next call, so out should be at least as large as
// the largest record. Consumer side only.
func (q *Queue) Recv(out []byte) int {
	n := q.Peek(out)
	q.Release(n)
	return n
}

// Peek is Recv without consuming: the records stay queued, and their space
// stays unavailable to the producer, until Release. Consumer side only.
func (q *Queue) Peek(out []byte) int {
	r := q.r.Load()
	w := q.w.Load()

	limit := uint64(len(out))
	var n uint64
	for r+n < w {
		size := uint64(q.lengthAt(r + n))
		if n+size > limit {
			break
		}
		n += size
	}
	if n == 0 {
		return 0
	}

	off := r & q.mask
	c := copy(out[:n], q.buf[off:])
	if uint64(c) < n {
		copy(out[c:n], q.buf)
	}
	return int(n)
}

// Release consumes n bytes previously returned by Peek. Once it returns, the
// producer observes those records as gone. Consumer side only.
func (q *Queue) Release(n int) {
	if n <= 0 {
		return
	}
	q.r.Store(q.r.Load() + uint64(n))
}

// lengthAt reads the record length stored at absolute position pos, which may
// straddle the end of the buffer.
func (q *Queue) lengthAt(pos uint64) uint32 {
	var b [lengthSize]byte
	for i := range b {
		b[i] = q.buf[(pos+uint64(i))&q.mask]
	}
	return binary.LittleEndian.Uint32(b[:])
}
