// Package process provides the per-block view of a plugin instance used on
// the processing context.
package process

import (
	"github.com/justyntemme/parambridge/pkg/event"
	"github.com/justyntemme/parambridge/pkg/framework/param"
)

// Context carries one processing block: its size, the host's event lists and
// lock-free access to parameter values. Reuse one Context across blocks; none
// of its methods allocate.
type Context struct {
	SampleRate float64
	Frames     uint32
	SteadyTime int64 // frames processed before this block

	In  event.InputEvents
	Out event.OutputEvents

	params *param.Registry
}

// NewContext creates a context reading values from a sealed registry.
func NewContext(sampleRate float64, params *param.Registry) *Context {
	return &Context{
		SampleRate: sampleRate,
		In:         event.Empty,
		params:     params,
	}
}

// Begin prepares the context for the next block.
func (c *Context) Begin(frames uint32, in event.InputEvents, out event.OutputEvents) {
	c.SteadyTime += int64(c.Frames)
	c.Frames = frames
	if in == nil {
		in = event.Empty
	}
	c.In = in
	c.Out = out
}

// Reset rewinds the clock, e.g. on activation.
func (c *Context) Reset() {
	c.SteadyTime = 0
	c.Frames = 0
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if cell := c.params.Cell(id); cell != nil {
		return cell.Load()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	p := c.params.Get(id)
	cell := c.params.Cell(id)
	if p == nil || cell == nil {
		return 0
	}
	return p.Denormalize(cell.Load())
}

// ParamOn reports whether a toggle parameter is on.
func (c *Context) ParamOn(id uint32) bool {
	return c.Param(id) >= 0.5
}

// SetOutput writes a read-only parameter such as a meter. Host-writable
// parameters must only change through events.
func (c *Context) SetOutput(id uint32, plain float64) bool {
	p := c.params.Get(id)
	cell := c.params.Cell(id)
	if p == nil || cell == nil || p.Flags&param.IsReadOnly == 0 {
		return false
	}
	cell.Store(p.Normalize(plain))
	return true
}

// Duration returns the block length in seconds.
func (c *Context) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Frames) / c.SampleRate
}
