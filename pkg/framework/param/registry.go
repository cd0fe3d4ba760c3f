package param

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrSealed is returned when registering after the registry was sealed.
	ErrSealed = errors.New("param: registry is sealed")
	// ErrInvalidDescriptor is returned for descriptors that cannot be registered.
	ErrInvalidDescriptor = errors.New("param: invalid descriptor")
)

// Registry manages plugin parameters.
//
// Parameters are registered from the control context while the plugin is set
// up. Each gets the next sequential ID, which is also its index, and keeps it
// for the life of the registry; there is no removal. Seal ends registration
// and allocates the value cells. From then on the registry is immutable apart
// from the cells, so every query is lock-free and safe from either context.
type Registry struct {
	params []Parameter
	cells  []Cell
	byName map[string]uint32
	sealed atomic.Bool
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]uint32),
	}
}

// Register validates p, assigns it the next ID and stores a copy of it.
func (r *Registry) Register(p Parameter) (uint32, error) {
	if r.sealed.Load() {
		return 0, ErrSealed
	}
	if p.Name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	}
	if p.DefaultValue < 0 || p.DefaultValue > 1 {
		return 0, fmt.Errorf("%w: %q default %.3f outside 0-1", ErrInvalidDescriptor, p.Name, p.DefaultValue)
	}
	if _, exists := r.byName[p.Name]; exists {
		return 0, fmt.Errorf("%w: duplicate name %q", ErrInvalidDescriptor, p.Name)
	}
	if p.ShortName == "" {
		p.ShortName = p.Name
	}

	id := uint32(len(r.params))
	p.ID = id
	r.params = append(r.params, p)
	r.byName[p.Name] = id
	return id, nil
}

// Add registers several parameters in order, stopping at the first error.
func (r *Registry) Add(params ...Parameter) error {
	for _, p := range params {
		if _, err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// Seal ends registration and initializes every cell to its default value.
// Calling Seal again has no effect.
func (r *Registry) Seal() {
	if r.sealed.Load() {
		return
	}
	r.cells = make([]Cell, len(r.params))
	for i := range r.params {
		r.cells[i].Store(r.params[i].DefaultValue)
	}
	r.sealed.Store(true)
}

// Sealed reports whether registration has ended.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	return len(r.params)
}

// Get returns the descriptor for id, or nil if id is out of range. The
// descriptor must not be modified.
func (r *Registry) Get(id uint32) *Parameter {
	if id >= uint32(len(r.params)) {
		return nil
	}
	return &r.params[id]
}

// Info returns a copy of the descriptor at index.
func (r *Registry) Info(index int) (Parameter, bool) {
	if index < 0 || index >= len(r.params) {
		return Parameter{}, false
	}
	return r.params[index], true
}

// Lookup returns the ID of the parameter with the given name.
func (r *Registry) Lookup(name string) (uint32, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// All returns all parameters in order
func (r *Registry) All() []Parameter {
	result := make([]Parameter, len(r.params))
	copy(result, r.params)
	return result
}

// Cell returns the value cell for id, or nil if id is out of range or the
// registry is not sealed yet.
func (r *Registry) Cell(id uint32) *Cell {
	if !r.sealed.Load() || id >= uint32(len(r.cells)) {
		return nil
	}
	return &r.cells[id]
}

// Value returns the current normalized value of id. Before Seal it reports
// the default value.
func (r *Registry) Value(id uint32) (float64, bool) {
	if id >= uint32(len(r.params)) {
		return 0, false
	}
	if c := r.Cell(id); c != nil {
		return c.Load(), true
	}
	return r.params[id].DefaultValue, true
}

// SetValue stores a normalized value for id.
func (r *Registry) SetValue(id uint32, value float64) bool {
	c := r.Cell(id)
	if c == nil {
		return false
	}
	c.Store(value)
	return true
}

// ResetValues stores every parameter's default value.
func (r *Registry) ResetValues() {
	for i := range r.cells {
		r.cells[i].Store(r.params[i].DefaultValue)
	}
}

// AppendValueText appends the display text of a normalized value of id to
// dst. It does not allocate when dst has room.
func (r *Registry) AppendValueText(dst []byte, id uint32, value float64) ([]byte, bool) {
	p := r.Get(id)
	if p == nil {
		return dst, false
	}
	return p.AppendValue(dst, value), true
}

// ValueToText returns the display text of a normalized value of id.
func (r *Registry) ValueToText(id uint32, value float64) (string, bool) {
	p := r.Get(id)
	if p == nil {
		return "", false
	}
	return p.FormatValue(value), true
}

// TextToValue parses display text for id into a normalized value. When the
// text cannot be parsed the parameter's current value is returned with
// ok == false, so a caller that ignores the flag leaves the parameter as it
// was.
func (r *Registry) TextToValue(id uint32, text string) (float64, bool) {
	p := r.Get(id)
	if p == nil {
		return 0, false
	}
	v, err := p.ParseValue(text)
	if err != nil {
		current, _ := r.Value(id)
		return current, false
	}
	return v, true
}
