// Package control implements the interaction logic of editor controls: how
// pointer input turns into gesture and value events for a parameter.
//
// Controls run on the control context. They never touch the processing
// context directly; every change goes out through an Editor.
package control

import "github.com/justyntemme/parambridge/pkg/framework/param"

// Editor receives the edits a control produces. flush.Editor satisfies it.
// Pending reports whether sent edits are still waiting for a flush.
type Editor interface {
	BeginEdit(id uint32) bool
	SetValue(id uint32, value float64) bool
	EndEdit(id uint32) bool
	Pending() bool
}

// Values reads live parameter values. param.Registry satisfies it.
type Values interface {
	Value(id uint32) (float64, bool)
}

// MouseKind is the kind of a pointer event.
type MouseKind uint8

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseMove
	MouseScroll
)

// MouseEvent is a pointer event in control coordinates. Y grows downwards.
type MouseEvent struct {
	Kind    MouseKind
	Button  int // 1 is the primary button
	Clicks  int // 2 or more for a double click
	Y       float64
	ScrollY float64
	Shift   bool

	// HoverOnScroll marks the synthetic hover some platforms send alongside a
	// scroll. It does not end a scroll gesture.
	HoverOnScroll bool
}

// DefaultDragDivisor is the normalized change per pixel of vertical drag.
const DefaultDragDivisor = 1.0 / 600

// FineScale multiplies drag and scroll deltas while shift is held.
const FineScale = 0.1

// Knob turns vertical drags and wheel scrolls into edits of one parameter.
//
// A press starts a gesture that the matching release ends. Scrolling starts
// a gesture that stays open until any non-scroll event arrives, so a burst of
// wheel ticks is one undo step on the host. Double-click resets the parameter
// to its default.
type Knob struct {
	param  param.Parameter
	editor Editor
	values Values

	// DragDivisor overrides DefaultDragDivisor when non-zero.
	DragDivisor float64
	// OnValueChanged is called whenever the displayed value changes.
	OnValueChanged func(value float64)

	value    float64
	dragFrom float64
	hover    bool
	inDrag   bool
	inScroll bool
}

// NewKnob creates a knob for p. The knob starts at the current value of p,
// or its default if values has none.
func NewKnob(p param.Parameter, editor Editor, values Values) *Knob {
	k := &Knob{param: p, editor: editor, values: values, value: p.DefaultValue}
	if values != nil {
		if v, ok := values.Value(p.ID); ok {
			k.value = v
		}
	}
	return k
}

// Param returns the parameter the knob controls.
func (k *Knob) Param() param.Parameter { return k.param }

// Value returns the normalized value the knob displays.
func (k *Knob) Value() float64 { return k.value }

// Hover reports whether the pointer is over the knob.
func (k *Knob) Hover() bool { return k.hover }

// Editing reports whether the knob holds an open gesture.
func (k *Knob) Editing() bool { return k.inDrag || k.inScroll }

// Text returns the displayed value as text.
func (k *Knob) Text() string { return k.param.FormatValue(k.value) }

// Mouse handles one pointer event and reports whether the knob needs a
// redraw.
func (k *Knob) Mouse(e MouseEvent) bool {
	redraw := !k.hover
	k.hover = true

	if e.Kind == MouseDown && e.Button == 1 {
		k.inDrag = true
		if !k.inScroll {
			k.editor.BeginEdit(k.param.ID)
		}
		k.dragFrom = e.Y
		redraw = true

		if e.Clicks > 1 {
			k.set(k.param.DefaultValue)
		}
	}

	if e.Kind == MouseMove && k.inDrag {
		delta := (k.dragFrom - e.Y) * k.scale(e) * k.divisor()
		k.dragFrom = e.Y
		k.set(k.value + delta)
		redraw = true
	}

	if e.Kind == MouseScroll {
		if !k.inScroll && !k.inDrag {
			k.editor.BeginEdit(k.param.ID)
		}
		k.inScroll = true
		k.set(k.value + e.ScrollY*k.scale(e)*k.divisor())
		redraw = true
	} else if k.inScroll && !e.HoverOnScroll {
		k.inScroll = false
		if !k.inDrag {
			k.editor.EndEdit(k.param.ID)
			redraw = true
		}
	}

	if e.Kind == MouseUp && k.inDrag {
		k.inDrag = false
		k.editor.EndEdit(k.param.ID)
		redraw = true
	}

	return redraw
}

// MouseExit handles the pointer leaving the knob. Any open gesture ends.
func (k *Knob) MouseExit() bool {
	k.hover = false
	if k.inDrag || k.inScroll {
		k.inDrag = false
		k.inScroll = false
		k.editor.EndEdit(k.param.ID)
	}
	return true
}

// Update polls the live value, which may have been changed by host
// automation, and reports whether the knob needs a redraw. The live value is
// not read while the knob's own edits are waiting for a flush.
func (k *Knob) Update() bool {
	if k.values == nil || k.editor.Pending() {
		return false
	}
	v, ok := k.values.Value(k.param.ID)
	if !ok || v == k.value {
		return false
	}
	k.value = v
	k.changed()
	return true
}

func (k *Knob) set(v float64) {
	k.value = clamp(v)
	k.editor.SetValue(k.param.ID, k.value)
	k.changed()
}

func (k *Knob) changed() {
	if k.OnValueChanged != nil {
		k.OnValueChanged(k.value)
	}
}

func (k *Knob) divisor() float64 {
	if k.DragDivisor != 0 {
		return k.DragDivisor
	}
	return DefaultDragDivisor
}

func (k *Knob) scale(e MouseEvent) float64 {
	if e.Shift {
		return FineScale
	}
	return 1
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < 0 || v != v:
		return 0
	}
	return v
}
