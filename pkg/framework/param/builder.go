package param

// Builder provides a fluent API for creating parameter descriptors. IDs are
// not chosen here; Registry.Register assigns them.
type Builder struct {
	param Parameter
}

// New creates a new parameter builder
func New(name string) *Builder {
	return &Builder{
		param: Parameter{
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Flags:     CanAutomate,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Module sets the grouping path shown by hosts, e.g. "Filter/Envelope".
func (b *Builder) Module(path string) *Builder {
	b.param.Module = path
	return b
}

// Range sets the display min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = b.param.Normalize(value)
	return b
}

// DefaultNormalized sets the default value directly in 0-1.
func (b *Builder) DefaultNormalized(value float64) *Builder {
	b.param.DefaultValue = clamp01(value)
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Format selects the text conversion strategy.
func (b *Builder) Format(f Format) *Builder {
	b.param.Format = f
	return b
}

// Precision sets the number of decimals for FormatDecimal.
func (b *Builder) Precision(decimals int) *Builder {
	b.param.Precision = decimals
	return b
}

// Toggle creates a boolean parameter
func (b *Builder) Toggle() *Builder {
	b.param.Min = 0
	b.param.Max = 1
	b.param.StepCount = 1
	b.param.DefaultValue = 0
	b.param.Format = FormatOnOff
	return b
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// NotAutomatable clears the automation flag.
func (b *Builder) NotAutomatable() *Builder {
	b.param.Flags &^= CanAutomate
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= IsHidden
	return b
}

// Bypass marks this as the bypass parameter
func (b *Builder) Bypass() *Builder {
	b.param.Flags |= IsBypass
	return b
}

// Build returns the configured descriptor
func (b *Builder) Build() Parameter {
	return b.param
}
