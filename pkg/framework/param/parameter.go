package param

import (
	"math"
	"strconv"
	"strings"
)

// Parameter describes a plugin parameter. Descriptors are plain values held
// by the Registry arena; the live value is kept separately in a Cell.
type Parameter struct {
	ID           uint32 // assigned by Registry.Register
	Name         string
	ShortName    string
	Module       string // grouping path, e.g. "Filter/Envelope"
	Unit         string
	Min          float64 // display range, used by formatting only
	Max          float64
	DefaultValue float64 // normalized 0-1
	StepCount    int32
	Flags        uint32

	// Value formatting
	Format    Format
	Precision int      // decimals for FormatDecimal; 0 selects two, none when stepped
	Choices   []string // labels for FormatChoice
}

// Flags for parameters
const (
	CanAutomate     uint32 = 1 << 0
	IsReadOnly      uint32 = 1 << 1
	IsWrapAround    uint32 = 1 << 2
	IsList          uint32 = 1 << 3
	IsHidden        uint32 = 1 << 4
	IsProgramChange uint32 = 1 << 15
	IsBypass        uint32 = 1 << 16
)

// Automatable reports whether the host may record automation for the
// parameter.
func (p *Parameter) Automatable() bool {
	return p.Flags&CanAutomate != 0
}

// Stepped reports whether the parameter has discrete values.
func (p *Parameter) Stepped() bool {
	return p.StepCount > 0
}

// Normalize converts plain to normalized value (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return clamp01(plain)
	}
	return clamp01((plain - p.Min) / (p.Max - p.Min))
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	if p.Max <= p.Min {
		return normalized
	}
	plain := p.Min + clamp01(normalized)*(p.Max-p.Min)
	if p.StepCount > 0 {
		step := (p.Max - p.Min) / float64(p.StepCount)
		plain = p.Min + math.Round((plain-p.Min)/step)*step
	}
	return plain
}

// AppendValue appends the display text for a normalized value to dst. It does
// not allocate when dst has room for the text.
func (p *Parameter) AppendValue(dst []byte, normalized float64) []byte {
	dst = p.Format.appendPlain(dst, p, p.Denormalize(normalized))
	if p.Unit != "" && !p.Format.hasUnit() {
		dst = append(dst, ' ')
		dst = append(dst, p.Unit...)
	}
	return dst
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	var buf [64]byte
	return string(p.AppendValue(buf[:0], normalized))
}

// ParseValue parses display text to a normalized value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	s := strings.TrimSpace(str)
	if p.Unit != "" && !p.Format.hasUnit() {
		s = strings.TrimSpace(strings.TrimSuffix(s, p.Unit))
	}
	plain, err := p.Format.parsePlain(p, s)
	if err != nil {
		return 0, err
	}
	return p.Normalize(plain), nil
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// scanFloat is the permissive numeric scan used when no format-specific
// parser applies: it takes the longest leading prefix that parses as a float.
func scanFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			end++
			continue
		}
		break
	}
	for ; end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, nil
		}
	}
	return strconv.ParseFloat(s, 64)
}
