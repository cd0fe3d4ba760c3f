package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format selects how a parameter value is turned into display text and back.
// The set is closed so conversions never go through stored closures.
type Format uint8

const (
	// FormatDecimal prints the plain value with fixed precision (two decimals,
	// none for stepped parameters) and parses with a permissive numeric scan.
	FormatDecimal Format = iota
	FormatPercent
	FormatDecibel
	FormatFrequency
	FormatTime // plain value in milliseconds
	FormatRatio
	FormatPan // plain value -1..1 or -100..100
	FormatOnOff
	FormatChoice
	FormatNote
)

// decibelFloor is the level at and below which values print as -∞ dB.
const decibelFloor = -60.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteOffsets = map[string]int{
	"C":  0,
	"B#": 0,
	"C#": 1,
	"DB": 1,
	"D":  2,
	"D#": 3,
	"EB": 3,
	"E":  4,
	"FB": 4,
	"F":  5,
	"E#": 5,
	"F#": 6,
	"GB": 6,
	"G":  7,
	"G#": 8,
	"AB": 8,
	"A":  9,
	"A#": 10,
	"BB": 10,
	"B":  11,
	"CB": 11,
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatDecimal:
		return "decimal"
	case FormatPercent:
		return "percent"
	case FormatDecibel:
		return "decibel"
	case FormatFrequency:
		return "frequency"
	case FormatTime:
		return "time"
	case FormatRatio:
		return "ratio"
	case FormatPan:
		return "pan"
	case FormatOnOff:
		return "onoff"
	case FormatChoice:
		return "choice"
	case FormatNote:
		return "note"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// hasUnit reports whether the format prints its own unit, in which case the
// descriptor's Unit is not appended.
func (f Format) hasUnit() bool {
	return f != FormatDecimal
}

func (f Format) appendPlain(dst []byte, p *Parameter, v float64) []byte {
	switch f {
	case FormatPercent:
		dst = strconv.AppendFloat(dst, v, 'f', 0, 64)
		return append(dst, '%')
	case FormatDecibel:
		if v <= decibelFloor {
			return append(dst, "-∞ dB"...)
		}
		dst = strconv.AppendFloat(dst, v, 'f', 1, 64)
		return append(dst, " dB"...)
	case FormatFrequency:
		if v >= 1000 {
			dst = strconv.AppendFloat(dst, v/1000, 'f', 2, 64)
			return append(dst, " kHz"...)
		}
		dst = strconv.AppendFloat(dst, v, 'f', 1, 64)
		return append(dst, " Hz"...)
	case FormatTime:
		switch {
		case v < 1:
			dst = strconv.AppendFloat(dst, v*1000, 'f', 2, 64)
			return append(dst, " µs"...)
		case v < 1000:
			dst = strconv.AppendFloat(dst, v, 'f', 1, 64)
			return append(dst, " ms"...)
		}
		dst = strconv.AppendFloat(dst, v/1000, 'f', 2, 64)
		return append(dst, " s"...)
	case FormatRatio:
		dst = strconv.AppendFloat(dst, v, 'f', 1, 64)
		return append(dst, ":1"...)
	case FormatPan:
		pan := v
		if p.Max > 1 || p.Min < -1 {
			pan = v / 100
		}
		if math.Abs(pan) < 0.01 {
			return append(dst, 'C')
		}
		if pan < 0 {
			dst = strconv.AppendFloat(dst, -pan*100, 'f', 0, 64)
			return append(dst, 'L')
		}
		dst = strconv.AppendFloat(dst, pan*100, 'f', 0, 64)
		return append(dst, 'R')
	case FormatOnOff:
		if v > (p.Min+p.Max)/2 {
			return append(dst, "On"...)
		}
		return append(dst, "Off"...)
	case FormatChoice:
		idx := int(math.Round(v - p.Min))
		if idx >= 0 && idx < len(p.Choices) {
			return append(dst, p.Choices[idx]...)
		}
		return strconv.AppendInt(dst, int64(idx), 10)
	case FormatNote:
		n := int(math.Round(v))
		if n < 0 {
			return strconv.AppendInt(dst, int64(n), 10)
		}
		dst = append(dst, noteNames[n%12]...)
		return strconv.AppendInt(dst, int64(n/12-1), 10)
	}

	prec := 2
	switch {
	case p.StepCount > 0:
		prec = 0
	case p.Precision > 0:
		prec = p.Precision
	}
	return strconv.AppendFloat(dst, v, 'f', prec, 64)
}

func (f Format) parsePlain(p *Parameter, s string) (float64, error) {
	switch f {
	case FormatPercent:
		return PercentParser(s)
	case FormatDecibel:
		v, err := DecibelParser(s)
		if err == nil && math.IsInf(v, -1) {
			return p.Min, nil
		}
		return v, err
	case FormatFrequency:
		return FrequencyParser(s)
	case FormatTime:
		return TimeParser(s)
	case FormatRatio:
		return RatioParser(s)
	case FormatPan:
		v, err := PanParser(s)
		if err != nil {
			return 0, err
		}
		if p.Max > 1 || p.Min < -1 {
			return v * 100, nil
		}
		return v, nil
	case FormatOnOff:
		v, err := OnOffParser(s)
		if err != nil {
			return 0, err
		}
		if v > 0 {
			return p.Max, nil
		}
		return p.Min, nil
	case FormatChoice:
		for i, name := range p.Choices {
			if strings.EqualFold(s, name) {
				return p.Min + float64(i), nil
			}
		}
		return scanFloat(s)
	case FormatNote:
		return NoteParser(s)
	}
	return scanFloat(s)
}

// FrequencyParser parses frequency strings
func FrequencyParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	// Handle kHz
	if strings.HasSuffix(str, "kHz") || strings.HasSuffix(str, "khz") {
		numStr := strings.TrimSuffix(strings.TrimSuffix(str, "kHz"), "khz")
		val, err := scanFloat(numStr)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	str = strings.TrimSuffix(strings.TrimSuffix(str, "Hz"), "hz")
	return scanFloat(str)
}

// DecibelParser parses dB strings. Infinity parses as negative infinity.
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(strings.ToLower(str), "inf") {
		return math.Inf(-1), nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return scanFloat(str)
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	return scanFloat(strings.TrimSuffix(strings.TrimSpace(str), "%"))
}

// TimeParser parses time strings into milliseconds
func TimeParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "µs") || strings.HasSuffix(str, "us") {
		val, err := scanFloat(strings.TrimSuffix(strings.TrimSuffix(str, "µs"), "us"))
		if err != nil {
			return 0, err
		}
		return val / 1000, nil
	}

	if strings.HasSuffix(str, "s") && !strings.HasSuffix(str, "ms") {
		val, err := scanFloat(strings.TrimSuffix(str, "s"))
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	return scanFloat(strings.TrimSuffix(str, "ms"))
}

// RatioParser parses ratio strings
func RatioParser(str string) (float64, error) {
	return scanFloat(strings.TrimSuffix(strings.TrimSpace(str), ":1"))
}

// PanParser parses pan position strings into -1..1
func PanParser(str string) (float64, error) {
	str = strings.ToUpper(strings.TrimSpace(str))

	if str == "C" || str == "CENTER" {
		return 0, nil
	}

	if numStr, ok := strings.CutSuffix(str, "L"); ok {
		val, err := scanFloat(numStr)
		if err != nil {
			return 0, err
		}
		return -val / 100, nil
	}

	if numStr, ok := strings.CutSuffix(str, "R"); ok {
		val, err := scanFloat(numStr)
		if err != nil {
			return 0, err
		}
		return val / 100, nil
	}

	return scanFloat(str)
}

// NoteParser parses note names to MIDI numbers
func NoteParser(str string) (float64, error) {
	str = strings.ToUpper(strings.TrimSpace(str))

	octaveStart := strings.IndexFunc(str, func(ch rune) bool {
		return ch >= '0' && ch <= '9' || ch == '-'
	})
	if octaveStart <= 0 {
		return 0, fmt.Errorf("no octave number found in note: %s", str)
	}

	noteOffset, ok := noteOffsets[str[:octaveStart]]
	if !ok {
		return 0, fmt.Errorf("unknown note name: %s", str[:octaveStart])
	}

	octave, err := strconv.Atoi(str[octaveStart:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave number: %s", str[octaveStart:])
	}

	return float64((octave+1)*12 + noteOffset), nil
}

// OnOffParser parses On/Off strings
func OnOffParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected 'on' or 'off', got: %s", str)
	}
}
