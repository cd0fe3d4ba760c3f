package param

// Choice creates a parameter builder for a multiple choice parameter whose
// plain values are 0..len(names)-1.
func Choice(name string, names ...string) *Builder {
	maxVal := float64(len(names) - 1)
	if maxVal < 1 {
		maxVal = 1
	}
	b := New(name).
		Range(0, maxVal).
		Steps(int32(maxVal)).
		Format(FormatChoice)
	b.param.Flags |= IsList
	b.param.Choices = append([]string(nil), names...)
	return b
}

// Common parameter helpers

// GainParameter creates a standard gain parameter (-60 to +12dB, 0dB default)
func GainParameter(name string) *Builder {
	return New(name).
		Range(-60, 12).
		Default(0).
		Format(FormatDecibel)
}

// MixParameter creates a standard mix/blend parameter (0-100%)
func MixParameter(name string) *Builder {
	return New(name).
		Range(0, 100).
		Default(100).
		Format(FormatPercent)
}

// FrequencyParameter creates a frequency parameter
func FrequencyParameter(name string, min, max, defaultVal float64) *Builder {
	return New(name).
		Range(min, max).
		Default(defaultVal).
		Format(FormatFrequency)
}

// TimeParameter creates a time parameter in milliseconds
func TimeParameter(name string, minMs, maxMs, defaultMs float64) *Builder {
	return New(name).
		Range(minMs, maxMs).
		Default(defaultMs).
		Format(FormatTime)
}

// RatioParameter creates a compression/expansion ratio parameter
func RatioParameter(name string, minRatio, maxRatio, defaultRatio float64) *Builder {
	return New(name).
		Range(minRatio, maxRatio).
		Default(defaultRatio).
		Format(FormatRatio)
}

// PanParameter creates a stereo pan parameter
func PanParameter(name string) *Builder {
	return New(name).
		Range(-100, 100).
		Default(0).
		Format(FormatPan)
}

// DepthParameter creates a depth/amount parameter (0-100%)
func DepthParameter(name string) *Builder {
	return New(name).
		Range(0, 100).
		Default(50).
		Format(FormatPercent)
}

// OutputLevelMeter creates a read-only output level meter
func OutputLevelMeter(name string) *Builder {
	return New(name).
		Range(-60, 0).
		Default(-60).
		Format(FormatDecibel).
		ReadOnly()
}

// BypassParameter creates a bypass on/off switch
func BypassParameter(name string) *Builder {
	return Choice(name, "Active", "Bypassed").Bypass()
}
