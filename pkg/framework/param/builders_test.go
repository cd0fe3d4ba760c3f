package param

import (
	"math"
	"testing"
)

func TestChoice(t *testing.T) {
	param := Choice("Mode", "Off", "Low", "Medium", "High").Build()

	if param.Flags&IsList == 0 {
		t.Error("Choice parameter should carry IsList")
	}

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			value    float64
			expected string
		}{
			{0, "Off"},
			{1, "Low"},
			{2, "Medium"},
			{3, "High"},
		}

		for _, test := range tests {
			normalized := test.value / 3.0 // 0-3 range
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f) = %s, want %s", test.value, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input         string
			expectedPlain float64
		}{
			{"Off", 0},
			{"low", 1},
			{"MEDIUM", 2},
			{"High", 3},
			{"2", 2},
		}

		for _, test := range tests {
			normalized, err := param.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%s) error: %v", test.input, err)
				continue
			}
			plain := param.Denormalize(normalized)
			if math.Abs(plain-test.expectedPlain) > 0.001 {
				t.Errorf("ParseValue(%s) = %f (plain), want %f", test.input, plain, test.expectedPlain)
			}
		}
	})
}

func TestGainParameter(t *testing.T) {
	param := GainParameter("Output Gain").Build()

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			plainValue float64
			expected   string
		}{
			{-60, "-∞ dB"},
			{6, "6.0 dB"},
			{-6, "-6.0 dB"},
			{12, "12.0 dB"},
		}

		for _, test := range tests {
			normalized := param.Normalize(test.plainValue)
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f dB) = %s, want %s", test.plainValue, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		normalized, err := param.ParseValue("-inf dB")
		if err != nil {
			t.Errorf("ParseValue error: %v", err)
		}
		if normalized != 0 {
			t.Errorf("ParseValue(-inf dB) = %f, want 0", normalized)
		}

		normalized, err = param.ParseValue("-6 dB")
		if err != nil {
			t.Fatalf("ParseValue error: %v", err)
		}
		if math.Abs(param.Denormalize(normalized)+6) > 0.001 {
			t.Errorf("ParseValue(-6 dB) = %f plain, want -6", param.Denormalize(normalized))
		}
	})
}

func TestMixParameter(t *testing.T) {
	param := MixParameter("Dry/Wet Mix").Build()

	if param.Min != 0 || param.Max != 100 {
		t.Errorf("Mix parameter range should be 0-100, got %f-%f", param.Min, param.Max)
	}

	if param.DefaultValue != 1.0 {
		t.Errorf("Mix parameter default should be 100%% (normalized 1.0), got %f", param.DefaultValue)
	}

	if got := param.FormatValue(0.5); got != "50%" {
		t.Errorf("FormatValue(0.5) = %s, want 50%%", got)
	}
}

func TestFrequencyParameter(t *testing.T) {
	param := FrequencyParameter("Cutoff", 20, 20000, 1000).Build()

	normalized := param.Normalize(1000)
	result := param.FormatValue(normalized)
	if result != "1.00 kHz" {
		t.Errorf("FormatValue(1000 Hz) = %s, want 1.00 kHz", result)
	}

	normalized, err := param.ParseValue("2.5 kHz")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if math.Abs(param.Denormalize(normalized)-2500) > 0.01 {
		t.Errorf("ParseValue(2.5 kHz) = %f Hz, want 2500", param.Denormalize(normalized))
	}
}

func TestTimeParameter(t *testing.T) {
	param := TimeParameter("Attack", 0, 5000, 10).Build()

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			plainValue float64
			expected   string
		}{
			{10, "10.0 ms"},
			{500, "500.0 ms"},
			{2500, "2.50 s"},
			{5000, "5.00 s"},
		}

		for _, test := range tests {
			normalized := param.Normalize(test.plainValue)
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f ms) = %s, want %s (min=%f, max=%f)", test.plainValue, result, test.expected, param.Min, param.Max)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input         string
			expectedPlain float64
		}{
			{"10 ms", 10},
			{"10ms", 10},
			{"1 s", 1000},
			{"1s", 1000},
			{"2.5 s", 2500},
			{"500 us", 0.5},
		}

		for _, test := range tests {
			normalized, err := param.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%s) error: %v", test.input, err)
				continue
			}
			plain := param.Denormalize(normalized)
			if math.Abs(plain-test.expectedPlain) > 0.1 {
				t.Errorf("ParseValue(%s) = %f ms (plain), want %f ms", test.input, plain, test.expectedPlain)
			}
		}
	})
}

func TestRatioParameter(t *testing.T) {
	param := RatioParameter("Ratio", 1, 20, 4).Build()

	if got := param.FormatValue(param.Normalize(1)); got != "1.0:1" {
		t.Errorf("FormatValue(1) = %s, want 1.0:1", got)
	}

	for _, input := range []string{"4:1", "4"} {
		normalized, err := param.ParseValue(input)
		if err != nil {
			t.Errorf("ParseValue(%s) error: %v", input, err)
			continue
		}
		if plain := param.Denormalize(normalized); math.Abs(plain-4) > 0.01 {
			t.Errorf("ParseValue(%s) = %f, want 4", input, plain)
		}
	}
}

func TestPanParameter(t *testing.T) {
	param := PanParameter("Pan").Build()

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			plainValue float64
			expected   string
		}{
			{0, "C"},
			{-50, "50L"},
			{50, "50R"},
			{-100, "100L"},
			{100, "100R"},
		}

		for _, test := range tests {
			normalized := param.Normalize(test.plainValue)
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f) = %s, want %s", test.plainValue, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input         string
			expectedPlain float64
		}{
			{"center", 0},
			{"c", 0},
			{"50 l", -50},
			{"50L", -50},
			{"50 r", 50},
			{"0.75", 75},
		}

		for _, test := range tests {
			normalized, err := param.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%s) error: %v", test.input, err)
				continue
			}
			plain := param.Denormalize(normalized)
			if math.Abs(plain-test.expectedPlain) > 0.1 {
				t.Errorf("ParseValue(%s) = %f, want %f", test.input, plain, test.expectedPlain)
			}
		}
	})
}

func TestToggleAndBypass(t *testing.T) {
	toggle := New("Enable").Toggle().Build()
	if got := toggle.FormatValue(1); got != "On" {
		t.Errorf("FormatValue(1) = %s, want On", got)
	}
	if got := toggle.FormatValue(0); got != "Off" {
		t.Errorf("FormatValue(0) = %s, want Off", got)
	}
	if v, err := toggle.ParseValue("yes"); err != nil || v != 1 {
		t.Errorf("ParseValue(yes) = %f, %v; want 1", v, err)
	}
	if _, err := toggle.ParseValue("maybe"); err == nil {
		t.Error("ParseValue(maybe) should fail")
	}

	bypass := BypassParameter("Bypass").Build()
	if bypass.Flags&IsBypass == 0 {
		t.Error("Bypass parameter should carry IsBypass")
	}
	if got := bypass.FormatValue(1); got != "Bypassed" {
		t.Errorf("FormatValue(1) = %s, want Bypassed", got)
	}
}

func TestOutputLevelMeter(t *testing.T) {
	meter := OutputLevelMeter("Level").Build()
	if meter.Automatable() {
		t.Error("Read-only meter should not be automatable")
	}
	if meter.Flags&IsReadOnly == 0 {
		t.Error("Meter should be read-only")
	}
}
