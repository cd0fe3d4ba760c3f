package param

import (
	"errors"
	"testing"
)

func newSealedRegistry(t *testing.T, params ...Parameter) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Add(params...); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	r.Seal()
	return r
}

func TestRegistryStableIDs(t *testing.T) {
	r := NewRegistry()

	idA, err := r.Register(New("A").Build())
	if err != nil {
		t.Fatalf("Register(A) failed: %v", err)
	}
	idB, err := r.Register(New("B").Build())
	if err != nil {
		t.Fatalf("Register(B) failed: %v", err)
	}
	if idA != 0 || idB != 1 {
		t.Fatalf("Expected ids 0 and 1, got %d and %d", idA, idB)
	}

	r.Seal()

	for i := 0; i < 3; i++ {
		if p := r.Get(idA); p == nil || p.Name != "A" || p.ID != idA {
			t.Errorf("Get(%d) = %+v, want A", idA, p)
		}
		if p := r.Get(idB); p == nil || p.Name != "B" || p.ID != idB {
			t.Errorf("Get(%d) = %+v, want B", idB, p)
		}
		if info, ok := r.Info(1); !ok || info.Name != "B" {
			t.Errorf("Info(1) = %+v, %v; want B", info, ok)
		}
	}

	if id, ok := r.Lookup("B"); !ok || id != idB {
		t.Errorf("Lookup(B) = %d, %v", id, ok)
	}
	if r.Count() != 2 {
		t.Errorf("Expected count 2, got %d", r.Count())
	}
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		param Parameter
	}{
		{"EmptyName", Parameter{}},
		{"DefaultOutOfRange", Parameter{Name: "X", DefaultValue: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Register(tt.param); !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("Expected ErrInvalidDescriptor, got %v", err)
			}
		})
	}

	t.Run("Duplicate", func(t *testing.T) {
		if _, err := r.Register(New("Gain").Build()); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		if _, err := r.Register(New("Gain").Build()); !errors.Is(err, ErrInvalidDescriptor) {
			t.Errorf("Expected ErrInvalidDescriptor for duplicate, got %v", err)
		}
	})

	t.Run("Sealed", func(t *testing.T) {
		r.Seal()
		if _, err := r.Register(New("Late").Build()); !errors.Is(err, ErrSealed) {
			t.Errorf("Expected ErrSealed, got %v", err)
		}
		if r.Count() != 1 {
			t.Errorf("Failed registrations must not consume ids, count = %d", r.Count())
		}
	})
}

func TestRegistryOutOfRange(t *testing.T) {
	r := newSealedRegistry(t, New("Gain").Build())

	if p := r.Get(5); p != nil {
		t.Error("Get(5) should be nil")
	}
	if _, ok := r.Info(-1); ok {
		t.Error("Info(-1) should fail")
	}
	if _, ok := r.Info(1); ok {
		t.Error("Info(1) should fail")
	}
	if _, ok := r.Value(1); ok {
		t.Error("Value(1) should fail")
	}
	if r.SetValue(1, 0.5) {
		t.Error("SetValue(1) should fail")
	}
	if _, ok := r.ValueToText(1, 0.5); ok {
		t.Error("ValueToText(1) should fail")
	}
	if _, ok := r.TextToValue(1, "0.5"); ok {
		t.Error("TextToValue(1) should fail")
	}
	if c := r.Cell(1); c != nil {
		t.Error("Cell(1) should be nil")
	}
}

func TestRegistryValues(t *testing.T) {
	r := NewRegistry()
	id, _ := r.Register(New("Gain").DefaultNormalized(0.5).Build())

	if v, ok := r.Value(id); !ok || v != 0.5 {
		t.Errorf("Value before Seal = %f, %v; want default 0.5", v, ok)
	}
	if r.Cell(id) != nil {
		t.Error("Cell should be nil before Seal")
	}
	if r.SetValue(id, 0.2) {
		t.Error("SetValue should fail before Seal")
	}

	r.Seal()

	if v, _ := r.Value(id); v != 0.5 {
		t.Errorf("Value after Seal = %f, want 0.5", v)
	}
	r.SetValue(id, 0.7)
	if v, _ := r.Value(id); v != 0.7 {
		t.Errorf("Value = %f, want 0.7", v)
	}

	r.SetValue(id, 3)
	if v, _ := r.Value(id); v != 1 {
		t.Errorf("Value should clamp to 1, got %f", v)
	}
	r.SetValue(id, -3)
	if v, _ := r.Value(id); v != 0 {
		t.Errorf("Value should clamp to 0, got %f", v)
	}

	r.ResetValues()
	if v, _ := r.Value(id); v != 0.5 {
		t.Errorf("Value after ResetValues = %f, want 0.5", v)
	}
}

func TestRegistryTextConversion(t *testing.T) {
	r := newSealedRegistry(t,
		New("Gain").DefaultNormalized(0.5).Build(),
		New("Level").Unit("x").Precision(3).Build(),
	)

	t.Run("DefaultDecimal", func(t *testing.T) {
		text, ok := r.ValueToText(0, 0.25)
		if !ok || text != "0.25" {
			t.Errorf("ValueToText = %q, %v; want 0.25", text, ok)
		}
		text, _ = r.ValueToText(1, 0.5)
		if text != "0.500 x" {
			t.Errorf("ValueToText with unit = %q, want \"0.500 x\"", text)
		}
	})

	t.Run("PermissiveParse", func(t *testing.T) {
		tests := []struct {
			input string
			want  float64
		}{
			{"0.3", 0.3},
			{" 0.3 ", 0.3},
			{"0.3abc", 0.3},
			{"0.75 x", 0.75},
			{"7", 1},
		}
		for _, tt := range tests {
			id := uint32(0)
			if tt.input == "0.75 x" {
				id = 1
			}
			v, ok := r.TextToValue(id, tt.input)
			if !ok || v != tt.want {
				t.Errorf("TextToValue(%q) = %f, %v; want %f", tt.input, v, ok, tt.want)
			}
		}
	})

	t.Run("UnparseableFallsBackToCurrent", func(t *testing.T) {
		r.SetValue(0, 0.42)
		v, ok := r.TextToValue(0, "loud")
		if ok {
			t.Error("TextToValue(loud) should report failure")
		}
		if v != 0.42 {
			t.Errorf("TextToValue(loud) = %f, want current value 0.42", v)
		}
		again, _ := r.TextToValue(0, "loud")
		if again != v {
			t.Errorf("Fallback should be deterministic, got %f then %f", v, again)
		}
	})

	t.Run("AppendDoesNotAllocate", func(t *testing.T) {
		buf := make([]byte, 0, 64)
		allocs := testing.AllocsPerRun(100, func() {
			buf, _ = r.AppendValueText(buf[:0], 0, 0.125)
		})
		if allocs != 0 {
			t.Errorf("AppendValueText allocated %.0f times", allocs)
		}
		if string(buf) != "0.13" && string(buf) != "0.12" {
			t.Errorf("AppendValueText = %q", buf)
		}
	})
}

func TestNoteFormat(t *testing.T) {
	p := New("Root").Range(0, 127).Default(60).Format(FormatNote).Build()

	if got := p.FormatValue(p.DefaultValue); got != "C4" {
		t.Errorf("FormatValue(60) = %s, want C4", got)
	}
	v, err := p.ParseValue("A4")
	if err != nil {
		t.Fatalf("ParseValue(A4) error: %v", err)
	}
	if got := p.FormatValue(v); got != "A4" {
		t.Errorf("round trip A4 = %s", got)
	}
	if _, err := p.ParseValue("H4"); err == nil {
		t.Error("ParseValue(H4) should fail")
	}
}

func TestCell(t *testing.T) {
	var c Cell
	if c.Load() != 0 {
		t.Errorf("zero Cell should load 0, got %f", c.Load())
	}
	c.Store(0.33)
	if c.Load() != 0.33 {
		t.Errorf("Load = %f, want 0.33", c.Load())
	}
}
