package bmi

import (
	"encoding/json"
	"math"
	"testing"

	"bmi-tracker/internal/apperr"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		weight, height float64
		want           string
	}{
		{name: "reference", weight: 70, height: 175, want: "22.86"},
		{name: "round down", weight: 50, height: 160, want: "19.53"},
		{name: "repeating", weight: 80, height: 180, want: "24.69"},
		{name: "half rounds up", weight: 90.02, height: 200, want: "22.51"},
		{name: "exact half at one metre", weight: 20.125, height: 100, want: "20.13"},
		{name: "trailing zero kept", weight: 90, height: 200, want: "22.50"},
		{name: "fractional height", weight: 61.3, height: 168.5, want: "21.59"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.weight, tc.height)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Fatalf("Calculate(%v, %v) = %s; want %s", tc.weight, tc.height, got, tc.want)
			}
		})
	}
}

func TestCalculateMatchesFormulaAcrossGrid(t *testing.T) {
	for w := 30.0; w <= 200; w += 7.3 {
		for h := 120.0; h <= 220; h += 3.7 {
			got, err := Calculate(w, h)
			if err != nil {
				t.Fatalf("Calculate(%v, %v): %v", w, h, err)
			}
			exact := w / math.Pow(h/100, 2)
			if diff := math.Abs(got.Float64() - exact); diff > 0.005+1e-9 {
				t.Fatalf("Calculate(%v, %v) = %s; exact %v differs by %v", w, h, got, exact, diff)
			}
		}
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name           string
		weight, height float64
	}{
		{"zero weight", 0, 175},
		{"negative weight", -70, 175},
		{"zero height", 70, 0},
		{"negative height", 70, -175},
		{"nan weight", math.NaN(), 175},
		{"infinite height", 70, math.Inf(1)},
		{"rounds to zero", 1e-300, 1e300},
		{"just below a hundredth", 0.004, 100},
		{"above max", 1e300, 1e-5},
		{"just above max", 1000, 31.6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.weight, tc.height)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !apperr.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestCalculateBounds(t *testing.T) {
	lo, err := Calculate(0.005, 100)
	if err != nil {
		t.Fatalf("smallest positive BMI: %v", err)
	}
	if lo.String() != "0.01" {
		t.Fatalf("expected 0.01, got %s", lo)
	}

	hi, err := Calculate(9999.99, 100)
	if err != nil {
		t.Fatalf("largest BMI: %v", err)
	}
	if hi.String() != Max {
		t.Fatalf("expected %s, got %s", Max, hi)
	}
}

func TestValueIsZeroAndEqual(t *testing.T) {
	var zero Value
	if !zero.IsZero() {
		t.Fatal("expected the zero Value to report IsZero")
	}
	if MustParse("0.01").IsZero() {
		t.Fatal("expected 0.01 not to report IsZero")
	}
	if !MustParse("22.5").Equal(MustParse("22.50")) {
		t.Fatal("expected 22.5 to equal 22.50")
	}
	if MustParse("22.5").Equal(MustParse("22.51")) {
		t.Fatal("expected 22.5 not to equal 22.51")
	}
}

func TestValueScanRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		var v Value
		if err := v.Scan(f); err == nil {
			t.Fatalf("expected error scanning %v, got %s", f, v)
		}
	}
}

func TestValueJSON(t *testing.T) {
	v := MustParse("22.5")

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"22.50"` {
		t.Fatalf("expected quoted fixed string, got %s", b)
	}

	for _, in := range []string{`"22.86"`, `22.86`} {
		var got Value
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !got.Equal(MustParse("22.86")) {
			t.Fatalf("unmarshal %s: got %s", in, got)
		}
	}
}

func TestValueScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"real", 22.86, "22.86"},
		{"real trailing zero", 22.5, "22.50"},
		{"numeric bytes", []byte("24.69"), "24.69"},
		{"text", "19.53", "19.53"},
		{"integer", int64(25), "25.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v Value
			if err := v.Scan(tc.src); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if v.String() != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, v)
			}
		})
	}

	dv, err := MustParse("22.86").Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if dv != "22.86" {
		t.Fatalf("expected driver value %q, got %#v", "22.86", dv)
	}
}
