package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 8000, 0.5, 16)
	if len(s) != 16 {
		t.Fatalf("len = %d, want 16", len(s))
	}

	// fs/8: one period every 8 samples, peaks at n = 2 and troughs at n = 6.
	want := map[int]float64{0: 0, 2: 0.5, 4: 0, 6: -0.5, 8: 0, 10: 0.5}
	for n, v := range want {
		if math.Abs(s[n]-v) > 1e-12 {
			t.Fatalf("s[%d] = %v, want %v", n, s[n], v)
		}
	}

	if !slices.Equal(s, DeterministicSine(1000, 8000, 0.5, 16)) {
		t.Fatal("sine is not reproducible")
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 256)
	if len(a) != 256 {
		t.Fatalf("len = %d, want 256", len(a))
	}

	for n, v := range a {
		if v < -0.25 || v >= 0.25 {
			t.Fatalf("a[%d] = %v outside [-0.25, 0.25)", n, v)
		}
	}

	if !slices.Equal(a, DeterministicNoise(42, 0.25, 256)) {
		t.Fatal("same seed produced different noise")
	}

	if slices.Equal(a, DeterministicNoise(43, 0.25, 256)) {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	tests := []struct {
		name        string
		length, pos int
		want        []float64
	}{
		{"front", 4, 0, []float64{1, 0, 0, 0}},
		{"middle", 4, 2, []float64{0, 0, 1, 0}},
		{"past end", 4, 10, []float64{0, 0, 0, 0}},
		{"negative", 3, -1, []float64{0, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Impulse(tc.length, tc.pos); !slices.Equal(got, tc.want) {
				t.Fatalf("Impulse(%d, %d) = %v, want %v", tc.length, tc.pos, got, tc.want)
			}
		})
	}
}

func TestRampAndNarrowing(t *testing.T) {
	r := Ramp(5)
	if !slices.Equal(r, []float64{0, 1, 2, 3, 4}) {
		t.Fatalf("Ramp(5) = %v", r)
	}

	if got := ToFloat32([]float64{0.5, -2, 1e3}); !slices.Equal(got, []float32{0.5, -2, 1e3}) {
		t.Fatalf("ToFloat32 = %v", got)
	}

	if got := ToFloat32(nil); len(got) != 0 {
		t.Fatalf("ToFloat32(nil) = %v, want empty", got)
	}
}
