package analysis

import (
	"math"
	"testing"
)

func TestNormalizeRange(t *testing.T) {
	series := []float64{3, 7, 1, 9, 4}
	out := Normalize(series)

	if len(out) != len(series) {
		t.Fatalf("length changed: %d -> %d", len(series), len(out))
	}
	for i, v := range out {
		if v < 0 || v > 1 {
			t.Errorf("out[%d] = %v outside [0,1]", i, v)
		}
	}
	if out[3] != 1 {
		t.Errorf("maximum should map to 1, got %v", out[3])
	}
	if out[2] != 0 {
		t.Errorf("minimum should map to 0, got %v", out[2])
	}
}

func TestNormalizeConstant(t *testing.T) {
	out := Normalize([]float64{5, 5, 5})
	for i, v := range out {
		if v != 0 {
			t.Errorf("constant input should yield zeros, out[%d] = %v", i, v)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if out := Normalize(nil); len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	series := []float64{0, 0.25, 0.5, 1}
	once := Normalize(series)
	twice := Normalize(once)
	for i := range once {
		if math.Abs(once[i]-twice[i]) > 1e-12 {
			t.Errorf("normalize not idempotent at %d: %v vs %v", i, once[i], twice[i])
		}
	}
}
