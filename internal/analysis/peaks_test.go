package analysis

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5}

	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 3},
		{100, 5},
		{25, 2},
		{90, 4.6},
	}
	for _, c := range cases {
		if got := Percentile(series, c.p); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %v, want %v", c.p, got, c.want)
		}
	}

	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("empty series percentile = %v, want 0", got)
	}
	if got := Percentile([]float64{7}, 80); got != 7 {
		t.Errorf("single element percentile = %v, want 7", got)
	}
}

func TestFindPeaksBasic(t *testing.T) {
	//           0    1     2    3     4    5
	series := []float64{0.1, 0.9, 0.2, 0.85, 0.3, 0.1}
	peaks := FindPeaks(series, PeakCriteria{Threshold: 0.5, MinScore: 0.5, MinProminence: 0.1})

	if len(peaks) != 2 || peaks[0] != 1 || peaks[1] != 3 {
		t.Errorf("expected peaks [1 3], got %v", peaks)
	}
}

func TestFindPeaksEndpointsExcluded(t *testing.T) {
	series := []float64{1.0, 0.2, 0.3, 0.2, 1.0}
	peaks := FindPeaks(series, PeakCriteria{})
	for _, p := range peaks {
		if p == 0 || p == len(series)-1 {
			t.Errorf("endpoint %d must never qualify", p)
		}
	}
}

func TestFindPeaksPlateau(t *testing.T) {
	// Non-strict comparison: every index of an interior plateau qualifies.
	series := []float64{0.1, 0.8, 0.8, 0.8, 0.1}
	peaks := FindPeaks(series, PeakCriteria{MinScore: 0.5, MinProminence: 0})

	if len(peaks) != 3 || peaks[0] != 1 || peaks[2] != 3 {
		t.Errorf("expected plateau indices [1 2 3], got %v", peaks)
	}
}

func TestFindPeaksProminence(t *testing.T) {
	// A bump that barely rises above its valleys is noise.
	series := []float64{0.70, 0.75, 0.70, 0.2, 0.9, 0.2}
	peaks := FindPeaks(series, PeakCriteria{MinScore: 0.5, MinProminence: 0.15})

	if len(peaks) != 1 || peaks[0] != 4 {
		t.Errorf("expected only the prominent peak at 4, got %v", peaks)
	}
}

func TestFindPeaksBelowMinScore(t *testing.T) {
	series := []float64{0.1, 0.4, 0.1, 0.45, 0.1}
	peaks := FindPeaks(series, PeakCriteria{MinScore: 0.6})
	if len(peaks) != 0 {
		t.Errorf("all peaks below min score must be rejected, got %v", peaks)
	}
}

// Peak selection is invariant to rescaling the series by a positive
// constant as long as threshold, min score and prominence scale with it.
func TestFindPeaksScaleInvariance(t *testing.T) {
	series := []float64{0.1, 0.9, 0.2, 0.85, 0.3, 0.7, 0.1, 0.95, 0.2}
	crit := PeakCriteria{Threshold: 0.5, MinScore: 0.5, MinProminence: 0.1}

	base := FindPeaks(series, crit)

	const k = 3.7
	scaled := make([]float64, len(series))
	for i, v := range series {
		scaled[i] = v * k
	}
	scaledCrit := PeakCriteria{
		Threshold:     crit.Threshold * k,
		MinScore:      crit.MinScore * k,
		MinProminence: crit.MinProminence * k,
	}

	got := FindPeaks(scaled, scaledCrit)
	if len(got) != len(base) {
		t.Fatalf("scaled selection differs: %v vs %v", got, base)
	}
	for i := range got {
		if got[i] != base[i] {
			t.Errorf("scaled selection differs at %d: %v vs %v", i, got, base)
		}
	}
}
