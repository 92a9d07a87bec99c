package analysis

import "sort"

// Percentile returns the p-th percentile (0-100) of the series using linear
// interpolation between closest ranks, matching numpy's default. Returns 0
// for an empty series.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// PeakCriteria filters candidate peaks.
type PeakCriteria struct {
	// Threshold is the adaptive percentile cut on the combined series.
	Threshold float64
	// MinScore is the absolute floor a peak must reach.
	MinScore float64
	// MinProminence is how far a peak must rise above its nearer valley;
	// filters flat noise from true spikes. Note this couples to the scale
	// of the series: rescaling the series without rescaling MinProminence
	// changes which peaks survive.
	MinProminence float64
}

// FindPeaks returns the indices of qualifying local maxima in the series.
// The maximum test is non-strict, so every index of a plateau qualifies;
// non-maximum suppression downstream resolves the duplicates.
func FindPeaks(series []float64, c PeakCriteria) []int {
	var peaks []int
	for i := 1; i < len(series)-1; i++ {
		score := series[i]
		if score < series[i-1] || score < series[i+1] {
			continue
		}
		if score < c.Threshold || score < c.MinScore {
			continue
		}
		valley := series[i-1]
		if series[i+1] < valley {
			valley = series[i+1]
		}
		if score-valley < c.MinProminence {
			continue
		}
		peaks = append(peaks, i)
	}
	return peaks
}
