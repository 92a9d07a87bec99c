package analysis

import "math"

// AudioEnergy computes RMS energy over 0.5 s hops of the signal, then
// averages the hops into roughly one bucket per windowSeconds. High energy
// tracks action: team fights, kills, shout-casting.
//
// When the hop series is already no longer than the requested window count
// it is returned as-is; the estimator never upsamples.
func AudioEnergy(samples []float64, sampleRate int, windowSeconds float64) []float64 {
	if len(samples) == 0 || sampleRate <= 0 {
		return nil
	}

	hop := sampleRate / 2
	if hop < 1 {
		hop = 1
	}

	rms := make([]float64, 0, len(samples)/hop+1)
	for start := 0; start < len(samples); start += hop {
		end := start + hop
		if end > len(samples) {
			end = len(samples)
		}
		var sum float64
		for _, s := range samples[start:end] {
			sum += s * s
		}
		rms = append(rms, math.Sqrt(sum/float64(end-start)))
	}

	// 2 hops per second of audio.
	hopsPerWindow := int(windowSeconds * 2)
	if hopsPerWindow < 1 {
		hopsPerWindow = 1
	}
	nWindows := len(rms) / hopsPerWindow
	if nWindows < 1 {
		nWindows = 1
	}
	if nWindows >= len(rms) {
		return rms
	}

	downsampled := make([]float64, nWindows)
	for i := 0; i < nWindows; i++ {
		start := i * len(rms) / nWindows
		end := (i + 1) * len(rms) / nWindows
		downsampled[i] = mean(rms[start:end])
	}
	return downsampled
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
