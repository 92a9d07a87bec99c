package analysis

import (
	"math"
	"testing"
)

// sine produces n seconds of a tone at the given amplitude.
func sine(seconds float64, sampleRate int, amplitude float64) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
	}
	return out
}

func TestAudioEnergyLength(t *testing.T) {
	const sr = 22050

	cases := []struct {
		name    string
		seconds float64
		window  float64
		want    int
	}{
		// 60 s -> 120 hops -> 120/(4*2) = 15 windows
		{"minute at 4s windows", 60, 4, 15},
		// 10 s -> 20 hops -> 20/(5*2) = 2 windows
		{"short at 5s windows", 10, 5, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := AudioEnergy(sine(c.seconds, sr, 0.5), sr, c.window)
			if len(out) != c.want {
				t.Errorf("got %d windows, want %d", len(out), c.want)
			}
		})
	}
}

func TestAudioEnergyNoUpsampling(t *testing.T) {
	const sr = 22050
	// 2 s -> 4 hops with 60 s windows collapses to the single-bucket floor.
	out := AudioEnergy(sine(2, sr, 0.5), sr, 60)
	if len(out) != 1 {
		t.Errorf("expected single bucket for tiny input, got %d", len(out))
	}
}

func TestAudioEnergyLoudSectionScoresHigher(t *testing.T) {
	const sr = 22050
	quiet := sine(20, sr, 0.05)
	loud := sine(20, sr, 0.9)
	samples := append(quiet, loud...)

	out := AudioEnergy(samples, sr, 4)
	if len(out) != 10 {
		t.Fatalf("expected 10 windows, got %d", len(out))
	}
	if out[len(out)-1] <= out[0] {
		t.Errorf("loud half should score higher: first=%v last=%v", out[0], out[len(out)-1])
	}
}

func TestAudioEnergyValuesNonNegative(t *testing.T) {
	out := AudioEnergy(sine(30, 22050, 0.7), 22050, 4)
	for i, v := range out {
		if v < 0 {
			t.Errorf("rms must be non-negative, out[%d] = %v", i, v)
		}
	}
}

func TestAudioEnergyEmptyInput(t *testing.T) {
	if out := AudioEnergy(nil, 22050, 4); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}
