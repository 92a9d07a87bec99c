package highlight

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func testPolicy() Policy {
	return Policy{
		AudioWeight:            0.5,
		MotionWeight:           0.5,
		Sensitivity:            0.5,
		MinScore:               0.6,
		MinProminence:          0.15,
		MinSecondsBetweenClips: 120,
		MaxClipsPerVideo:       5,
		WindowSeconds:          4,
		ClipDuration:           30,
		PaddingBefore:          3,
		PaddingAfter:           2,
		MinClipLength:          15,
	}
}

func newTestSignalSelector(p Policy) *SignalSelector {
	return &SignalSelector{
		logger: zerolog.New(os.Stderr).Level(zerolog.Disabled),
		policy: p,
	}
}

// series builds a mostly-flat combined series with spikes at the given
// window indices.
func series(n int, spikes map[int]float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.1
	}
	for i, v := range spikes {
		out[i] = v
	}
	return out
}

func TestSelectTwoSeparatedPeaks(t *testing.T) {
	p := testPolicy()
	s := newTestSignalSelector(p)

	// Peaks at windows 10 (40 s) and 50 (200 s), 160 s apart; one
	// sub-threshold bump at window 30.
	combined := series(60, map[int]float64{10: 0.9, 30: 0.3, 50: 0.85})
	got := s.selectFromSeries(combined, 240)

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].Start >= got[1].Start {
		t.Errorf("candidates not sorted by start: %+v", got)
	}
	if got[0].Start != 37 { // 10*4 - 3 padding
		t.Errorf("first start = %v, want 37", got[0].Start)
	}
	if got[0].End != 67 {
		t.Errorf("first end = %v, want 67", got[0].End)
	}
	for _, c := range got {
		if c.Source != SourceSignal {
			t.Errorf("source = %q", c.Source)
		}
		if c.Score < p.MinScore {
			t.Errorf("selected candidate below min score: %+v", c)
		}
	}
}

func TestSelectAllBelowMinScore(t *testing.T) {
	s := newTestSignalSelector(testPolicy())

	combined := series(40, map[int]float64{10: 0.5, 25: 0.55})
	if got := s.selectFromSeries(combined, 160); len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}

func TestSelectEmptySeries(t *testing.T) {
	s := newTestSignalSelector(testPolicy())
	if got := s.selectFromSeries(nil, 0); len(got) != 0 {
		t.Errorf("expected no candidates for empty series, got %+v", got)
	}
}

func TestNMSSpacingAndCap(t *testing.T) {
	p := testPolicy()
	p.MaxClipsPerVideo = 3
	p.MinSecondsBetweenClips = 60
	s := newTestSignalSelector(p)

	// Six peaks, 40 s apart in video time (every 10th window).
	spikes := map[int]float64{}
	for i := 0; i < 6; i++ {
		spikes[10+10*i] = 0.7 + 0.05*float64(i)
	}
	got := s.selectFromSeries(series(80, spikes), 320)

	if len(got) > p.MaxClipsPerVideo {
		t.Fatalf("cap violated: %d candidates", len(got))
	}
	for i := 0; i < len(got); i++ {
		for j := i + 1; j < len(got); j++ {
			d := got[j].Start - got[i].Start
			if d < 0 {
				d = -d
			}
			if d < p.MinSecondsBetweenClips {
				t.Errorf("spacing violated between %+v and %+v", got[i], got[j])
			}
		}
	}
}

func TestNMSKeepsHighestScore(t *testing.T) {
	p := testPolicy()
	p.MinSecondsBetweenClips = 100
	s := newTestSignalSelector(p)

	// Two qualifying peaks 40 s apart; only the stronger survives.
	combined := series(40, map[int]float64{10: 0.7, 20: 0.95})
	got := s.selectFromSeries(combined, 160)

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", got)
	}
	if got[0].Score != 0.95 {
		t.Errorf("kept the weaker peak: %+v", got[0])
	}
}

func TestShortClipDiscarded(t *testing.T) {
	p := testPolicy()
	s := newTestSignalSelector(p)

	// Peak near the end of a short video: window 10 of a 50 s video gives
	// start 37, end clamped to 50, 13 s < min clip length 15.
	combined := series(13, map[int]float64{10: 0.9})
	if got := s.selectFromSeries(combined, 50); len(got) != 0 {
		t.Errorf("expected too-short clip to be discarded, got %+v", got)
	}
}

func TestSensitivityClamped(t *testing.T) {
	p := testPolicy()
	p.Sensitivity = 1.7 // would push the percentile argument negative
	s := newTestSignalSelector(p)

	combined := series(60, map[int]float64{10: 0.9, 50: 0.85})
	got := s.selectFromSeries(combined, 240)
	if len(got) == 0 {
		t.Error("clamped sensitivity should still select clear peaks")
	}
}

func TestAlignSeries(t *testing.T) {
	padded := alignSeries([]float64{1, 2, 3}, 5)
	want := []float64{1, 2, 3, 3, 3}
	for i := range want {
		if padded[i] != want[i] {
			t.Fatalf("edge padding wrong: %v", padded)
		}
	}

	truncated := alignSeries([]float64{1, 2, 3}, 2)
	if len(truncated) != 2 || truncated[1] != 2 {
		t.Errorf("truncation wrong: %v", truncated)
	}

	empty := alignSeries(nil, 3)
	for _, v := range empty {
		if v != 0 {
			t.Errorf("empty series should pad with zeros: %v", empty)
		}
	}
}
