// Package highlight finds short clip-worthy windows in gameplay recordings.
// Two selectors feed one output shape: the event selector maps logged kill
// timestamps onto the video timeline, and the signal selector fuses audio
// energy with visual motion and picks well-separated peaks.
package highlight

// Candidate source labels.
const (
	SourceGameEvents = "game_events"
	SourceSignal     = "signal"
)

// Candidate is one proposed highlight window, in seconds of video time.
// Start >= 0 and End > Start always hold; Score is 1.0 for event-derived
// candidates (events are ground truth, not ranked) and the combined
// excitement value for signal-derived ones.
type Candidate struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

// suppress keeps candidates in the given order, greedily accepting each one
// whose start is at least minBetween away from every accepted start, up to
// maxClips. A non-positive maxClips selects nothing. Ordering is the
// caller's ranking: score-descending for the signal path, start-ascending
// for the event path.
func suppress(candidates []Candidate, minBetween float64, maxClips int) []Candidate {
	var selected []Candidate
	for _, c := range candidates {
		if len(selected) >= maxClips {
			break
		}
		tooClose := false
		for _, s := range selected {
			d := c.Start - s.Start
			if d < 0 {
				d = -d
			}
			if d < minBetween {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		selected = append(selected, c)
	}
	return selected
}
