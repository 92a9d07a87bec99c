package highlight

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/joes9987/CreatorAssistant/internal/config"
	"github.com/joes9987/CreatorAssistant/internal/events"
)

// EventSelector maps logged kill events onto the recording's timeline.
type EventSelector struct {
	logger zerolog.Logger
	policy Policy
	cfg    config.GameEventsConfig
}

// NewEventSelector creates the event-log selector.
func NewEventSelector(logger zerolog.Logger, policy Policy, cfg config.GameEventsConfig) *EventSelector {
	return &EventSelector{
		logger: logger.With().Str("component", "event-selector").Logger(),
		policy: policy,
		cfg:    cfg,
	}
}

// FromLog turns a session's kill events into highlight candidates.
// recordingStart is the wall-clock Unix time the recording began (the video
// file's creation time in practice); each kill's video-relative time is
// wall_clock - recordingStart + configured offset.
//
// A nil return means "no usable events" and triggers signal fallback: no
// kills at all, or the my-kills filter matched nothing.
func (s *EventSelector) FromLog(log *events.EventLog, recordingStart float64) []Candidate {
	if log == nil {
		return nil
	}

	kills := log.Kills()
	if len(kills) == 0 {
		return nil
	}

	if s.cfg.FilterMyKillsOnly && s.cfg.PlayerSummonerName != "" {
		var mine []events.GameEvent
		for _, k := range kills {
			if k.KillerIs(s.cfg.PlayerSummonerName) {
				mine = append(mine, k)
			}
		}
		if len(mine) == 0 {
			s.logger.Info().
				Str("player", s.cfg.PlayerSummonerName).
				Int("kills", len(kills)).
				Msg("no kills by configured player")
			return nil
		}
		kills = mine
	}

	candidates := make([]Candidate, 0, len(kills))
	for _, k := range kills {
		videoSec := k.WallClockTime(log) - recordingStart + s.cfg.RecordingStartOffset
		start := videoSec - s.policy.PaddingBefore
		if start < 0 {
			start = 0
		}
		candidates = append(candidates, Candidate{
			Start:  start,
			End:    start + s.policy.ClipDuration,
			Score:  1.0,
			Source: SourceGameEvents,
		})
	}

	// Earliest kills win ties for a neighborhood, unlike the
	// score-ordered signal path.
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].Start < candidates[b].Start
	})
	selected := suppress(candidates, s.policy.MinSecondsBetweenClips, s.policy.MaxClipsPerVideo)

	s.logger.Info().
		Int("kills", len(kills)).
		Int("candidates", len(selected)).
		Msg("selected event highlights")

	return selected
}
