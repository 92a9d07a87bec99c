package highlight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/joes9987/CreatorAssistant/internal/config"
	"github.com/joes9987/CreatorAssistant/internal/events"
	"github.com/joes9987/CreatorAssistant/internal/ffmpeg"
)

// Detector is the detection orchestrator: it tries the event path first and
// falls back to signal analysis. The event path short-circuits: when it
// yields candidates the signal pipeline never runs.
type Detector struct {
	logger zerolog.Logger
	cfg    *config.Config
	exec   *ffmpeg.Executor
	policy Policy
}

// New builds a detector. Binary resolution happens here, once, so a broken
// ffmpeg install fails before any analysis starts.
func New(logger zerolog.Logger, cfg *config.Config) (*Detector, error) {
	exec, err := ffmpeg.New(logger, cfg.FFmpegPath)
	if err != nil {
		return nil, err
	}
	return NewWithExecutor(logger, cfg, exec), nil
}

// NewWithExecutor builds a detector around an existing executor.
func NewWithExecutor(logger zerolog.Logger, cfg *config.Config, exec *ffmpeg.Executor) *Detector {
	return &Detector{
		logger: logger.With().Str("component", "detector").Logger(),
		cfg:    cfg,
		exec:   exec,
		policy: PolicyFromConfig(cfg),
	}
}

// Executor exposes the resolved media backend for collaborators (the clip
// renderer) so binaries are resolved exactly once per run.
func (d *Detector) Executor() *ffmpeg.Executor {
	return d.exec
}

// Detect returns the highlight candidates for one video, ordered by start
// time. eventsOverride, when non-empty, replaces the configured event-log
// path. The returned list may be empty; that is a result, not an error.
func (d *Detector) Detect(ctx context.Context, videoPath, eventsOverride string) ([]Candidate, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video not found: %w", err)
	}

	if d.cfg.GameEvents.Enabled && d.cfg.GameEvents.PreferEventsOverAI {
		if candidates := d.tryEvents(videoPath, eventsOverride); len(candidates) > 0 {
			d.logger.Info().
				Int("candidates", len(candidates)).
				Msg("using game events (kill timestamps)")
			return candidates, nil
		}
	}

	info, err := d.exec.Probe(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	selector := NewSignalSelector(d.logger, d.exec, d.policy)
	return selector.Detect(ctx, videoPath, info)
}

// tryEvents runs the event path; nil means fall back to signal analysis.
func (d *Detector) tryEvents(videoPath, eventsOverride string) []Candidate {
	eventsPath := d.resolveEventsPath(videoPath, eventsOverride)

	log := events.Load(eventsPath)
	if log == nil {
		d.logger.Info().
			Str("path", eventsPath).
			Msg("no usable event log, falling back to signal analysis")
		return nil
	}

	selector := NewEventSelector(d.logger, d.policy, d.cfg.GameEvents)
	recordingStart := fileCreationTime(videoPath)
	candidates := selector.FromLog(log, recordingStart)
	if len(candidates) == 0 {
		d.logger.Info().
			Str("path", eventsPath).
			Msg("event log found but no matching kills, falling back to signal analysis")
	}
	return candidates
}

// resolveEventsPath picks the event-log location: the explicit override,
// then the configured name next to the video, then relative to the working
// directory.
func (d *Detector) resolveEventsPath(videoPath, override string) string {
	name := d.cfg.GameEvents.File
	if name == "" {
		name = "game_events.json"
	}
	if override != "" {
		name = override
	}
	if filepath.IsAbs(name) {
		return name
	}

	// The logger writes next to the working directory; a log dropped next
	// to the video also counts.
	candidates := []string{
		name,
		filepath.Join(filepath.Dir(videoPath), filepath.Base(name)),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return name
}
