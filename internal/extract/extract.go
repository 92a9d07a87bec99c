// Package extract renders detected highlight windows into Shorts-ready
// vertical clips.
package extract

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/joes9987/CreatorAssistant/internal/config"
	"github.com/joes9987/CreatorAssistant/internal/ffmpeg"
	"github.com/joes9987/CreatorAssistant/internal/highlight"
	"github.com/joes9987/CreatorAssistant/pkg/util"
)

// Renderer cuts one clip out of a source video. *ffmpeg.Executor satisfies
// it.
type Renderer interface {
	ExtractClip(ctx context.Context, input string, opts ffmpeg.ClipOptions) error
}

// Extractor renders candidate lists to disk.
type Extractor struct {
	logger   zerolog.Logger
	renderer Renderer
	cfg      config.ClipConfig
}

// New creates an extractor.
func New(logger zerolog.Logger, renderer Renderer, cfg config.ClipConfig) *Extractor {
	return &Extractor{
		logger:   logger.With().Str("component", "extractor").Logger(),
		renderer: renderer,
		cfg:      cfg,
	}
}

// OutputPath returns where clip number n (1-based) of the given video
// lands.
func (e *Extractor) OutputPath(videoPath string, n int) string {
	name := fmt.Sprintf("%s_clip_%02d.mp4", util.Stem(videoPath), n)
	return filepath.Join(e.cfg.OutputDir, name)
}

// ExtractAll renders every candidate, skipping outputs that already exist
// and continuing past individual failures. Returns the paths of all clips
// that exist afterwards, in candidate order.
func (e *Extractor) ExtractAll(ctx context.Context, videoPath string, candidates []highlight.Candidate) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if err := util.EnsureDir(e.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var outputs []string
	for i, c := range candidates {
		outPath := e.OutputPath(videoPath, i+1)

		if util.FileExists(outPath) {
			e.logger.Info().
				Str("output", outPath).
				Msg("clip already exists, skipping")
			outputs = append(outputs, outPath)
			continue
		}

		e.logger.Info().
			Int("clip", i+1).
			Int("total", len(candidates)).
			Float64("start", c.Start).
			Float64("end", c.End).
			Msg("extracting clip")

		clipNum := i + 1
		err := e.renderer.ExtractClip(ctx, videoPath, ffmpeg.ClipOptions{
			Start:       c.Start,
			End:         c.End,
			Output:      outPath,
			CRF:         e.cfg.CRF,
			Preset:      e.cfg.Preset,
			AspectRatio: e.cfg.AspectRatio,
			ProgressFunc: func(p *ffmpeg.Progress) {
				e.logger.Debug().
					Int("clip", clipNum).
					Int("frame", p.Frame).
					Str("time", p.Time).
					Str("speed", p.Speed).
					Msg("render progress")
			},
		})
		if err != nil {
			if ctx.Err() != nil {
				return outputs, ctx.Err()
			}
			e.logger.Error().Err(err).Str("output", outPath).Msg("clip extraction failed")
			continue
		}
		outputs = append(outputs, outPath)
	}

	return outputs, nil
}
