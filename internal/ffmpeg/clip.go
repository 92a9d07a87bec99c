package ffmpeg

import (
	"context"
	"fmt"

	"github.com/joes9987/CreatorAssistant/pkg/util"
)

// ClipOptions defines clip rendering parameters
type ClipOptions struct {
	// Start and End in seconds of source time.
	Start float64
	End   float64
	// Output file path.
	Output string
	// CRF quality (0-51, lower = better) and x264 preset.
	CRF    int
	Preset string
	// AspectRatio of the rendered clip; only "9:16" vertical is produced,
	// anything else keeps the source geometry.
	AspectRatio  string
	ProgressFunc ProgressFunc
}

// Vertical 9:16 center crop, Lanczos scale for sharper output than the
// default bicubic.
const verticalCropFilter = "crop='min(iw,ih*9/16)':'ih':'max(0,(iw-ih*9/16)/2)':'0',scale=1080:1920:flags=lanczos"

// ExtractClip renders a highlight window to a Shorts-ready vertical clip
func (e *Executor) ExtractClip(ctx context.Context, input string, opts ClipOptions) error {
	duration := opts.End - opts.Start
	if duration <= 0 {
		return fmt.Errorf("invalid clip duration: end must be after start")
	}

	crf := opts.CRF
	if crf <= 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Str("start", util.FormatSeconds(opts.Start)).
		Str("duration", util.FormatSeconds(duration)).
		Msg("rendering clip")

	args := []string{
		"-ss", fmt.Sprintf("%.3f", opts.Start),
		"-i", input,
		"-t", fmt.Sprintf("%.3f", duration),
	}

	if opts.AspectRatio == "" || opts.AspectRatio == "9:16" {
		args = append(args, "-vf", verticalCropFilter)
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", preset,
		"-crf", fmt.Sprintf("%d", crf),
		"-c:a", "aac",
		"-b:a", "192k",
		opts.Output,
	)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("clip render")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("clip render failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("clip rendered")
	return nil
}
