package ffmpeg

import (
	"context"
	"fmt"
)

// DefaultSampleRate matches the rate the energy estimator expects.
const DefaultSampleRate = 22050

// ExtractAudioWAV extracts the audio track as mono 16-bit PCM WAV at the
// given sample rate, ready for energy analysis.
func (e *Executor) ExtractAudioWAV(ctx context.Context, input, output string, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	e.logger.Info().
		Str("input", input).
		Int("sample_rate", sampleRate).
		Msg("extracting audio")

	args := []string{
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", "1",
		output,
	}

	opts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("audio extraction")
		},
	}

	if err := e.Run(ctx, opts); err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}
	return nil
}
