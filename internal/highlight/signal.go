package highlight

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/joes9987/CreatorAssistant/internal/analysis"
	"github.com/joes9987/CreatorAssistant/internal/ffmpeg"
)

// SignalSelector runs the audio-energy + motion fusion pipeline.
type SignalSelector struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
	policy Policy
}

// NewSignalSelector creates the signal-analysis selector.
func NewSignalSelector(logger zerolog.Logger, exec *ffmpeg.Executor, policy Policy) *SignalSelector {
	return &SignalSelector{
		logger: logger.With().Str("component", "signal-selector").Logger(),
		exec:   exec,
		policy: policy,
	}
}

// Detect builds the combined excitement series for the video and extracts
// well-separated peaks. Decoding failures are fatal for this video;
// degenerate series just produce no candidates.
func (s *SignalSelector) Detect(ctx context.Context, videoPath string, info *ffmpeg.MediaInfo) ([]Candidate, error) {
	s.logger.Info().Str("video", videoPath).Msg("running signal analysis")

	audioNorm, err := s.audioSeries(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	// Common window count: at least as many as the audio produced, at
	// least enough to cover the duration.
	nWindows := len(audioNorm)
	if s.policy.WindowSeconds > 0 {
		if byDuration := int(info.Duration / s.policy.WindowSeconds); byDuration > nWindows {
			nWindows = byDuration
		}
	}
	if nWindows == 0 {
		return nil, nil
	}
	audioNorm = alignSeries(audioNorm, nWindows)

	motion := analysis.MotionScores(ctx, s.exec, s.logger, videoPath, info.Duration, info.FPS, s.policy.WindowSeconds)
	motionNorm := alignSeries(analysis.Normalize(motion), nWindows)

	combined := make([]float64, nWindows)
	for i := range combined {
		combined[i] = s.policy.AudioWeight*audioNorm[i] + s.policy.MotionWeight*motionNorm[i]
	}

	candidates := s.selectFromSeries(combined, info.Duration)

	s.logger.Info().
		Int("windows", nWindows).
		Int("candidates", len(candidates)).
		Msg("signal analysis complete")

	return candidates, nil
}

// audioSeries extracts the audio track, computes windowed RMS energy and
// normalizes it.
func (s *SignalSelector) audioSeries(ctx context.Context, videoPath string) ([]float64, error) {
	tmp, err := os.CreateTemp("", "creatorassistant-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp audio file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := s.exec.ExtractAudioWAV(ctx, videoPath, tmpPath, ffmpeg.DefaultSampleRate); err != nil {
		return nil, err
	}

	samples, sampleRate, err := analysis.LoadWAV(tmpPath)
	if err != nil {
		return nil, err
	}

	energy := analysis.AudioEnergy(samples, sampleRate, s.policy.WindowSeconds)
	return analysis.Normalize(energy), nil
}

// selectFromSeries maps qualifying peaks of the combined series to clip
// windows and suppresses near-duplicates.
func (s *SignalSelector) selectFromSeries(combined []float64, duration float64) []Candidate {
	sensitivity := s.policy.Sensitivity
	if sensitivity < 0 || sensitivity > 1 {
		clamped := clamp01(sensitivity)
		s.logger.Warn().
			Float64("sensitivity", sensitivity).
			Float64("clamped", clamped).
			Msg("sensitivity outside [0,1], clamping")
		sensitivity = clamped
	}

	threshold := analysis.Percentile(combined, 100-sensitivity*40)

	peaks := analysis.FindPeaks(combined, analysis.PeakCriteria{
		Threshold:     threshold,
		MinScore:      s.policy.MinScore,
		MinProminence: s.policy.MinProminence,
	})

	var candidates []Candidate
	for _, i := range peaks {
		start := float64(i)*s.policy.WindowSeconds - s.policy.PaddingBefore
		if start < 0 {
			start = 0
		}
		end := start + s.policy.ClipDuration
		if end > duration {
			end = duration
		}
		if end-start < s.policy.MinClipLength {
			continue
		}
		candidates = append(candidates, Candidate{
			Start:  start,
			End:    end,
			Score:  combined[i],
			Source: SourceSignal,
		})
	}

	// Highest score wins its neighborhood; ties keep window order.
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})
	selected := suppress(candidates, s.policy.MinSecondsBetweenClips, s.policy.MaxClipsPerVideo)

	sort.Slice(selected, func(a, b int) bool {
		return selected[a].Start < selected[b].Start
	})
	return selected
}

// alignSeries right-pads a series with its last value (zero when empty) and
// truncates it to exactly n entries, so audio and motion line up window for
// window.
func alignSeries(series []float64, n int) []float64 {
	if len(series) >= n {
		return series[:n]
	}
	out := make([]float64, n)
	copy(out, series)
	var edge float64
	if len(series) > 0 {
		edge = series[len(series)-1]
	}
	for i := len(series); i < n; i++ {
		out[i] = edge
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
