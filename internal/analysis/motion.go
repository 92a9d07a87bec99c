package analysis

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/joes9987/CreatorAssistant/internal/ffmpeg"
)

// Thumbnail resolution for motion comparison. Small and fixed so the
// estimate is fast and deterministic regardless of source resolution.
const (
	thumbWidth  = 160
	thumbHeight = 90
)

// MotionScores samples frames at ~2 per second, diffs consecutive grayscale
// thumbnails and averages the differences into one score per windowSeconds.
// High motion tracks action the same way audio energy does.
//
// A source that cannot be opened yields an all-zero series (the signal path
// degrades, it does not fail); fewer than two motion samples yield a single
// zero.
func MotionScores(ctx context.Context, exec *ffmpeg.Executor, logger zerolog.Logger, path string, duration, fps, windowSeconds float64) []float64 {
	if fps <= 0 {
		fps = ffmpeg.DefaultFPS
	}

	// Sample every ~0.5 s of source time, in whole frames.
	interval := math.Round(fps * 0.5)
	if interval < 1 {
		interval = 1
	}
	sampleFPS := fps / interval

	var motions []float64
	var prev *image.Gray

	err := exec.SampleFrames(ctx, path, sampleFPS, func(img image.Image) error {
		thumb := grayThumbnail(img)
		if prev != nil {
			motions = append(motions, meanAbsDiff(prev, thumb))
		}
		prev = thumb
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("video", path).Msg("motion sampling failed, returning zero series")
		if windowSeconds <= 0 {
			return []float64{0}
		}
		return make([]float64, int(duration/windowSeconds)+1)
	}

	if len(motions) < 2 {
		return []float64{0}
	}

	nWindows := 1
	if windowSeconds > 0 {
		nWindows = int(duration / windowSeconds)
		if nWindows < 1 {
			nWindows = 1
		}
	}
	windowSize := len(motions) / nWindows
	if windowSize < 1 {
		windowSize = 1
	}

	perWindow := make([]float64, nWindows)
	for i := 0; i < nWindows; i++ {
		start := i * windowSize
		if start >= len(motions) {
			break
		}
		end := start + windowSize
		if end > len(motions) {
			end = len(motions)
		}
		perWindow[i] = mean(motions[start:end])
	}
	return perWindow
}

// grayThumbnail downscales a frame to the fixed comparison resolution and
// converts it to grayscale.
func grayThumbnail(img image.Image) *image.Gray {
	small := resize.Resize(thumbWidth, thumbHeight, img, resize.Bilinear)

	gray := image.NewGray(image.Rect(0, 0, thumbWidth, thumbHeight))
	b := small.Bounds()
	for y := 0; y < thumbHeight; y++ {
		for x := 0; x < thumbWidth; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(small.At(b.Min.X+x, b.Min.Y+y)).(color.Gray))
		}
	}
	return gray
}

// meanAbsDiff computes the mean absolute pixel difference of two
// equally-sized grayscale images.
func meanAbsDiff(a, b *image.Gray) float64 {
	n := len(a.Pix)
	if len(b.Pix) < n {
		n = len(b.Pix)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += float64(d)
	}
	return sum / float64(n)
}
