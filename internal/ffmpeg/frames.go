package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os/exec"
)

// FrameFunc receives each sampled frame in decode order. Returning an error
// stops sampling.
type FrameFunc func(image.Image) error

// SampleFrames decodes frames from the video at the given sampling rate
// (frames per second of source time) and feeds them to fn as an MJPEG pipe.
func (e *Executor) SampleFrames(ctx context.Context, input string, sampleFPS float64, fn FrameFunc) error {
	if sampleFPS <= 0 {
		return fmt.Errorf("sample fps must be positive, got %f", sampleFPS)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", input,
		"-vf", fmt.Sprintf("fps=%f", sampleFPS),
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "5",
		"pipe:1",
	}

	e.logger.Debug().
		Str("input", input).
		Float64("sample_fps", sampleFPS).
		Msg("sampling frames")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	frames := 0
	reader := bufio.NewReaderSize(stdout, 1<<16)
	for {
		frame, err := nextJPEG(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return fmt.Errorf("frame stream broke after %d frames: %w", frames, err)
		}

		img, err := jpeg.Decode(bytes.NewReader(frame))
		if err != nil {
			// A torn trailing frame when ffmpeg is interrupted; skip it.
			e.logger.Debug().Err(err).Int("frame", frames).Msg("undecodable frame skipped")
			continue
		}

		if err := fn(img); err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return err
		}
		frames++
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if frames == 0 {
			return fmt.Errorf("frame sampling failed: %w (%s)", err, firstLine(stderr.String()))
		}
		// Partial stream but frames were delivered; the caller's series is
		// still usable.
		e.logger.Warn().Err(err).Int("frames", frames).Msg("ffmpeg exited abnormally after delivering frames")
	}

	e.logger.Debug().Int("frames", frames).Msg("frame sampling complete")
	return nil
}

// nextJPEG scans the stream for one SOI..EOI JPEG image. ffmpeg's MJPEG
// output carries no embedded previews, so the EOI marker is unambiguous.
func nextJPEG(r *bufio.Reader) ([]byte, error) {
	// Seek start-of-image.
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != 0xFF {
			continue
		}
		next, err := r.Peek(1)
		if err != nil {
			return nil, err
		}
		if next[0] == 0xD8 {
			break
		}
	}

	buf := []byte{0xFF, 0xD8}
	if _, err := r.Discard(1); err != nil {
		return nil, err
	}

	prev := byte(0)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		buf = append(buf, b)
		if prev == 0xFF && b == 0xD9 {
			return buf, nil
		}
		prev = b
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
