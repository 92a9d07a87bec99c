package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/joes9987/CreatorAssistant/pkg/util"
)

// DefaultFPS is assumed when the probe cannot determine a frame rate.
const DefaultFPS = 30

// Probe extracts duration and frame rate from a media file
func (e *Executor) Probe(ctx context.Context, filePath string) (*MediaInfo, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is required")
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	}

	cmd := exec.CommandContext(ctx, e.ffprobePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbeOutput(output)
	if err != nil {
		return nil, err
	}
	info.FilePath = filePath

	e.logger.Debug().
		Str("file", filePath).
		Float64("duration", info.Duration).
		Float64("fps", info.FPS).
		Msg("probed media")

	return info, nil
}

func parseProbeOutput(output []byte) (*MediaInfo, error) {
	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &MediaInfo{FPS: DefaultFPS}

	if dur, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		info.Duration = dur
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		// r_frame_rate is a rational like "60000/1001", occasionally a
		// plain float from odd containers.
		if fps := util.ParseFrameRate(stream.RFrameRate); fps > 0 {
			info.FPS = fps
		} else if fps, err := strconv.ParseFloat(stream.RFrameRate, 64); err == nil && fps > 0 {
			info.FPS = fps
		}
		break
	}

	return info, nil
}

// probeResult matches ffprobe JSON output structure
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}
