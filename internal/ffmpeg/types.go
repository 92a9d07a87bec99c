package ffmpeg

// MediaInfo contains the container metadata the detector needs
type MediaInfo struct {
	FilePath string
	// Duration in seconds, from the container format block.
	Duration float64
	// FPS of the first video stream; 30 when the probe cannot tell.
	FPS float64
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame int
	FPS   float64
	Time  string
	Speed string
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
type ProgressFunc func(*Progress)

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// Default encoding settings for clip rendering
const (
	DefaultCRF    = 18
	DefaultPreset = "slow"
)
