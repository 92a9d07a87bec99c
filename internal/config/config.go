package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Directory containing ffmpeg/ffprobe. Empty means search PATH.
	FFmpegPath string `yaml:"ffmpeg_path"`

	Detection  DetectionConfig  `yaml:"detection"`
	Clip       ClipConfig       `yaml:"clip"`
	GameEvents GameEventsConfig `yaml:"game_events"`
	Publish    PublishConfig    `yaml:"publish"`
}

// DetectionConfig tunes the signal-analysis highlight selector.
type DetectionConfig struct {
	AudioWeight            float64 `yaml:"audio_weight"`
	MotionWeight           float64 `yaml:"motion_weight"`
	Sensitivity            float64 `yaml:"sensitivity"`
	MinScore               float64 `yaml:"min_score"`
	MinProminence          float64 `yaml:"min_prominence"`
	MinSecondsBetweenClips float64 `yaml:"min_seconds_between_clips"`
	MaxClipsPerVideo       int     `yaml:"max_clips_per_video"`
	WindowSeconds          float64 `yaml:"window_seconds"`
}

// ClipConfig shapes the rendered clip windows.
type ClipConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	PaddingBefore   float64 `yaml:"padding_before"`
	PaddingAfter    float64 `yaml:"padding_after"`
	MinClipLength   float64 `yaml:"min_clip_length"`
	OutputDir       string  `yaml:"output_dir"`
	AspectRatio     string  `yaml:"aspect_ratio"`
	CRF             int     `yaml:"crf"`
	Preset          string  `yaml:"preset"`
}

// GameEventsConfig controls the kill-event highlight path.
//
// RecordingStartOffset corrects the heuristic that the video file's creation
// time marks the moment recording began; positive values shift clips later.
type GameEventsConfig struct {
	Enabled              bool    `yaml:"enabled"`
	PreferEventsOverAI   bool    `yaml:"prefer_events_over_ai"`
	FilterMyKillsOnly    bool    `yaml:"filter_my_kills_only"`
	PlayerSummonerName   string  `yaml:"player_summoner_name"`
	RecordingStartOffset float64 `yaml:"recording_start_offset"`
	File                 string  `yaml:"file"`
}

// PublishConfig covers the seam to external publishing sinks.
type PublishConfig struct {
	ClipCounterFile  string `yaml:"clip_counter_file"`
	ClipCounterStart int    `yaml:"clip_counter_start"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Dump renders the configuration as YAML
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			AudioWeight:            0.5,
			MotionWeight:           0.5,
			Sensitivity:            0.5,
			MinScore:               0.6,
			MinProminence:          0.15,
			MinSecondsBetweenClips: 120,
			MaxClipsPerVideo:       5,
			WindowSeconds:          4,
		},
		Clip: ClipConfig{
			DurationSeconds: 30,
			PaddingBefore:   3,
			PaddingAfter:    2,
			MinClipLength:   15,
			OutputDir:       "outputs",
			AspectRatio:     "9:16",
			CRF:             18,
			Preset:          "slow",
		},
		GameEvents: GameEventsConfig{
			Enabled:            true,
			PreferEventsOverAI: true,
			File:               "game_events.json",
		},
		Publish: PublishConfig{
			ClipCounterFile:  "clip_counter.txt",
			ClipCounterStart: 1,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".creatorassistant", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
