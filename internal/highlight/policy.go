package highlight

import "github.com/joes9987/CreatorAssistant/internal/config"

// Policy is the full set of tunable selection parameters, read once per run
// and never mutated.
type Policy struct {
	AudioWeight            float64
	MotionWeight           float64
	Sensitivity            float64
	MinScore               float64
	MinProminence          float64
	MinSecondsBetweenClips float64
	MaxClipsPerVideo       int
	WindowSeconds          float64

	ClipDuration  float64
	PaddingBefore float64
	PaddingAfter  float64
	MinClipLength float64
}

// PolicyFromConfig flattens the detection and clip sections into a policy.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		AudioWeight:            cfg.Detection.AudioWeight,
		MotionWeight:           cfg.Detection.MotionWeight,
		Sensitivity:            cfg.Detection.Sensitivity,
		MinScore:               cfg.Detection.MinScore,
		MinProminence:          cfg.Detection.MinProminence,
		MinSecondsBetweenClips: cfg.Detection.MinSecondsBetweenClips,
		MaxClipsPerVideo:       cfg.Detection.MaxClipsPerVideo,
		WindowSeconds:          cfg.Detection.WindowSeconds,
		ClipDuration:           cfg.Clip.DurationSeconds,
		PaddingBefore:          cfg.Clip.PaddingBefore,
		PaddingAfter:           cfg.Clip.PaddingAfter,
		MinClipLength:          cfg.Clip.MinClipLength,
	}
}
