package analysis

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV reads a mono WAV file and returns the samples as float64 along
// with the sample rate. The extractor always writes mono; anything else is
// an input error, not something to silently downmix.
func LoadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	if buf.Format.NumChannels != 1 {
		return nil, 0, fmt.Errorf("expected mono audio, got %d channels", buf.Format.NumChannels)
	}

	return samplesFromBuffer(buf), buf.Format.SampleRate, nil
}

// samplesFromBuffer converts PCM integer samples to float64. The raw PCM
// scale carries through; the energy series is min-max normalized later so
// absolute amplitude never matters.
func samplesFromBuffer(buf *audio.IntBuffer) []float64 {
	floats := buf.AsFloat32Buffer()
	samples := make([]float64, len(floats.Data))
	for i, s := range floats.Data {
		samples[i] = float64(s)
	}
	return samples
}
