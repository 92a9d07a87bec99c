//go:build !linux

package highlight

import "os"

// fileCreationTime approximates when a recording began from file metadata.
// Falls back to the modification time where creation time is not exposed;
// the configured recording_start_offset absorbs the slack. Returns 0 when
// the file cannot be stat'ed.
func fileCreationTime(path string) float64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(fi.ModTime().UnixNano()) / 1e9
}
