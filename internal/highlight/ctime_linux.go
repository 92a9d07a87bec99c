//go:build linux

package highlight

import (
	"os"
	"syscall"
)

// fileCreationTime approximates when a recording began from file metadata.
// Linux inode metadata has no portable birth time, so this mirrors what a
// ctime lookup reports there; the configured recording_start_offset absorbs
// the slack. Returns 0 when the file cannot be stat'ed.
func fileCreationTime(path string) float64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return float64(st.Ctim.Sec) + float64(st.Ctim.Nsec)/1e9
	}
	return float64(fi.ModTime().UnixNano()) / 1e9
}
