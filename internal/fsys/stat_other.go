//go:build !linux && !darwin

package fsys

import (
	"io/fs"
)

// Times reports ModTime for every timestamp on platforms without a
// portable stat structure.
func Times(fi fs.FileInfo) FileTimes {
	return fallbackTimes(fi)
}

// Mode returns the permission bits
func Mode(fi fs.FileInfo) uint32 {
	return fallbackMode(fi)
}
