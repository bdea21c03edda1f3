//go:build linux

package fsys

import (
	"io/fs"
	"syscall"
	"time"
)

// Times extracts timestamps from fi. Linux stat(2) has no birth time,
// so Birth mirrors Change.
func Times(fi fs.FileInfo) FileTimes {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fallbackTimes(fi)
	}
	ctime := time.Unix(st.Ctim.Unix())
	return FileTimes{
		Modify: fi.ModTime(),
		Access: time.Unix(st.Atim.Unix()),
		Change: ctime,
		Birth:  ctime,
	}
}

// Mode returns the raw st_mode, including file type bits
func Mode(fi fs.FileInfo) uint32 {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return st.Mode
	}
	return fallbackMode(fi)
}
