//go:build darwin

package fsys

import (
	"io/fs"
	"syscall"
	"time"
)

// Times extracts timestamps from fi
func Times(fi fs.FileInfo) FileTimes {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fallbackTimes(fi)
	}
	return FileTimes{
		Modify: fi.ModTime(),
		Access: time.Unix(st.Atimespec.Unix()),
		Change: time.Unix(st.Ctimespec.Unix()),
		Birth:  time.Unix(st.Birthtimespec.Unix()),
	}
}

// Mode returns the raw st_mode, including file type bits
func Mode(fi fs.FileInfo) uint32 {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return uint32(st.Mode)
	}
	return fallbackMode(fi)
}
