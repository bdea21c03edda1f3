package fsys

import (
	"io/fs"
	"time"
)

// FileTimes holds the four timestamps reported by stat
type FileTimes struct {
	Modify time.Time
	Access time.Time
	Change time.Time
	Birth  time.Time
}

// fallbackTimes is used when the platform stat structure is unavailable
func fallbackTimes(fi fs.FileInfo) FileTimes {
	mt := fi.ModTime()
	return FileTimes{Modify: mt, Access: mt, Change: mt, Birth: mt}
}

func fallbackMode(fi fs.FileInfo) uint32 {
	return uint32(fi.Mode().Perm())
}
