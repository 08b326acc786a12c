//go:build darwin

package filestore

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the file birth time.
func creationTime(_ string, info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
