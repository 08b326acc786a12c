//go:build linux

package filestore

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime reads the birth time through statx. Filesystems and kernels
// without it fall back to the modification time; ctime is never used because
// chmod and rename move it.
func creationTime(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx); err != nil {
		return info.ModTime()
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
