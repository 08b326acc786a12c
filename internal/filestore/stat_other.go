//go:build !linux && !darwin

package filestore

import (
	"os"
	"time"
)

// creationTime falls back to the modification time.
func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
