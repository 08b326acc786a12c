package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/streak/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(w, "Cache Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format(statusTimeLayout))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintSettingsStatus prints settings store status information.
func PrintSettingsStatus(w io.Writer, status schema.SettingsStatus) {
	_, _ = fmt.Fprintf(w, "Settings Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	_, _ = fmt.Fprintf(w, "Saved Record: %t\n", status.HasRecord)
	if status.HasRecord {
		_, _ = fmt.Fprintf(w, "Last Updated: %s\n", status.LastUpdated.Format(statusTimeLayout))
	}
}
