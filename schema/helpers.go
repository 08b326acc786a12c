package schema

import "fmt"

// FormatStreak renders the status text, pluralizing on N != 1.
func FormatStreak(n int) string {
	if n == 1 {
		return fmt.Sprintf("🔥 %d day", n)
	}
	return fmt.Sprintf("🔥 %d days", n)
}

// ErrorDisplay is the neutral text shown when a refresh fails.
const ErrorDisplay = "🔥 Error"

// DescribeScope returns the human label for a monitored folder.
func DescribeScope(folder string) string {
	if folder == "" {
		return "All files"
	}
	return folder
}
