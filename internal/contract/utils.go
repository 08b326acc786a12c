package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Streak label constants.
const (
	BlazingValue = "Blazing" // a month or more
	HotValue     = "Hot"     // a week or more
	WarmValue    = "Warm"    // at least one day
	ColdValue    = "Cold"    // no streak
)

// Color variables for console output.
var (
	BlazingColor = color.New(color.FgRed, color.Bold)
	HotColor     = color.New(color.FgMagenta, color.Bold)
	WarmColor    = color.New(color.FgYellow)
	ColdColor    = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text label for the streak length.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(streak int) string {
	switch {
	case streak >= 30:
		return BlazingValue
	case streak >= 7:
		return HotValue
	case streak >= 1:
		return WarmValue
	default:
		return ColdValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(streak int) string {
	text := GetPlainLabel(streak)

	switch text {
	case BlazingValue:
		return BlazingColor.Sprint(text)
	case HotValue:
		return HotColor.Sprint(text)
	case WarmValue:
		return WarmColor.Sprint(text)
	default:
		return ColdColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetSettingsDBFilePath returns the path to the SQLite DB file for settings storage.
func GetSettingsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".streak_settings.db"
	}
	return filepath.Join(homeDir, ".streak_settings.db")
}

// GetCacheDBFilePath returns the path to the SQLite DB file for activity caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".streak_cache.db"
	}
	return filepath.Join(homeDir, ".streak_cache.db")
}

// TruncatePath truncates a path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there's space for "..." and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseExtensions turns a comma-separated list like "md,.txt" into
// normalized lowercase suffixes. "*" means every file and yields nil.
func ParseExtensions(s string) []string {
	s = strings.TrimSpace(s)
	if s == "*" {
		return nil
	}
	var exts []string
	for part := range strings.SplitSeq(s, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// HasExtension reports whether path ends with one of exts. An empty list matches everything.
func HasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ToSlashRel returns target relative to root using forward slashes.
func ToSlashRel(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path is outside root: %s", target)
	}
	return filepath.ToSlash(rel), nil
}
