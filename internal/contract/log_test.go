package contract

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogWarn(t *testing.T) {
	var buf bytes.Buffer
	ConfigureLogging(&buf, false)
	defer ConfigureLogging(os.Stderr, false)

	LogWarn("stat failed", errors.New("permission denied"))
	LogDebug("hidden at warn level", "path", "a.md")

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "stat failed")
	assert.Contains(t, out, "permission denied")
	assert.NotContains(t, out, "hidden at warn level")
}

func TestLogDebugVerbose(t *testing.T) {
	var buf bytes.Buffer
	ConfigureLogging(&buf, true)
	defer ConfigureLogging(os.Stderr, false)

	LogDebug("refresh complete", "streak", 3)
	assert.Contains(t, buf.String(), "refresh complete")
	assert.Contains(t, buf.String(), "streak=3")
}
