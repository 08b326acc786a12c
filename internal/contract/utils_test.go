package contract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, ColdValue, GetPlainLabel(0))
	assert.Equal(t, WarmValue, GetPlainLabel(1))
	assert.Equal(t, WarmValue, GetPlainLabel(6))
	assert.Equal(t, HotValue, GetPlainLabel(7))
	assert.Equal(t, BlazingValue, GetPlainLabel(30))
}

func TestGetColorLabelKeepsText(t *testing.T) {
	assert.Contains(t, GetColorLabel(45), BlazingValue)
	assert.Contains(t, GetColorLabel(0), ColdValue)
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{" false ", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".md"}, ParseExtensions("md"))
	assert.Equal(t, []string{".md", ".txt"}, ParseExtensions(" .MD , txt ,"))
	assert.Nil(t, ParseExtensions("*"))
	assert.Nil(t, ParseExtensions(""))
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("Journal/a.md", []string{".md"}))
	assert.True(t, HasExtension("Journal/A.MD", []string{".md"}))
	assert.False(t, HasExtension("Journal/a.png", []string{".md"}))
	assert.True(t, HasExtension("Journal/a.png", nil))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short", TruncatePath("short", 10))
	assert.Equal(t, "...c/d.md", TruncatePath("a/b/c/d.md", 9))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestToSlashRel(t *testing.T) {
	root := filepath.Join("tmp", "vault")
	rel, err := ToSlashRel(root, filepath.Join(root, "Journal", "note.md"))
	require.NoError(t, err)
	assert.Equal(t, "Journal/note.md", rel)

	_, err = ToSlashRel(root, filepath.Join("tmp", "other.md"))
	assert.Error(t, err)
}
