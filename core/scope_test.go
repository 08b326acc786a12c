package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInScope(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		scope    string
		expected bool
	}{
		{"nested file under scope", "Journal/2024/note.md", "Journal", true},
		{"sibling file outside nested scope", "Journal/note.md", "Journal/2024", false},
		{"unset scope matches everything", "anything/at/all.md", "", true},
		{"unset scope matches root file", "note.md", "", true},
		{"exact folder match", "Journal/note.md", "Journal", true},
		{"leading and trailing slashes trimmed", "Journal/2024/note.md", "/Journal/", true},
		{"prefix without separator is not a match", "JournalArchive/note.md", "Journal", false},
		{"root-only scope keeps root files", "note.md", "/", true},
		{"root-only scope drops nested files", "Journal/note.md", "/", false},
		{"scope deeper than file", "Journal/note.md", "Journal/2024/06", false},
		{"unrelated folder", "Work/plan.md", "Journal", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsInScope(tt.path, tt.scope))
		})
	}
}

func TestNormalizeScope(t *testing.T) {
	assert.Equal(t, "Journal", NormalizeScope("/Journal/"))
	assert.Equal(t, "Journal/2024", NormalizeScope("Journal/2024/"))
	assert.Equal(t, "", NormalizeScope("/"))
	assert.Equal(t, "", NormalizeScope("//"))
}

func TestContainingFolder(t *testing.T) {
	assert.Equal(t, "", containingFolder("note.md"))
	assert.Equal(t, "", containingFolder("/note.md"))
	assert.Equal(t, "Journal/2024", containingFolder("Journal/2024/note.md"))
}
