//go:build basic

// Package integration contains integration tests for streak.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streakOutput struct {
	Streak       int    `json:"streak"`
	FilesInScope int    `json:"files_in_scope"`
	Display      string `json:"display"`
}

type dateOutput struct {
	Date  string `json:"date"`
	Files int    `json:"files"`
}

// commitFile writes a file and commits it with the given author and committer date.
func commitFile(t *testing.T, repo, rel string, when time.Time) {
	t.Helper()
	full := filepath.Join(repo, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	f, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(when.Format(time.RFC3339) + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	stamp := when.Format(time.RFC3339)
	for _, args := range [][]string{{"add", rel}, {"commit", "-q", "-m", "entry " + stamp}} {
		cmd := exec.Command("git", args...)
		cmd.Dir = repo
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_DATE="+stamp, "GIT_COMMITTER_DATE="+stamp,
			"GIT_AUTHOR_NAME=writer", "GIT_AUTHOR_EMAIL=writer@example.com",
			"GIT_COMMITTER_NAME=writer", "GIT_COMMITTER_EMAIL=writer@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
}

func newJournalRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	repo := t.TempDir()
	out, err := exec.Command("git", "init", "-q", repo).CombinedOutput()
	require.NoError(t, err, string(out))

	now := time.Now()
	commitFile(t, repo, "Journal/a.md", now.AddDate(0, 0, -3))
	commitFile(t, repo, "Journal/a.md", now.AddDate(0, 0, -1))
	commitFile(t, repo, "Journal/b.md", now)
	commitFile(t, repo, "Work/plan.md", now.AddDate(0, 0, -2))
	return repo
}

// TestStreakGitVerification checks git-derived active dates against git log itself.
func TestStreakGitVerification(t *testing.T) {
	repo := newJournalRepo(t)

	output, err := runStreak(t, repo, nil, "dates", "--source", "git", "--output", "json", "--settings-backend", "none")
	require.NoError(t, err)

	var days []dateOutput
	require.NoError(t, json.Unmarshal([]byte(output), &days))

	gitCmd := exec.Command("git", "log", "--format=%ad", "--date=short", "--", "*.md")
	gitCmd.Dir = repo
	gitOutput, err := gitCmd.Output()
	require.NoError(t, err)

	// First and last commit per file are the only instants read, so every
	// reported day must appear in the log.
	logged := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(string(gitOutput)), "\n") {
		logged[line] = true
	}
	require.NotEmpty(t, days)
	for _, day := range days {
		assert.True(t, logged[day.Date], "active date %s is not in git log", day.Date)
	}
}

// TestStreakGitScenarios runs the show command over a small committed journal.
func TestStreakGitScenarios(t *testing.T) {
	repo := newJournalRepo(t)

	tests := []struct {
		name   string
		args   []string
		streak int
	}{
		// Journal is active today, yesterday and three days ago.
		{"journal without grace", []string{"--folder-path", "Journal"}, 2},
		{"journal with grace", []string{"--folder-path", "Journal", "--one-day-grace", "yes"}, 3},
		// Work/plan.md fills the gap two days ago.
		{"whole repository", nil, 4},
		{"root only", []string{"--root-only"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"show", "--source", "git", "--output", "json", "--settings-backend", "none"}, tt.args...)
			output, err := runStreak(t, repo, nil, args...)
			require.NoError(t, err)

			var report streakOutput
			require.NoError(t, json.Unmarshal([]byte(output), &report))
			assert.Equal(t, tt.streak, report.Streak)
		})
	}
}

// TestStreakCheckExitCode verifies the check command gates on --min.
func TestStreakCheckExitCode(t *testing.T) {
	repo := newJournalRepo(t)

	_, err := runStreak(t, repo, nil, "check", "--source", "git", "--min", "2", "--settings-backend", "none")
	require.NoError(t, err)

	output, err := runStreak(t, repo, nil, "check", "--source", "git", "--min", "30", "--settings-backend", "none")
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, output, "short")
}

// TestStreakConfigRoundTrip saves a setting and reads it back through the SQLite store.
func TestStreakConfigRoundTrip(t *testing.T) {
	repo := newJournalRepo(t)
	settingsDB := filepath.Join(t.TempDir(), "settings.db")
	env := []string{"STREAK_SETTINGS_DB_CONNECT=" + settingsDB}

	output, err := runStreak(t, repo, env, "config", "set", "folder-path", "Journal", "--source", "git")
	require.NoError(t, err)
	assert.Contains(t, output, "Saved folder-path")
	assert.Contains(t, output, "🔥 2 days")

	output, err = runStreak(t, repo, env, "config", "show", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, output, `"folder_path": "Journal"`)

	// An explicitly empty flag widens one run to the whole repository
	output, err = runStreak(t, repo, env, "show", "--source", "git", "--output", "json", "--folder-path", "")
	require.NoError(t, err)
	var report streakOutput
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, 4, report.Streak)

	output, err = runStreak(t, repo, env, "config", "show", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, output, `"folder_path": "Journal"`, "the saved folder is unchanged")
}
