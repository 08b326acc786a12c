package contract

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/streak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input that passes validation, rooted at dir.
func validInput(dir string) *ConfigRawInput {
	return &ConfigRawInput{
		RootPathStr:     dir,
		Source:          "fs",
		Ext:             ".md",
		Output:          "text",
		SettingsBackend: "none",
		CacheBackend:    "none",
		Color:           "yes",
		MinStreak:       1,
	}
}

func TestProcessAndValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		setupMock   func(*MockGitClient, string)
		expectError string
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:        "invalid source",
			mutate:      func(in *ConfigRawInput) { in.Source = "svn" },
			expectError: "invalid source",
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: "invalid output format",
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: "invalid --color value",
		},
		{
			name:        "negative min",
			mutate:      func(in *ConfigRawInput) { in.MinStreak = -1 },
			expectError: "--min must not be negative",
		},
		{
			name:        "bad debounce",
			mutate:      func(in *ConfigRawInput) { in.Debounce = "soon" },
			expectError: "invalid --debounce value",
		},
		{
			name:        "debounce too long",
			mutate:      func(in *ConfigRawInput) { in.Debounce = "2h" },
			expectError: "--debounce must be between",
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.SettingsBackend = "mysql" },
			expectError: "a connection string is required",
		},
		{
			name:        "unknown backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			expectError: "invalid cache backend",
		},
		{
			name: "sqlite stores on the same file",
			mutate: func(in *ConfigRawInput) {
				in.SettingsBackend = "sqlite"
				in.CacheBackend = "sqlite"
				in.SettingsDBConnect = filepath.Join(dir, "same.db")
				in.CacheDBConnect = filepath.Join(dir, "same.db")
			},
			expectError: "must use different SQLite database files",
		},
		{
			name:        "missing root",
			mutate:      func(in *ConfigRawInput) { in.RootPathStr = filepath.Join(dir, "missing") },
			expectError: "is not accessible",
		},
		{
			name:   "git source snaps to repo root",
			mutate: func(in *ConfigRawInput) { in.Source = "git" },
			setupMock: func(m *MockGitClient, workDir string) {
				m.On("GetRepoRoot", context.Background(), workDir).Return("/mock/repo/root", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(dir)
			tt.mutate(input)

			client := new(MockGitClient)
			if tt.setupMock != nil {
				abs, err := filepath.Abs(dir)
				require.NoError(t, err)
				tt.setupMock(client, filepath.Clean(abs))
			}

			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, client, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			client.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, new(MockGitClient), validInput(dir)))

	abs, _ := filepath.Abs(dir)
	assert.Equal(t, filepath.Clean(abs), cfg.RootPath)
	assert.Equal(t, schema.FSSource, cfg.Source)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.True(t, cfg.UseColors)
}

func TestResolveSettings(t *testing.T) {
	stored := schema.Settings{FolderPath: "Journal", OneDayGrace: true}

	t.Run("no overrides keeps stored record", func(t *testing.T) {
		got, err := ResolveSettings(stored, &ConfigRawInput{})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("folder and grace overrides", func(t *testing.T) {
		got, err := ResolveSettings(stored, &ConfigRawInput{FolderPath: " Daily ", OneDayGrace: "no"})
		require.NoError(t, err)
		assert.Equal(t, "Daily", got.FolderPath)
		assert.False(t, got.OneDayGrace)
	})

	t.Run("explicit empty folder clears stored folder", func(t *testing.T) {
		got, err := ResolveSettings(stored, &ConfigRawInput{FolderPath: "", FolderPathSet: true})
		require.NoError(t, err)
		assert.Empty(t, got.FolderPath)
		assert.True(t, got.OneDayGrace)
		assert.Equal(t, "Journal", stored.FolderPath, "stored record is untouched")
	})

	t.Run("unset empty folder keeps stored folder", func(t *testing.T) {
		got, err := ResolveSettings(stored, &ConfigRawInput{FolderPath: ""})
		require.NoError(t, err)
		assert.Equal(t, "Journal", got.FolderPath)
	})

	t.Run("root only", func(t *testing.T) {
		got, err := ResolveSettings(stored, &ConfigRawInput{RootOnly: true})
		require.NoError(t, err)
		assert.Equal(t, "/", got.FolderPath)
	})

	t.Run("invalid grace", func(t *testing.T) {
		_, err := ResolveSettings(stored, &ConfigRawInput{OneDayGrace: "kinda"})
		assert.Error(t, err)
	})
}

func TestApplySettingChange(t *testing.T) {
	base := schema.DefaultSettings()

	got, err := ApplySettingChange(base, "folder-path", "  Journal/2024 ")
	require.NoError(t, err)
	assert.Equal(t, "Journal/2024", got.FolderPath)

	got, err = ApplySettingChange(got, "one-day-grace", "yes")
	require.NoError(t, err)
	assert.True(t, got.OneDayGrace)

	got, err = ApplySettingChange(got, "streak-start-date", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got.StreakStartDate)

	_, err = ApplySettingChange(got, "streak-start-date", "March 1st")
	assert.Error(t, err)

	_, err = ApplySettingChange(got, "colour", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Extensions: []string{".md"}, Debounce: time.Second}
	clone := cfg.Clone()
	clone.Extensions[0] = ".txt"
	assert.Equal(t, ".md", cfg.Extensions[0])
	assert.Equal(t, time.Second, clone.Debounce)
}
