package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	require.NoError(t, Initialize())
	return home
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.String("log-file", "", "")
	flags.StringP("output", "o", "text", "")
	flags.String("folder-config", "", "")
	return flags
}

func TestInitialize(t *testing.T) {
	home := setupHome(t)

	assert.Equal(t, filepath.Join(home, ".keymapedit"), ConfigDir)
	assert.Equal(t, filepath.Join(ConfigDir, "journal.db"), DatabasePath)
	assert.Equal(t, filepath.Join(ConfigDir, "keybinds.json"), KeybindsFile)

	info, err := os.Stat(ConfigDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	if runtime.GOOS != "windows" {
		assert.Equal(t, filepath.Join(ConfigDir, "keymap.json"), DefaultFolderConfigPath())
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	setupHome(t)

	s, err := LoadSettings("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultFolderConfigPath(), s.FolderConfig)
	assert.True(t, s.Journal)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, LogFile, s.LogFile)
	assert.Equal(t, OutputText, s.Output)
	assert.Empty(t, SettingsFileUsed())
}

func TestLoadSettings_Precedence(t *testing.T) {
	home := setupHome(t)

	yamlContent := "log_level: warn\noutput: yaml\njournal: false\nfolder_config: ~/elsewhere/keymap.json\n"
	require.NoError(t, os.WriteFile(SettingsFile, []byte(yamlContent), FilePermissions))

	t.Run("settings file over defaults", func(t *testing.T) {
		s, err := LoadSettings("", nil)
		require.NoError(t, err)
		assert.Equal(t, "warn", s.LogLevel)
		assert.Equal(t, OutputYAML, s.Output)
		assert.False(t, s.Journal)
		assert.Equal(t, filepath.Join(home, "elsewhere", "keymap.json"), s.FolderConfig)
		assert.Equal(t, SettingsFile, SettingsFileUsed())
	})

	t.Run("env over settings file", func(t *testing.T) {
		t.Setenv("KEYMAPEDIT_LOG_LEVEL", "debug")
		t.Setenv("KEYMAPEDIT_JOURNAL", "true")

		s, err := LoadSettings("", nil)
		require.NoError(t, err)
		assert.Equal(t, "debug", s.LogLevel)
		assert.True(t, s.Journal)
		assert.Equal(t, OutputYAML, s.Output)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("KEYMAPEDIT_OUTPUT", "text")

		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"-o", "json", "--log-file", "-"}))

		s, err := LoadSettings("", flags)
		require.NoError(t, err)
		assert.Equal(t, OutputJSON, s.Output)
		assert.Equal(t, LogToStderr, s.LogFile)
		assert.Equal(t, "warn", s.LogLevel)
	})

	t.Run("unchanged flags keep lower layers", func(t *testing.T) {
		s, err := LoadSettings("", newFlags())
		require.NoError(t, err)
		assert.Equal(t, OutputYAML, s.Output)
	})
}

func TestLoadSettings_ExplicitFile(t *testing.T) {
	setupHome(t)

	t.Run("missing explicit file fails", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("explicit file is read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: json\n"), FilePermissions))

		s, err := LoadSettings(path, nil)
		require.NoError(t, err)
		assert.Equal(t, OutputJSON, s.Output)
		assert.Equal(t, path, SettingsFileUsed())
	})
}

func TestLoadSettings_Invalid(t *testing.T) {
	setupHome(t)

	tests := []struct {
		name string
		env  string
		val  string
	}{
		{name: "output", env: "KEYMAPEDIT_OUTPUT", val: "xml"},
		{name: "log level", env: "KEYMAPEDIT_LOG_LEVEL", val: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := LoadSettings("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.val)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := NewLogger(&Settings{LogLevel: "warn", LogFile: path})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.json")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "file=a.json")
}

func TestNewLogger_Stderr(t *testing.T) {
	logger, closer, err := NewLogger(&Settings{LogLevel: "info", LogFile: LogToStderr})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
