package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Report Card Generator", cfg.AppName)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "student_records.db", cfg.DatabasePath)
	require.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REPORTCARD_DATABASE_PATH", "/tmp/records/grades.db")
	t.Setenv("REPORTCARD_LOG_LEVEL", "DEBUG")
	t.Setenv("REPORTCARD_APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/records/grades.db", cfg.DatabasePath)
	require.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	require.Equal(t, "test", cfg.AppEnv)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REPORTCARD_DATABASE_DRIVER", "mongodb")

	_, err := Load()
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REPORTCARD_LOG_LEVEL", "loud")

	_, err := Load()
	require.ErrorContains(t, err, "invalid log level")
}
