package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~jakintosh/tokengate/internal/config"
)

// clearEnv unsets vars for the test and restores them afterwards.
func clearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

var allVars = []string{
	"TOKEN_SECRET", "LISTEN_ADDR", "DB_PATH", "TEMPLATES_DIR", "BASE_PATH",
	"TOKEN_LIFETIME", "EXPIRED_OFFSET", "LOG_LEVEL", "LOG_FORMAT",
}

func TestFromMap_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(map[string]string{"TOKEN_SECRET": "super-secret-key-13"})
	require.NoError(t, err)

	assert.Equal(t, "super-secret-key-13", cfg.TokenSecret)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "tokengate.sqlite", cfg.DBPath)
	assert.Equal(t, "", cfg.TemplatesDir)
	assert.Equal(t, time.Hour, cfg.TokenLifetime)
	assert.Equal(t, 30*time.Second, cfg.ExpiredOffset)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestFromMap_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(map[string]string{
		"TOKEN_SECRET":   "s",
		"LISTEN_ADDR":    "127.0.0.1:9000",
		"DB_PATH":        ":memory:",
		"BASE_PATH":      "/python-api/basics/13",
		"TOKEN_LIFETIME": "15m",
		"EXPIRED_OFFSET": "2m",
		"LOG_FORMAT":     "json",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "/python-api/basics/13", cfg.BasePath)
	assert.Equal(t, 15*time.Minute, cfg.TokenLifetime)
	assert.Equal(t, 2*time.Minute, cfg.ExpiredOffset)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromMap_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := config.FromMap(map[string]string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	_, err = config.FromMap(map[string]string{"TOKEN_SECRET": ""})
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestFromMap_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		vars map[string]string
		want error
	}{
		{"bad duration", map[string]string{"TOKEN_SECRET": "s", "TOKEN_LIFETIME": "soon"}, config.ErrParsingConfig},
		{"zero lifetime", map[string]string{"TOKEN_SECRET": "s", "TOKEN_LIFETIME": "0s"}, config.ErrInvalidConfig},
		{"negative offset", map[string]string{"TOKEN_SECRET": "s", "EXPIRED_OFFSET": "-1s"}, config.ErrInvalidConfig},
		{"unknown format", map[string]string{"TOKEN_SECRET": "s", "LOG_FORMAT": "xml"}, config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromMap(tt.vars)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t, allVars...)
	t.Setenv("TOKEN_SECRET", "from-env")
	t.Setenv("LISTEN_ADDR", ":9999")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TokenSecret)
	assert.Equal(t, ":9999", cfg.ListenAddr)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t, allVars...)

	path := filepath.Join(t.TempDir(), ".env.test")
	content := "TOKEN_SECRET=file-secret\nDB_PATH=\":memory:\"\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.TokenSecret)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t, allVars...)
	t.Setenv("TOKEN_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TOKEN_SECRET=from-file\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TokenSecret)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t, allVars...)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
