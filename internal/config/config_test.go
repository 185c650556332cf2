package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/loadmatch/internal/config"
	"github.com/stretchr/testify/assert"
)

// noEnvFile points the loader at a file that does not exist so a stray .env cannot leak in.
func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv("LOADMATCH_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func Test_MustLoadDefaults(t *testing.T) {
	noEnvFile(t)

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.zippopotam.us/us", cfg.Lookup.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 10, cfg.Lookup.RateLimit)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 200, cfg.MatchLimit)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func Test_MustLoadFromEnv(t *testing.T) {
	noEnvFile(t)
	t.Setenv("LOADMATCH_ENV", "local")
	t.Setenv("LOADMATCH_INTERVAL", "10m")
	t.Setenv("LOADMATCH_LOOKUP_TIMEOUT", "2s")
	t.Setenv("LOADMATCH_WORKERS", "8")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, 2*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 8, cfg.Workers)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "loadmatch.env")
	filet.File(t, path, "LOADMATCH_ENV=development\nLOADMATCH_BATCH_SIZE=25\nDB_NAME=fromFile\n")

	t.Setenv("LOADMATCH_ENV_FILE", path)
	t.Setenv("DB_NAME", "fromEnv")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, "fromEnv", cfg.Database.Name)
}

func TestMustLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		key   string
		value string
		msg   string
	}{
		{"LOADMATCH_INTERVAL", "error_value", "failed to parse interval from configuration"},
		{"LOADMATCH_LOOKUP_TIMEOUT", "-1s", "failed to parse lookup timeout from configuration"},
		{"LOADMATCH_HTTP_PORT", "error_value", "failed to parse port for http server from configuration"},
		{"LOADMATCH_WORKERS", "error_value", "failed to parse workers from configuration, must be a positive integer"},
		{"LOADMATCH_WORKERS", "0", "failed to parse workers from configuration, must be a positive integer"},
		{
			"LOADMATCH_LOOKUP_RPS", "fast",
			"failed to parse lookup rate limit from configuration, must be a positive integer",
		},
		{
			"LOADMATCH_BATCH_SIZE", "-5",
			"failed to parse batch size from configuration, must be a positive integer",
		},
		{
			"LOADMATCH_MATCH_LIMIT", "many",
			"failed to parse match limit from configuration, must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			noEnvFile(t)
			t.Setenv(tt.key, tt.value)

			assert.PanicsWithValue(t, tt.msg, func() {
				config.MustLoad()
			})
		})
	}
}
