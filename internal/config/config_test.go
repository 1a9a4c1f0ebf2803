package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bmi.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{Getenv: env(nil)})
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "bmi-tracker", cfg.Telemetry.ServiceName)

	sc := cfg.StoreConfig()
	assert.Equal(t, "sqlite", sc.Driver)
	assert.Equal(t, "bmi_tracker.db", sc.Options["path"])

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
listen_addr = ":9000"
timezone = "UTC"
shutdown_timeout = "12s"
colour = "blue"

[logging]
level = "debug"

[telemetry]
enabled = true
service_name = "bmi-api"

[store]
driver = "postgres"

[store.drivers.postgres]
dsn = "postgres://localhost/bmi"
max_open_conns = 4
`)

	cfg, err := Load(Options{Path: path, Getenv: env(nil)})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 12*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "bmi-api", cfg.Telemetry.ServiceName)
	assert.Equal(t, []string{"colour"}, cfg.Undecoded)

	sc := cfg.StoreConfig()
	assert.Equal(t, "postgres", sc.Driver)
	assert.Equal(t, "postgres://localhost/bmi", sc.Options["dsn"])
	assert.EqualValues(t, 4, sc.Options["max_open_conns"])
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
listen_addr = ":9000"

[store]
driver = "postgres"
`)

	cfg, err := Load(Options{Path: path, Getenv: env(map[string]string{
		"BMI_ADDR":              ":7000",
		"BMI_LOG_LEVEL":         "warn",
		"BMI_STORE_DRIVER":      "sqlite",
		"BMI_SQLITE_PATH":       "/data/bmi.db",
		"DATABASE_URL":          "postgres://db/bmi",
		"BMI_TELEMETRY_ENABLED": "true",
		"OTEL_SERVICE_NAME":     "from-env",
	})})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "from-env", cfg.Telemetry.ServiceName)
	assert.Equal(t, "/data/bmi.db", cfg.StoreConfig().Options["path"])
	assert.Equal(t, "postgres://db/bmi", cfg.Store.Drivers["postgres"]["dsn"])
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown log level", env: map[string]string{"BMI_LOG_LEVEL": "loud"}},
		{name: "unknown timezone", env: map[string]string{"BMI_TIMEZONE": "Mars/Olympus"}},
		{name: "bad telemetry flag", env: map[string]string{"BMI_TELEMETRY_ENABLED": "perhaps"}},
		{name: "bad duration", file: `shutdown_timeout = "soon"`},
		{name: "negative duration", file: `shutdown_timeout = "-1s"`},
		{name: "malformed toml", file: `listen_addr = `},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := Options{Getenv: env(tc.env)}
			if tc.file != "" {
				opts.Path = writeFile(t, tc.file)
			}
			_, err := Load(opts)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.toml"), Getenv: env(nil)})
	assert.Error(t, err)
}
