package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("COLLAB_TEST_PG_PASSWORD", "s3cret")

	path := writeConfig(t, `
app:
  name: collab-test
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: db.local
    database: staffing
    user: collab
    password: ${COLLAB_TEST_PG_PASSWORD}
  redis:
    address: localhost:6379
logging:
  level: debug
  format: console
collaboration:
  max_workers: 4
  result_limit: 25
ingestion:
  date_layouts: ["2006-01-02", "02/01/2006"]
workers:
  find-longest-collaboration:
    enabled: true
    timeout: 5000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "collab-test", cfg.App.Name)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.True(t, cfg.Database.Postgres.Enabled())
	assert.True(t, cfg.Database.Redis.Enabled())
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Collaboration.MaxWorkers)
	assert.Equal(t, 25, cfg.Collaboration.ResultLimit)
	assert.Equal(t, 600, cfg.Collaboration.CacheTTL)
	assert.Equal(t, []string{"2006-01-02", "02/01/2006"}, cfg.Ingestion.DateLayouts)
	assert.True(t, cfg.Ingestion.MissingEndAsToday)

	w := GetWorkerConfig(cfg, "find-longest-collaboration")
	assert.True(t, w.Enabled)
	assert.Equal(t, 5000, w.Timeout)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
collaboration:
  max_workers: -1
`)
	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_workers")
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, "collab-workers", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Metrics.Address)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
	assert.False(t, cfg.Database.Redis.Enabled())
	assert.True(t, cfg.Ingestion.MissingEndAsToday)
	assert.NotNil(t, cfg.Workers)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(cfg *Config)
		requireBroker bool
		wantErr       string
	}{
		{
			name:          "broker required for worker binary",
			mutate:        func(cfg *Config) {},
			requireBroker: true,
			wantErr:       "camunda.broker_address",
		},
		{
			name:          "broker present",
			mutate:        func(cfg *Config) { cfg.Camunda.BrokerAddress = "zeebe:26500" },
			requireBroker: true,
		},
		{
			name:    "postgres host without database",
			mutate:  func(cfg *Config) { cfg.Database.Postgres.Host = "db" },
			wantErr: "database.postgres.database",
		},
		{
			name:    "sample ratio out of range",
			mutate:  func(cfg *Config) { cfg.Tracing.SampleRatio = 1.5 },
			wantErr: "sample_ratio",
		},
		{
			name:    "negative result limit",
			mutate:  func(cfg *Config) { cfg.Collaboration.ResultLimit = -2 },
			wantErr: "result_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg, tt.requireBroker)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsWorkerEnabled(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"off": {Enabled: false}}}
	assert.False(t, IsWorkerEnabled(cfg, "off"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
}

func TestLoadFromFile_UnsetVariableDisablesSection(t *testing.T) {
	path := writeConfig(t, `
database:
  redis:
    address: ${COLLAB_TEST_UNSET_REDIS}
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.Redis.Address)
	assert.False(t, cfg.Database.Redis.Enabled())
}
