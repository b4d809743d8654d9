package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
dbname = "availability"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "@every 15m", cfg.Sweeper.Cron)
	assert.Equal(t, "product_instances.published", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)

	assert.Equal(t, 90, cfg.Expander.DefaultWindowDays)
	assert.Equal(t, 20, cfg.Expander.DefaultCapacity)
	assert.Equal(t, 5000, cfg.Expander.MaxOccurrences)
	assert.False(t, cfg.Expander.ApplyBlackouts)
	assert.False(t, cfg.Expander.ApplySeasonal)
	assert.Equal(t, "UTC", cfg.Expander.Timezone)
	assert.Equal(t, time.UTC, cfg.Expander.Location())
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse(`
[server]
http_port = 9090

[database]
host = "db"
port = 6432
user = "svc"
password = "secret"
dbname = "availability"

[logs]
level = "debug"

[redis]
enabled = true
addr = "redis:6379"
ttl = 60

[kafka]
brokers = ["kafka-1:9092", "kafka-2:9092"]

[sweeper]
enabled = true
cron = "*/5 * * * *"

[expander]
default_window_days = 30
apply_blackouts = true
`)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=6432 user=svc password=secret dbname=availability sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 60, cfg.Redis.TTL)
	assert.Len(t, cfg.Kafka.Brokers, 2)
	assert.Equal(t, 30, cfg.Expander.DefaultWindowDays)
	assert.True(t, cfg.Expander.ApplyBlackouts)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing database", data: `[server]` + "\n" + `http_port = 8080`},
		{name: "bad log level", data: minimalConfig + "\n[logs]\nlevel = \"verbose\""},
		{name: "redis without addr", data: minimalConfig + "\n[redis]\nenabled = true"},
		{name: "bad cron", data: minimalConfig + "\n[sweeper]\nenabled = true\ncron = \"every now and then\""},
		{name: "window too large", data: minimalConfig + "\n[expander]\ndefault_window_days = 5000"},
		{name: "unknown timezone", data: minimalConfig + "\n[expander]\ntimezone = \"Nowhere/Land\""},
		{name: "port out of range", data: minimalConfig + "\n[server]\nhttp_port = 70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse("not = [valid")
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
