package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `log:
  level: debug
server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
pipeline:
  poll_interval_seconds: 0.5
  cache_size: 5
  late_policy: drop
  queue_depth: 1024
aggregation:
  percentiles: [50, 75, 90, 95, 99, 100]
  fields:
    latency_us: [count, mean, min, max, quantiles]
    size_bytes: [sum, mean]
lock:
  dir: /tmp/loadbench-locks
  wait_seconds: 0
artifacts:
  base_dir: ./artifacts
generator:
  plugin: stub
  rps: 100
  workers: 4
  duration_seconds: 10
sinks:
  console: true
  jsonl: true
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	path := writeTempConfig(t, validConfig)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Pipeline.PollIntervalSeconds)
	assert.Equal(t, 5, cfg.Pipeline.CacheSize)
	assert.Equal(t, "drop", cfg.Pipeline.LatePolicy)
	assert.Equal(t, 1024, cfg.Pipeline.QueueDepth)
	assert.Equal(t, []float64{50, 75, 90, 95, 99, 100}, cfg.Aggregation.Percentiles)
	assert.Equal(t, []string{"count", "mean", "min", "max", "quantiles"}, cfg.Aggregation.Fields["latency_us"])
	assert.Equal(t, "stub", cfg.Generator.Plugin)
	assert.True(t, cfg.Sinks.Console)
	assert.False(t, cfg.Sinks.Influx.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeTempConfig(t, validConfig)

	cfg, err := LoadConfig(path, map[string]string{
		"pipeline.cache_size": "9",
		"generator.plugin":    "http",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Pipeline.CacheSize)
	assert.Equal(t, "http", cfg.Generator.Plugin)
}

func TestLoadConfig_MissingCacheSize(t *testing.T) {
	path := writeTempConfig(t, `log:
  level: info
server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
pipeline:
  poll_interval_seconds: 1
  late_policy: drop
  queue_depth: 1024
aggregation:
  percentiles: [95]
  fields:
    latency_us: [mean]
lock:
  dir: /tmp/loadbench-locks
artifacts:
  base_dir: ./artifacts
generator:
  plugin: stub
  rps: 1
  workers: 1
  duration_seconds: 1
`)

	cfg, err := LoadConfig(path, nil)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "cachesize")
}

func TestLoadConfig_InvalidLatePolicy(t *testing.T) {
	path := writeTempConfig(t, validConfig)

	cfg, err := LoadConfig(path, map[string]string{"pipeline.late_policy": "reopen"})
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof=drop error")
}

func TestLoadConfig_InfluxRequiresURL(t *testing.T) {
	path := writeTempConfig(t, validConfig+`  influx:
    enabled: true
    org: perf
    bucket: loadtests
`)

	cfg, err := LoadConfig(path, nil)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/configs.yml", nil)
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()

	overrides, err := ParseOverrides([]string{"pipeline.cache_size=7", "generator.target_url=http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"pipeline.cache_size":  "7",
		"generator.target_url": "http://localhost:8000/",
	}, overrides)

	_, err = ParseOverrides([]string{"no-equals-sign"})
	assert.Error(t, err)
}
