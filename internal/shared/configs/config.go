package configs

import "time"

// Config holds all configuration for a load test run.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
	Lock        LockConfig        `mapstructure:"lock" validate:"required"`
	Artifacts   ArtifactsConfig   `mapstructure:"artifacts" validate:"required"`
	Generator   GeneratorConfig   `mapstructure:"generator" validate:"required"`
	Sinks       SinksConfig       `mapstructure:"sinks"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// ServerConfig holds the status server configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// PipelineConfig holds the aggregation pipeline parameters.
//
// CacheSize bounds the windower's open-bucket cache; reorder tolerance is
// cache_size-1 distinct seconds. LatePolicy decides what happens to samples
// arriving for an already-closed second.
type PipelineConfig struct {
	PollIntervalSeconds float64 `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
	CacheSize           int     `mapstructure:"cache_size" validate:"required,min=1"`
	LatePolicy          string  `mapstructure:"late_policy" validate:"required,oneof=drop error"`
	QueueDepth          int     `mapstructure:"queue_depth" validate:"required,min=1"`
}

// PollInterval returns the poll interval as a duration.
func (c PipelineConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds * float64(time.Second))
}

// AggregationConfig is the declarative aggregation specification: for each
// raw sample field, the list of aggregate function names to apply, plus the
// global percentile set used by the "quantiles" function.
type AggregationConfig struct {
	Fields      map[string][]string `mapstructure:"fields" validate:"required,min=1"`
	Percentiles []float64           `mapstructure:"percentiles" validate:"required,min=1,dive,gte=0,lte=100"`
}

// LockConfig holds run lock configuration. WaitSeconds > 0 retries
// acquisition for that long before giving up.
type LockConfig struct {
	Dir         string `mapstructure:"dir" validate:"required"`
	WaitSeconds int    `mapstructure:"wait_seconds" validate:"min=0"`
}

// ArtifactsConfig holds the artifact directory configuration. DirName is
// optional; when empty a timestamped directory is created under BaseDir.
type ArtifactsConfig struct {
	BaseDir string `mapstructure:"base_dir" validate:"required"`
	DirName string `mapstructure:"dir_name"`
}

// GeneratorConfig selects and parameterizes the load generator plugin.
type GeneratorConfig struct {
	Plugin          string  `mapstructure:"plugin" validate:"required"`
	TargetURL       string  `mapstructure:"target_url" validate:"omitempty,url"`
	RPS             float64 `mapstructure:"rps" validate:"required,gt=0"`
	Workers         int     `mapstructure:"workers" validate:"required,min=1"`
	DurationSeconds int     `mapstructure:"duration_seconds" validate:"required,min=1"`
}

// Duration returns the configured test duration.
func (c GeneratorConfig) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

// SinksConfig enables result listeners.
type SinksConfig struct {
	Console bool         `mapstructure:"console"`
	JSONL   bool         `mapstructure:"jsonl"`
	Influx  InfluxConfig `mapstructure:"influx"`
}

// InfluxConfig configures the optional InfluxDB uplink.
type InfluxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	Token   string `mapstructure:"token" validate:"required_if=Enabled true"`
	Org     string `mapstructure:"org" validate:"required_if=Enabled true"`
	Bucket  string `mapstructure:"bucket" validate:"required_if=Enabled true"`
}
