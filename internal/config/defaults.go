// Package config provides centralized configuration for smarttask.
// All default values are defined here to keep a single source of truth.
package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// ConfigName is the config file name without extension (.smarttask.yaml).
	ConfigName = ".smarttask"

	// EnvPrefix prefixes every environment override, e.g. SMARTTASK_STORAGE_BACKEND.
	EnvPrefix = "SMARTTASK"

	// ProjectDir is the per-project directory checked before $HOME.
	ProjectDir = ".smarttask"
)

// Storage defaults
const (
	DefaultStorageBackend = "file"
	DefaultStorageFormat  = "json"
)

// Analysis service defaults
const (
	DefaultAnalysisBaseURL  = "http://localhost:8000"
	DefaultAnalysisEndpoint = "/api/analyze/"
	DefaultAnalysisTimeout  = 30 * time.Second
	DefaultAnalysisRetries  = 0
)

// Logging defaults
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", DefaultStorageBackend)
	v.SetDefault("storage.dir", "")
	v.SetDefault("storage.format", DefaultStorageFormat)
	v.SetDefault("storage.dsn", "")

	v.SetDefault("analysis.enabled", true)
	v.SetDefault("analysis.baseURL", DefaultAnalysisBaseURL)
	v.SetDefault("analysis.endpoint", DefaultAnalysisEndpoint)
	v.SetDefault("analysis.timeout", DefaultAnalysisTimeout)
	v.SetDefault("analysis.retries", DefaultAnalysisRetries)
	v.SetDefault("analysis.csrfToken", "")

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.apiKey", "")
	v.SetDefault("telemetry.endpoint", "")
}

// Keys lists every supported key, in display order.
var Keys = []string{
	"storage.backend", "storage.dir", "storage.format", "storage.dsn",
	"analysis.enabled", "analysis.baseURL", "analysis.endpoint", "analysis.timeout",
	"analysis.retries", "analysis.csrfToken",
	"log.level", "log.format",
	"telemetry.enabled", "telemetry.apiKey", "telemetry.endpoint",
}
