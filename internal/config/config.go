package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/storage"
	"github.com/josephgoksu/smarttask/internal/telemetry"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite mysql"`
	Dir     string `mapstructure:"dir"`
	Format  string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Backend mysql"`
}

type AnalysisConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"baseURL" validate:"required_if=Enabled true"`
	Endpoint  string        `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Retries   int           `mapstructure:"retries" validate:"gte=0,lte=10"`
	CSRFToken string        `mapstructure:"csrfToken"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads configuration from (in increasing priority) defaults, the config
// file, a .env file and SMARTTASK_* environment variables.
// When cfgFile is empty the file is searched in ./.smarttask, $HOME and ".".
// A missing file is not an error unless cfgFile names it explicitly.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		if info, err := os.Stat(ProjectDir); err == nil && info.IsDir() {
			v.AddConfigPath(ProjectDir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case cfgFile == "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	cfg.Storage.Format = strings.ToLower(cfg.Storage.Format)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// StorageOptions resolves the data directory and returns the slot options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: c.Storage.Backend,
		Dir:     ResolveDataDir(c.Storage.Dir),
		Format:  c.Storage.Format,
		DSN:     c.Storage.DSN,
	}
}

// AnalysisClientConfig returns the client settings for the scoring service.
func (c *Config) AnalysisClientConfig() analysis.Config {
	return analysis.Config{
		BaseURL:   c.Analysis.BaseURL,
		Endpoint:  c.Analysis.Endpoint,
		Timeout:   c.Analysis.Timeout,
		Retries:   c.Analysis.Retries,
		CSRFToken: c.Analysis.CSRFToken,
	}
}

// TelemetrySettings returns the telemetry client settings for the given build version.
func (c *Config) TelemetrySettings(version string) telemetry.Settings {
	return telemetry.Settings{
		Enabled:  c.Telemetry.Enabled,
		APIKey:   c.Telemetry.APIKey,
		Endpoint: c.Telemetry.Endpoint,
		Version:  version,
	}
}

// DefaultConfigPath is where `config set` writes when no file was loaded.
func DefaultConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigName+".yaml"), nil
}
