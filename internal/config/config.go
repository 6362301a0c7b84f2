// Package config loads client configuration with the usual precedence:
// flags (applied by the command layer) over N8N_RENDER_* environment
// variables over a .n8n-render.yaml file (working directory first, then
// the user config dir) over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "N8N_RENDER"
	configBaseName = ".n8n-render"
)

var validate = validator.New()

// Config is the effective client configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Run    RunConfig    `mapstructure:"run"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig locates the backend.
type ServerConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=600"`
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// RunConfig holds test-run defaults.
type RunConfig struct {
	Mode         string `mapstructure:"mode" validate:"oneof=mock real"`
	ConnectionID string `mapstructure:"connection_id"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LogConfig controls the application log file. An empty file path disables
// logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("run.mode", "mock")
	v.SetDefault("run.connection_id", "")
	v.SetDefault("ui.theme", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from all sources. A missing config file is not
// an error; an unreadable or invalid one is.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil && dir != "" && dir != "/" {
		v.AddConfigPath(filepath.Join(dir, "n8n-render"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
