package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loaded once at startup and
// injected into the components that need it.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Generator   GeneratorConfig   `mapstructure:"generator"`
	SmartSearch SmartSearchConfig `mapstructure:"smart_search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Mode               string        `mapstructure:"mode"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	MaxRequestBodySize int           `mapstructure:"max_request_body_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// GeneratorConfig holds the upstream LLM streaming endpoint settings. An
// empty APIKey is not a startup error; it surfaces as a per-request SSE
// error frame instead.
type GeneratorConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SmartSearchConfig holds the vector-search backend settings. Missing URL or
// token degrades context retrieval per request rather than failing startup.
type SmartSearchConfig struct {
	URL         string        `mapstructure:"url"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from the given file, with CHATBOT_* environment
// variables taking precedence.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CHATBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.max_request_body_size", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	// Credentials default to empty so env-only overrides bind through
	// AutomaticEnv even when the config file omits the keys.
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", "gemini-1.5-flash")
	v.SetDefault("generator.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("generator.timeout", 60*time.Second)

	v.SetDefault("smart_search.url", "")
	v.SetDefault("smart_search.access_token", "")
	v.SetDefault("smart_search.timeout", 30*time.Second)
}

// Validate checks configuration consistency. Credentials are deliberately
// not required here; their absence is a user-visible runtime condition, not
// a crash.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server mode: %s, must be 'debug' or 'release'", c.Server.Mode)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}

	if c.Generator.Model == "" {
		return fmt.Errorf("generator.model is required")
	}
	if c.Generator.BaseURL == "" {
		return fmt.Errorf("generator.base_url is required")
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("generator.timeout must be positive")
	}
	if c.SmartSearch.Timeout <= 0 {
		return fmt.Errorf("smart_search.timeout must be positive")
	}

	return nil
}

// GetServerAddr returns the host:port listen address.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
