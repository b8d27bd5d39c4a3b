package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment override, e.g. INVOICE_PORTAL_SERVER_PORT
const EnvPrefix = "INVOICE_PORTAL"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Form      FormConfig      `mapstructure:"form"`
	Session   SessionConfig   `mapstructure:"session"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// UploadConfig holds file intake limits
type UploadConfig struct {
	MaxFileSize        int64 `mapstructure:"max_file_size"`
	MaxMultipartMemory int64 `mapstructure:"max_multipart_memory"`
}

// FormConfig holds page and message settings
type FormConfig struct {
	Language   string `mapstructure:"language"`
	Title      string `mapstructure:"title"`
	NoticeHTML string `mapstructure:"notice_html"`
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxSessions   int           `mapstructure:"max_sessions"`
}

// WebSocketConfig holds live event channel configuration
type WebSocketConfig struct {
	ReadLimit int64         `mapstructure:"read_limit"`
	PongWait  time.Duration `mapstructure:"pong_wait"`
	WriteWait time.Duration `mapstructure:"write_wait"`
}

// Load reads configuration from an optional YAML file, a .env file and the
// environment. A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = gotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	// Upload defaults
	v.SetDefault("upload.max_file_size", 10*1024*1024)
	v.SetDefault("upload.max_multipart_memory", 1<<20)

	// Form defaults
	v.SetDefault("form.language", "en")
	v.SetDefault("form.title", "Supplier Portal - Invoice Submission")
	v.SetDefault("form.notice_html", "")

	// Session defaults
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("session.max_sessions", 10000)

	// WebSocket defaults
	v.SetDefault("websocket.read_limit", 64*1024)
	v.SetDefault("websocket.pong_wait", 60*time.Second)
	v.SetDefault("websocket.write_wait", 10*time.Second)
}

// bindEnvVars binds platform-style variables that do not follow the prefix
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("logger.level", EnvPrefix+"_LOGGER_LEVEL", "LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload.max_file_size must be positive")
	}
	if c.Upload.MaxMultipartMemory <= 0 {
		return fmt.Errorf("upload.max_multipart_memory must be positive")
	}

	switch c.Form.Language {
	case "en", "es":
	default:
		return fmt.Errorf("form.language must be en or es, got %q", c.Form.Language)
	}

	if c.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must not be negative")
	}
	if c.Session.MaxSessions < 0 {
		return fmt.Errorf("session.max_sessions must not be negative")
	}

	if c.WebSocket.ReadLimit <= 0 {
		return fmt.Errorf("websocket.read_limit must be positive")
	}

	return nil
}

// Address returns host:port for the HTTP listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
