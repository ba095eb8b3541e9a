// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Examples  ExamplesConfig  `yaml:"examples" mapstructure:"examples"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Identity  IdentityConfig  `yaml:"identity" mapstructure:"identity"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatabaseConfig configures the read-only HR database.
type DatabaseConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // "postgres" or "sqlite"
	URL    string `yaml:"url" mapstructure:"url"`
}

// AnthropicConfig holds model API settings. Each stage can use a different
// model; the guard and document stages default to the cheaper one.
type AnthropicConfig struct {
	Key               string  `yaml:"key" mapstructure:"key"`
	GenerateModel     string  `yaml:"generate_model" mapstructure:"generate_model"`
	ValidateModel     string  `yaml:"validate_model" mapstructure:"validate_model"`
	RespondModel      string  `yaml:"respond_model" mapstructure:"respond_model"`
	DocumentModel     string  `yaml:"document_model" mapstructure:"document_model"`
	GuardModel        string  `yaml:"guard_model" mapstructure:"guard_model"`
	MaxTokens         int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// PipelineConfig configures pipeline behavior.
type PipelineConfig struct {
	RequestTimeoutSecs int `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
	MaxResultRows      int `yaml:"max_result_rows" mapstructure:"max_result_rows"`
}

// RequestTimeout returns the per-request deadline.
func (p PipelineConfig) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSecs) * time.Second
}

// ExamplesConfig locates the worked example set.
type ExamplesConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // empty = embedded defaults
}

// ExtractConfig configures document text extraction.
type ExtractConfig struct {
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// IdentityConfig holds the shared token key.
type IdentityConfig struct {
	Key string `yaml:"key" mapstructure:"key"` // base64, 32 bytes
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	UploadDir      string   `yaml:"upload_dir" mapstructure:"upload_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ASKHR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a meaningful default still need registering so
	// AutomaticEnv picks them up during Unmarshal.
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.generate_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.validate_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.respond_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.document_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.guard_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.requests_per_second", 5)
	v.SetDefault("pipeline.request_timeout_secs", 120)
	v.SetDefault("pipeline.max_result_rows", 50)
	v.SetDefault("examples.path", "")
	v.SetDefault("extract.pdftotext_path", "pdftotext")
	v.SetDefault("identity.key", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
