// Package config loads application configuration and sets up logging.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/varunisrani/marketscope/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. MARKETSCOPE_LLM_PROVIDER
const EnvPrefix = "MARKETSCOPE"

// Dir returns ~/.marketscope
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", eris.Wrap(err, "config: find home directory")
	}
	return filepath.Join(home, ".marketscope"), nil
}

// LoadDotEnv loads .env from the working directory when present
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return eris.Wrap(err, "config: load .env")
	}
	return nil
}

// Load reads configuration from file, then environment, over the defaults.
// An empty file searches ./config.yaml and ~/.marketscope/config.yaml.
func Load(file string) (*model.Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, model.DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	} else {
		zap.L().Debug("using config file", zap.String("path", v.ConfigFileUsed()))
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *model.Config) {
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	v.SetDefault("http.max_text_chars", d.HTTP.MaxTextChars)
	v.SetDefault("http.extract_mode", d.HTTP.ExtractMode)
	v.SetDefault("http.respect_robots", d.HTTP.RespectRobots)
	v.SetDefault("http.http_proxy", "")
	v.SetDefault("http.https_proxy", "")
	v.SetDefault("http.no_proxy", "")

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)

	v.SetDefault("search.provider", d.Search.Provider)
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.max_results", d.Search.MaxResults)

	v.SetDefault("crew.max_iterations", d.Crew.MaxIterations)
	v.SetDefault("crew.scratch_dir", d.Crew.ScratchDir)

	v.SetDefault("reports.dir", d.Reports.Dir)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.max_concurrent_reports", d.Server.MaxConcurrentReports)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate checks the settings a command depends on
func Validate(cfg *model.Config, command string) error {
	var problems []string

	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai", "anthropic", "claude", "ollama", "eino":
	default:
		problems = append(problems, "llm.provider must be one of openai, anthropic, ollama, eino")
	}
	if cfg.Crew.MaxIterations <= 0 {
		problems = append(problems, "crew.max_iterations must be positive")
	}

	if command == "serve" {
		if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
		if cfg.Server.MaxConcurrentReports <= 0 {
			problems = append(problems, "server.max_concurrent_reports must be positive")
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg model.LogConfig) error {
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
