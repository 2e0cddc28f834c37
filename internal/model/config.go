package model

import (
	"strconv"
	"time"
)

// Config is the complete application configuration
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Crew    CrewConfig    `yaml:"crew" mapstructure:"crew"`
	Reports ReportsConfig `yaml:"reports" mapstructure:"reports"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// HTTPConfig configures website scraping
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxTextChars  int           `yaml:"max_text_chars" mapstructure:"max_text_chars"`
	ExtractMode   string        `yaml:"extract_mode" mapstructure:"extract_mode"` // text, readability
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// LLMConfig configures the completion provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, eino
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig configures the web search capability given to the analyst agent
type SearchConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // tavily, serper, ""
	APIKey     string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// CrewConfig configures the agent runtime
type CrewConfig struct {
	MaxIterations int    `yaml:"max_iterations" mapstructure:"max_iterations"`
	ScratchDir    string `yaml:"scratch_dir" mapstructure:"scratch_dir"`
}

// ReportsConfig configures report persistence
type ReportsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port                 int           `yaml:"port" mapstructure:"port"`
	AllowedOrigins       []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MaxConcurrentReports int           `yaml:"max_concurrent_reports" mapstructure:"max_concurrent_reports"`
	SessionTTL           time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json, console
}

// DefaultUserAgent is a standard desktop browser user agent
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	origins := make([]string, 0, 11)
	for port := 3000; port <= 3010; port++ {
		origins = append(origins, "http://localhost:"+strconv.Itoa(port))
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    DefaultUserAgent,
			MaxBodyBytes: 2_000_000,
			MaxTextChars: 5000,
			ExtractMode:  "text",
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Search: SearchConfig{
			Provider:   "serper",
			MaxResults: 5,
		},
		Crew: CrewConfig{
			MaxIterations: 6,
			ScratchDir:    "reports/scratch",
		},
		Reports: ReportsConfig{
			Dir: "reports",
		},
		Server: ServerConfig{
			Port:                 5001,
			AllowedOrigins:       origins,
			MaxConcurrentReports: 4,
			SessionTTL:           30 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
