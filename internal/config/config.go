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
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Parser    ParserConfig    `yaml:"parser" mapstructure:"parser"`
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Salary    SalaryConfig    `yaml:"salary" mapstructure:"salary"`
	Brand     BrandConfig     `yaml:"brand" mapstructure:"brand"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates the keyword dataset.
type DatasetConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Sheet string `yaml:"sheet" mapstructure:"sheet"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBodyBytes int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerHost  float64 `yaml:"rate_per_host" mapstructure:"rate_per_host"`
	Burst        int     `yaml:"burst" mapstructure:"burst"`
}

// Timeout returns the per-request timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// CacheConfig selects and configures the page cache backend.
type CacheConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Dir         string `yaml:"dir" mapstructure:"dir"`
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	RedisAddr   string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix" mapstructure:"redis_prefix"`
}

// ParserConfig selects the HTML parser tier and its bounds.
type ParserConfig struct {
	Tier         string `yaml:"tier" mapstructure:"tier"`
	MaxHeadings  int    `yaml:"max_headings" mapstructure:"max_headings"`
	MaxBullets   int    `yaml:"max_bullets" mapstructure:"max_bullets"`
	PreviewChars int    `yaml:"preview_chars" mapstructure:"preview_chars"`
}

// ClassifyConfig configures numeric clue windows.
type ClassifyConfig struct {
	WindowRadius int `yaml:"window_radius" mapstructure:"window_radius"`
	MaxWindow    int `yaml:"max_window" mapstructure:"max_window"`
	BucketCap    int `yaml:"bucket_cap" mapstructure:"bucket_cap"`
}

// SalaryConfig holds the plausibility bounds for salary ranges, in base
// currency units.
type SalaryConfig struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

// BrandConfig lists self-brand and noise markers used by competitor ranking.
type BrandConfig struct {
	SelfNames    []string `yaml:"self_names" mapstructure:"self_names"`
	SelfDomains  []string `yaml:"self_domains" mapstructure:"self_domains"`
	NoiseDomains []string `yaml:"noise_domains" mapstructure:"noise_domains"`
}

// AnthropicConfig holds AI writer settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
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
	v.SetEnvPrefix("ADMISSIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "school_data.csv")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_body_bytes", 2*1024*1024)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; AdmissionsGEO/1.0)")
	v.SetDefault("fetch.rate_per_host", 1.0)
	v.SetDefault("fetch.burst", 1)
	v.SetDefault("cache.driver", "file")
	v.SetDefault("cache.dir", ".page_cache")
	v.SetDefault("cache.dsn", "page_cache.db")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_prefix", "pagecache:")
	v.SetDefault("parser.tier", "full")
	v.SetDefault("parser.max_headings", 25)
	v.SetDefault("parser.max_bullets", 30)
	v.SetDefault("parser.preview_chars", 1200)
	v.SetDefault("classify.window_radius", 26)
	v.SetDefault("classify.max_window", 80)
	v.SetDefault("classify.bucket_cap", 12)
	v.SetDefault("salary.min", 15000)
	v.SetDefault("salary.max", 200000)
	v.SetDefault("brand.self_names", []string{"中華醫事", "華醫"})
	v.SetDefault("brand.self_domains", []string{"hwu.edu.tw"})
	v.SetDefault("brand.noise_domains", []string{
		"dcard", "ptt.cc", "facebook", "instagram", "youtube",
		"104.com", "1111.com", "mobile01", "threads",
	})
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "file", "sqlite", "redis":
	default:
		return eris.Errorf("config: unknown cache driver %q", c.Cache.Driver)
	}
	switch c.Parser.Tier {
	case "full", "fallback":
	default:
		return eris.Errorf("config: unknown parser tier %q", c.Parser.Tier)
	}
	if c.Salary.Min <= 0 || c.Salary.Max <= c.Salary.Min {
		return eris.Errorf("config: invalid salary bounds [%d, %d]", c.Salary.Min, c.Salary.Max)
	}
	if c.Classify.WindowRadius <= 0 || c.Classify.BucketCap <= 0 {
		return eris.New("config: classify window_radius and bucket_cap must be positive")
	}
	if c.Fetch.TimeoutSecs <= 0 {
		return eris.New("config: fetch timeout_secs must be positive")
	}
	return nil
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
