package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FetchConfig configures outbound HTTP behavior.
type FetchConfig struct {
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	ProbeTimeoutSecs int    `yaml:"probe_timeout_secs" mapstructure:"probe_timeout_secs"`
	UserAgent        string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxAttempts      int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ExtractConfig configures extraction caps.
type ExtractConfig struct {
	MaxCatalogPages   int `yaml:"max_catalog_pages" mapstructure:"max_catalog_pages"`
	MaxHeroProducts   int `yaml:"max_hero_products" mapstructure:"max_hero_products"`
	MaxFAQs           int `yaml:"max_faqs" mapstructure:"max_faqs"`
	MaxImportantLinks int `yaml:"max_important_links" mapstructure:"max_important_links"`
	PolicyMaxChars    int `yaml:"policy_max_chars" mapstructure:"policy_max_chars"`
	AboutMaxChars     int `yaml:"about_max_chars" mapstructure:"about_max_chars"`
}

// DiscoveryConfig configures competitor discovery.
type DiscoveryConfig struct {
	MaxCompetitors      int      `yaml:"max_competitors" mapstructure:"max_competitors"`
	BatchMaxCompetitors int      `yaml:"batch_max_competitors" mapstructure:"batch_max_competitors"`
	SearchBaseURL       string   `yaml:"search_base_url" mapstructure:"search_base_url"`
	QueryIntervalMs     int      `yaml:"query_interval_ms" mapstructure:"query_interval_ms"`
	ScrapeIntervalMs    int      `yaml:"scrape_interval_ms" mapstructure:"scrape_interval_ms"`
	DomainDenylist      []string `yaml:"domain_denylist" mapstructure:"domain_denylist"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.probe_timeout_secs", 8)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("fetch.max_attempts", 1)
	v.SetDefault("extract.max_catalog_pages", 40)
	v.SetDefault("extract.max_hero_products", 5)
	v.SetDefault("extract.max_faqs", 10)
	v.SetDefault("extract.max_important_links", 10)
	v.SetDefault("extract.policy_max_chars", 2000)
	v.SetDefault("extract.about_max_chars", 1000)
	v.SetDefault("discovery.max_competitors", 5)
	v.SetDefault("discovery.batch_max_competitors", 3)
	v.SetDefault("discovery.search_base_url", "https://html.duckduckgo.com")
	v.SetDefault("discovery.query_interval_ms", 1000)
	v.SetDefault("discovery.scrape_interval_ms", 2000)

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
