package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/strompris-go/logging"
	"github.com/angas/strompris-go/strompris"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

type AppConfigStore struct {
	Path string
	// How many days cached upstream responses are kept before they get
	// purged. Zero or below keeps them forever.
	CacheRetentionDays *int `mapstructure:"cache_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (s AppConfigStore) GetCacheRetentionDays() int {
	if s.CacheRetentionDays == nil {
		return 0
	}
	return *s.CacheRetentionDays
}

func (s AppConfigStore) GetBackupRetentionDays() int {
	if s.BackupRetentionDays == nil {
		return 90
	}
	return *s.BackupRetentionDays
}

type AppConfigPrices struct {
	// Upstream price API base URL, default hvakosterstrommen.no
	BaseUrl *string `mapstructure:"base_url"`
	// How many days back the prefetch task warms the cache
	PrefetchDays *int `mapstructure:"prefetch_days"`
	// Cron schedule for the prefetch task
	PrefetchRunAt *string `mapstructure:"prefetch_run_at"`
}

func (p AppConfigPrices) GetBaseUrl() string {
	if p.BaseUrl == nil {
		return strompris.DefaultBaseURL
	}
	return *p.BaseUrl
}

func (p AppConfigPrices) GetPrefetchDays() int {
	if p.PrefetchDays == nil {
		return 7
	}
	return *p.PrefetchDays
}

func (p AppConfigPrices) GetPrefetchRunAt() string {
	if p.PrefetchRunAt == nil {
		return "@hourly"
	}
	return *p.PrefetchRunAt
}

type AppConfigMqtt struct {
	Host     string // Feed is disabled when empty
	Port     int16
	Username string
	Password string
	// Topic prefix for published day prices, default "strompris"
	TopicPrefix *string `mapstructure:"topic_prefix"`
}

func (m AppConfigMqtt) Enabled() bool {
	return m.Host != ""
}

func (m AppConfigMqtt) GetTopicPrefix() string {
	if m.TopicPrefix == nil {
		return "strompris"
	}
	return *m.TopicPrefix
}

type AppConfigLogging struct {
	// Min log level for the store: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the store, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for the console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api     AppConfigApi
	Store   AppConfigStore
	Prices  AppConfigPrices
	Mqtt    AppConfigMqtt
	Logging AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
