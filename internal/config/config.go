package config

import (
	"blogrank-go/pkg/search"
	"blogrank-go/pkg/storage"
	"blogrank-go/pkg/volume"
)

type Config struct {
	Server   ServerConfig          `mapstructure:"server"`
	Search   search.Credentials    `mapstructure:"search"`
	SearchAd volume.Credentials    `mapstructure:"searchad"`
	Analyzer AnalyzerConfig        `mapstructure:"analyzer"`
	Storage  storage.StorageConfig `mapstructure:"storage"`
	Sheet    SheetConfig           `mapstructure:"sheet"`
	Logger   LoggerConfig          `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type AnalyzerConfig struct {
	// RecentCount is how many recent posts a blog-level analysis covers.
	RecentCount int `mapstructure:"recent_count"`
	// BatchIntervalMs is the pause between post analyses in a batch.
	BatchIntervalMs int `mapstructure:"batch_interval_ms"`
}

type SheetConfig struct {
	// WebhookURL is the optional spreadsheet webhook. Empty disables
	// remote record mirroring.
	WebhookURL string `mapstructure:"webhook_url"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
