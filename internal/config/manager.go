package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
	viper      *viper.Viper
}

func NewManager() Manager {
	return &manager{viper: viper.New()}
}

func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.viper.SetConfigFile(configPath)
	m.viper.SetEnvPrefix("BLOGRANK")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.setDefaults()

	// Missing file is tolerated: env vars and defaults still apply.
	if _, err := os.Stat(configPath); err == nil {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	m.configPath = configPath
	return &config, nil
}

// Reload re-reads the config file and replaces the active config.
// The previous config stays in effect when the reload fails.
func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	if _, err := os.Stat(m.configPath); err == nil {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setDefaults() {
	// Credential keys default to empty so AutomaticEnv picks them up
	// even when the config file omits the section entirely.
	m.viper.SetDefault("search.client_id", "")
	m.viper.SetDefault("search.client_secret", "")
	m.viper.SetDefault("searchad.api_key", "")
	m.viper.SetDefault("searchad.secret_key", "")
	m.viper.SetDefault("searchad.customer_id", "")
	m.viper.SetDefault("sheet.webhook_url", "")
	m.viper.SetDefault("server.host", "0.0.0.0")
	m.viper.SetDefault("server.port", 8080)
	m.viper.SetDefault("analyzer.recent_count", 5)
	m.viper.SetDefault("analyzer.batch_interval_ms", 1500)
	m.viper.SetDefault("storage.data_dir", "./data")
	m.viper.SetDefault("logger.level", "info")
	m.viper.SetDefault("logger.format", "json")
	m.viper.SetDefault("logger.output", "stdout")
}

func validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Search.ClientID == "" || config.Search.ClientSecret == "" {
		return fmt.Errorf("naver search credentials are required (search.client_id, search.client_secret)")
	}
	if config.Analyzer.RecentCount <= 0 {
		return fmt.Errorf("analyzer.recent_count must be positive")
	}
	if config.Analyzer.BatchIntervalMs < 0 {
		return fmt.Errorf("analyzer.batch_interval_ms must not be negative")
	}
	// SearchAd credentials are optional: volume enrichment is skipped
	// when any of the three fields is missing.
	return nil
}
