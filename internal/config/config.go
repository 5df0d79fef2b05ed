package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Interval              int      `mapstructure:"interval"`
	LogPath               string   `mapstructure:"log"`
	DBPath                string   `mapstructure:"db_path"`
	DaemonPort            int      `mapstructure:"daemon_port"`
	RetryBudget           int      `mapstructure:"retry_budget"`
	ResetRetriesOnSuccess bool     `mapstructure:"reset_retries_on_success"`
	IgnoreList            []string `mapstructure:"ignore_list"`
	BufferSize            int      `mapstructure:"buffer_size"`
}

var Default = Config{
	Interval:    1,
	LogPath:     "file_sync.log",
	DBPath:      "filesync.db",
	DaemonPort:  9001,
	RetryBudget: 3,
	IgnoreList:  []string{},
	BufferSize:  100,
}

// Load reads ~/.filesync/config.yaml, layering FILESYNC_* environment
// variables over it. A missing config file is fine; defaults cover every key.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	configDir := filepath.Join(home, ".filesync")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("interval", Default.Interval)
	viper.SetDefault("log", Default.LogPath)
	viper.SetDefault("db_path", Default.DBPath)
	viper.SetDefault("daemon_port", Default.DaemonPort)
	viper.SetDefault("retry_budget", Default.RetryBudget)
	viper.SetDefault("reset_retries_on_success", Default.ResetRetriesOnSuccess)
	viper.SetDefault("ignore_list", Default.IgnoreList)
	viper.SetDefault("buffer_size", Default.BufferSize)

	viper.SetEnvPrefix("FILESYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := errors.AsType[viper.ConfigFileNotFoundError](err); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
