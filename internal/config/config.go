package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	BackupDir  string   `mapstructure:"backup_dir"`
	DBPath     string   `mapstructure:"db_path"`
	DaemonPort int      `mapstructure:"daemon_port"`
	BufferSize int      `mapstructure:"buffer_size"`
	DebounceMs int      `mapstructure:"debounce_ms"`
	IgnoreList []string `mapstructure:"ignore_list"`
}

var Default = Config{
	BackupDir:  "",
	DaemonPort: 9811,
	BufferSize: 100,
	DebounceMs: 500,
	IgnoreList: []string{".git", ".stversions", ".stfolder", "*.tmp"},
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	configDir := filepath.Join(home, ".syncsweep")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("backup_dir", Default.BackupDir)
	viper.SetDefault("db_path", filepath.Join(configDir, "syncsweep.db"))
	viper.SetDefault("daemon_port", Default.DaemonPort)
	viper.SetDefault("buffer_size", Default.BufferSize)
	viper.SetDefault("debounce_ms", Default.DebounceMs)
	viper.SetDefault("ignore_list", Default.IgnoreList)

	viper.SetEnvPrefix("SYNCSWEEP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if ok := errors.As(err, &notFoundErr); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
