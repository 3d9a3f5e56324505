// Package config provides a reusable loader for hivenet configuration files
// and environment variables. It mirrors the structure of the YAML files
// under cmd/config.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"hivenet/pkg/utils"
)

// Config is the unified client configuration.
type Config struct {
	Chain struct {
		// Network selects the chain id: "mainnet" or "testnet".
		Network string `mapstructure:"network" yaml:"network" json:"network"`
		// AddressPrefix overrides the public-key prefix (default STM).
		AddressPrefix string `mapstructure:"address_prefix" yaml:"address_prefix" json:"address_prefix"`
	} `mapstructure:"chain" yaml:"chain" json:"chain"`

	Nodes struct {
		URLs              []string `mapstructure:"urls" yaml:"urls" json:"urls"`
		TimeoutSeconds    int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
		FailoverThreshold int      `mapstructure:"failover_threshold" yaml:"failover_threshold" json:"failover_threshold"`
	} `mapstructure:"nodes" yaml:"nodes" json:"nodes"`

	Backoff struct {
		// Strategy is "fixed", "linear" or "exponential".
		Strategy string `mapstructure:"strategy" yaml:"strategy" json:"strategy"`
		BaseMS   int    `mapstructure:"base_ms" yaml:"base_ms" json:"base_ms"`
		MaxMS    int    `mapstructure:"max_ms" yaml:"max_ms" json:"max_ms"`
	} `mapstructure:"backoff" yaml:"backoff" json:"backoff"`

	Logging struct {
		Level string `mapstructure:"level" yaml:"level" json:"level"`
	} `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load.
var AppConfig Config

// Load reads the default configuration file and merges any environment
// specific overrides. The resulting configuration is stored in AppConfig
// and returned. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merge %s config: %w", env, err)
		}
	}

	viper.SetEnvPrefix("HIVE")
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&AppConfig)
	return &AppConfig, nil
}

// LoadFromEnv builds a configuration from environment variables only, for
// deployments without a config file.
func LoadFromEnv() *Config {
	cfg := &Config{}
	cfg.Chain.Network = utils.EnvOrDefault("HIVE_NETWORK", "mainnet")
	cfg.Nodes.URLs = utils.SplitList(utils.EnvOrDefault("HIVE_NODES", ""))
	cfg.Nodes.TimeoutSeconds = utils.EnvOrDefaultInt("HIVE_TIMEOUT_SECONDS", 10)
	cfg.Nodes.FailoverThreshold = utils.EnvOrDefaultInt("HIVE_FAILOVER_THRESHOLD", 3)
	cfg.Logging.Level = utils.EnvOrDefault("HIVE_LOG_LEVEL", "info")
	applyDefaults(cfg)
	AppConfig = *cfg
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Chain.Network == "" {
		cfg.Chain.Network = "mainnet"
	}
	if cfg.Chain.AddressPrefix == "" {
		cfg.Chain.AddressPrefix = "STM"
	}
	if cfg.Nodes.TimeoutSeconds <= 0 {
		cfg.Nodes.TimeoutSeconds = 10
	}
	if cfg.Nodes.FailoverThreshold <= 0 {
		cfg.Nodes.FailoverThreshold = 3
	}
	if cfg.Backoff.Strategy == "" {
		cfg.Backoff.Strategy = "exponential"
	}
	if cfg.Backoff.BaseMS <= 0 {
		cfg.Backoff.BaseMS = 100
	}
	if cfg.Backoff.MaxMS <= 0 {
		cfg.Backoff.MaxMS = 10_000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// LoadFile reads one YAML file directly, bypassing viper's search paths.
// Useful for explicit --config flags and tests.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	applyDefaults(&cfg)
	AppConfig = cfg
	return &cfg, nil
}
