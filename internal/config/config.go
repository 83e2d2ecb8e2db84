package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the service.
type Config struct {
	Port         string        `yaml:"port"`
	Provider     string        `yaml:"provider"`
	Timezone     string        `yaml:"timezone"`
	Prefetch     bool          `yaml:"prefetch"`
	RolloverCron string        `yaml:"rollover_cron"`
	AdminToken   string        `yaml:"admin_token"`
	Fortuna      FortunaConfig `yaml:"fortuna"`
	Auth         AuthConfig    `yaml:"auth"`
	Metrics      MetricsConfig `yaml:"metrics"`
}

// Load builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE), and environment variable overrides, in that order.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv(envConfigFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:         defaultPort,
		Provider:     defaultProvider,
		Timezone:     defaultTimezone,
		Prefetch:     defaultPrefetch,
		RolloverCron: defaultRolloverCron,
		Fortuna:      defaultFortuna(),
		Auth:         defaultAuth(),
		Metrics:      defaultMetrics(),
	}
}

func applyEnv(cfg *Config) {
	overrideString(&cfg.Port, envPort)
	overrideString(&cfg.Provider, envProvider)
	overrideString(&cfg.Timezone, envTimezone)
	overrideBool(&cfg.Prefetch, envPrefetch)
	overrideString(&cfg.RolloverCron, envRolloverCron)
	overrideString(&cfg.AdminToken, envAdminToken)
	applyFortunaEnv(&cfg.Fortuna)
	applyAuthEnv(&cfg.Auth)
	applyMetricsEnv(&cfg.Metrics)
}
