package config

import "time"

// FortunaConfig controls how we talk to the Fortuna backend API.
type FortunaConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func defaultFortuna() FortunaConfig {
	return FortunaConfig{
		BaseURL: defaultFortunaBaseURL,
		Timeout: defaultFortunaTimeout,
	}
}

func applyFortunaEnv(cfg *FortunaConfig) {
	overrideString(&cfg.BaseURL, envFortunaBaseURL)
	overrideDuration(&cfg.Timeout, envFortunaTimeout)
}
