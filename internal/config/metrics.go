package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Port         string `yaml:"port"`
	OtlpEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	OtlpInsecure bool   `yaml:"otlp_insecure"`
}

func defaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      true,
		Port:         defaultMetricsPort,
		ServiceName:  "fortuna-data-service",
		OtlpInsecure: true,
	}
}

func applyMetricsEnv(cfg *MetricsConfig) {
	overrideBool(&cfg.Enabled, envMetricsOn)
	overrideString(&cfg.Port, envMetricsPort)
	overrideString(&cfg.OtlpEndpoint, envOtelEndpoint)
	overrideString(&cfg.ServiceName, envOtelService)
	overrideBool(&cfg.OtlpInsecure, envOtelInsecure)
}
