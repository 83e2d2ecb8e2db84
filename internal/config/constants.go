package config

import "time"

const (
	envConfigFile   = "CONFIG_FILE"
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envTimezone     = "TIMEZONE"
	envPrefetch     = "PREFETCH_ENABLED"
	envRolloverCron = "ROLLOVER_CRON"
	envAdminToken   = "ADMIN_TOKEN"

	envFortunaBaseURL = "FORTUNA_BASE_URL"
	envFortunaTimeout = "FORTUNA_TIMEOUT"

	envAuthToken     = "AUTH_TOKEN"
	envAuthDBPath    = "AUTH_DB_PATH"
	envAuthNamespace = "AUTH_NAMESPACE"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultProvider = "fixture"
	// The product's audience; day rollover follows this zone.
	defaultTimezone = "Asia/Seoul"
	defaultPrefetch = true
	// Shortly after midnight so the rolled-over cache is swept before the
	// first morning request (six-field spec, seconds first).
	defaultRolloverCron = "5 0 0 * * *"

	defaultFortunaBaseURL = "https://api.fortuna.app/api"
	// Upstream generates fortunes on demand; allow for slow first hits.
	defaultFortunaTimeout = 15 * time.Second

	defaultAuthNamespace = "fortuna"
	defaultMetricsPort   = "9090"
)
