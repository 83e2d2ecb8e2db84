package fortuna

import "time"

// ProviderName identifies this provider in logs and metrics.
const ProviderName = "fortuna"

const (
	defaultBaseURL = "https://api.fortuna.app/api"
	// Upstream generates a fortune on first request for a day; the worst
	// observed cold path is well under this.
	defaultTimeout = 15 * time.Second

	statusSuccess = "success"
)
