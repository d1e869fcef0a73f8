package nager

// Config holds configuration for the Nager.Date API client.
type Config struct {
	// BaseURL is the API root. No authentication is required.
	BaseURL string `mapstructure:"base_url" default:"https://date.nager.at/api/v3"`
	// RetryCount is the retry budget for each API call.
	RetryCount int `mapstructure:"retry_count" default:"3"`
	// TimeoutSeconds bounds each HTTP request so a hanging upstream cannot
	// hang a sync worker.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
