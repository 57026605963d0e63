package nango

// Config holds configuration for the integration platform client.
type Config struct {
	// Host is the base URL of the platform API.
	Host string `mapstructure:"host" default:"https://api.nango.dev"`
	// SecretKey authenticates API calls and webhook payloads.
	SecretKey string `mapstructure:"secret_key" default:""`
	// TimeoutSeconds bounds a single HTTP request to the platform.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Retries is the default retry budget for record fetches and proxy calls.
	Retries int `mapstructure:"retries" default:"3"`
	// FetchLimit is the page size requested from the records API.
	FetchLimit int `mapstructure:"fetch_limit" default:"1000"`
}
