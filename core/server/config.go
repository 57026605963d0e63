package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3003"`
	// ApiKey is the secret key required to access the read API. The webhook
	// endpoint is exempt; its authenticity check is the payload signature.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowOrigins is the comma-separated CORS allowlist for the frontend.
	AllowOrigins string `mapstructure:"allow_origins" default:"http://localhost:3000"`
}
