package storage

// Config holds configuration for the object storage (e.g., S3, Minio) backing
// the document archive. An empty Endpoint disables the archive feature.
type Config struct {
	// Endpoint is the storage endpoint (host:port).
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the storage access key.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the storage secret key.
	SecretKey string `mapstructure:"secret_key" default:""`
	// Bucket is the bucket receiving archived document content.
	Bucket string `mapstructure:"bucket" default:"synchub-archive"`
	// Region is the storage region.
	Region string `mapstructure:"region" default:""`
	// UseSSL enables TLS towards the storage endpoint.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// TimeoutSeconds bounds a single storage call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether an archive endpoint is configured.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}
