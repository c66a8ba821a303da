package storage

// Config holds configuration for the object storage connection.
type Config struct {
	// Endpoint is the S3-compatible endpoint (host:port or URL).
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the storage access key.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the storage secret key.
	SecretKey string `mapstructure:"secret_key" default:""`
	// Bucket is the bucket holding all uploaded media.
	Bucket string `mapstructure:"bucket" default:"farm-media"`
	// Region is the bucket region.
	Region string `mapstructure:"region" default:""`
	// UseSSL enables TLS for the storage connection.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// TimeoutSeconds is the connection and response timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
