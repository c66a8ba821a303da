package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// JwtSecret is the HMAC secret used to verify admin bearer tokens.
	JwtSecret string `mapstructure:"jwt_secret" default:""`
	// PublicBaseURL is the externally visible base URL under which
	// uploaded media is served (e.g. https://cdn.example.farm).
	PublicBaseURL string `mapstructure:"public_base_url" default:"http://localhost:9000"`
	// BodyLimitMB caps the request body size for uploads.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
}
