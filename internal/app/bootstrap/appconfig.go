// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration — ports, TLS, log levels
// and the like live in CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// API token configuration. Tokens are validated structurally; the
	// sign-in flow that issues them lives with the auth provider.
	TokenSecret string        // HS256 signing secret
	TokenTTL    time.Duration // lifetime of issued tokens

	// Store operation deadlines
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// SeedCatalog controls whether the card template catalog is upserted
	// during schema setup. Disable for environments that manage the
	// catalog manually.
	SeedCatalog bool
}
