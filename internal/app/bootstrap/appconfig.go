// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to ConvoHub lives: the Mongo
// connection, the assignment engine's defaults, and the housekeeping
// intervals.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Assignment engine defaults
	DefaultRoomSize    int           // Room size used when a stratified request omits one
	DefaultMinRoomSize int           // Lower room bound when an optimized request omits one
	DefaultMaxRoomSize int           // Upper room bound when an optimized request omits one
	SolverTimeLimit    time.Duration // Budget for one optimizer attempt before falling back

	// Housekeeping
	SettingsRepairInterval time.Duration // How often the duplicate-active repair runs

	// Base URL the service is reachable at (used in notification links)
	BaseURL string
}
