// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ConvoHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, default_room_size, etc.
//   - Environment variables: CONVOHUB_MONGO_URI, CONVOHUB_DEFAULT_ROOM_SIZE, etc.
//   - Command-line flags: --mongo_uri, --default_room_size, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "convo_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Assignment engine defaults
	{Name: "default_room_size", Default: 6, Desc: "Room size used when a stratified request omits one"},
	{Name: "default_min_room_size", Default: 4, Desc: "Lower room bound when an optimized request omits one"},
	{Name: "default_max_room_size", Default: 8, Desc: "Upper room bound when an optimized request omits one"},
	{Name: "solver_time_limit", Default: "10s", Desc: "Budget for one optimizer attempt before falling back (e.g., 10s, 1m)"},

	// Housekeeping
	{Name: "settings_repair_interval", Default: "10m", Desc: "How often the duplicate-active settings repair runs"},

	// Base URL for links in notifications
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL the service is reachable at"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CONVOHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CONVOHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		DefaultRoomSize:    appValues.Int("default_room_size"),
		DefaultMinRoomSize: appValues.Int("default_min_room_size"),
		DefaultMaxRoomSize: appValues.Int("default_max_room_size"),
		SolverTimeLimit:    appValues.Duration("solver_time_limit", 10*time.Second),

		SettingsRepairInterval: appValues.Duration("settings_repair_interval", 10*time.Minute),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// ConvoHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects engine defaults that
// every run would refuse anyway.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DefaultRoomSize < 2 {
		return fmt.Errorf("default_room_size must be at least 2, got %d", appCfg.DefaultRoomSize)
	}
	if appCfg.DefaultMinRoomSize < 2 || appCfg.DefaultMaxRoomSize < appCfg.DefaultMinRoomSize {
		return fmt.Errorf("default room size range [%d,%d] is invalid",
			appCfg.DefaultMinRoomSize, appCfg.DefaultMaxRoomSize)
	}
	if appCfg.SolverTimeLimit <= 0 {
		return fmt.Errorf("solver_time_limit must be positive, got %s", appCfg.SolverTimeLimit)
	}

	return nil
}
