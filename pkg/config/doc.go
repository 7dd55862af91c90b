// Package config fills configuration structs from environment variables
// (caarlos0/env) and checks them with their `validate` tags
// (go-playground/validator). Optional .env files are read with godotenv.
//
// The blueprint CLI reads every setting with the BLUEPRINT_ prefix:
//
//	type AppConfig struct {
//		BlueprintsDir string `env:"BLUEPRINTS_DIR" envDefault:"./blueprints" validate:"required"`
//		MaxDepth      int    `env:"MAX_DEPTH" envDefault:"128" validate:"gte=1"`
//		HTTP          httpserver.Config
//	}
//
//	if err := config.LoadEnv(".env.local"); err != nil {
//		return err
//	}
//	var cfg AppConfig
//	if err := config.Parse(&cfg, config.WithPrefix("BLUEPRINT_")); err != nil {
//		return err
//	}
//
// Parse always reads the current environment. Load does the same the first
// time a type is requested and then serves a cached copy for the rest of the
// process; ResetCache drops the copies. A Load that fails is not cached, so it
// can be retried once the environment is fixed. WithEnvironment swaps the
// process environment for a map, which keeps tests parallel.
//
// Failures wrap one of the sentinel errors: ErrParsingConfig, ErrValidation,
// ErrInvalidConfigType, ErrLoadingEnvFile, ErrConfigNotLoaded and
// ErrNilPointer.
package config
