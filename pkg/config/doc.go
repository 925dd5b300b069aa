// Package config loads typed configuration structs from the environment and,
// optionally, a YAML file.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - Load parses the environment into a struct using `env` and `envDefault`
//     tags after loading the default `.env` file once, and caches the result
//     per type so every caller sees the same values.
//   - LoadEnv loads additional dotenv files before parsing.
//   - LoadFile decodes a YAML file (gopkg.in/yaml.v3) over the
//     environment-parsed values, so precedence is tag default, then
//     environment, then file. It is not cached.
//   - MustLoad panics on failure, for configuration required at startup.
//   - ResetCache clears cached values, which tests need.
//
// # Usage
//
//	type SessionConfig struct {
//	    TTL time.Duration `env:"BROWNIEGATE_SESSION_TTL" envDefault:"1h" yaml:"ttl"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig, file failures wrap ErrReadingFile, and
// a nil target returns ErrNilPointer.
package config
