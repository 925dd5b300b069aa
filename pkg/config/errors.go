package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrReadingFile is returned when a config or dotenv file cannot be read or decoded
	ErrReadingFile = errors.New("failed to read config file")

	// ErrConfigNotLoaded is returned when a cached config is missing after loading
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
