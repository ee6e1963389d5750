package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrEnvFileNotFound is returned when an explicitly requested dotenv file does not exist.
	ErrEnvFileNotFound = errors.New("env file not found")

	// ErrNilPointer is returned when a nil value is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
