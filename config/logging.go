package config

import "github.com/govsnap/govsnap/log"

// LoggerConfig holds the log encoder and the level of each component.
type LoggerConfig = log.Config

const (
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder = log.ConsoleEncoder
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder = log.JSONEncoder
)

func DefaultLoggingConfig() LoggerConfig {
	return log.DefaultConfig()
}
