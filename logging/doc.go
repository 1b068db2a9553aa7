// Package logging provides a minimal logging interface and adapters for foundryrelay.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that adapters and the CLI use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NewLogger building a JSON or text slog handler from LoggerConfig
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "text", Output: os.Stderr})
//	agent := foundry.NewTaskAgent(cfg, tasks, connector, func(o *foundry.Options) { o.Logger = logger })
package logging
