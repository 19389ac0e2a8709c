// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The CLI uses CLIConfig so only warnings reach stderr while decoded
// documents go to stdout. The level can be changed at runtime.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	history := logger.Component("history")
package logging
