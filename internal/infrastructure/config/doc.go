// Package config provides 12-factor configuration for the blueprint studio.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Storage: History backend (file, sqlite, memory) and its circuit breaker
//   - History: Number of blueprints remembered
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - STORAGE_BACKEND, STORAGE_PATH, STORAGE_NAMESPACE
//   - STORAGE_BREAKER_FAILURES, STORAGE_BREAKER_COOLDOWN
//   - HISTORY_CAPACITY
package config
