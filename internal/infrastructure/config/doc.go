// Package config provides 12-factor configuration management for the bridge.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Server: listen address and shutdown grace period
//   - Bridge: apps directory, config document name, run timeout,
//     binary scan limit and allowed origins
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting for /syscall
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Bridge serving %s\n", cfg.AppsURL())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - BRIDGE_APPS_PATH, BRIDGE_CONFIG_FILE, BRIDGE_RUN_TIMEOUT
//   - BRIDGE_BINARY_SCAN_LIMIT, BRIDGE_ALLOWED_ORIGINS (comma separated)
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
