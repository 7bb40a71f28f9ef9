// Package logging provides a structured logging system for tes3mpctl with
// unified log handling and level filtering.
//
// This package implements a thin layer on Go's standard slog package,
// providing consistent logging behavior with structured output.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage Examples
//
//	import "tes3mpctl/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("setup", "Installing game engine")
//	logging.Debug("config", "Loaded configuration from %s", configPath)
//	logging.Warn("health", "UDP port already in use")
//	logging.Error("release", err, "Failed to download archive")
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **cmd**: Command dispatch and flag handling
//   - **config**: Configuration loading and validation
//   - **health**: Environment health checks and remediation
//   - **openmw**: Engine configuration file reconciliation
//   - **release**: Release download and extraction
//   - **server**: Dedicated server lifecycle
//   - **mesh**: Overlay network operations
//
// All log output goes to stderr so the interactive surface on stdout stays
// parseable by the user's eyes and scripts alike.
package logging
