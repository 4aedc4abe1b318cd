// Package logging provides structured logging utilities for uapi-version.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("uapi-version", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("uapi-version", "v2.0.0", "debug")
//	logger.Info("sorting", "count", 42)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("uapi-version", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug uapi-version sort versions.txt
//	LOG_LEVEL=error uapi-version compare 1.0 1.0~rc1
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "versions sorted",
//	    "module": "uapi-version",
//	    "version": "v1.0.0",
//	    "count": 42
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "cli.sortCmd.func1",
//	        "file": "sort.go",
//	        "line": 45
//	    },
//	    "msg": "reading input",
//	    "module": "uapi-version",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("myapp", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("versions sorted",
//	    "count", len(vs),
//	    "source", path,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("compared", "a", a, "b", b)   // Development/troubleshooting
//	slog.Info("versions sorted")             // Normal operations
//	slog.Warn("unknown format, using json")  // Potential issues
//	slog.Error("input file not readable")    // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to read versions",
//	    "error", err,
//	    "path", path,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging
//   - pkg/serializer - Input and output format warnings
//   - pkg/imagetag - Reference parsing diagnostics
//
// All components share consistent logging format and configuration.
package logging
