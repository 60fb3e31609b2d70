// Package logger provides structured logging functionality for Go applications.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, distributed tracing integration,
// and flexible output formatting. It integrates with the fx dependency injection framework
// for easy incorporation into applications.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FX module: Provides *LoggerClient for dependency injection
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warn, Error, Fatal)
//   - Context-aware logging for request tracing
//   - Distributed tracing integration with OpenTelemetry
//   - Automatic trace and span ID extraction from context
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/Aleph-Alpha/searchkit/v1/logger"
//
//	// Create a new logger (returns concrete *LoggerClient)
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		EnableTracing: true,
//	})
//
//	// Log with structured fields (without context)
//	log.Info("page decoded", nil, map[string]interface{}{
//		"field_name": "events",
//		"items":      42,
//	})
//
//	// Log with trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "search executed", nil, map[string]interface{}{
//		"collection": "events",
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule:
//
//	import (
//		"github.com/Aleph-Alpha/searchkit/v1/logger"
//		"go.uber.org/fx"
//	)
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{
//				Level:         "info",
//				EnableTracing: true,
//				ServiceName:   "search-api",
//			}
//		}),
//		fx.Invoke(func(log *logger.LoggerClient) {
//			log.Info("service started", nil, nil)
//		}),
//		// ... other modules
//	)
//	app.Run()
//
// # Type Aliases in Consumer Code
//
// To simplify your code and avoid tight coupling, use type aliases:
//
//	package myapp
//
//	import kitlogger "github.com/Aleph-Alpha/searchkit/v1/logger"
//
//	// Use type alias to reference searchkit's interface
//	type Logger = kitlogger.Logger
//
//	// Now use Logger throughout your codebase
//	func MyFunction(log Logger) {
//		log.Info("processing", nil, nil)
//	}
//
// This eliminates the need for adapters and allows you to switch implementations
// by only changing the alias definition.
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug               # Log level (debug, info, warning, error)
//	ZAP_LOGGER_SERVICE_NAME=search-api   # Service name attached to every entry
//	ZAP_LOGGER_ENABLE_TRACING=true       # Enable distributed tracing integration
//
// # Tracing Integration
//
// When tracing is enabled (EnableTracing: true), the *WithContext methods
// automatically extract trace and span IDs from the context and include them
// in log entries, correlating logs with distributed traces:
//   - trace_id: The OpenTelemetry trace ID
//   - span_id: The OpenTelemetry span ID
//
// To use tracing, ensure your application has OpenTelemetry configured (see
// v1/tracer) and pass context with active spans to the *WithContext methods.
//
// # Thread Safety
//
// All methods on LoggerClient are safe for concurrent use by multiple
// goroutines.
package logger
