package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
// It provides the simplified logging surface the rest of this library is
// written against, while keeping the underlying zap.Logger reachable for
// callers that need Zap-specific functionality.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance.
	// Most logging should go through the wrapper methods; this is exposed
	// for the rare case where direct Zap access is needed.
	Zap *zap.Logger

	// tracingEnabled indicates whether the *WithContext methods extract
	// trace and span IDs from the context and include them in entries.
	tracingEnabled bool
}

// NewLoggerClient initializes and returns a new logger client based on
// configuration.
//
// The logger is configured with:
//   - JSON encoding for structured logging
//   - ISO8601 timestamp format
//   - Capital letter level encoding (e.g., "INFO", "ERROR")
//   - Process ID and service name as default fields
//   - Caller information (file and line) included in log entries
//   - Output directed to stderr
//
// If initialization fails, the function calls log.Fatal to terminate the
// application; a process without logging is not worth starting.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "search-api",
//	})
//	log.Info("application started", nil, nil)
func NewLoggerClient(cfg Config) *LoggerClient {

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel

	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(logLevel),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Sampling:          nil,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths: []string{
			"stderr",
		},
		ErrorOutputPaths: []string{
			"stderr",
		},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))

	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{
		Zap:            zl,
		tracingEnabled: cfg.EnableTracing,
	}
}
