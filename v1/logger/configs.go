package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the logger client is built.
type Config struct {
	// Level is the minimum level that gets emitted. One of the level
	// constants above; anything else falls back to info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"ZAP_LOGGER_SERVICE_NAME"`

	// EnableTracing makes the *WithContext methods extract trace and span
	// IDs from the context and attach them to the entry.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"ZAP_LOGGER_ENABLE_TRACING"`
}

// DefaultConfig returns a Config suitable for local development: info
// level, no tracing fields.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "searchkit",
	}
}
