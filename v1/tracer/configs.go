package tracer

// Default application environment reported on spans when none is configured.
const DefaultAppEnv = "development"

// Config defines the configuration structure for the tracer client.
type Config struct {
	// ServiceName identifies this service on every exported span.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable TRACER_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv names the deployment environment (e.g. "development",
	// "staging", "production") attached to every span resource.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "app_env" key
	//   - Environment variable TRACER_APP_ENV
	//
	// Default: "development"
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport controls whether spans are exported over OTLP HTTP.
	// When false the tracer still creates spans and propagates context,
	// but nothing leaves the process. The exporter endpoint is taken
	// from the standard OTEL_EXPORTER_OTLP_* environment variables.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_export" key
	//   - Environment variable TRACER_ENABLE_EXPORT
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}

// DefaultConfig returns a Config with sensible defaults applied.
func DefaultConfig() Config {
	return Config{
		ServiceName: "searchkit",
		AppEnv:      DefaultAppEnv,
	}
}
