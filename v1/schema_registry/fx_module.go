package schema_registry

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the schema
// registry client. The kafka module picks the Registry up as an
// optional dependency for schema-pinned page relays.
//
// Usage:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL:      "http://localhost:8081",
//	                Username: "user",
//	                Password: "pass",
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterSchemaRegistryLifecycle),
)

// SchemaRegistryParams groups the dependencies needed to create a
// schema registry client
type SchemaRegistryParams struct {
	fx.In

	Config Config
}

// NewClientWithDI creates a new schema registry client using dependency
// injection. Dependencies are automatically provided via the
// SchemaRegistryParams struct.
func NewClientWithDI(params SchemaRegistryParams) (Registry, error) {
	return NewClient(params.Config)
}

// SchemaRegistryLifecycleParams groups the dependencies needed for
// schema registry lifecycle management
type SchemaRegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  Registry
}

// RegisterSchemaRegistryLifecycle registers the schema registry client
// with the fx lifecycle system. The client holds no connections of its
// own, so the hooks only mark availability.
func RegisterSchemaRegistryLifecycle(params SchemaRegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: Schema Registry client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Schema Registry client shutdown")
			return nil
		},
	})
}
