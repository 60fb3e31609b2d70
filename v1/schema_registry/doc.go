// Package schema_registry provides a Confluent-style schema registry
// client and the wire framing used to pin relayed pages to a schema.
//
// The registry stores the document-form shape of result pages (and any
// other payloads) under versioned subjects. The kafka package uses it
// to frame page payloads with a schema ID so consumers can verify what
// they are decoding.
//
// # Core Features
//
//   - HTTP client for a Confluent-compatible schema registry
//   - Schema registration and retrieval with in-memory caching
//   - Compatibility checking for schema evolution
//   - Confluent wire format framing (magic byte + big-endian schema ID)
//   - Canonical result-page schema builder and registration helper
//
// # Basic Usage
//
//	import "github.com/Aleph-Alpha/searchkit/v1/schema_registry"
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:      "http://localhost:8081",
//	    Username: "user",     // Optional
//	    Password: "password", // Optional
//	    Timeout:  10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register the page schema for a relay topic
//	schemaID, err := schema_registry.RegisterPageSchema(registry, "pages-value", "documents")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Look a schema up again later
//	schema, err := registry.GetSchemaByID(schemaID)
//
// Registering the same schema twice returns the same ID without a
// network call; lookups by ID are cached the same way.
//
// # Wire Format
//
// Framed payloads carry a five byte header before the payload:
//
//	[magic_byte (1 byte)] [schema_id (4 bytes, big-endian)] [payload]
//
// The magic byte is always 0x0. Frame, EncodeSchemaID and
// DecodeSchemaID implement this format; DecodeSchemaID rejects inputs
// that are too short or start with a different magic byte, which is how
// unframed payloads are told apart from framed ones.
//
//	framed := schema_registry.Frame(schemaID, payload)
//	id, payload, err := schema_registry.DecodeSchemaID(framed)
//
// # Page Schemas
//
// PageSchema builds the JSON Schema for the document form of a result
// page: startIndex, totalHits, totalHitRelation and the named object
// list. The item shape stays open since it varies per stream, so schema
// evolution only constrains the envelope.
//
//	schema := schema_registry.PageSchema("documents")
//	ok, err := registry.CheckCompatibility("pages-value", schema, "JSON")
//
// # FX Module Integration
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL: os.Getenv("SCHEMA_REGISTRY_URL"),
//	            }
//	        },
//	    ),
//	)
//
// # Related Packages
//
//   - v1/kafka: frames relayed pages with registered schema IDs
//   - v1/resultset: the document form the page schema describes
package schema_registry
