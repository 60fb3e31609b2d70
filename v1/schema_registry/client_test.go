package schema_registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newRegistryServer fakes the registry endpoints the client talks to,
// counting hits per path so the cache tests can assert on traffic.
func newRegistryServer(t *testing.T, hits map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++
		w.Header().Set("Content-Type", "application/vnd.schemaregistry.v1+json")

		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/versions"):
			var body struct {
				Schema string `json:"schema"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Schema == "" {
				t.Errorf("register request without schema: %v", err)
			}
			_ = json.NewEncoder(w).Encode(map[string]int{"id": 17})
		case r.URL.Path == "/schemas/ids/17":
			_ = json.NewEncoder(w).Encode(map[string]string{"schema": PageSchema("documents")})
		case r.URL.Path == "/subjects/pages-value/versions/latest":
			_ = json.NewEncoder(w).Encode(Metadata{ID: 17, Version: 3, Schema: PageSchema("documents")})
		case strings.HasPrefix(r.URL.Path, "/compatibility/"):
			_ = json.NewEncoder(w).Encode(map[string]bool{"is_compatible": true})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"error_code": 40403, "message": "Schema not found"})
		}
	}))
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("NewClient() error = nil for missing URL")
	}
}

func TestRegisterSchemaCachesID(t *testing.T) {
	hits := map[string]int{}
	server := newRegistryServer(t, hits)
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	id, err := RegisterPageSchema(client, "pages-value", "documents")
	if err != nil {
		t.Fatalf("RegisterPageSchema: %v", err)
	}
	if id != 17 {
		t.Errorf("schema ID = %d, want 17", id)
	}

	// Same subject and schema again: served from the ID cache.
	again, err := RegisterPageSchema(client, "pages-value", "documents")
	if err != nil {
		t.Fatalf("RegisterPageSchema (cached): %v", err)
	}
	if again != id {
		t.Errorf("cached ID = %d, want %d", again, id)
	}
	if hits["/subjects/pages-value/versions"] != 1 {
		t.Errorf("register endpoint hit %d times, want 1", hits["/subjects/pages-value/versions"])
	}
}

func TestGetSchemaByIDCachesSchema(t *testing.T) {
	hits := map[string]int{}
	server := newRegistryServer(t, hits)
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	schema, err := client.GetSchemaByID(17)
	if err != nil {
		t.Fatalf("GetSchemaByID: %v", err)
	}
	if schema != PageSchema("documents") {
		t.Errorf("schema mismatch: %s", schema)
	}

	if _, err := client.GetSchemaByID(17); err != nil {
		t.Fatalf("GetSchemaByID (cached): %v", err)
	}
	if hits["/schemas/ids/17"] != 1 {
		t.Errorf("schema endpoint hit %d times, want 1", hits["/schemas/ids/17"])
	}
}

func TestGetSchemaByIDNotFound(t *testing.T) {
	server := newRegistryServer(t, map[string]int{})
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.GetSchemaByID(999); !errors.Is(err, ErrSchemaNotFound) {
		t.Errorf("GetSchemaByID(999) = %v, want ErrSchemaNotFound", err)
	}
}

func TestGetLatestSchema(t *testing.T) {
	server := newRegistryServer(t, map[string]int{})
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	meta, err := client.GetLatestSchema("pages-value")
	if err != nil {
		t.Fatalf("GetLatestSchema: %v", err)
	}
	if meta.ID != 17 || meta.Version != 3 {
		t.Errorf("metadata = %+v, want ID 17 version 3", meta)
	}
	if meta.Subject != "pages-value" {
		t.Errorf("subject = %q, want pages-value", meta.Subject)
	}
}

func TestCheckCompatibility(t *testing.T) {
	server := newRegistryServer(t, map[string]int{})
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ok, err := client.CheckCompatibility("pages-value", PageSchema("documents"), "JSON")
	if err != nil {
		t.Fatalf("CheckCompatibility: %v", err)
	}
	if !ok {
		t.Error("expected schema to be compatible")
	}
}

func TestBasicAuthForwarded(t *testing.T) {
	var gotUser, gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewEncoder(w).Encode(map[string]string{"schema": "{}"})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, Username: "reader", Password: "secret"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.GetSchemaByID(1); err != nil {
		t.Fatalf("GetSchemaByID: %v", err)
	}
	if gotUser != "reader" || gotPass != "secret" {
		t.Errorf("basic auth = %q/%q, want reader/secret", gotUser, gotPass)
	}
}

func TestPageSchemaShape(t *testing.T) {
	var schema struct {
		Type       string `json:"type"`
		Properties map[string]struct {
			Type string   `json:"type"`
			Enum []string `json:"enum"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal([]byte(PageSchema("events")), &schema); err != nil {
		t.Fatalf("PageSchema is not valid JSON: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("type = %q, want object", schema.Type)
	}
	for _, field := range []string{"startIndex", "totalHits", "totalHitRelation", "events"} {
		if _, ok := schema.Properties[field]; !ok {
			t.Errorf("missing property %q", field)
		}
	}
	if got := schema.Properties["totalHitRelation"].Enum; len(got) != 2 || got[0] != "eq" || got[1] != "gte" {
		t.Errorf("totalHitRelation enum = %v, want [eq gte]", got)
	}
	if len(schema.Required) != 4 {
		t.Errorf("required = %v, want four fields", schema.Required)
	}

	// Deterministic output keeps the registry ID cache effective.
	if PageSchema("events") != PageSchema("events") {
		t.Error("PageSchema is not deterministic")
	}
}
