package schema_registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrSchemaNotFound is returned when the registry has no schema for the
// requested ID or subject.
var ErrSchemaNotFound = errors.New("schema not found")

// Registry provides an interface for interacting with a Confluent-style
// schema registry. The kafka relay uses it to pin result-page payloads
// to a registered schema ID.
type Registry interface {
	// GetSchemaByID retrieves a schema by its ID
	GetSchemaByID(id int) (string, error)

	// GetLatestSchema retrieves the latest version of a schema for a subject
	GetLatestSchema(subject string) (*Metadata, error)

	// RegisterSchema registers a new schema for a subject and returns
	// its ID. Registering an identical schema again returns the same ID.
	RegisterSchema(subject, schema, schemaType string) (int, error)

	// CheckCompatibility checks if a schema is compatible with the
	// latest registered version of the subject
	CheckCompatibility(subject, schema, schemaType string) (bool, error)
}

// Metadata contains metadata about a registered schema
type Metadata struct {
	ID      int    `json:"id"`
	Version int    `json:"version"`
	Schema  string `json:"schema"`
	Subject string `json:"subject"`
	Type    string `json:"schemaType,omitempty"`
}

// Client is the default implementation of Registry that talks to the
// registry over HTTP. Schemas are cached by ID and registered IDs by
// subject and schema, so the hot paths of a serializer hit the network
// once.
//
// Client implements the Registry interface.
type Client struct {
	url        string
	httpClient *http.Client

	// Cache for schemas by ID
	schemaCache      map[int]string
	schemaCacheMutex sync.RWMutex

	// Cache for schema IDs by subject and schema
	idCache      map[string]int
	idCacheMutex sync.RWMutex

	// Authentication
	username string
	password string
}

// NewClient creates a new schema registry client.
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		url: config.URL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		schemaCache: make(map[int]string),
		idCache:     make(map[string]int),
		username:    config.Username,
		password:    config.Password,
	}, nil
}

// doRequest performs one registry call and decodes the JSON response
// into out. A 404 maps to ErrSchemaNotFound, any other non-200 status
// surfaces with the response body.
func (c *Client) doRequest(method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/vnd.schemaregistry.v1+json")
	}
	req.Header.Set("Accept", "application/vnd.schemaregistry.v1+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("schema registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", url, ErrSchemaNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// schemaPayload builds the registration body. The registry treats a
// missing schemaType as AVRO, so AVRO is never sent explicitly.
func schemaPayload(schema, schemaType string) map[string]interface{} {
	payload := map[string]interface{}{
		"schema": schema,
	}
	if schemaType != "" && schemaType != "AVRO" {
		payload["schemaType"] = schemaType
	}
	return payload
}

// GetSchemaByID retrieves a schema from the registry by its ID
func (c *Client) GetSchemaByID(id int) (string, error) {
	// Check cache first
	c.schemaCacheMutex.RLock()
	if schema, ok := c.schemaCache[id]; ok {
		c.schemaCacheMutex.RUnlock()
		return schema, nil
	}
	c.schemaCacheMutex.RUnlock()

	var result struct {
		Schema string `json:"schema"`
	}
	if err := c.doRequest(http.MethodGet, fmt.Sprintf("%s/schemas/ids/%d", c.url, id), nil, &result); err != nil {
		return "", err
	}

	// Cache the schema
	c.schemaCacheMutex.Lock()
	c.schemaCache[id] = result.Schema
	c.schemaCacheMutex.Unlock()

	return result.Schema, nil
}

// GetLatestSchema retrieves the latest version of a schema for a subject
func (c *Client) GetLatestSchema(subject string) (*Metadata, error) {
	var metadata Metadata
	if err := c.doRequest(http.MethodGet, fmt.Sprintf("%s/subjects/%s/versions/latest", c.url, subject), nil, &metadata); err != nil {
		return nil, err
	}

	metadata.Subject = subject

	// Cache the schema
	c.schemaCacheMutex.Lock()
	c.schemaCache[metadata.ID] = metadata.Schema
	c.schemaCacheMutex.Unlock()

	return &metadata, nil
}

// RegisterSchema registers a new schema with the schema registry
func (c *Client) RegisterSchema(subject, schema, schemaType string) (int, error) {
	// Check cache first
	cacheKey := fmt.Sprintf("%s:%s:%s", subject, schemaType, schema)
	c.idCacheMutex.RLock()
	if id, ok := c.idCache[cacheKey]; ok {
		c.idCacheMutex.RUnlock()
		return id, nil
	}
	c.idCacheMutex.RUnlock()

	var result struct {
		ID int `json:"id"`
	}
	url := fmt.Sprintf("%s/subjects/%s/versions", c.url, subject)
	if err := c.doRequest(http.MethodPost, url, schemaPayload(schema, schemaType), &result); err != nil {
		return 0, err
	}

	// Cache the ID
	c.idCacheMutex.Lock()
	c.idCache[cacheKey] = result.ID
	c.idCacheMutex.Unlock()

	return result.ID, nil
}

// CheckCompatibility checks if a schema is compatible with the existing
// schema for a subject. A subject with no registered versions accepts
// anything, which surfaces here as ErrSchemaNotFound from the registry.
func (c *Client) CheckCompatibility(subject, schema, schemaType string) (bool, error) {
	var result struct {
		IsCompatible bool `json:"is_compatible"`
	}
	url := fmt.Sprintf("%s/compatibility/subjects/%s/versions/latest", c.url, subject)
	if err := c.doRequest(http.MethodPost, url, schemaPayload(schema, schemaType), &result); err != nil {
		return false, err
	}
	return result.IsCompatible, nil
}
