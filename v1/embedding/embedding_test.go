package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type capturedRequest struct {
	path  string
	auth  string
	model string
	input []string
}

// newInferenceServer fakes the OpenAI-compatible embeddings endpoint,
// recording what the provider sent and answering with fixed embeddings.
func newInferenceServer(t *testing.T, embeddings [][]float64, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if captured != nil {
			captured.path = r.URL.Path
			captured.auth = r.Header.Get("Authorization")
			captured.model = body.Model
			captured.input = body.Input
		}

		data := make([]map[string]any, len(embeddings))
		for i, e := range embeddings {
			data[i] = map[string]any{"embedding": e}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func testConfig(endpoint string) *Config {
	return &Config{
		Endpoint:     endpoint,
		ServiceToken: "test-token",
		HTTPTimeoutS: 5,
	}
}

func TestNewClientInvalidConfig(t *testing.T) {
	if _, err := NewClient(&Config{ServiceToken: "t"}); err == nil {
		t.Error("NewClient() error = nil for missing endpoint")
	}
	if _, err := NewClient(&Config{Endpoint: "http://localhost"}); err == nil {
		t.Error("NewClient() error = nil for missing service token")
	}
}

func TestCreateEmbeddings(t *testing.T) {
	want := [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}
	var captured capturedRequest
	srv := newInferenceServer(t, want, &captured)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	got, err := client.CreateEmbeddings(context.Background(), "test-model", "alpha", "beta")
	if err != nil {
		t.Fatalf("CreateEmbeddings() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("CreateEmbeddings() returned %d embeddings, want 2", len(got))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("embedding[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}

	if captured.path != "/v1/embeddings" {
		t.Errorf("request path = %q, want /v1/embeddings", captured.path)
	}
	if captured.auth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer service token", captured.auth)
	}
	if captured.model != "test-model" {
		t.Errorf("request model = %q, want test-model", captured.model)
	}
	if len(captured.input) != 2 || captured.input[0] != "alpha" || captured.input[1] != "beta" {
		t.Errorf("request input = %v, want [alpha beta]", captured.input)
	}
}

func TestCreateEmbeddingsDefaultModel(t *testing.T) {
	var captured capturedRequest
	srv := newInferenceServer(t, [][]float64{{1}}, &captured)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Model = "fallback-model"
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	// Empty model falls back to the configured default
	if _, err := client.CreateEmbeddings(context.Background(), "", "text"); err != nil {
		t.Fatalf("CreateEmbeddings() error = %v", err)
	}
	if captured.model != "fallback-model" {
		t.Errorf("request model = %q, want configured default", captured.model)
	}

	// Explicit model wins over the default
	if _, err := client.CreateEmbeddings(context.Background(), "explicit", "text"); err != nil {
		t.Fatalf("CreateEmbeddings() error = %v", err)
	}
	if captured.model != "explicit" {
		t.Errorf("request model = %q, want explicit", captured.model)
	}
}

func TestCreateEmbeddingsNoTexts(t *testing.T) {
	srv := newInferenceServer(t, nil, nil)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.CreateEmbeddings(context.Background(), "m"); err == nil {
		t.Error("CreateEmbeddings() error = nil without texts")
	}
}

func TestCreateEmbeddingsNoModel(t *testing.T) {
	srv := newInferenceServer(t, nil, nil)
	defer srv.Close()

	// No call model and no configured default
	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.CreateEmbeddings(context.Background(), "", "text"); err == nil {
		t.Error("CreateEmbeddings() error = nil without a model")
	}
}

func TestCreateEmbeddingsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.CreateEmbeddings(context.Background(), "m", "text")
	if err == nil {
		t.Fatal("CreateEmbeddings() error = nil for HTTP 500")
	}
	if !strings.Contains(err.Error(), "http 500") {
		t.Errorf("error = %v, want http 500 mention", err)
	}
}

func TestCreateEmbeddingsEmptyData(t *testing.T) {
	srv := newInferenceServer(t, nil, nil)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.CreateEmbeddings(context.Background(), "m", "text"); err == nil {
		t.Error("CreateEmbeddings() error = nil for empty data array")
	}
}

func TestCreateVectors(t *testing.T) {
	srv := newInferenceServer(t, [][]float64{{0.5, 1.5}, {2.5, 3.5}}, nil)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	vectors, err := client.CreateVectors(context.Background(), "m", "a", "b")
	if err != nil {
		t.Fatalf("CreateVectors() error = %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("CreateVectors() returned %d vectors, want 2", len(vectors))
	}
	if vectors[0][0] != float32(0.5) || vectors[1][1] != float32(3.5) {
		t.Errorf("vectors = %v, want float32 narrowing of server values", vectors)
	}
}

func TestCreateQueryVector(t *testing.T) {
	srv := newInferenceServer(t, [][]float64{{0.25, 0.75}}, nil)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	vec, err := client.CreateQueryVector(context.Background(), "m", "query text")
	if err != nil {
		t.Fatalf("CreateQueryVector() error = %v", err)
	}
	if len(vec) != 2 || vec[0] != float32(0.25) || vec[1] != float32(0.75) {
		t.Errorf("CreateQueryVector() = %v, want [0.25 0.75]", vec)
	}
}

func TestClose(t *testing.T) {
	srv := newInferenceServer(t, nil, nil)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("EMBEDDING_ENDPOINT", "http://inference.local")
	t.Setenv("EMBEDDING_SERVICE_TOKEN", "secret")
	t.Setenv("EMBEDDING_MODEL", "default-model")
	t.Setenv("EMBEDDING_HTTP_TIMEOUT_SECONDS", "7")

	cfg := NewConfig()
	if cfg.Endpoint != "http://inference.local" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.ServiceToken != "secret" {
		t.Errorf("ServiceToken = %q", cfg.ServiceToken)
	}
	if cfg.Model != "default-model" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.HTTPTimeoutS != 7 {
		t.Errorf("HTTPTimeoutS = %d, want 7", cfg.HTTPTimeoutS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewConfigTimeoutDefault(t *testing.T) {
	t.Setenv("EMBEDDING_HTTP_TIMEOUT_SECONDS", "not-a-number")

	cfg := NewConfig()
	if cfg.HTTPTimeoutS != 30 {
		t.Errorf("HTTPTimeoutS = %d, want default 30", cfg.HTTPTimeoutS)
	}
}
