package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/logger"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// MinioContainer represents a MinIO container for testing
type MinioContainer struct {
	testcontainers.Container
	Endpoint string
}

// setupMinioContainer sets up a MinIO container for testing
func setupMinioContainer(ctx context.Context) (*MinioContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:          []string{"server", "/data"},
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor: wait.ForHTTP("/minio/health/live").
			WithPort("9000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start minio container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "9000")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &MinioContainer{
		Container: container,
		Endpoint:  fmt.Sprintf("%s:%s", host, mappedPort.Port()),
	}, nil
}

func testContainerConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Connection.Endpoint = endpoint
	cfg.Connection.AccessKeyID = "minioadmin"
	cfg.Connection.SecretAccessKey = "minioadmin"
	cfg.Connection.BucketName = "test-bucket"
	cfg.Connection.AccessBucketCreation = true
	return cfg
}

// TestMinioWithFXModule tests the minio package using the FX module
func TestMinioWithFXModule(t *testing.T) {
	// Skip if running in short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupMinioContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using MinIO on %s", containerInstance.Endpoint)

	var minioClient *MinioClient
	var store Client

	app := fxtest.New(t,
		fx.Provide(
			func() Config {
				return testContainerConfig(containerInstance.Endpoint)
			},
		),
		FXModule,
		fx.Populate(&minioClient, &store),
	)

	err = app.Start(ctx)
	require.NoError(t, err)

	require.NotNil(t, minioClient)
	require.NotNil(t, store)

	t.Run("PutGetDelete", func(t *testing.T) {
		payload := []byte(`{"hello":"world"}`)

		n, err := store.Put(ctx, "objects/greeting.json", bytes.NewReader(payload), int64(len(payload)))
		require.NoError(t, err)
		assert.Equal(t, int64(len(payload)), n)

		data, err := store.Get(ctx, "objects/greeting.json")
		require.NoError(t, err)
		assert.Equal(t, payload, data)

		err = store.Delete(ctx, "objects/greeting.json")
		require.NoError(t, err)

		_, err = store.Get(ctx, "objects/greeting.json")
		require.Error(t, err)
		assert.True(t, IsObjectNotFoundError(err), "expected ErrObjectNotFound, got %v", err)
	})

	t.Run("ListWithPrefix", func(t *testing.T) {
		for _, key := range []string{"list/a/1", "list/a/2", "list/b/1"} {
			_, err := store.Put(ctx, key, strings.NewReader("x"), 1)
			require.NoError(t, err)
		}

		keys, err := store.List(ctx, "list/a/")
		require.NoError(t, err)
		assert.Len(t, keys, 2)
		assert.Contains(t, keys, "list/a/1")
		assert.Contains(t, keys, "list/a/2")

		all, err := store.List(ctx, "list/")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("PresignedURLs", func(t *testing.T) {
		putURL, err := store.PreSignedPut(ctx, "presigned/upload.bin")
		require.NoError(t, err)
		assert.Contains(t, putURL, "test-bucket")
		assert.Contains(t, putURL, "presigned/upload.bin")

		getURL, err := store.PreSignedGet(ctx, "presigned/upload.bin")
		require.NoError(t, err)
		assert.Contains(t, getURL, "X-Amz-Signature")
	})

	t.Run("EmptyObjectKey", func(t *testing.T) {
		_, err := store.Put(ctx, "", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, ErrInvalidObjectKey)

		_, err = store.Get(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidObjectKey)

		err = store.Delete(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidObjectKey)
	})

	t.Run("BufferPoolStats", func(t *testing.T) {
		stats := store.GetBufferPoolStats()
		assert.GreaterOrEqual(t, stats.TotalBuffersCreated, int64(1))
		assert.Greater(t, stats.ReuseRatio, float64(0))
	})

	require.NoError(t, app.Stop(ctx))
}

// archivedDoc is the item shape used by the page archive tests.
type archivedDoc struct {
	ID    string
	Title string
}

type archivedDocCodec struct{}

func (archivedDocCodec) ParseHit(hit resultset.Hit) (archivedDoc, error) {
	doc, ok := hit.(archivedDoc)
	if !ok {
		return archivedDoc{}, fmt.Errorf("unexpected hit type %T", hit)
	}
	return doc, nil
}

func (archivedDocCodec) ParseDocument(cur *document.Cursor) (archivedDoc, error) {
	if err := cur.ExpectObjectStart(); err != nil {
		return archivedDoc{}, err
	}
	var doc archivedDoc
	for {
		name, end, err := cur.FieldName()
		if err != nil {
			return archivedDoc{}, err
		}
		if end {
			return doc, nil
		}
		switch name {
		case "id":
			doc.ID, err = cur.ReadString()
		case "title":
			doc.Title, err = cur.ReadString()
		default:
			err = cur.Skip()
		}
		if err != nil {
			return archivedDoc{}, err
		}
	}
}

func (archivedDocCodec) AppendDocument(doc archivedDoc, b *document.Builder) error {
	b.BeginObject()
	b.Name("id")
	b.WriteString(doc.ID)
	b.Name("title")
	b.WriteString(doc.Title)
	b.EndObject()
	return b.Err()
}

func (archivedDocCodec) AppendWire(doc archivedDoc, w *stream.Writer) error {
	if err := w.WriteString(doc.ID); err != nil {
		return err
	}
	return w.WriteString(doc.Title)
}

// TestMinioPageArchive covers storing and restoring result pages through
// their document form.
func TestMinioPageArchive(t *testing.T) {
	// Skip if running in short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupMinioContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	cfg := testContainerConfig(containerInstance.Endpoint)
	cfg.KeyPrefix = "pages"

	log := logger.NewLoggerClient(logger.Config{Level: "debug", ServiceName: "minio-test"})

	client, err := NewClient(cfg)
	require.NoError(t, err)
	client = client.WithLogger(log)
	defer client.GracefulShutdown()

	t.Run("ArchiveAndLoad", func(t *testing.T) {
		items := []archivedDoc{
			{ID: "a", Title: "First"},
			{ID: "b", Title: "Second"},
			{ID: "c", Title: "Third"},
		}
		page := resultset.New(20, 125, resultset.RelationAtLeast, "documents", items)

		n, err := ArchivePage(ctx, client, "query-42/offset-20", page, archivedDocCodec{})
		require.NoError(t, err)
		assert.Greater(t, n, int64(0))

		restored, err := LoadPage(ctx, client, "query-42/offset-20", "documents", archivedDocCodec{}, nil)
		require.NoError(t, err)

		assert.Equal(t, page.StartIndex(), restored.StartIndex())
		assert.Equal(t, page.TotalHits(), restored.TotalHits())
		assert.Equal(t, page.TotalHitRelation(), restored.TotalHitRelation())
		assert.Equal(t, page.ObjectListFieldName(), restored.ObjectListFieldName())
		assert.Equal(t, items, restored.Items())
	})

	t.Run("ArchivedObjectIsPlainDocument", func(t *testing.T) {
		page := resultset.NewSingle("events", archivedDoc{ID: "only", Title: "Solo"})

		_, err := ArchivePage(ctx, client, "single/page", page, archivedDocCodec{})
		require.NoError(t, err)

		// The stored bytes are the document form, readable without LoadPage
		raw, err := client.Get(ctx, "single/page")
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"startIndex"`)
		assert.Contains(t, string(raw), `"events"`)
	})

	t.Run("LoadMissingPage", func(t *testing.T) {
		_, err := LoadPage(ctx, client, "nope/missing", "documents", archivedDocCodec{}, nil)
		require.Error(t, err)
		assert.True(t, IsObjectNotFoundError(err), "expected ErrObjectNotFound, got %v", err)
	})

	t.Run("ListArchivedPages", func(t *testing.T) {
		keys, err := client.List(ctx, "query-42/")
		require.NoError(t, err)
		assert.Contains(t, keys, "query-42/offset-20")
	})
}

// TestMinioErrorHandling tests error scenarios
func TestMinioErrorHandling(t *testing.T) {
	// Skip if running in short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupMinioContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Run("MissingBucketWithoutCreation", func(t *testing.T) {
		cfg := testContainerConfig(containerInstance.Endpoint)
		cfg.Connection.BucketName = "does-not-exist"
		cfg.Connection.AccessBucketCreation = false

		_, err := NewClient(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket does not exist")
	})

	t.Run("EmptyEndpoint", func(t *testing.T) {
		cfg := testContainerConfig("")
		_, err := NewClient(cfg)
		require.Error(t, err)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		cfg := testContainerConfig(containerInstance.Endpoint)
		cfg.Connection.SecretAccessKey = "wrong-secret"

		_, err := NewClient(cfg)
		require.Error(t, err)
	})

	t.Run("GracefulShutdownTwice", func(t *testing.T) {
		client, err := NewClient(testContainerConfig(containerInstance.Endpoint))
		require.NoError(t, err)

		client.GracefulShutdown()
		client.GracefulShutdown() // second call must not panic
	})
}
