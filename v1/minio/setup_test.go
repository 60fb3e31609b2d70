package minio

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestBufferPoolGetPut(t *testing.T) {
	bp := NewBufferPool()

	buf := bp.Get()
	if buf == nil {
		t.Fatal("Get() returned nil buffer")
	}
	buf.WriteString("payload")
	bp.Put(buf)

	// Reused buffers come back reset
	buf2 := bp.Get()
	if buf2.Len() != 0 {
		t.Errorf("reused buffer length = %d, want 0", buf2.Len())
	}
}

func TestBufferPoolDiscardsOversized(t *testing.T) {
	bp := NewBufferPoolWithConfig(BufferPoolConfig{
		MaxBufferSize:     16,
		MaxPoolSize:       10,
		InitialBufferSize: 4,
	})

	buf := bp.Get()
	buf.Write(make([]byte, 64)) // grow past the limit
	bp.Put(buf)

	stats := bp.GetStats()
	if stats.TotalBuffersDiscarded != 1 {
		t.Errorf("TotalBuffersDiscarded = %d, want 1", stats.TotalBuffersDiscarded)
	}
	if stats.CurrentPoolSize != 0 {
		t.Errorf("CurrentPoolSize = %d, want 0 after discarding", stats.CurrentPoolSize)
	}
}

func TestBufferPoolRespectsCapacity(t *testing.T) {
	bp := NewBufferPoolWithConfig(BufferPoolConfig{
		MaxBufferSize:     1024,
		MaxPoolSize:       1,
		InitialBufferSize: 4,
	})

	first := bp.Get()
	second := bp.Get()
	bp.Put(first)
	bp.Put(second) // pool full, discarded

	stats := bp.GetStats()
	if stats.CurrentPoolSize != 1 {
		t.Errorf("CurrentPoolSize = %d, want 1", stats.CurrentPoolSize)
	}
	if stats.TotalBuffersDiscarded != 1 {
		t.Errorf("TotalBuffersDiscarded = %d, want 1", stats.TotalBuffersDiscarded)
	}
}

func TestBufferPoolPutNil(t *testing.T) {
	bp := NewBufferPool()
	bp.Put(nil) // must not panic
}

func TestBufferPoolCleanup(t *testing.T) {
	bp := NewBufferPool()
	bp.Put(bp.Get())
	bp.Cleanup()

	if size := bp.GetStats().CurrentPoolSize; size != 0 {
		t.Errorf("CurrentPoolSize = %d after Cleanup, want 0", size)
	}
}

func TestBufferPoolStatsReuseRatio(t *testing.T) {
	bp := NewBufferPool()
	bp.Put(bp.Get())
	bp.Get()

	stats := bp.GetStats()
	if stats.TotalBuffersReused < stats.TotalBuffersCreated {
		t.Errorf("reused %d < created %d, pooled buffer was not reused",
			stats.TotalBuffersReused, stats.TotalBuffersCreated)
	}
	if stats.ReuseRatio <= 0 {
		t.Errorf("ReuseRatio = %v, want > 0", stats.ReuseRatio)
	}
}

func TestObjectKeyPrefix(t *testing.T) {
	withPrefix := &MinioClient{cfg: Config{KeyPrefix: "pages/"}}
	if got := withPrefix.objectKey("a/b.json"); got != "pages/a/b.json" {
		t.Errorf("objectKey() = %q, want pages/a/b.json", got)
	}
	if got := withPrefix.trimObjectKey("pages/a/b.json"); got != "a/b.json" {
		t.Errorf("trimObjectKey() = %q, want a/b.json", got)
	}

	noPrefix := &MinioClient{}
	if got := noPrefix.objectKey("a/b.json"); got != "a/b.json" {
		t.Errorf("objectKey() without prefix = %q, want key verbatim", got)
	}
}

func TestTranslateError(t *testing.T) {
	m := &MinioClient{}

	if m.TranslateError(nil) != nil {
		t.Error("TranslateError(nil) != nil")
	}

	notFound := m.TranslateError(minio.ErrorResponse{Code: "NoSuchKey"})
	if !IsObjectNotFoundError(notFound) {
		t.Errorf("TranslateError(NoSuchKey) = %v, want ErrObjectNotFound", notFound)
	}

	noBucket := m.TranslateError(minio.ErrorResponse{Code: "NoSuchBucket"})
	if !errors.Is(noBucket, ErrBucketNotFound) {
		t.Errorf("TranslateError(NoSuchBucket) = %v, want ErrBucketNotFound", noBucket)
	}

	denied := m.TranslateError(minio.ErrorResponse{Code: "AccessDenied"})
	if !IsAccessDeniedError(denied) {
		t.Errorf("TranslateError(AccessDenied) = %v, want ErrAccessDenied", denied)
	}

	timeout := m.TranslateError(context.DeadlineExceeded)
	if !errors.Is(timeout, ErrTimeout) {
		t.Errorf("TranslateError(DeadlineExceeded) = %v, want ErrTimeout", timeout)
	}

	// Unknown errors pass through untouched
	plain := errors.New("disk on fire")
	if got := m.TranslateError(plain); got != plain {
		t.Errorf("TranslateError(unknown) = %v, want the error unchanged", got)
	}
}

func TestGetErrorCategory(t *testing.T) {
	m := &MinioClient{}

	cases := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"not found", ErrObjectNotFound, ErrorCategoryNotFound},
		{"bucket missing", ErrBucketNotFound, ErrorCategoryNotFound},
		{"denied", ErrAccessDenied, ErrorCategoryAuth},
		{"timeout", ErrTimeout, ErrorCategoryTransient},
		{"connection", ErrConnectionFailed, ErrorCategoryTransient},
		{"other", errors.New("boom"), ErrorCategoryPermanent},
	}
	for _, tc := range cases {
		if got := m.GetErrorCategory(tc.err); got != tc.want {
			t.Errorf("GetErrorCategory(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}

	if m.GetErrorCategory(nil) != "" {
		t.Error("GetErrorCategory(nil) should be empty")
	}

	if !m.IsRetryableError(ErrTimeout) {
		t.Error("IsRetryableError(ErrTimeout) = false")
	}
	if m.IsRetryableError(ErrAccessDenied) {
		t.Error("IsRetryableError(ErrAccessDenied) = true")
	}
}
