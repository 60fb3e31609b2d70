package minio

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// Compile-time check that MinioClient satisfies Client.
var _ Client = (*MinioClient)(nil)

// Put uploads an object under the configured bucket and key prefix.
// Pass the size when it is known, this lets the SDK pick the optimal upload
// path; without it the upload streams with multipart buffering.
// Returns the number of bytes stored.
func (m *MinioClient) Put(ctx context.Context, objectKey string, reader io.Reader, size ...int64) (int64, error) {
	if objectKey == "" {
		return 0, ErrInvalidObjectKey
	}

	c := m.client.Load()
	if c == nil {
		return 0, ErrConnectionFailed
	}

	objectSize := int64(-1)
	if len(size) > 0 {
		objectSize = size[0]
	}

	start := time.Now()
	info, err := c.PutObject(ctx, m.cfg.Connection.BucketName, m.objectKey(objectKey), reader, objectSize,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	m.observeOperation("put", "", objectKey, time.Since(start), err, info.Size, nil)

	if err != nil {
		return 0, m.TranslateError(err)
	}
	return info.Size, nil
}

// Get retrieves an object's contents. Reads go through the buffer pool; the
// returned slice is an independent copy the caller owns.
func (m *MinioClient) Get(ctx context.Context, objectKey string) ([]byte, error) {
	if objectKey == "" {
		return nil, ErrInvalidObjectKey
	}

	c := m.client.Load()
	if c == nil {
		return nil, ErrConnectionFailed
	}

	start := time.Now()
	obj, err := c.GetObject(ctx, m.cfg.Connection.BucketName, m.objectKey(objectKey), minio.GetObjectOptions{})
	if err != nil {
		m.observeOperation("get", "", objectKey, time.Since(start), err, 0, nil)
		return nil, m.TranslateError(err)
	}
	defer obj.Close()

	buf := m.bufferPool.Get()
	defer m.bufferPool.Put(buf)

	// GetObject is lazy: connection and not-found errors surface on first read.
	_, err = io.Copy(buf, obj)
	m.observeOperation("get", "", objectKey, time.Since(start), err, int64(buf.Len()), nil)
	if err != nil {
		return nil, m.TranslateError(err)
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (m *MinioClient) Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return ErrInvalidObjectKey
	}

	c := m.client.Load()
	if c == nil {
		return ErrConnectionFailed
	}

	start := time.Now()
	err := c.RemoveObject(ctx, m.cfg.Connection.BucketName, m.objectKey(objectKey), minio.RemoveObjectOptions{})
	m.observeOperation("delete", "", objectKey, time.Since(start), err, 0, nil)

	if err != nil {
		return m.TranslateError(err)
	}
	return nil
}

// List returns the keys of all objects under the given prefix, with the
// configured key prefix stripped so results can be passed back to Get.
func (m *MinioClient) List(ctx context.Context, prefix string) ([]string, error) {
	c := m.client.Load()
	if c == nil {
		return nil, ErrConnectionFailed
	}

	start := time.Now()
	objects := c.ListObjects(ctx, m.cfg.Connection.BucketName, minio.ListObjectsOptions{
		Prefix:    m.objectKey(prefix),
		Recursive: true,
	})

	var keys []string
	for obj := range objects {
		if obj.Err != nil {
			err := m.TranslateError(obj.Err)
			m.observeOperation("list", "", prefix, time.Since(start), err, int64(len(keys)), nil)
			return nil, err
		}
		keys = append(keys, m.trimObjectKey(obj.Key))
	}

	m.observeOperation("list", "", prefix, time.Since(start), nil, int64(len(keys)), nil)
	return keys, nil
}

// PreSignedPut generates a presigned URL for uploading an object. The URL is
// valid for the configured expiry.
func (m *MinioClient) PreSignedPut(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", ErrInvalidObjectKey
	}

	c := m.client.Load()
	if c == nil {
		return "", ErrConnectionFailed
	}

	start := time.Now()
	u, err := c.PresignedPutObject(ctx, m.cfg.Connection.BucketName, m.objectKey(objectKey), m.cfg.presignExpiry())
	m.observeOperation("presigned_put", "", objectKey, time.Since(start), err, 0, nil)

	if err != nil {
		return "", m.TranslateError(err)
	}
	return u.String(), nil
}

// PreSignedGet generates a presigned URL for downloading an object. The URL
// is valid for the configured expiry.
func (m *MinioClient) PreSignedGet(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", ErrInvalidObjectKey
	}

	c := m.client.Load()
	if c == nil {
		return "", ErrConnectionFailed
	}

	start := time.Now()
	u, err := c.PresignedGetObject(ctx, m.cfg.Connection.BucketName, m.objectKey(objectKey), m.cfg.presignExpiry(), url.Values{})
	m.observeOperation("presigned_get", "", objectKey, time.Since(start), err, 0, nil)

	if err != nil {
		return "", m.TranslateError(err)
	}
	return u.String(), nil
}
