// Package imagestore persists creation images in S3-compatible object
// storage. The registry owns the object keys; this package only moves
// bytes.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Yonajim/NPUPlatform/internal/config"
)

// api is the narrow slice of the MinIO client this package uses,
// mockable in tests without a real server.
type api interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
}

type clientWrapper struct{ c *minio.Client }

func (w clientWrapper) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return w.c.BucketExists(ctx, bucket)
}
func (w clientWrapper) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucket, opts)
}
func (w clientWrapper) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucket, key, reader, size, opts)
}
func (w clientWrapper) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucket, key, opts)
}

// Store uploads, serves and deletes image objects in one bucket.
type Store struct {
	api       api
	bucket    string
	publicURL string
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, cfg config.ObjectStorage) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}
	return newWithAPI(ctx, clientWrapper{c: client}, cfg.Bucket, cfg.PublicURL)
}

func newWithAPI(ctx context.Context, a api, bucket, publicURL string) (*Store, error) {
	s := &Store{
		api:       a,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
	exists, err := s.api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return s, nil
}

// Save uploads an image under the given key.
func (s *Store) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	_, err := s.api.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("store image %s: %w", key, err)
	}
	return nil
}

// Delete removes an image object. Deleting a missing key is not an
// error; the registry calls this after the owning record is gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	return nil
}

// URL returns the externally servable address of a stored image.
func (s *Store) URL(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}
