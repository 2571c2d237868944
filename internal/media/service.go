// Package media stores uploaded story images in an S3-compatible
// bucket and hands back public URLs for them.
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"hikaya/api/internal/util"
)

const maxUploadBytes = 5 << 20

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrUnsupportedType is returned for uploads that are not images.
var ErrUnsupportedType = fmt.Errorf("unsupported media type")

// ErrTooLarge is returned for uploads over the size cap.
var ErrTooLarge = fmt.Errorf("media exceeds %d bytes", maxUploadBytes)

// objectStore is the slice of the minio client the service needs.
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, reader *bytes.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStore struct {
	client *minio.Client
}

func (m minioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return m.client.BucketExists(ctx, bucket)
}

func (m minioStore) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return m.client.MakeBucket(ctx, bucket, opts)
}

func (m minioStore) PutObject(ctx context.Context, bucket, key string, reader *bytes.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return m.client.PutObject(ctx, bucket, key, reader, size, opts)
}

// Upload is the stored result handed back to the caller.
type Upload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Service struct {
	store   objectStore
	bucket  string
	baseURL string
}

// New connects to the object store and makes sure the bucket exists.
func New(ctx context.Context, endpoint, accessKey, secretKey, bucket, baseURL string, useSSL bool) (*Service, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	svc := &Service{store: minioStore{client: client}, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
	if err := svc.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func newWithStore(store objectStore, bucket, baseURL string) *Service {
	return &Service{store: store, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Service) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

// Store writes the image bytes under a fresh key and returns its public URL.
func (s *Service) Store(ctx context.Context, data []byte, contentType string) (Upload, error) {
	ext, ok := allowedTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return Upload{}, ErrUnsupportedType
	}
	if len(data) == 0 {
		return Upload{}, ErrUnsupportedType
	}
	if len(data) > maxUploadBytes {
		return Upload{}, ErrTooLarge
	}

	key := objectKey(ext)
	_, err := s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Upload{}, fmt.Errorf("store media: %w", err)
	}

	return Upload{Key: key, URL: s.publicURL(key)}, nil
}

func (s *Service) publicURL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + key
}

func objectKey(ext string) string {
	now := time.Now()
	return path.Join(
		fmt.Sprintf("%04d/%02d", now.Year(), now.Month()),
		util.NewID("img")+ext,
	)
}
