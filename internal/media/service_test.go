package media

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakeObjectStore struct {
	buckets map[string]bool
	objects map[string][]byte
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		buckets: map[string]bool{},
		objects: map[string][]byte{},
	}
}

func (f *fakeObjectStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeObjectStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, key string, reader *bytes.Reader, size int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data := make([]byte, size)
	if _, err := reader.Read(data); err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+key] = data
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func TestStoreUpload(t *testing.T) {
	fake := newFakeObjectStore()
	svc := newWithStore(fake, "hikaya-media", "http://localhost:9000/")

	upload, err := svc.Store(context.Background(), []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasSuffix(upload.Key, ".png") {
		t.Errorf("key = %q, want .png suffix", upload.Key)
	}
	if want := "http://localhost:9000/hikaya-media/" + upload.Key; upload.URL != want {
		t.Errorf("url = %q, want %q", upload.URL, want)
	}
	if got := fake.objects["hikaya-media/"+upload.Key]; string(got) != "png-bytes" {
		t.Errorf("stored bytes = %q", got)
	}
}

func TestStoreRejectsUnsupportedType(t *testing.T) {
	svc := newWithStore(newFakeObjectStore(), "hikaya-media", "http://localhost:9000")

	if _, err := svc.Store(context.Background(), []byte("data"), "application/pdf"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("pdf upload err = %v, want ErrUnsupportedType", err)
	}
	if _, err := svc.Store(context.Background(), nil, "image/png"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("empty upload err = %v, want ErrUnsupportedType", err)
	}
}

func TestStoreRejectsOversized(t *testing.T) {
	svc := newWithStore(newFakeObjectStore(), "hikaya-media", "http://localhost:9000")

	big := make([]byte, maxUploadBytes+1)
	if _, err := svc.Store(context.Background(), big, "image/jpeg"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversized upload err = %v, want ErrTooLarge", err)
	}
}

func TestEnsureBucketCreatesOnce(t *testing.T) {
	fake := newFakeObjectStore()
	svc := newWithStore(fake, "hikaya-media", "http://localhost:9000")

	if err := svc.ensureBucket(context.Background()); err != nil {
		t.Fatalf("ensure bucket: %v", err)
	}
	if !fake.buckets["hikaya-media"] {
		t.Fatal("bucket was not created")
	}
	if err := svc.ensureBucket(context.Background()); err != nil {
		t.Fatalf("ensure existing bucket: %v", err)
	}
}

func TestObjectKeysAreDistinct(t *testing.T) {
	a := objectKey(".png")
	b := objectKey(".png")
	if a == b {
		t.Errorf("object keys collide: %q", a)
	}
}
