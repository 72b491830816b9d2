package minio

import (
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccvi/gallery"
)

// TestMinioStore_Integration requires a running MinIO instance; it skips
// itself when none is reachable.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	bucket := "test-ccvi"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-galleries/")

	data := []byte("hello minio gallery")
	require.NoError(t, store.Put(ctx, "doc.ccvi", data))

	t.Cleanup(func() {
		_ = store.Delete(ctx, "doc.ccvi")
	})

	blob, err := store.Open(ctx, "doc.ccvi")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(buf[:n]))

	r, err := blob.ReadRange(ctx, 12, 7)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "gallery", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "doc.ccvi")

	_, err = store.Open(ctx, "missing.ccvi")
	assert.ErrorIs(t, err, gallery.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "doc.ccvi"))
	assert.NoError(t, store.Delete(ctx, "doc.ccvi"))
}

func TestKeyMapping(t *testing.T) {
	store := NewStore(nil, "bucket", "galleries/")

	assert.Equal(t, "galleries/doc.ccvi", store.key("doc.ccvi"))
	assert.Equal(t, "galleries/2026/doc.ccvi", store.key("2026/doc.ccvi"))
}
