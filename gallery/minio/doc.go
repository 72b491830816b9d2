// Package minio provides a gallery.Store for MinIO and other
// S3-compatible object stores.
//
//	client, err := minio.New("localhost:9000", &minio.Options{...})
//	if err != nil { ... }
//	store := miniostore.NewStore(client, "ccvi", "galleries/")
//	g := gallery.New(store)
package minio
