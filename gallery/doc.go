// Package gallery stores named CCVI documents on pluggable storage
// backends.
//
// Store is the byte-level abstraction: a flat namespace of immutable
// blobs with streaming writes and random-access reads. Built-in
// implementations:
//
//   - LocalStore: local filesystem, memory-mapped reads
//   - MemoryStore: in-memory, for tests
//   - CachingStore: block-LRU read caching around any Store
//   - s3.Store: Amazon S3 (range reads, managed parallel uploads)
//   - s3.CommitStore: S3 blobs with a DynamoDB latest-revision pointer
//   - minio.Store: MinIO and other S3-compatible endpoints
//
// Gallery sits on top of a Store and speaks documents instead of bytes:
// it frames each document in the container envelope, names it with the
// .ccvi extension, and optionally paces transfers through a
// resource.Controller.
package gallery
