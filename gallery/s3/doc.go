// Package s3 provides an Amazon S3 implementation of gallery.Store.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "galleries/shared/")
//	g := gallery.New(store)
//
// # Features
//
//   - Range reads for partial fetches of large documents
//   - Managed parallel multipart uploads for streaming writes
//   - Automatic pagination for listing
//   - Configurable key prefix for multi-tenant isolation
//
// CommitStore adds a DynamoDB-backed latest-revision pointer so several
// writers can publish new document revisions without overwriting each
// other.
package s3
