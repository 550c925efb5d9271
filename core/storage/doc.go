// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface used by the
// student importer. This supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - EnsureBucket: creates the archive bucket on first use.
//   - Download: opens an "s3://bucket/key" import source.
//   - ArchiveKey: names the object an uploaded file is archived under.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	ref, err := storage.ParseObjectURL("s3://imports/students.xlsx")
//	rc, err := storage.Download(ctx, client, ref)
package storage
