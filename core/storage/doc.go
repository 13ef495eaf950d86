// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so reconciliation inputs can be read straight
// from a bucket (s3://bucket/key paths) and report artifacts can be uploaded
// after a run. This abstraction supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - Open: verifies an input object with StatObject, then streams it.
//   - EnsureBucket: creates the artifact bucket if needed.
//   - UploadAll: uploads rendered artifacts under a key prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	loc, err := storage.ParseURI("s3://exports/2024/orders.csv")
//	rc, err := storage.Open(ctx, client, loc)
package storage
