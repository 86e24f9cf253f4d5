// Package storage wraps the MinIO client used to archive fine payment receipts.
//
// The Client interface exposes only the calls the receipt archive needs, so
// tests can substitute the testify mock in core/storage/mocks. It works
// against AWS S3 and self-hosted MinIO alike.
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket prepares the bucket at startup.
//   - PutObject: writes one JSON receipt per paid fine.
//   - GetObject / ListObjects: read receipts back for a user.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
