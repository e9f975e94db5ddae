package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// UploadOptions conveys upload metadata.
type UploadOptions struct {
	ContentType string
}

// Service stores and serves product images in remote object storage.
type Service interface {
	UploadObject(ctx context.Context, bucket, key string, body io.Reader, opts UploadOptions) (string, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
