package port

import (
	"context"
	"io"
)

// UploadInput carries the data needed to store an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// ObjectStorage abstracts raw document byte storage.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) error
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
}
