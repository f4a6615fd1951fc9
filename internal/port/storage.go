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

// UploadOutput contains metadata about a stored object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the blob store used to archive raw ingestion media.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
