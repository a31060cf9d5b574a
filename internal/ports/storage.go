package ports

import (
	"context"
	"io"
)

type PutObjectInput struct {
	ObjectKey   string
	ContentType string
	Reader      io.Reader
	Size        int64
}

type PutObjectOutput struct {
	// localfs/s3 echo the object key back; gdrive returns the Drive fileId
	// so later Get/Delete calls can address the object.
	ObjectKey string
	Size      int64
}

// StorageProvider is the transient-artifact store consumed by the caption
// pipeline. Implementations: s3, localfs, gdrive.
type StorageProvider interface {
	Provider() string

	PutObject(ctx context.Context, in PutObjectInput) (PutObjectOutput, error)
	GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error)
	DeleteObject(ctx context.Context, objectKey string) error
}
