package storage

import (
	"context"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// GCS stores blobs as objects under a bucket prefix.
type GCS struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewGCS parses a "gs://bucket/prefix" folder identifier and creates a
// client with ambient credentials.
func NewGCS(ctx context.Context, folderID string) (*GCS, error) {
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(folderID, "gs://"), "/")
	if bucket == "" {
		return nil, goerr.New("invalid GCS folder identifier", goerr.V("folder_id", folderID))
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}

	return &GCS{
		bucket: client.Bucket(bucket),
		prefix: prefix,
	}, nil
}

// Put writes one object. An existing object with the same name is
// overwritten; the caller is responsible for name uniqueness if it wants it.
func (g *GCS) Put(ctx context.Context, name, contentType string, data []byte) error {
	writer := g.bucket.Object(path.Join(g.prefix, name)).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("name", name))
	}
	if err := writer.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object", goerr.V("name", name))
	}
	return nil
}
