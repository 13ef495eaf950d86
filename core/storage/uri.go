package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Scheme prefixes input paths that live in object storage.
const Scheme = "s3://"

// Location is a bucket/object pair.
type Location struct {
	Bucket string
	Object string
}

func (l Location) String() string {
	return Scheme + l.Bucket + "/" + l.Object
}

// IsURI reports whether path refers to object storage.
func IsURI(path string) bool {
	return strings.HasPrefix(path, Scheme)
}

// ParseURI splits "s3://bucket/key/parts" into a Location.
func ParseURI(uri string) (Location, error) {
	if !IsURI(uri) {
		return Location{}, fmt.Errorf("not an object storage uri: %q", uri)
	}
	rest := strings.TrimPrefix(uri, Scheme)
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(object, "/") == "" {
		return Location{}, fmt.Errorf("object storage uri must look like s3://bucket/key, got %q", uri)
	}
	return Location{Bucket: bucket, Object: object}, nil
}

// Open checks that the object exists and returns a stream of its content.
func Open(ctx context.Context, client Client, loc Location) (io.ReadCloser, error) {
	if _, err := client.StatObject(ctx, loc.Bucket, loc.Object, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("stat %s: %w", loc, err)
	}
	obj, err := client.GetObject(ctx, loc.Bucket, loc.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", loc, err)
	}
	return obj, nil
}
