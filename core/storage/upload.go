package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Object is a named in-memory payload to upload.
type Object struct {
	Name        string
	ContentType string
	Data        []byte
}

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// UploadAll puts every object under prefix in bucket and returns the object keys written.
func UploadAll(ctx context.Context, client Client, bucket, prefix string, objects []Object, logger *zap.Logger) ([]string, error) {
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		key := path.Join(prefix, obj.Name)
		_, err := client.PutObject(ctx, bucket, key, bytes.NewReader(obj.Data), int64(len(obj.Data)), minio.PutObjectOptions{
			ContentType: obj.ContentType,
		})
		if err != nil {
			logger.Error("Failed to upload artifact", zap.String("object", key), zap.Error(err))
			return keys, fmt.Errorf("failed to upload %s: %w", key, err)
		}
		logger.Debug("Uploaded artifact", zap.String("bucket", bucket), zap.String("object", key))
		keys = append(keys, key)
	}
	return keys, nil
}
