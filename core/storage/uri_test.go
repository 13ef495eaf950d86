package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"table-reconcile/core/storage"
	"table-reconcile/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    storage.Location
		wantErr bool
	}{
		{"Simple", "s3://bucket/file.csv", storage.Location{Bucket: "bucket", Object: "file.csv"}, false},
		{"Nested", "s3://exports/2024/01/orders.csv", storage.Location{Bucket: "exports", Object: "2024/01/orders.csv"}, false},
		{"NoObject", "s3://bucket", storage.Location{}, true},
		{"TrailingSlash", "s3://bucket/", storage.Location{}, true},
		{"NoBucket", "s3:///file.csv", storage.Location{}, true},
		{"LocalPath", "/tmp/file.csv", storage.Location{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ParseURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.uri, got.String())
		})
	}
}

func TestOpen(t *testing.T) {
	loc := storage.Location{Bucket: "in", Object: "a.csv"}

	t.Run("Found", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, "in", "a.csv", mock.Anything).Return(minio.ObjectInfo{Key: "a.csv"}, nil)
		mockClient.On("GetObject", mock.Anything, "in", "a.csv", mock.Anything).Return(io.NopCloser(strings.NewReader("id\n1\n")), nil)

		rc, err := storage.Open(context.Background(), mockClient, loc)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "id\n1\n", string(data))
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, "in", "a.csv", mock.Anything).Return(minio.ObjectInfo{}, errors.New("The specified key does not exist."))

		_, err := storage.Open(context.Background(), mockClient, loc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "s3://in/a.csv")
		mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), mockClient, "reports", ""))
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), mockClient, "reports", "eu-west-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(context.Background(), mockClient, "reports", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "denied")
	})
}

func TestUploadAll(t *testing.T) {
	objects := []storage.Object{
		{Name: "run_summary.txt", ContentType: "text/plain", Data: []byte("a:1\n")},
		{Name: "run_missing_in_target.csv", ContentType: "text/csv", Data: []byte("key\n")},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

		keys, err := storage.UploadAll(context.Background(), mockClient, "reports", "daily/2024", objects, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{"daily/2024/run_summary.txt", "daily/2024/run_missing_in_target.csv"}, keys)
		mockClient.AssertCalled(t, "PutObject", mock.Anything, "reports", "daily/2024/run_summary.txt", mock.Anything, int64(4), mock.Anything)
	})

	t.Run("StopsOnFailure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "reports", "run_summary.txt", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, errors.New("quota"))

		keys, err := storage.UploadAll(context.Background(), mockClient, "reports", "", objects, zap.NewNop())
		assert.Error(t, err)
		assert.Empty(t, keys)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})
}
