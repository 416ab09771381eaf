package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/foxxcyber/itemdesk/internal/config"
)

// SnapshotStore keeps export snapshots in an S3-compatible bucket
type SnapshotStore struct {
	client     *minio.Client
	bucketName string
	region     string
}

// UploadResult contains information about an uploaded snapshot
type UploadResult struct {
	Bucket string
	Key    string
	Size   int64
	ETag   string
}

// NewSnapshotStore creates a minio client for cfg
func NewSnapshotStore(cfg *config.StorageConfig) (*SnapshotStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &SnapshotStore{
		client:     client,
		bucketName: cfg.Bucket,
		region:     cfg.Region,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *SnapshotStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload stores a snapshot under key
func (s *SnapshotStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	info, err := s.client.PutObject(ctx, s.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	return &UploadResult{
		Bucket: info.Bucket,
		Key:    info.Key,
		Size:   info.Size,
		ETag:   info.ETag,
	}, nil
}

// PresignedURL returns a time-limited download link for key
func (s *SnapshotStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return u.String(), nil
}
