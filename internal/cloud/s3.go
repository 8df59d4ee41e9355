package cloud

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SnapshotStore uploads store snapshots to S3 for off-site retention.
type SnapshotStore struct {
	svc    *s3.Client
	bucket string
}

func NewSnapshotStore(ctx context.Context, region, bucket string) (*SnapshotStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SnapshotStore{svc: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Upload stores a snapshot under key and returns a presigned download URL
// valid for 24 hours.
func (c *SnapshotStore) Upload(ctx context.Context, key string, data []byte) (string, error) {
	_, err := c.svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"uploaded-at": time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	presign, err := s3.NewPresignClient(c.svc).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(24*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to presign snapshot URL: %w", err)
	}
	return presign.URL, nil
}
