// Package storage archives verification photos in S3. The archive is an
// optional collaborator: when no bucket is configured, uploads are skipped
// entirely, and an upload failure never fails a verification.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type PhotoArchive struct {
	client *s3.Client
	bucket string
}

// NewPhotoArchive builds an archive bound to the given bucket. An empty
// bucket name returns nil, which callers treat as "archiving disabled".
func NewPhotoArchive(ctx context.Context, region string, bucket string) (*PhotoArchive, error) {
	if bucket == "" {
		return nil, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &PhotoArchive{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Upload stores one verification photo and returns its object key.
func (archive *PhotoArchive) Upload(ctx context.Context, userID uint, imageBytes []byte) (string, error) {
	key := fmt.Sprintf("verifications/%s/%s/%s.jpg",
		strconv.FormatUint(uint64(userID), 10),
		time.Now().UTC().Format("2006-01-02"),
		uuid.NewString(),
	)

	_, err := archive.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(archive.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("put photo object: %w", err)
	}
	return key, nil
}
