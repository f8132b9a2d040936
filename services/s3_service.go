package services

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Service issues presigned URLs for profile photo upload and read.
type S3Service struct {
	Presigner *s3.PresignClient
	Bucket    string
}

// NewS3Service builds an S3Service for the given region and bucket.
func NewS3Service(ctx context.Context, region, bucket string) (*S3Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Service{
		Presigner: s3.NewPresignClient(client),
		Bucket:    bucket,
	}, nil
}

// GenerateUploadURL generates a presigned URL for uploading a photo and the
// object key it will be stored under.
func (ss *S3Service) GenerateUploadURL(ctx context.Context, userID, fileType string) (string, string, error) {
	key := "photos/" + userID + "/" + uuid.NewString()
	params := &s3.PutObjectInput{
		Bucket:      awssdk.String(ss.Bucket),
		Key:         awssdk.String(key),
		ContentType: awssdk.String(fileType),
	}
	presigned, err := ss.Presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return presigned.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a photo.
func (ss *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: awssdk.String(ss.Bucket),
		Key:    awssdk.String(key),
	}
	presigned, err := ss.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return presigned.URL, nil
}
