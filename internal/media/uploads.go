// Package media issues presigned S3 upload URLs for post thumbnails and
// profile avatars. The client uploads directly to S3; this service only
// signs the request.
package media

import (
	"context"
	"fmt"
	"time"

	appErrors "blog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 15 * time.Minute

// UploadURL is a presigned PUT URL plus the public location the object will
// have once uploaded.
type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
}

// UploadService generates presigned upload URLs into one bucket.
type UploadService struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

// NewUploadService creates an upload URL service for the given bucket.
func NewUploadService(presigner *s3.PresignClient, bucket, region string) *UploadService {
	return &UploadService{
		presigner: presigner,
		bucket:    bucket,
		region:    region,
	}
}

// PostThumbnailURL signs an upload URL for a post's thumbnail image.
func (s *UploadService) PostThumbnailURL(ctx context.Context, postID, contentType string) (UploadURL, error) {
	key := fmt.Sprintf("posts/%s/thumbnail-%s%s", postID, uuid.New().String(), extensionOf(contentType))
	return s.presign(ctx, key, contentType)
}

// AvatarURL signs an upload URL for a user's avatar image.
func (s *UploadService) AvatarURL(ctx context.Context, userID, contentType string) (UploadURL, error) {
	key := fmt.Sprintf("avatars/%s/avatar-%s%s", userID, uuid.New().String(), extensionOf(contentType))
	return s.presign(ctx, key, contentType)
}

func (s *UploadService) presign(ctx context.Context, key, contentType string) (UploadURL, error) {
	signed, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return UploadURL{}, appErrors.NewInternal("failed to presign upload URL", err)
	}

	return UploadURL{
		UploadURL: signed.URL,
		FileURL:   fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Key:       key,
	}, nil
}

func extensionOf(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
