package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"binder-backend/internal/models"
)

const imageURLExpiry = 15 * time.Minute

// ImageSigner resolves a stored image key to a URL a client can fetch.
type ImageSigner interface {
	SignImageURL(ctx context.Context, key string) (string, error)
}

// S3ImageSigner signs time-limited GET URLs for startup card images stored
// in S3 (or S3-compatible storage via a custom endpoint).
type S3ImageSigner struct {
	presign *s3.PresignClient
	bucket  string
}

// NewS3ImageSigner creates a new S3 image signer
func NewS3ImageSigner(region, bucket, accessKey, secretKey, endpoint string) (*S3ImageSigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageSigner{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// SignImageURL generates a pre-signed GET URL for the given object key.
func (s *S3ImageSigner) SignImageURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = imageURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign image URL: %w", err)
	}
	return req.URL, nil
}

// attachImageURLs resolves image keys to signed URLs on a batch of startups.
// A signing failure degrades that card to no image; it never fails the batch,
// since the image is display-only.
func attachImageURLs(ctx context.Context, signer ImageSigner, startups []*models.Startup) {
	if signer == nil {
		return
	}
	for _, st := range startups {
		if st.ImageKey == "" {
			continue
		}
		url, err := signer.SignImageURL(ctx, st.ImageKey)
		if err != nil {
			log.Error().
				Err(err).
				Str("startup_id", st.ID).
				Str("image_key", st.ImageKey).
				Msg("Failed to sign image URL")
			continue
		}
		st.ImageURL = url
	}
}
