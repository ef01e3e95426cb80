package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the part of *s3.Client the image store needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3ImageStorage uploads event images to an S3-compatible bucket.
type s3ImageStorage struct {
	client  objectPutter
	bucket  string
	baseURL string
}

// NewImageStorage builds the image store for cfg. With no bucket configured
// every upload fails with [ErrImageStorageDisabled].
//
// A custom Endpoint (MinIO, LocalStack) switches the client to path-style
// addressing.
func NewImageStorage(ctx context.Context, cfg config.Images, log *logger.Logger) (ImageStorage, error) {
	if cfg.Bucket == "" {
		log.Info().Str("func", "NewImageStorage").Msg("image storage is disabled: no bucket configured")
		return disabledImageStorage{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewImageStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3ImageStorage(client, cfg), nil
}

func newS3ImageStorage(client objectPutter, cfg config.Images) *s3ImageStorage {
	return &s3ImageStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: imageBaseURL(cfg),
	}
}

// Upload stores body under key and returns its public URL.
func (s *s3ImageStorage) Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("func", "*s3ImageStorage.Upload").Str("key", key).Msg("error uploading image")
		return "", fmt.Errorf("error uploading image: %w", err)
	}

	return s.baseURL + "/" + escapeKey(key), nil
}

// imageBaseURL returns the URL prefix objects are served under: PublicURL
// when set, the bucket path on a custom endpoint, or the virtual-hosted AWS
// URL.
func imageBaseURL(cfg config.Images) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

type disabledImageStorage struct{}

func (disabledImageStorage) Upload(context.Context, string, string, int64, io.Reader) (string, error) {
	return "", ErrImageStorageDisabled
}
