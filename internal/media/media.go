// Package media turns catalog image paths into URLs the browser can fetch.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

type Resolver interface {
	URL(ctx context.Context, image string) (string, error)
}

// Static serves images from the site's own public directory.
type Static struct{}

func (Static) URL(ctx context.Context, image string) (string, error) {
	return image, nil
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3 presigns GET requests for images stored in a bucket, keyed by the image
// path without its leading slash.
type S3 struct {
	bucket  string
	presign func(ctx context.Context, in *s3.GetObjectInput) (string, error)
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	pc := s3.NewPresignClient(client)

	return &S3{
		bucket: cfg.Bucket,
		presign: func(ctx context.Context, in *s3.GetObjectInput) (string, error) {
			req, err := pc.PresignGetObject(ctx, in, s3.WithPresignExpires(presignExpiry))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
	}, nil
}

func (s *S3) URL(ctx context.Context, image string) (string, error) {
	key := ObjectKey(image)
	if key == "" {
		return image, nil
	}

	url, err := s.presign(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return url, nil
}

func ObjectKey(image string) string {
	return strings.TrimPrefix(strings.TrimSpace(image), "/")
}
