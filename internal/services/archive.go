package services

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver keeps a copy of stored uploads outside the local upload directory.
type Archiver interface {
	Archive(ctx context.Context, filePath, key, contentType string) error
}

type S3Config struct {
	Bucket      string
	Prefix      string
	Region      string
	EndpointURL string
	AccessKey   string
	SecretKey   string
}

type s3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archiver uses static credentials when both keys are set and the
// default AWS credential chain otherwise.
func NewS3Archiver(ctx context.Context, conf S3Config) (Archiver, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(conf.Region)}
	if conf.AccessKey != "" && conf.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	if conf.EndpointURL != "" {
		cfg.BaseEndpoint = aws.String(conf.EndpointURL)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = conf.EndpointURL != ""
	})

	return &s3Archiver{client: client, bucket: conf.Bucket, prefix: conf.Prefix}, nil
}

// ObjectKey joins the archive prefix and the stored file name.
func (a *s3Archiver) ObjectKey(key string) string {
	if a.prefix == "" {
		return key
	}
	return path.Join(a.prefix, key)
}

// Archive implements Archiver.
func (a *s3Archiver) Archive(ctx context.Context, filePath, key, contentType string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file for archive: %w", err)
	}
	defer f.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(a.ObjectKey(key)),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}
