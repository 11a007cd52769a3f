// ABOUTME: S3 publisher for rendered graph pages
// ABOUTME: Streams documents to a bucket with the aws-sdk-go-v2 upload manager

package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	coreerrors "kgraph-api/core/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader is the part of manager.Uploader the publisher uses
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Config selects the bucket and key prefix
type Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string // optional, for S3 compatible stores
}

// Publisher uploads documents to S3
type Publisher struct {
	uploader Uploader
	bucket   string
	prefix   string
}

// NewPublisher builds an uploader from the default AWS credential chain
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, &coreerrors.ValidationError{Field: "s3_bucket", Message: "bucket cannot be empty"}
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewPublisherWithUploader(manager.NewUploader(client), cfg), nil
}

// NewPublisherWithUploader uses a ready uploader
func NewPublisherWithUploader(uploader Uploader, cfg Config) *Publisher {
	return &Publisher{
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.Prefix, "/"),
	}
}

// Key returns the object key for name
func (p *Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads body and returns the object location
func (p *Publisher) Publish(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	if name == "" || strings.Contains(name, "/") {
		return "", &coreerrors.ValidationError{Field: "name", Message: fmt.Sprintf("invalid object name %q", name)}
	}

	key := p.Key(name)
	out, err := p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &coreerrors.ExternalAPIError{
			API:     "s3",
			Message: fmt.Sprintf("failed to upload %s: %v", key, err),
		}
	}

	if out != nil && out.Location != "" {
		return out.Location, nil
	}
	return "s3://" + p.bucket + "/" + key, nil
}
