package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/MeetupServices/meetup-scheduler/internal/config"
)

// AttachmentStore writes booking attachments to an S3 bucket. A nil
// store (no bucket configured) disables uploads.
type AttachmentStore struct {
	client *s3.Client
	bucket string
}

func NewAttachmentStore(cfg *config.Config) *AttachmentStore {
	if cfg.S3Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.AWSAccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &AttachmentStore{
		client: s3.New(opts),
		bucket: cfg.S3Bucket,
	}
}

func (s *AttachmentStore) Enabled() bool {
	return s != nil
}

// Put stores the file under attachments/<uuid><ext> and returns the key.
func (s *AttachmentStore) Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("attachments/%s%s", uuid.NewString(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}
