// Package storage publishes extracted audio files to the public store that
// the messaging provider fetches media from.
package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tuberelay/internal/relay"
	"tuberelay/pkg/logging"
)

const audioContentType = "audio/mpeg"

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads produced audio files to an S3 bucket fronted by the
// configured public base URL.
type S3Store struct {
	bucket    string
	keyPrefix string
	s3Client  S3API
	logger    *logging.Logger
}

// NewS3Store creates an S3-backed uploader.
func NewS3Store(s3Client S3API, bucket, keyPrefix string, logger *logging.Logger) *S3Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &S3Store{
		bucket:    bucket,
		keyPrefix: keyPrefix,
		s3Client:  s3Client,
		logger:    logger,
	}
}

var _ relay.Uploader = (*S3Store)(nil)

// Upload puts the local file into the bucket under name.
func (s *S3Store) Upload(ctx context.Context, localPath, name string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", localPath, err)
	}
	defer f.Close()

	key := name
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + name
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(audioContentType),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 put %s: %w", key, err)
	}

	s.logger.Info("uploaded audio to S3", "bucket", s.bucket, "key", key)
	return nil
}
