package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/model"
)

// S3Store is a BlobStore backed by AWS S3 or an S3-compatible service
// (DigitalOcean Spaces, MinIO).
type S3Store struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
	timeout   time.Duration
	log       zerolog.Logger
}

// NewS3Store creates an S3Store from the S3_* settings.
func NewS3Store(cfg *config.Config, log zerolog.Logger) (*S3Store, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		if cfg.S3Endpoint != "" {
			publicURL = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}

	return newS3Store(s3.New(sess), cfg.S3Bucket, publicURL, cfg.BlobTimeout, log), nil
}

func newS3Store(client s3iface.S3API, bucket, publicURL string, timeout time.Duration, log zerolog.Logger) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   timeout,
		log:       log.With().Str("component", "s3_store").Logger(),
	}
}

// URL returns the public address of key.
func (s *S3Store) URL(key string) string {
	return s.publicURL + "/" + key
}

func (s *S3Store) Store(ctx context.Context, body []byte, filename, folder string) (*StoredObject, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := ObjectKey(folder, filename, time.Now())
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(ContentType(filename)),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put %s: %v", model.ErrUploadFailed, key, err)
	}

	s.log.Debug().Str("key", key).Int("bytes", len(body)).Msg("Object stored")
	return &StoredObject{Key: key, URL: s.URL(key), Size: int64(len(body))}, nil
}

func (s *S3Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", model.ErrFetchFailed, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", model.ErrFetchFailed, key, err)
	}
	return data, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to delete object")
		return false
	}
	return true
}
