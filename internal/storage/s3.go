package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures the object storage backend. Endpoint supports
// any S3-compatible server (MinIO, LocalStack); path-style addressing
// is forced when an endpoint is set.
type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // optional; when set, Store returns {PublicBaseURL}/stickers/{seriesID}/{id}
}

// S3 stores sticker bytes in an S3-compatible object store under
// stickers/{seriesID}/{id}.png. The bucket is created on first use.
type S3 struct {
	client *s3.Client
	cfg    S3Config

	mu            sync.Mutex
	bucketChecked bool
}

// NewS3Client builds an S3 client from the given config.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	s3Opts := []func(*s3.Options){}
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}

// NewS3 creates an object storage backend using the given client.
func NewS3(client *s3.Client, cfg S3Config) *S3 {
	return &S3{client: client, cfg: cfg}
}

// objectKey returns the object key for a sticker.
func (s *S3) objectKey(seriesID, id string) string {
	return path.Join("stickers", seriesID, id+".png")
}

// ensureBucket creates the bucket on first use. A bucket that already
// exists (including one created by a concurrent ingestion) is success.
func (s *S3) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bucketChecked {
		return nil
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
	})
	if err == nil {
		s.bucketChecked = true
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.cfg.Bucket)}
	if s.cfg.Region != "" && s.cfg.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.cfg.Region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if !errors.As(err, &owned) && !errors.As(err, &exists) {
			return fmt.Errorf("create bucket %q: %w", s.cfg.Bucket, err)
		}
	}

	s.bucketChecked = true
	return nil
}

// Store uploads data under stickers/{seriesID}/{id}.png with content
// type image/png and returns the location to record: a public URL when
// PublicBaseURL is configured, otherwise this service's own retrieval
// route for the sticker.
func (s *S3) Store(ctx context.Context, data []byte, id, seriesID string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	key := s.objectKey(seriesID, id)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	route := "/stickers/" + seriesID + "/" + id
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + route, nil
	}
	return route, nil
}

// Retrieve downloads the object stored for (seriesID, id).
// Returns ErrNotFound when no object exists at the derived key.
func (s *S3) Retrieve(ctx context.Context, seriesID, id string) ([]byte, error) {
	key := s.objectKey(seriesID, id)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}
