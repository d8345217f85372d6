package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the part of *s3.Client used by S3Store.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures NewS3Client. Empty credentials fall back to the
// default AWS credential chain; an empty endpoint means AWS itself.
type S3Options struct {
	Region    string
	Endpoint  string // e.g. http://127.0.0.1:9000 for MinIO
	AccessKey string
	SecretKey string
}

// NewS3Client builds an S3 client with path-style addressing, which
// S3-compatible servers such as MinIO expect.
func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
		so.UsePathStyle = true
	}), nil
}

// S3Store keeps one object per (collection, user id) under prefix.
// PutBatch writes objects one after another and is not atomic.
type S3Store struct {
	api    ObjectAPI
	bucket string
	prefix string
}

// NewS3Store stores objects in bucket under prefix.
func NewS3Store(api ObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{api: api, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(c Collection, userID string) string {
	return Key(s.prefix, c, userID) + ".json"
}

func (s *S3Store) Get(ctx context.Context, c Collection, userID string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(c, userID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get object %s: %w", s.key(c, userID), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", s.key(c, userID), err)
	}
	return data, nil
}

func (s *S3Store) Put(ctx context.Context, c Collection, userID string, data []byte) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(c, userID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", s.key(c, userID), err)
	}
	return nil
}

func (s *S3Store) PutBatch(ctx context.Context, userID string, blobs ...Blob) error {
	for _, b := range blobs {
		if err := s.Put(ctx, b.Collection, userID, b.Data); err != nil {
			return err
		}
	}
	return nil
}
