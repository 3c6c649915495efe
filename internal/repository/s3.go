package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/mututech/site/internal/config"
)

// s3API is the part of *s3.Client the object store uses.
type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ObjectStore writes objects to one bucket of an S3-compatible service and
// creates the bucket, readable by anyone, the first time it is missing.
type S3ObjectStore struct {
	client s3API

	bucket        string
	endpoint      string
	publicBaseURL string
	cacheControl  string

	mu      sync.Mutex
	ensured bool
}

func NewS3ObjectStore(ctx context.Context, cfg config.ImagesConfig) (*S3ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return newS3ObjectStore(client, cfg), nil
}

func newS3ObjectStore(client s3API, cfg config.ImagesConfig) *S3ObjectStore {
	return &S3ObjectStore{
		client:        client,
		bucket:        cfg.Bucket,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		cacheControl:  cfg.CacheControl,
	}
}

func (s *S3ObjectStore) Bucket() string {
	return s.bucket
}

// EnsureBucket checks that the bucket exists, creating it with a public-read
// policy otherwise. Success is remembered for the lifetime of the store.
func (s *S3ObjectStore) EnsureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured {
		return nil
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		s.ensured = true
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("%w: error checking bucket %s: %w", ErrRemote, s.bucket, err)
	}

	repoLogger.Info().Str("bucket", s.bucket).Msg("Creating image bucket")

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil && !isAlreadyOwned(err) {
		return fmt.Errorf("%w: error creating bucket %s: %w", ErrRemote, s.bucket, err)
	}

	_, err = s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.bucket),
		Policy: aws.String(publicReadPolicy(s.bucket)),
	})
	if err != nil {
		return fmt.Errorf("%w: error setting policy on bucket %s: %w", ErrRemote, s.bucket, err)
	}

	s.ensured = true
	return nil
}

// Put uploads an object without overwriting an existing key and returns its public URL.
func (s *S3ObjectStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	}
	if s.cacheControl != "" {
		input.CacheControl = aws.String(s.cacheControl)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: error uploading %s: %w", ErrRemote, key, err)
	}

	return s.PublicURL(key)
}

// PublicURL resolves the address an object can be fetched from.
func (s *S3ObjectStore) PublicURL(key string) (string, error) {
	base := s.publicBaseURL
	if base == "" {
		if s.endpoint == "" {
			return "", fmt.Errorf("%w: no public url for bucket %s", ErrRemote, s.bucket)
		}
		base = s.endpoint + "/" + url.PathEscape(s.bucket)
	}
	return base + "/" + url.PathEscape(key), nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Sid":"PublicRead","Effect":"Allow","Principal":"*","Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}

func isAlreadyOwned(err error) bool {
	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
}
