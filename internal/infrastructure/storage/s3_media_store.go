// Package storage provides object storage implementations for item images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	infraconfig "github.com/armoryhq/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ensure S3MediaStore implements MediaStore
var _ inventoryapp.MediaStore = (*S3MediaStore)(nil)

// S3MediaStore implements MediaStore using the AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, RustFS, etc.)
type S3MediaStore struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	publicBaseURL string
	logger        *zap.Logger
}

// S3MediaStoreOption is a functional option for configuring S3MediaStore
type S3MediaStoreOption func(*S3MediaStore)

// WithLogger sets a custom logger for S3MediaStore
func WithLogger(logger *zap.Logger) S3MediaStoreOption {
	return func(s *S3MediaStore) {
		s.logger = logger
	}
}

// NewS3MediaStore creates a new S3MediaStore from configuration
func NewS3MediaStore(cfg *infraconfig.StorageConfig, opts ...S3MediaStoreOption) (*S3MediaStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	store := &S3MediaStore{
		client:        client,
		bucket:        cfg.Bucket,
		endpoint:      endpoint,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup so uploads never race bucket creation.
func (s *S3MediaStore) EnsureBucket(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}); err == nil {
		return nil
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Created storage bucket", zap.String("bucket", s.bucket))
	return nil
}

// Upload stores a media payload and returns its stable public URL.
// An empty input key gets a fresh store-assigned key inside the folder;
// a set key addresses the existing object so the put replaces it.
func (s *S3MediaStore) Upload(ctx context.Context, in inventoryapp.UploadInput) (inventoryapp.UploadResult, error) {
	if len(in.Data) == 0 {
		return inventoryapp.UploadResult{}, errors.New("upload payload is empty")
	}

	key := in.Key
	if key == "" {
		key = uuid.New().String()
	}
	objectKey := path.Join(in.Folder, key)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(in.Data),
		ContentType: aws.String(in.ContentType),
	}
	if in.Invalidate {
		// Force intermediaries to revalidate so the replaced image shows up
		input.CacheControl = aws.String("no-cache")
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return inventoryapp.UploadResult{}, fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("Uploaded media object",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.Bool("overwrite", in.Overwrite),
	)

	return inventoryapp.UploadResult{
		PublicURL: s.publicURL(objectKey),
		Key:       objectKey,
	}, nil
}

// publicURL builds the stable URL under which the object is served
func (s *S3MediaStore) publicURL(objectKey string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectKey
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, objectKey)
}
