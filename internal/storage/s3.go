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
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/logger"
)

// S3Config holds the settings of an S3-compatible bucket
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint is set for S3-compatible services such as MinIO
	Endpoint     string
	UsePathStyle bool
	// PublicBaseURL overrides the URL artifacts are served from
	PublicBaseURL string
	// Prefix is prepended to every object key
	Prefix string
}

// ObjectUploader is the part of manager.Uploader the S3 uploader needs
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type s3Uploader struct {
	cfg      S3Config
	uploader ObjectUploader
}

// NewS3Uploader creates an uploader backed by an S3-compatible bucket
func NewS3Uploader(ctx context.Context, cfg S3Config) (Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)
	return NewS3UploaderWithClient(cfg, manager.NewUploader(client)), nil
}

// NewS3UploaderWithClient creates an S3 uploader on top of an existing object uploader
func NewS3UploaderWithClient(cfg S3Config, uploader ObjectUploader) Uploader {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return &s3Uploader{cfg: cfg, uploader: uploader}
}

// Upload stores the artifact under a content-addressed key
func (s *s3Uploader) Upload(ctx context.Context, artifact Artifact, opts UploadOptions) (*UploadResult, error) {
	contentType := contentTypeOf(artifact)
	hash := crypto.Keccak256Hash(artifact.Data).Hex()
	key := s.objectKey(hash, artifact.Name)

	metadata := make(map[string]string, len(opts.KeyValues))
	for k, v := range opts.KeyValues {
		metadata[strings.ToLower(k)] = v
	}

	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(artifact.Data),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	logger.InfoCtx(ctx, "Uploaded artifact to S3",
		zap.String("bucket", s.cfg.Bucket),
		zap.String("key", key),
		zap.String("location", out.Location))

	return &UploadResult{
		URL:         s.objectURL(key),
		ContentHash: hash,
		Size:        int64(len(artifact.Data)),
		ContentType: contentType,
	}, nil
}

func (s *s3Uploader) objectKey(hash, name string) string {
	if name == "" {
		name = "artifact"
	}
	return path.Join(s.cfg.Prefix, strings.TrimPrefix(hash, "0x"), path.Base(name))
}

func (s *s3Uploader) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + escaped
	case s.cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, escaped)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, escaped)
	}
}
