package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API the store needs.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures S3 or an S3-compatible service.
type S3Config struct {
	Bucket         string `env:"MEMBERS_S3_BUCKET"`
	Prefix         string `env:"MEMBERS_S3_PREFIX"`
	Region         string `env:"MEMBERS_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"MEMBERS_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"MEMBERS_S3_SECRET_KEY"`
	Endpoint       string `env:"MEMBERS_S3_ENDPOINT"`         // Endpoint for MinIO and friends.
	ForcePathStyle bool   `env:"MEMBERS_S3_FORCE_PATH_STYLE"` // ForcePathStyle is required by most S3-compatible services.
}

// Enabled reports whether a bucket was configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3 stores objects in a bucket under an optional key prefix.
type S3 struct {
	client S3Client
	bucket string
	prefix string
}

// S3Option configures NewS3.
type S3Option func(*s3Options)

type s3Options struct {
	client S3Client
}

// WithS3Client injects a pre-built client, typically a test double.
func WithS3Client(c S3Client) S3Option {
	return func(o *s3Options) { o.client = c }
}

// NewS3 builds the store from cfg, loading AWS defaults unless a client is injected.
func NewS3(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, ErrInvalidConfig
	}
	o := &s3Options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.Join(ErrLoadAWSConfig, err)
		}
		client = s3.NewFromConfig(awsCfg, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &S3{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *S3) Read(ctx context.Context, key string) ([]byte, error) {
	objKey, err := s.key(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return nil, classifyS3Error(err, ErrReadFailed)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

func (s *S3) Write(ctx context.Context, key string, data []byte) error {
	objKey, err := s.key(key)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return classifyS3Error(err, ErrWriteFailed)
	}
	return nil
}

func (s *S3) key(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if s.prefix == "" {
		return key, nil
	}
	return s.prefix + "/" + key, nil
}

func classifyS3Error(err, fallback error) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return errors.Join(ErrNotFound, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return errors.Join(ErrNotFound, err)
		case "AccessDenied":
			return errors.Join(ErrAccessDenied, err)
		}
	}
	return errors.Join(fallback, err)
}
