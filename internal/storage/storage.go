package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/prabhath004/quizly/internal/config"
)

// StorageProvider represents the type of storage being used
type StorageProvider string

const (
	S3    StorageProvider = "s3"
	Local StorageProvider = "local"
)

// Storage defines the interface for storage providers
type Storage interface {
	Upload(reader io.Reader, filename string) (string, error)
	UploadBytes(data []byte, filename string) (string, error)
	Download(path string) (io.ReadCloser, error)
	Delete(path string) error
	GetPublicURL(path string) string
	GetPresignedURL(path string, expiration time.Duration) (string, error)
}

// New creates a storage provider from the application configuration.
func New(cfg *config.Config) (Storage, error) {
	switch StorageProvider(strings.ToLower(cfg.Storage.Provider)) {
	case S3:
		return NewS3Storage(cfg.Storage.S3)
	case Local:
		return NewLocalStorage(cfg.Storage.Path, cfg.Server.Port)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
	}
}

// S3Storage implements the Storage interface for S3-compatible object stores
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Storage creates a new S3 storage instance
func NewS3Storage(cfg config.S3Config) (Storage, error) {
	var awsCfg aws.Config
	if cfg.AccessKeyID != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		// No static credentials configured, use the default chain
		loaded, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %v", err)
		}
		awsCfg = loaded
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload uploads a file to S3
func (s *S3Storage) Upload(reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	return s.UploadBytes(data, filename)
}

// UploadBytes uploads bytes to S3
func (s *S3Storage) UploadBytes(data []byte, filename string) (string, error) {
	key := filepath.Clean(filename)
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return key, nil
}

// Download downloads a file from S3
func (s *S3Storage) Download(path string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download file from S3: %v", err)
	}
	return result.Body, nil
}

// Delete deletes a file from S3
func (s *S3Storage) Delete(path string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %v", err)
	}
	return nil
}

// GetPublicURL returns the public URL for a file in S3
func (s *S3Storage) GetPublicURL(path string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, path)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, path)
}

// GetPresignedURL generates a presigned URL for S3
func (s *S3Storage) GetPresignedURL(path string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return request.URL, nil
}

// LocalStorage implements the Storage interface on the local filesystem,
// used for development environments without object storage.
type LocalStorage struct {
	root      string
	publicURL string
}

// NewLocalStorage creates a filesystem-backed storage rooted at root.
func NewLocalStorage(root, serverPort string) (Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}
	return &LocalStorage{
		root:      root,
		publicURL: fmt.Sprintf("http://localhost:%s/api/v1/files", serverPort),
	}, nil
}

func (l *LocalStorage) Upload(reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	return l.UploadBytes(data, filename)
}

func (l *LocalStorage) UploadBytes(data []byte, filename string) (string, error) {
	key := filepath.Clean(filename)
	dest := filepath.Join(l.root, key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	return key, nil
}

func (l *LocalStorage) Download(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.root, filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return f, nil
}

func (l *LocalStorage) Delete(path string) error {
	if err := os.Remove(filepath.Join(l.root, filepath.Clean(path))); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (l *LocalStorage) GetPublicURL(path string) string {
	return fmt.Sprintf("%s/%s", l.publicURL, path)
}

func (l *LocalStorage) GetPresignedURL(path string, expiration time.Duration) (string, error) {
	return l.GetPublicURL(path), nil
}
