package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// BlobStore holds binary content for vessel photos and file metadata.
type BlobStore interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	URL(ref string) (string, error)
	Get(ctx context.Context, ref string) (io.ReadCloser, error)
	Remove(ctx context.Context, ref string) error
}

// ObjectName builds a unique object name under prefix keeping the file extension.
func ObjectName(prefix, filename string) string {
	return path.Join(prefix, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type MinioStore struct {
	client *minio.Client
	bucket string
	base   *url.URL
}

func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is not configured")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	base := client.EndpointURL()
	if cfg.PublicURL != "" {
		base, err = url.Parse(cfg.PublicURL)
		if err != nil {
			return nil, fmt.Errorf("invalid minio public url: %w", err)
		}
	}

	s := &MinioStore{client: client, bucket: cfg.Bucket, base: base}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	logrus.Infof("created bucket %s", s.bucket)
	return nil
}

func (s *MinioStore) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return objectName, nil
}

func (s *MinioStore) URL(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty object reference")
	}
	return s.base.JoinPath(s.bucket, ref).String(), nil
}

func (s *MinioStore) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", ref, err)
	}
	return obj, nil
}

func (s *MinioStore) Remove(ctx context.Context, ref string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", ref, err)
	}
	return nil
}
