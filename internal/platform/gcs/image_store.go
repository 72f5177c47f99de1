// Package gcs stores uploaded images in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ImageStore implements service.ImageStore on a GCS bucket.
type ImageStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	logger *slog.Logger
}

// NewImageStore opens a client for cfg.Bucket. Credentials come from
// cfg.CredentialsFile when set, otherwise from the environment.
func NewImageStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageStore{
		client: client,
		bucket: client.Bucket(cfg.Bucket),
		logger: logger.With(slog.String("component", "gcs_image_store")),
	}, nil
}

// Put uploads data to name.
func (s *ImageStore) Put(ctx context.Context, name, contentType string, data []byte) error {
	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %s: %w", name, err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("object stored",
		slog.String("object", name),
		slog.Int("bytes", len(data)))
	return nil
}

// SignedURL returns a V4 signed GET URL valid for ttl.
func (s *ImageStore) SignedURL(name string, ttl time.Duration) (string, error) {
	url, err := s.bucket.SignedURL(name, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", name, err)
	}
	return url, nil
}

// List returns object names under prefix.
func (s *ImageStore) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Close releases the client.
func (s *ImageStore) Close() error {
	return s.client.Close()
}
