package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/livefit/livefit-api/internal/platform/logger"
)

// ImageStore persists uploaded images in object storage.
type ImageStore interface {
	// Put writes data under name.
	Put(ctx context.Context, name, contentType string, data []byte) error

	// SignedURL returns a time-limited download URL for name.
	SignedURL(name string, ttl time.Duration) (string, error)

	// List returns the names of the objects under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Image is a stored image and a signed URL for it.
type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UploadService stores user images.
type UploadService interface {
	// Upload sniffs r, stores it as a JPEG or PNG and returns a signed URL.
	// Returns ErrUnsupportedImage, ErrImageTooLarge or ErrUploadDisabled.
	Upload(ctx context.Context, r io.Reader) (string, error)

	// ListImages returns every stored image with a signed URL.
	ListImages(ctx context.Context) ([]Image, error)
}

// UploadOptions bound uploads and signed URLs.
type UploadOptions struct {
	Prefix    string
	MaxBytes  int64
	URLExpiry time.Duration
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type uploadServiceImpl struct {
	images ImageStore
	opts   UploadOptions
	now    func() time.Time
	logger *slog.Logger
}

// NewUploadService creates an UploadService. A nil images store yields a
// service whose operations return ErrUploadDisabled.
func NewUploadService(images ImageStore, opts UploadOptions, logger *slog.Logger) UploadService {
	if opts.Prefix == "" {
		opts.Prefix = "images"
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 2 << 20
	}
	if opts.URLExpiry <= 0 {
		opts.URLExpiry = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &uploadServiceImpl{
		images: images,
		opts:   opts,
		now:    time.Now,
		logger: logger.With(slog.String("component", "upload_service")),
	}
}

func (s *uploadServiceImpl) Upload(ctx context.Context, r io.Reader) (string, error) {
	if s.images == nil {
		return "", ErrUploadDisabled
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if n > s.opts.MaxBytes {
		return "", ErrImageTooLarge
	}
	if n == 0 {
		return "", ErrUnsupportedImage
	}

	mtype := mimetype.Detect(buf.Bytes())
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		log.Debug("rejected upload", slog.String("content_type", mtype.String()))
		return "", ErrUnsupportedImage
	}

	name := path.Join(s.opts.Prefix, s.now().UTC().Format(time.RFC3339Nano)+ext)
	if err := s.images.Put(ctx, name, mtype.String(), buf.Bytes()); err != nil {
		log.Error("failed to store image",
			slog.String("error", err.Error()),
			slog.String("object", name))
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	url, err := s.images.SignedURL(name, s.opts.URLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign image url: %w", err)
	}

	log.Info("image uploaded",
		slog.String("object", name),
		slog.Int64("bytes", n))
	return url, nil
}

func (s *uploadServiceImpl) ListImages(ctx context.Context) ([]Image, error) {
	if s.images == nil {
		return nil, ErrUploadDisabled
	}

	names, err := s.images.List(ctx, s.opts.Prefix+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	images := make([]Image, 0, len(names))
	for _, name := range names {
		url, err := s.images.SignedURL(name, s.opts.URLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to sign image url: %w", err)
		}
		images = append(images, Image{Name: name, URL: url})
	}
	return images, nil
}
