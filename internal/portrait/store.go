// Package portrait stores wrestler portrait images as opaque blobs keyed by a sanitized name.
package portrait

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"universe-manager/internal/config"
	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
)

type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

var ErrNotFound = fmt.Errorf("portrait %w", domain.ErrNotFound)

// Info describes a stored portrait.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the blob backend for portraits. Put replaces any existing blob under key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	Driver() Driver
}

// New opens the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.PortraitConfig) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverFilesystem, "":
		return NewFS(cfg.Dir)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown portrait driver %q", cfg.Driver)
	}
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// Key derives the blob key for a wrestler's portrait: quotes dropped, anything outside
// [A-Za-z0-9_-] replaced by "_", lower-cased, plus the lower-cased extension.
func Key(name, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(constants.PortraitExtensions, ext) {
		return "", fmt.Errorf("%w: image type %q (want one of %s)", domain.ErrInvalidValue, ext, strings.Join(constants.PortraitExtensions, ", "))
	}
	base := strings.NewReplacer(`"`, "", "'", "").Replace(strings.TrimSpace(name))
	base = unsafeKeyChars.ReplaceAllString(base, "_")
	if base == "" {
		return "", fmt.Errorf("%w: wrestler name", domain.ErrMissingField)
	}
	return strings.ToLower(base) + ext, nil
}

// ContentType maps a portrait key to its MIME type.
func ContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
