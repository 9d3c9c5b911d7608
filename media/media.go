// Package media stores uploaded images on an S3-compatible host.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const (
	// RootPrefix is the key prefix of every uploaded asset.
	RootPrefix    string = "portfolio"
	defaultFolder string = "uploads"
)

var (
	ErrEmptyFile       = errors.New("The file is empty.")
	ErrFileTooLarge    = errors.New("The file is too large.")
	ErrUnsupportedType = errors.New("Only JPEG, PNG, GIF, WebP and BMP images are allowed.")
	ErrInvalidDataURL  = errors.New("Invalid data URL.")
	ErrInvalidAssetID  = errors.New("Invalid asset identifier.")
)

var folderRegexp = regexp.MustCompile(`[^a-z0-9_-]+`)

// imageExtensions maps every accepted MIME type to the stored extension.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ObjectStore is the subset of *minio.Client used by the service.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName string, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName string, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

type Config struct {
	Bucket string

	// PublicURL is the base URL assets are served from, without a trailing slash.
	PublicURL string

	MaxSize int64
	Timeout time.Duration
}

// Asset is an uploaded object. ID is the object key.
type Asset struct {
	URL string `json:"url"`
	ID  string `json:"public_id"`
}

// Object is a stored asset as returned by List.
type Object struct {
	ID           string
	Size         int64
	LastModified time.Time
}

type Service struct {
	client ObjectStore
	config Config
}

func NewService(client ObjectStore, config Config) *Service {
	config.PublicURL = strings.TrimRight(config.PublicURL, "/")

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Service{client: client, config: config}
}

// Upload stores data under portfolio/<folder>/ and returns its public URL.
func (s *Service) Upload(ctx context.Context, data []byte, folder string) (Asset, error) {
	if len(data) < 1 {
		return Asset{}, ErrEmptyFile
	}

	if s.config.MaxSize > 0 && int64(len(data)) > s.config.MaxSize {
		return Asset{}, ErrFileTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return Asset{}, ErrUnsupportedType
	}

	key := path.Join(RootPrefix, CleanFolder(folder), uuid.NewString()+ext)

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if _, err := s.client.PutObject(ctx, s.config.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	}); err != nil {
		sentry.CaptureException(err)
		return Asset{}, fmt.Errorf("Could not upload file: %w", err)
	}

	slog.Debug(fmt.Sprintf("Uploaded media %s (%d bytes)", key, len(data)))

	return Asset{URL: s.URL(key), ID: key}, nil
}

// UploadDataURL decodes a base64 data URL and uploads its payload.
func (s *Service) UploadDataURL(ctx context.Context, dataURL string, folder string) (Asset, error) {
	data, err := DecodeDataURL(dataURL)
	if err != nil {
		return Asset{}, err
	}

	return s.Upload(ctx, data, folder)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !IsAssetID(id) {
		return ErrInvalidAssetID
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.config.Bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("Could not delete media %s: %w", id, err)
	}

	return nil
}

// List returns every asset under the given prefix, recursively.
func (s *Service) List(ctx context.Context, prefix string) ([]Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := []Object{}

	for info := range s.client.ListObjects(ctx, s.config.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("Could not list media: %w", info.Err)
		}

		objects = append(objects, Object{ID: info.Key, Size: info.Size, LastModified: info.LastModified})
	}

	return objects, nil
}

func (s *Service) URL(id string) string {
	return s.config.PublicURL + "/" + id
}

// AssetID recovers the asset id from a URL returned by Upload. It reports
// false for URLs not served by this host.
func (s *Service) AssetID(u string) (string, bool) {
	u = strings.TrimSpace(u)
	base := s.config.PublicURL + "/"

	if len(s.config.PublicURL) < 1 || !strings.HasPrefix(u, base) {
		return "", false
	}

	id := strings.TrimPrefix(u, base)
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}

	if !IsAssetID(id) {
		return "", false
	}

	return id, true
}

// CleanFolder normalizes a folder name to lowercase letters, digits, dashes
// and underscores.
func CleanFolder(folder string) string {
	folder = folderRegexp.ReplaceAllString(strings.ToLower(strings.TrimSpace(folder)), "")

	if len(folder) < 1 {
		return defaultFolder
	}

	return folder
}

// IsAssetID reports whether id names an object under the root prefix.
func IsAssetID(id string) bool {
	if !strings.HasPrefix(id, RootPrefix+"/") || strings.Contains(id, "..") {
		return false
	}

	return path.Clean(id) == id && len(strings.Split(id, "/")) == 3
}

// DecodeDataURL returns the payload of a base64 "data:" URL.
func DecodeDataURL(dataURL string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimSpace(dataURL), ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	return data, nil
}
