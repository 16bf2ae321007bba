package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aesthetic-webworks/agency-site-backend/errs"
)

// MaxImageSize caps uploaded images at 1 MiB.
const MaxImageSize int64 = 1 << 20

// URLPrefix is the web path under which saved images are served.
const URLPrefix = "/uploads"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ImageStore persists uploaded images on the local filesystem and hands out
// web-servable paths. It is constructed once at startup and injected into
// the handlers that need it.
type ImageStore struct {
	dir    string
	logger zerolog.Logger
}

func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("image store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}

	logger := log.With().Str("component", "imageStore").Str("dir", dir).Logger()
	return &ImageStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory images are written to.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save validates an uploaded image and writes it under a collision-resistant
// filename, returning the web path (`/uploads/<filename>`). Size and type
// violations come back as 4xx ApiErrs before anything touches the disk.
func (s *ImageStore) Save(field string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageSize {
		return "", errs.NewUploadTooLargeError(header.Size, MaxImageSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return "", errs.NewInternalErrorWithCause("reading uploaded file", err)
	}
	if int64(len(data)) > MaxImageSize {
		return "", errs.NewUploadTooLargeError(int64(len(data)), MaxImageSize)
	}

	detected := mimetype.Detect(data)
	if !isAllowedImageType(detected) {
		return "", errs.NewUnsupportedImageTypeError(detected.String(), allowedImageTypes)
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = detected.Extension()
	}
	name := fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", errs.NewInternalErrorWithCause("writing uploaded file", err)
	}

	return path.Join(URLPrefix, name), nil
}

// Delete removes a previously saved image by its web path. Failures are
// logged and swallowed: a missing file on disk must never block a database
// mutation that already succeeded.
func (s *ImageStore) Delete(webPath string) {
	if webPath == "" {
		return
	}

	name := path.Base(webPath)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("path", webPath).Msg("failed to delete image file")
	}
}

func isAllowedImageType(detected *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}
