package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowed image extensions and their canonical form
var imageExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpeg",
	".png":  ".png",
}

// UploadConfig holds upload storage configuration
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// UploadService stores and reaps image files on local disk. Files are
// written under a single directory with generated names, so a stored path
// never depends on client input.
type UploadService struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(cfg UploadConfig, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
		logger:   logger,
	}
}

// Save writes an uploaded image to disk and returns its stored path.
// The original filename contributes only its extension.
func (s *UploadService) Save(filename string, size int64, src io.Reader) (string, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", ErrUploadTooLarge
	}

	ext, ok := imageExtensions[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	reader := src
	if s.maxBytes > 0 {
		// Belt and braces for callers that pass size 0
		reader = io.LimitReader(src, s.maxBytes+1)
	}

	written, err := io.Copy(dst, reader)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = os.Remove(path)
		return "", ErrUploadTooLarge
	}

	return path, nil
}

// Remove deletes a stored file, best effort. Paths outside the upload
// directory are refused; failures are logged and swallowed because the
// record mutation that orphaned the file has already committed.
func (s *UploadService) Remove(path string) {
	if path == "" {
		return
	}

	cleaned := filepath.Clean(path)
	dir := filepath.Clean(s.dir)
	if cleaned != dir && !strings.HasPrefix(cleaned, dir+string(filepath.Separator)) {
		s.logger.Warn("refusing to remove file outside upload dir", "path", path)
		return
	}

	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove upload", "path", cleaned, "error", err)
	}
}
