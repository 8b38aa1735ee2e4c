// Package storage saves uploaded documents to local disk. Passport copies are
// retained and referenced by path on the guest record; extraction uploads are
// temporary and removed by the caller after processing.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxFileSize = 20 * 1024 * 1024 // 20 MB

var ErrEmptyFile = errors.New("uploaded file is empty")
var ErrFileTooLarge = errors.New("uploaded file is too large")
var ErrUnsupportedType = errors.New("unsupported file type")

// allowedMimeTypes are the document formats the registration desk accepts.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// LocalStore writes uploads under a base directory.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &LocalStore{baseDir: baseDir}
}

// Save writes the uploaded file to disk and returns its path relative to the
// working directory plus the sniffed MIME type.
func (s *LocalStore) Save(fh *multipart.FileHeader) (path string, mimeType string, err error) {
	if fh.Size == 0 {
		return "", "", ErrEmptyFile
	}
	if fh.Size > maxFileSize {
		return "", "", ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	// Sniff the MIME type from the first 512 bytes; never trust the header.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType = strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !allowedMimeTypes[mimeType] {
		return "", "", ErrUnsupportedType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + "_" + sanitizeName(fh.Filename)
	path = filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write file: %w", err)
	}
	return path, mimeType, nil
}

// Remove deletes a previously saved upload. Missing files are not an error.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// sanitizeName keeps only filesystem-safe characters from the original name.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
