package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AttachmentStore accepts uploaded files and hands back stable stored
// names. Handlers validate every file of a request before saving any, so
// a rejected file never leaves partial state behind.
type AttachmentStore interface {
	Validate(fh *multipart.FileHeader) error
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

const (
	// MaxFileSize is the per-file upload limit (5MB).
	MaxFileSize = 5 << 20
	// MaxFilesPerRequest caps attachments on a single submission.
	MaxFilesPerRequest = 5
)

var (
	ErrFileTooLarge = errors.New("file size too large, maximum size is 5MB")
	ErrFileType     = errors.New("only PDF and DOC files are allowed")
)

// allowed MIME types, mirroring the upload contract: PDF, legacy Word and
// OOXML Word documents.
var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// LocalStore writes attachments to a directory on disk. Stored names are
// random, the original name only contributes its extension.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Validate(fh *multipart.FileHeader) error {
	if fh.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	if !allowedTypes[contentType(fh)] {
		return ErrFileType
	}
	return nil
}

func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if err := s.Validate(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

func (s *LocalStore) Remove(name string) error {
	// Base strips any path the caller smuggled into the name.
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}
