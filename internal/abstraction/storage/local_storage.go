package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrFileTooLarge = errors.New("file exceeds upload limit")

type LocalStorage struct {
	baseDir  string
	maxBytes int64
}

// NewLocalStorage legt baseDir bei Bedarf an. maxBytes <= 0 bedeutet ohne Grenze.
func NewLocalStorage(baseDir string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", baseDir, err)
	}
	return &LocalStorage{baseDir: baseDir, maxBytes: maxBytes}, nil
}

func (s *LocalStorage) Save(ctx context.Context, file *multipart.FileHeader) (*entity.TaskAttachment, error) {
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix, err := gonanoid.New(12)
	if err != nil {
		return nil, err
	}
	original := sanitizeFilename(file.Filename)
	storedName := fmt.Sprintf("%s_%s", prefix, original)
	path := filepath.Join(s.baseDir, storedName)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	return &entity.TaskAttachment{
		OriginalName: file.Filename,
		StoredName:   storedName,
		StoragePath:  path,
		UploadedAt:   time.Now().UTC(),
	}, nil
}

func (s *LocalStorage) Remove(_ context.Context, storagePath string) error {
	// Nur Dateien unterhalb von baseDir dürfen gelöscht werden.
	rel, err := filepath.Rel(s.baseDir, storagePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("path %q outside upload dir", storagePath)
	}

	if err := os.Remove(storagePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 32 || r == '/' || r == ':':
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
