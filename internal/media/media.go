// Package media stores uploaded images under the configured media dir.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxUploadBytes = 5 << 20

	DirCanchas  = "canchas"
	DirUsuarios = "usuarios"
)

var (
	ErrTooLarge = errors.New("image exceeds upload limit")
	ErrNotImage = errors.New("file is not a supported image")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("media root is required")
	}
	for _, dir := range []string{DirCanchas, DirUsuarios} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// SaveUpload stores the multipart file in field under dir and returns its
// media name (dir/uuid.ext). ok is false when the field carried no file.
func (s *Store) SaveUpload(r *http.Request, field, dir string) (name string, ok bool, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", false, nil
		}
		return "", false, err
	}
	defer file.Close()

	if header.Size == 0 {
		return "", false, nil
	}
	if header.Size > MaxUploadBytes {
		return "", false, ErrTooLarge
	}
	name, err = s.save(file, dir)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (s *Store) save(file multipart.File, dir string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	ext, ok := extensions[http.DetectContentType(head[:n])]
	if !ok {
		return "", ErrNotImage
	}

	name := path.Join(dir, uuid.NewString()+ext)
	dst, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	written, err := io.Copy(dst, io.MultiReader(strings.NewReader(string(head[:n])), io.LimitReader(file, MaxUploadBytes)))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > MaxUploadBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(s.path(name))
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write media file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored upload. Default images and names outside the
// store are ignored.
func (s *Store) Remove(name string) error {
	if name == "" || IsDefault(name) || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// IsDefault reports whether name is one of the shipped placeholder images.
func IsDefault(name string) bool {
	return strings.Contains(path.Base(name), "default-")
}
