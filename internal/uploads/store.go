// Package uploads stores book covers, PDFs and publisher images under a
// content-typed directory layout and hands back relative paths for
// persistence.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the subdirectory an upload lands in.
type Kind string

const (
	KindCover          Kind = "covers"
	KindPDF            Kind = "pdfs"
	KindPublisherImage Kind = "publishers"
)

// Store writes uploaded files beneath a single root directory.
type Store struct {
	root string
}

// NewStore creates the upload store, making sure every content-typed
// subdirectory exists.
func NewStore(root string) (*Store, error) {
	for _, kind := range []Kind{KindCover, KindPDF, KindPublisherImage} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0755); err != nil {
			return nil, fmt.Errorf("create uploads dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the root directory of the store.
func (s *Store) Root() string {
	return s.root
}

// Save persists one multipart file and returns its store-relative path,
// e.g. "covers/3f2a..._original.jpg". Filenames get a random prefix so two
// uploads of the same name never collide.
func (s *Store) Save(header *multipart.FileHeader, kind Kind) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(header.Filename))
	relPath := filepath.ToSlash(filepath.Join(string(kind), name))

	dst, err := os.Create(filepath.Join(s.root, string(kind), name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return relPath, nil
}

// AbsPath resolves a store-relative path to its on-disk location.
func (s *Store) AbsPath(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

// Exists reports whether the backing file of a relative path is present.
func (s *Store) Exists(relPath string) bool {
	info, err := os.Stat(s.AbsPath(relPath))
	return err == nil && !info.IsDir()
}

// Remove deletes the backing file of a relative path. A file that is
// already gone is not an error, the row it belonged to has been deleted.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(s.AbsPath(relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeFilename strips any path components a client smuggles into the
// multipart filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}
	return strings.ReplaceAll(name, string(filepath.Separator), "_")
}
