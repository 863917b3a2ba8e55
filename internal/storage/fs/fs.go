// Package fs stores recipe images on the local filesystem.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/recipebox-dev/recipebox/internal/service"
)

const recipesDir = "recipes"

type Storage struct {
	rootPath string
}

// Ensure Storage implements the interface at compile time.
var _ service.MediaStorage = (*Storage)(nil)

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents path traversal like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(filepath.Join(p, recipesDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes the file under a generated uuid filename and returns
// the relative path, e.g. "recipes/4f9e....jpg".
func (s *Storage) Save(fileData io.Reader, extension string) (string, error) {
	// Clean the extension to prevent shenanigans like ".jpg/../../foo"
	cleanExtension := filepath.Clean(extension)
	filename := fmt.Sprintf("%s%s", uuid.NewString(), cleanExtension)

	relativePath := filepath.Join(recipesDir, filename)
	fullPath := filepath.Join(s.rootPath, relativePath)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // best effort cleanup of the partial file
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return relativePath, nil
}

// Open opens a stored file for reading given its relative path.
func (s *Storage) Open(filePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Clean(filePath))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a single stored file. A file that is already gone is
// not an error.
func (s *Storage) Delete(filePath string) error {
	fullPath := filepath.Join(s.rootPath, filepath.Clean(filePath))

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
