package service

import "io"

type MediaStorage interface {
	// Save stores a file's content under a generated unique name with
	// the given extension and returns the relative path.
	Save(fileData io.Reader, extension string) (string, error)

	// Open opens a stored file for reading given its relative path.
	Open(filePath string) (io.ReadCloser, error)

	// Delete removes a single stored file. Deleting a file that is
	// already gone is not an error.
	Delete(filePath string) error
}
