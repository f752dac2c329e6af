package ports

import "io"

// FileSystem abstracts file system operations.
type FileSystem interface {
	// Create opens path for writing, truncating any existing file.
	// Close on the returned writer must flush the data to stable storage.
	Create(path string) (io.WriteCloser, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
