// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/prismagen/internal/ports/secondary"
)

// FileWriter implements secondary.FileWriter on the local filesystem.
type FileWriter struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewFileWriter creates a new filesystem writer.
func NewFileWriter() *FileWriter {
	return &FileWriter{dirPerm: 0755, filePerm: 0644}
}

// WriteFile creates the parent directories of path and writes content to it,
// truncating any existing file. The file is closed before returning.
func (w *FileWriter) WriteFile(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), w.dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, w.filePerm)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// FileExists checks if a regular file exists at path.
func (w *FileWriter) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Ensure FileWriter implements the interface
var _ secondary.FileWriter = (*FileWriter)(nil)
