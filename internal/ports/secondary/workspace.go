// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import "context"

// FileWriter defines the secondary port for writing generated files.
type FileWriter interface {
	// WriteFile creates missing parent directories and writes content to path,
	// replacing any existing file.
	WriteFile(ctx context.Context, path, content string) error

	// FileExists reports whether a regular file exists at path.
	FileExists(ctx context.Context, path string) (bool, error)
}
