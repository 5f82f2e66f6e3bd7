package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DirExporter writes exported copies into a local directory. Existing files
// are never overwritten; a clashing name gets a numeric suffix.
type DirExporter struct {
	dir string
	mu  sync.Mutex
}

// NewDirExporter creates an exporter for dir, creating the directory if needed.
func NewDirExporter(dir string) (*DirExporter, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving export directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &DirExporter{dir: abs}, nil
}

// Export copies r to a new file named after name and returns its path.
// When size is not negative the written length must match it.
func (e *DirExporter) Export(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid export name: %q", name)
	}

	tmpFile, err := os.CreateTemp(e.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if size >= 0 && written != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	dest := e.freePath(name)
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return dest, nil
}

// freePath returns name in the export directory, or "stem-N.ext" for the
// lowest N that is not taken. Callers hold e.mu.
func (e *DirExporter) freePath(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; ; n++ {
		path := filepath.Join(e.dir, candidate)
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
}
