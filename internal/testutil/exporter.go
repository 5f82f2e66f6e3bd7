package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"photovault/internal/pv"
)

// MemoryExporter records exported content by name.
type MemoryExporter struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewMemoryExporter() *MemoryExporter {
	return &MemoryExporter{Files: make(map[string][]byte)}
}

func (e *MemoryExporter) Export(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if size >= 0 && int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Files[name] = data
	return "memory://" + name, nil
}

var _ pv.Exporter = (*MemoryExporter)(nil)
