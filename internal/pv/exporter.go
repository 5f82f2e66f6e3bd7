package pv

import (
	"context"
	"io"
)

// Exporter writes copies of vault photos to a destination outside the vault.
type Exporter interface {
	// Export stores the content of r under name and returns where it was written.
	// size is the expected byte count, or -1 when unknown.
	Export(ctx context.Context, name string, r io.Reader, size int64) (string, error)
}
