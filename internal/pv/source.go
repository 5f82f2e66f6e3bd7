package pv

import (
	"context"
	"io"
	"time"
)

// SourcePhoto describes a photo in an external source that can be imported.
type SourcePhoto struct {
	ID          string
	Ref         string // opaque handle understood by the source
	DisplayName string
	Size        int64
	ModifiedAt  time.Time
}

// RemovalResult reports the outcome of removing originals from a source.
// A non-empty Grant means Pending items wait for the user's decision, which
// is reported back through PhotoSource.Resume.
type RemovalResult struct {
	Deleted  int
	Failed   int
	Declined int
	Pending  int
	Grant    string
}

// PhotoSource is an external collection of photos that the vault imports from.
type PhotoSource interface {
	// List returns the photos currently available in the source.
	List(ctx context.Context) ([]SourcePhoto, error)

	// Open opens the content of a source photo.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Delete removes originals. Items the source may not remove without the
	// user's consent are returned as pending behind a grant.
	Delete(ctx context.Context, refs []string) (*RemovalResult, error)

	// Resume completes a pending removal once the user granted or refused it.
	Resume(ctx context.Context, grant string, granted bool) (*RemovalResult, error)
}
