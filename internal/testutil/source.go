package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"photovault/internal/pv"
)

// MemorySource is an in-memory pv.PhotoSource.
type MemorySource struct {
	mu            sync.Mutex
	photos        map[string]*memoryPhoto
	grants        map[string][]string
	idgen         *StubIDGenerator
	confirmDelete bool
}

type memoryPhoto struct {
	photo   pv.SourcePhoto
	content []byte
	failing bool
}

// NewMemorySource creates an empty source. With confirmDelete every removal
// waits for a grant.
func NewMemorySource(confirmDelete bool) *MemorySource {
	return &MemorySource{
		photos:        make(map[string]*memoryPhoto),
		grants:        make(map[string][]string),
		idgen:         NewStubIDGenerator(),
		confirmDelete: confirmDelete,
	}
}

// AddPhoto adds a photo whose Ref and ID are both ref.
func (s *MemorySource) AddPhoto(ref, displayName string, content []byte) pv.SourcePhoto {
	s.mu.Lock()
	defer s.mu.Unlock()
	photo := pv.SourcePhoto{
		ID:          ref,
		Ref:         ref,
		DisplayName: displayName,
		Size:        int64(len(content)),
		ModifiedAt:  time.Date(2024, 1, 1, 0, 0, len(s.photos), 0, time.UTC),
	}
	s.photos[ref] = &memoryPhoto{photo: photo, content: content}
	return photo
}

// FailOpen makes reading ref fail.
func (s *MemorySource) FailOpen(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.photos[ref]; ok {
		p.failing = true
	}
}

// Has reports whether ref is still in the source.
func (s *MemorySource) Has(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.photos[ref]
	return ok
}

func (s *MemorySource) List(ctx context.Context) ([]pv.SourcePhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]pv.SourcePhoto, 0, len(s.photos))
	for _, p := range s.photos {
		result = append(result, p.photo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ModifiedAt.After(result[j].ModifiedAt) })
	return result, nil
}

func (s *MemorySource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[ref]
	if !ok {
		return nil, fmt.Errorf("source photo not found: %s", ref)
	}
	if p.failing {
		return io.NopCloser(&FailingReader{}), nil
	}
	return io.NopCloser(bytes.NewReader(p.content)), nil
}

func (s *MemorySource) Delete(ctx context.Context, refs []string) (*pv.RemovalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmDelete && len(refs) > 0 {
		grant := s.idgen.New()
		s.grants[grant] = append([]string(nil), refs...)
		return &pv.RemovalResult{Pending: len(refs), Grant: grant}, nil
	}
	return s.remove(refs), nil
}

func (s *MemorySource) Resume(ctx context.Context, grant string, granted bool) (*pv.RemovalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs, ok := s.grants[grant]
	if !ok {
		return nil, fmt.Errorf("unknown grant: %s", grant)
	}
	delete(s.grants, grant)
	if !granted {
		return &pv.RemovalResult{Declined: len(refs)}, nil
	}
	return s.remove(refs), nil
}

func (s *MemorySource) remove(refs []string) *pv.RemovalResult {
	result := &pv.RemovalResult{}
	for _, ref := range refs {
		if _, ok := s.photos[ref]; !ok {
			result.Failed++
			continue
		}
		delete(s.photos, ref)
		result.Deleted++
	}
	return result
}

var _ pv.PhotoSource = (*MemorySource)(nil)
