package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"photovault/internal/pv"
)

// imageExtensions are the file types offered for import.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
	".heic": true, ".heif": true,
}

// IsImage reports whether name has an importable image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// DirSource offers the images below a local directory for import.
// Refs are slash-separated paths relative to the directory.
type DirSource struct {
	root          string
	recursive     bool
	confirmDelete bool
	ignore        *IgnoreMatcher
	idgen         pv.IDGenerator
	logger        pv.Logger

	mu     sync.Mutex
	grants map[string][]string
}

// Options configures a DirSource.
type Options struct {
	Recursive bool
	// ConfirmDelete holds every removal of originals until the user grants it.
	ConfirmDelete bool
	Ignore        []string
}

// NewDirSource creates a source for root. The directory must exist. Patterns
// from a .pvignore file in root are added to opts.Ignore.
func NewDirSource(root string, opts Options, idgen pv.IDGenerator, logger pv.Logger) (*DirSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving source directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", abs)
	}

	fromFile, err := ReadIgnoreFile(filepath.Join(abs, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = pv.NewNopLogger()
	}

	return &DirSource{
		root:          abs,
		recursive:     opts.Recursive,
		confirmDelete: opts.ConfirmDelete,
		ignore:        NewIgnoreMatcher(append(append([]string(nil), opts.Ignore...), fromFile...)),
		idgen:         idgen,
		logger:        logger,
		grants:        make(map[string][]string),
	}, nil
}

// Root returns the absolute source directory.
func (s *DirSource) Root() string {
	return s.root
}

// List returns the importable images, most recently modified first.
func (s *DirSource) List(ctx context.Context) ([]pv.SourcePhoto, error) {
	var photos []pv.SourcePhoto

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == s.root {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !s.recursive || s.ignore.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		photo, ok, err := s.describe(rel, d)
		if err != nil {
			return err
		}
		if ok {
			photos = append(photos, photo)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source directory: %w", err)
	}

	sort.Slice(photos, func(i, j int) bool {
		if !photos[i].ModifiedAt.Equal(photos[j].ModifiedAt) {
			return photos[i].ModifiedAt.After(photos[j].ModifiedAt)
		}
		return photos[i].ID < photos[j].ID
	})
	return photos, nil
}

// describe turns a directory entry into a SourcePhoto if it is an importable image.
func (s *DirSource) describe(rel string, d fs.DirEntry) (pv.SourcePhoto, bool, error) {
	if !d.Type().IsRegular() || !IsImage(rel) || s.ignore.Match(rel) {
		return pv.SourcePhoto{}, false, nil
	}
	info, err := d.Info()
	if err != nil {
		return pv.SourcePhoto{}, false, fmt.Errorf("stat %s: %w", rel, err)
	}
	ref := filepath.ToSlash(rel)
	return pv.SourcePhoto{
		ID:          ref,
		Ref:         ref,
		DisplayName: filepath.Base(rel),
		Size:        info.Size(),
		ModifiedAt:  info.ModTime().UTC(),
	}, true, nil
}

// Lookup returns the SourcePhoto for a single ref.
func (s *DirSource) Lookup(ref string) (pv.SourcePhoto, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return pv.SourcePhoto{}, err
	}
	info, err := os.Lstat(path)
	if err != nil {
		return pv.SourcePhoto{}, fmt.Errorf("stat source photo: %w", err)
	}
	rel, _ := filepath.Rel(s.root, path)
	photo, ok, err := s.describe(rel, fs.FileInfoToDirEntry(info))
	if err != nil {
		return pv.SourcePhoto{}, err
	}
	if !ok {
		return pv.SourcePhoto{}, fmt.Errorf("not an importable image: %s", ref)
	}
	return photo, nil
}

// Open opens a source image for reading.
func (s *DirSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source photo: %w", err)
	}
	return f, nil
}

// Delete removes originals, or parks them behind a grant when deletion
// needs confirmation.
func (s *DirSource) Delete(ctx context.Context, refs []string) (*pv.RemovalResult, error) {
	if len(refs) == 0 {
		return &pv.RemovalResult{}, nil
	}
	if s.confirmDelete {
		grant := s.idgen.New()
		s.mu.Lock()
		s.grants[grant] = append([]string(nil), refs...)
		s.mu.Unlock()
		s.logger.Debug("removal parked", "grant", grant, "count", len(refs))
		return &pv.RemovalResult{Pending: len(refs), Grant: grant}, nil
	}
	return s.remove(ctx, refs), nil
}

// Resume completes a parked removal. A grant can be used once.
func (s *DirSource) Resume(ctx context.Context, grant string, granted bool) (*pv.RemovalResult, error) {
	s.mu.Lock()
	refs, ok := s.grants[grant]
	delete(s.grants, grant)
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown removal grant: %s", grant)
	}
	if !granted {
		return &pv.RemovalResult{Declined: len(refs)}, nil
	}
	return s.remove(ctx, refs), nil
}

func (s *DirSource) remove(ctx context.Context, refs []string) *pv.RemovalResult {
	result := &pv.RemovalResult{}
	for _, ref := range refs {
		path, err := s.resolve(ref)
		if err == nil {
			err = os.Remove(path)
		}
		if err != nil {
			s.logger.Warn("failed to remove original", "ref", ref, "error", err)
			result.Failed++
			continue
		}
		result.Deleted++
	}
	return result
}

// resolve maps a ref to an absolute path, refusing refs that leave the root.
func (s *DirSource) resolve(ref string) (string, error) {
	if ref == "" || filepath.IsAbs(ref) {
		return "", fmt.Errorf("invalid source ref: %q", ref)
	}
	path := filepath.Join(s.root, filepath.FromSlash(ref))
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("source ref outside the source directory: %q", ref)
	}
	return path, nil
}

var _ pv.PhotoSource = (*DirSource)(nil)
