package filestore

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder for ImageDimensions
	_ "image/jpeg" // JPEG decoder for ImageDimensions
	_ "image/png"  // PNG decoder for ImageDimensions
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder for ImageDimensions
	_ "golang.org/x/image/tiff" // TIFF decoder for ImageDimensions
	_ "golang.org/x/image/webp" // WebP decoder for ImageDimensions

	"photovault/internal/pv"
)

// LocalStore keeps vault photos as plain files on the local disk:
//
//	<root>/
//	  <album name>/
//	    IMG_<yyyyMMdd>_<HHmmss>_<suffix>.<ext>
type LocalStore struct {
	root   string
	clock  pv.Clock
	idgen  pv.IDGenerator
	logger pv.Logger
}

// NewLocalStore creates a file store rooted at root, creating the directory if needed.
func NewLocalStore(root string, clock pv.Clock, idgen pv.IDGenerator, logger pv.Logger) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, fmt.Errorf("failed to create vault root: %w", err)
	}
	if logger == nil {
		logger = pv.NewNopLogger()
	}
	return &LocalStore{root: abs, clock: clock, idgen: idgen, logger: logger}, nil
}

// Root returns the absolute vault root.
func (s *LocalStore) Root() string {
	return s.root
}

// CopyIntoVault writes r to a new file in the album's directory using an
// atomic write (temp file + rename).
func (s *LocalStore) CopyIntoVault(r io.Reader, albumName string, displayName string) (string, error) {
	dir, err := s.albumDir(albumName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create album directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
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

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath, err := s.freshName(dir, extension(displayName))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return destPath, nil
}

// freshName picks a filename in dir that does not exist yet.
func (s *LocalStore) freshName(dir, ext string) (string, error) {
	stamp := s.clock.Now().Format("20060102_150405")
	for attempt := 0; attempt < 10; attempt++ {
		suffix := strings.ReplaceAll(s.idgen.New(), "-", "")
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		path := filepath.Join(dir, fmt.Sprintf("IMG_%s_%s%s", stamp, suffix, ext))
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free filename in %s", dir)
}

// extension keeps the lower-cased extension of name, defaulting to .jpg.
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || ext == "." || strings.ContainsAny(ext, `/\`) {
		return ".jpg"
	}
	return ext
}

// ImageDimensions reads only the image header. Unknown formats report 0x0.
func (s *LocalStore) ImageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		s.logger.Debug("image dimensions unavailable", "path", path, "error", err)
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// DeleteOwnedFile removes a file below the vault root. Paths outside the
// root are refused.
func (s *LocalStore) DeleteOwnedFile(path string) bool {
	if !s.owns(path) {
		s.logger.Warn("refusing to delete file outside the vault", "path", path)
		return false
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return true
		}
		s.logger.Warn("failed to delete vault file", "path", path, "error", err)
		return false
	}
	return true
}

// DeleteAlbumDirectory removes the album's directory and everything in it.
func (s *LocalStore) DeleteAlbumDirectory(albumName string) error {
	dir, err := s.albumDir(albumName)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing album directory: %w", err)
	}
	return nil
}

// Open opens a vault file for reading.
func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	if !s.owns(path) {
		return nil, fmt.Errorf("file is outside the vault: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vault file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// albumDir maps an album name to its directory, rejecting names that would
// escape the root.
func (s *LocalStore) albumDir(albumName string) (string, error) {
	if albumName == "" || albumName == "." || albumName == ".." || strings.ContainsAny(albumName, `/\`) {
		return "", fmt.Errorf("album name %q cannot be used as a directory", albumName)
	}
	return filepath.Join(s.root, albumName), nil
}

// owns reports whether path lies strictly inside the vault root.
func (s *LocalStore) owns(path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	rel, err := filepath.Rel(s.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Compile-time check that LocalStore implements pv.FileStore interface
var _ pv.FileStore = (*LocalStore)(nil)
