package pv

import "io"

// FileStore manages the photo files owned by the vault.
type FileStore interface {
	// CopyIntoVault copies r into the directory of albumName under a fresh,
	// unique filename and returns the absolute path of the copy. displayName
	// only contributes its extension.
	CopyIntoVault(r io.Reader, albumName string, displayName string) (string, error)

	// ImageDimensions decodes just enough of the file to report its pixel size.
	// Undecodable files report 0x0.
	ImageDimensions(path string) (width, height int)

	// DeleteOwnedFile removes a file inside the vault. It reports false when the
	// file could not be removed or does not belong to the vault.
	DeleteOwnedFile(path string) bool

	// DeleteAlbumDirectory recursively removes the directory of albumName.
	DeleteAlbumDirectory(albumName string) error

	// Open opens a vault file for reading.
	Open(path string) (io.ReadCloser, error)
}
