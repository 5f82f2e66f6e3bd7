package pv

import (
	"context"
	"fmt"
	"strings"

	"photovault/internal/database/sqlc"
)

const (
	// RestoredAlbumName is the fallback album that receives orphaned photos.
	RestoredAlbumName = "Restored"

	// BinHoldingAlbumName is the hidden album of photos that never had a real album.
	// Its id is always treated as orphaned on restore.
	BinHoldingAlbumName = "__DUMMY_BIN_ALBUM__"
)

// ValidateAlbumName checks that name can be used as an album name and as the
// name of the album's directory in the vault.
func ValidateAlbumName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &ValidationError{Name: name, Reason: "name is empty", Err: ErrInvalidName}
	case name == "." || name == "..":
		return &ValidationError{Name: name, Reason: "name is a relative path", Err: ErrInvalidName}
	case strings.ContainsAny(name, "/\\\x00"):
		return &ValidationError{Name: name, Reason: "name contains a path separator", Err: ErrInvalidName}
	case name == BinHoldingAlbumName:
		return &ValidationError{Name: name, Reason: "name is reserved", Err: ErrReservedName}
	}
	return nil
}

// VisibleAlbums drops the hidden bin-holding album from a listing.
func VisibleAlbums(albums []*sqlc.Album) []*sqlc.Album {
	visible := make([]*sqlc.Album, 0, len(albums))
	for _, a := range albums {
		if a.Name != BinHoldingAlbumName {
			visible = append(visible, a)
		}
	}
	return visible
}

// ListAlbums returns the user-visible albums, newest first.
func (s *VaultService) ListAlbums(ctx context.Context) ([]*sqlc.Album, error) {
	albums, err := s.database.ListAlbums(ctx)
	if err != nil {
		return nil, storageErr("listing albums", err)
	}
	return VisibleAlbums(albums), nil
}

// FindAlbumByName looks an album up by its exact name. Missing albums return ErrNotFound.
func (s *VaultService) FindAlbumByName(ctx context.Context, name string) (*sqlc.Album, error) {
	album, err := s.database.FindAlbumByName(ctx, name)
	if err != nil {
		return nil, storageErr("finding album", err)
	}
	if album == nil || album.Name == BinHoldingAlbumName {
		return nil, fmt.Errorf("album %q: %w", name, ErrNotFound)
	}
	return album, nil
}

// MoveTargets returns every visible album except the one photos are being moved from.
func (s *VaultService) MoveTargets(ctx context.Context, fromAlbumID int64) ([]*sqlc.Album, error) {
	albums, err := s.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]*sqlc.Album, 0, len(albums))
	for _, a := range albums {
		if a.ID != fromAlbumID {
			targets = append(targets, a)
		}
	}
	return targets, nil
}

// ListPhotos returns the active photos of an album, newest import first.
func (s *VaultService) ListPhotos(ctx context.Context, albumID int64) ([]*sqlc.Photo, error) {
	photos, err := s.database.ListActivePhotos(ctx, albumID)
	if err != nil {
		return nil, storageErr("listing photos", err)
	}
	return photos, nil
}

// CreateAlbum creates an empty album. The name must be valid and unused.
func (s *VaultService) CreateAlbum(ctx context.Context, name string) (*sqlc.Album, error) {
	if err := ValidateAlbumName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.database.FindAlbumByName(ctx, name)
	if err != nil {
		return nil, storageErr("checking album name", err)
	}
	if existing != nil {
		return nil, &NameConflictError{Name: name}
	}

	album, err := s.database.CreateAlbum(ctx, name, s.clock.Now())
	if err != nil {
		return nil, storageErr("creating album", err)
	}
	s.logger.Info("album created", "album_id", album.ID, "name", name)
	return album, nil
}

// RenameAlbum changes an album's name in place. Photos and files are untouched.
func (s *VaultService) RenameAlbum(ctx context.Context, albumID int64, newName string) error {
	if err := ValidateAlbumName(newName); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.database.FindAlbumByID(ctx, albumID)
	if err != nil {
		return storageErr("finding album", err)
	}
	if album == nil {
		return notFound("album", albumID)
	}
	if album.Name == BinHoldingAlbumName {
		return &ValidationError{Name: album.Name, Reason: "album cannot be renamed", Err: ErrReservedName}
	}
	if album.Name == newName {
		return nil
	}

	other, err := s.database.FindAlbumByName(ctx, newName)
	if err != nil {
		return storageErr("checking album name", err)
	}
	if other != nil {
		return &NameConflictError{Name: newName}
	}

	if err := s.database.RenameAlbum(ctx, albumID, newName); err != nil {
		return storageErr("renaming album", err)
	}
	s.logger.Info("album renamed", "album_id", albumID, "from", album.Name, "to", newName)
	return nil
}

// DeleteAlbum deletes an album with its active photos and its vault directory.
// Binned photos of the album are handed to the Restored album first so they
// stay restorable.
func (s *VaultService) DeleteAlbum(ctx context.Context, albumID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.database.FindAlbumByID(ctx, albumID)
	if err != nil {
		return storageErr("finding album", err)
	}
	if album == nil {
		return notFound("album", albumID)
	}
	if album.Name == BinHoldingAlbumName {
		return &ValidationError{Name: album.Name, Reason: "album cannot be deleted", Err: ErrReservedName}
	}

	photos, err := s.database.ListAlbumPhotos(ctx, albumID)
	if err != nil {
		return storageErr("listing album photos", err)
	}
	var binIDs, activeIDs []int64
	for _, p := range photos {
		if p.IsDeleted {
			binIDs = append(binIDs, p.ID)
		} else {
			activeIDs = append(activeIDs, p.ID)
		}
	}

	if album.Name == RestoredAlbumName {
		// Binned photos keep the stale id and are re-homed by the next restore.
		for _, id := range activeIDs {
			if err := s.database.DeletePhoto(ctx, id); err != nil {
				return storageErr("deleting album photos", err)
			}
		}
	} else {
		if len(binIDs) > 0 {
			restored, err := s.restoredAlbum(ctx)
			if err != nil {
				return err
			}
			// A cover of this album means nothing in Restored.
			if err := s.database.ClearDisplacedCovers(ctx, albumID); err != nil {
				return storageErr("clearing displaced covers", err)
			}
			if err := s.database.MovePhotos(ctx, binIDs, restored.ID); err != nil {
				return storageErr("reassigning binned photos", err)
			}
			s.logger.Info("binned photos reassigned", "album_id", albumID, "restored_album_id", restored.ID, "count", len(binIDs))
		}
		if err := s.database.DeletePhotosByAlbum(ctx, albumID); err != nil {
			return storageErr("deleting album photos", err)
		}
	}

	if err := s.files.DeleteAlbumDirectory(album.Name); err != nil {
		s.logger.Warn("failed to remove album directory", "album", album.Name, "error", err)
	}

	if err := s.database.DeleteAlbum(ctx, albumID); err != nil {
		return storageErr("deleting album", err)
	}
	s.logger.Info("album deleted", "album_id", albumID, "name", album.Name, "photos", len(activeIDs), "kept_in_bin", len(binIDs))
	return nil
}

// SetCover makes an active photo of the album its cover.
func (s *VaultService) SetCover(ctx context.Context, albumID, photoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.database.FindAlbumByID(ctx, albumID)
	if err != nil {
		return storageErr("finding album", err)
	}
	if album == nil {
		return notFound("album", albumID)
	}
	photo, err := s.database.FindPhotoByID(ctx, photoID)
	if err != nil {
		return storageErr("finding photo", err)
	}
	if photo == nil {
		return notFound("photo", photoID)
	}
	if photo.AlbumID != albumID || photo.IsDeleted {
		return ErrNotInAlbum
	}

	if err := s.database.SetAlbumCover(ctx, albumID, photo.FilePath); err != nil {
		return storageErr("setting album cover", err)
	}
	if err := s.database.ClearDisplacedCovers(ctx, albumID); err != nil {
		return storageErr("clearing displaced covers", err)
	}
	s.logger.Info("album cover set", "album_id", albumID, "photo_id", photoID)
	return nil
}

// ReconcileAlbums recomputes every album's photo count and repairs covers
// that are missing or no longer point at an active photo of the album.
// It returns the number of covers repaired.
func (s *VaultService) ReconcileAlbums(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	albums, err := s.database.ListAlbums(ctx)
	if err != nil {
		return 0, storageErr("listing albums", err)
	}

	repaired := 0
	for _, album := range albums {
		if err := s.refreshCount(ctx, album.ID); err != nil {
			return repaired, err
		}
		active, err := s.database.ListActivePhotos(ctx, album.ID)
		if err != nil {
			return repaired, storageErr("listing photos", err)
		}
		if coverIsValid(album, active) || (!album.CoverPhotoPath.Valid && len(active) == 0) {
			continue
		}
		if err := s.deriveCover(ctx, album.ID); err != nil {
			return repaired, err
		}
		repaired++
		s.logger.Info("album cover repaired", "album_id", album.ID, "name", album.Name)
	}
	return repaired, nil
}

// restoredAlbum returns the Restored album, creating it when absent.
// Callers hold s.mu.
func (s *VaultService) restoredAlbum(ctx context.Context) (*sqlc.Album, error) {
	album, err := s.database.FindAlbumByName(ctx, RestoredAlbumName)
	if err != nil {
		return nil, storageErr("finding restored album", err)
	}
	if album != nil {
		return album, nil
	}
	album, err = s.database.CreateAlbum(ctx, RestoredAlbumName, s.clock.Now())
	if err != nil {
		return nil, storageErr("creating restored album", err)
	}
	s.logger.Info("restored album created", "album_id", album.ID)
	return album, nil
}
