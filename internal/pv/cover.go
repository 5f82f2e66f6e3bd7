package pv

import (
	"context"

	"photovault/internal/database/sqlc"
)

// deriveCover points the album's cover at its earliest imported active photo,
// or clears the cover when the album has none.
func (s *VaultService) deriveCover(ctx context.Context, albumID int64) error {
	first, err := s.database.FindFirstActivePhoto(ctx, albumID)
	if err != nil {
		return storageErr("finding cover candidate", err)
	}
	if first == nil {
		if err := s.database.ClearAlbumCover(ctx, albumID); err != nil {
			return storageErr("clearing album cover", err)
		}
		return nil
	}
	if err := s.database.SetAlbumCover(ctx, albumID, first.FilePath); err != nil {
		return storageErr("setting album cover", err)
	}
	return nil
}

// ensureCover derives a cover only for an album that has none.
func (s *VaultService) ensureCover(ctx context.Context, albumID int64) error {
	album, err := s.database.FindAlbumByID(ctx, albumID)
	if err != nil {
		return storageErr("finding album", err)
	}
	if album == nil || album.CoverPhotoPath.Valid {
		return nil
	}
	return s.deriveCover(ctx, albumID)
}

// refreshCount recomputes the album's photo count.
func (s *VaultService) refreshCount(ctx context.Context, albumID int64) error {
	if err := s.database.RefreshAlbumPhotoCount(ctx, albumID); err != nil {
		return storageErr("updating photo count", err)
	}
	return nil
}

// coverIsValid reports whether cover names an active photo of the album.
func coverIsValid(album *sqlc.Album, active []*sqlc.Photo) bool {
	if !album.CoverPhotoPath.Valid {
		return false
	}
	for _, p := range active {
		if p.FilePath == album.CoverPhotoPath.String {
			return true
		}
	}
	return false
}
