package pv

import (
	"context"
	"fmt"
	"path/filepath"

	"photovault/internal/database/sqlc"
)

// Import copies source photos into an album. Items are processed in order and
// an item that fails to copy or to record is reported without aborting the
// rest. Afterwards the album count is refreshed and, if the album has no
// cover yet, its earliest imported photo becomes the cover.
// A started import runs to completion even if ctx is cancelled, so the
// album's count and cover always reflect the photos that were committed.
func (s *VaultService) Import(ctx context.Context, albumID int64, items []SourcePhoto) (*ImportResult, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.database.FindAlbumByID(ctx, albumID)
	if err != nil {
		return nil, storageErr("finding album", err)
	}
	if album == nil {
		return nil, notFound("album", albumID)
	}
	if album.Name == BinHoldingAlbumName {
		return nil, &ValidationError{Name: album.Name, Reason: "album cannot receive photos", Err: ErrReservedName}
	}

	result := &ImportResult{}
	for _, item := range items {
		photo, err := s.importOne(ctx, album, item)
		if err != nil {
			s.logger.Warn("import failed", "album_id", albumID, "source_id", item.ID, "error", err)
			result.Failed = append(result.Failed, ItemFailure{Item: item.ID, Err: err})
			continue
		}
		result.Imported = append(result.Imported, photo)
	}

	if len(result.Imported) > 0 {
		if err := s.refreshCount(ctx, albumID); err != nil {
			return result, err
		}
		if err := s.ensureCover(ctx, albumID); err != nil {
			return result, err
		}
	}

	s.logger.Info("import finished", "album_id", albumID, "imported", len(result.Imported), "failed", len(result.Failed))
	return result, nil
}

func (s *VaultService) importOne(ctx context.Context, album *sqlc.Album, item SourcePhoto) (*sqlc.Photo, error) {
	r, err := s.source.Open(ctx, item.Ref)
	if err != nil {
		return nil, fmt.Errorf("opening source photo: %w", err)
	}
	defer r.Close()

	path, err := s.files.CopyIntoVault(r, album.Name, item.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("copying into vault: %w", err)
	}

	width, height := s.files.ImageDimensions(path)
	name := item.DisplayName
	if name == "" {
		name = filepath.Base(path)
	}

	photo, err := s.database.CreatePhoto(ctx, &sqlc.Photo{
		AlbumID:      album.ID,
		FilePath:     path,
		OriginalName: name,
		ImportedAt:   s.clock.Now(),
		FileSize:     item.Size,
		Width:        int64(width),
		Height:       int64(height),
	})
	if err != nil {
		if !s.files.DeleteOwnedFile(path) {
			s.logger.Warn("failed to remove unrecorded copy", "path", path)
		}
		return nil, fmt.Errorf("recording photo: %w", err)
	}
	return photo, nil
}
