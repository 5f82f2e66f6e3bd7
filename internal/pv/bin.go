package pv

import (
	"context"
	"sort"

	"photovault/internal/database/sqlc"
)

// MoveToBin soft-deletes active photos. Albums that lose their cover get a new
// one derived from their remaining photos. The displaced cover is remembered
// on the binned photo so that restoring it brings the cover back.
func (s *VaultService) MoveToBin(ctx context.Context, photoIDs []int64) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &BatchResult{}
	var albums albumSet
	covers := make(map[int64]string)
	displaced := make(map[int64]bool)
	now := s.clock.Now()

	for _, id := range photoIDs {
		photo, err := s.database.FindPhotoByID(ctx, id)
		if err != nil {
			return result, storageErr("finding photo", err)
		}
		if photo == nil {
			result.skip(id, ErrNotFound)
			continue
		}
		if photo.IsDeleted {
			result.skip(id, ErrInBin)
			continue
		}

		cover, ok := covers[photo.AlbumID]
		if !ok {
			album, err := s.database.FindAlbumByID(ctx, photo.AlbumID)
			if err != nil {
				return result, storageErr("finding album", err)
			}
			if album != nil && album.CoverPhotoPath.Valid {
				cover = album.CoverPhotoPath.String
			}
			covers[photo.AlbumID] = cover
		}
		wasCover := cover != "" && cover == photo.FilePath
		if wasCover {
			displaced[photo.AlbumID] = true
		}

		if err := s.database.MovePhotoToBin(ctx, id, now, wasCover); err != nil {
			return result, storageErr("moving photo to bin", err)
		}
		albums.add(photo.AlbumID)
		result.Done++
	}

	for _, albumID := range albums.sorted() {
		if displaced[albumID] {
			if err := s.deriveCover(ctx, albumID); err != nil {
				return result, err
			}
		}
		if err := s.refreshCount(ctx, albumID); err != nil {
			return result, err
		}
	}

	s.logger.Info("photos moved to bin", "binned", result.Done, "skipped", len(result.Skipped))
	return result, nil
}

// ListBin returns the photos in the bin, most recently deleted first.
func (s *VaultService) ListBin(ctx context.Context) ([]*sqlc.Photo, error) {
	photos, err := s.database.ListBinPhotos(ctx)
	if err != nil {
		return nil, storageErr("listing bin", err)
	}
	return photos, nil
}

// Restore brings binned photos back. Photos whose album no longer exists, or
// that belong to the hidden bin-holding album, are first reassigned to the
// Restored album. Ids of photos that are not in the bin are skipped.
func (s *VaultService) Restore(ctx context.Context, photoIDs []int64) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &BatchResult{}

	holding, err := s.database.FindAlbumByName(ctx, BinHoldingAlbumName)
	if err != nil {
		return nil, storageErr("finding bin-holding album", err)
	}

	var binned []*sqlc.Photo
	var orphanIDs []int64
	orphaned := make(map[int64]bool)
	exists := make(map[int64]bool)
	seen := make(map[int64]bool)
	for _, id := range photoIDs {
		// A repeated id is restored by its first occurrence.
		if seen[id] {
			result.skip(id, ErrNotInBin)
			continue
		}
		seen[id] = true

		photo, err := s.database.FindPhotoByID(ctx, id)
		if err != nil {
			return result, storageErr("finding photo", err)
		}
		if photo == nil {
			result.skip(id, ErrNotFound)
			continue
		}
		if !photo.IsDeleted {
			result.skip(id, ErrNotInBin)
			continue
		}

		found, ok := exists[photo.AlbumID]
		if !ok {
			album, err := s.database.FindAlbumByID(ctx, photo.AlbumID)
			if err != nil {
				return result, storageErr("finding album", err)
			}
			found = album != nil
			exists[photo.AlbumID] = found
		}
		if !found || (holding != nil && photo.AlbumID == holding.ID) {
			orphanIDs = append(orphanIDs, id)
			orphaned[id] = true
		}
		binned = append(binned, photo)
	}

	if len(binned) == 0 {
		return result, nil
	}

	if len(orphanIDs) > 0 {
		restored, err := s.restoredAlbum(ctx)
		if err != nil {
			return result, err
		}
		if err := s.database.MovePhotos(ctx, orphanIDs, restored.ID); err != nil {
			return result, storageErr("reassigning orphaned photos", err)
		}
		for _, p := range binned {
			if orphaned[p.ID] {
				p.AlbumID = restored.ID
			}
		}
		s.logger.Info("orphaned photos reassigned", "restored_album_id", restored.ID, "count", len(orphanIDs))
	}

	ids := make([]int64, len(binned))
	for i, p := range binned {
		ids[i] = p.ID
	}
	if err := s.database.RestorePhotos(ctx, ids); err != nil {
		return result, storageErr("restoring photos", err)
	}
	result.Done = len(binned)

	var albums albumSet
	covers := make(map[int64]*sqlc.Photo)
	for _, p := range binned {
		if holding != nil && p.AlbumID == holding.ID {
			continue
		}
		albums.add(p.AlbumID)
		if p.DisplacedCover && !orphaned[p.ID] && displacedFirst(p, covers[p.AlbumID]) {
			covers[p.AlbumID] = p
		}
	}
	for _, albumID := range albums.sorted() {
		if err := s.refreshCount(ctx, albumID); err != nil {
			return result, err
		}
		if p := covers[albumID]; p != nil {
			if err := s.database.SetAlbumCover(ctx, albumID, p.FilePath); err != nil {
				return result, storageErr("setting album cover", err)
			}
			continue
		}
		if err := s.ensureCover(ctx, albumID); err != nil {
			return result, err
		}
	}

	s.logger.Info("photos restored", "restored", result.Done, "orphaned", len(orphanIDs), "skipped", len(result.Skipped))
	return result, nil
}

// displacedFirst reports whether p lost its cover before current did.
func displacedFirst(p, current *sqlc.Photo) bool {
	if current == nil {
		return true
	}
	if !p.DeletedAt.Time.Equal(current.DeletedAt.Time) {
		return p.DeletedAt.Time.Before(current.DeletedAt.Time)
	}
	return p.ID < current.ID
}

// PermanentlyDelete removes binned photos together with their files. A file
// that cannot be removed does not keep its record alive. Active photos are
// skipped.
func (s *VaultService) PermanentlyDelete(ctx context.Context, photoIDs []int64) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permanentlyDelete(ctx, photoIDs)
}

// EmptyBin permanently deletes every photo in the bin.
func (s *VaultService) EmptyBin(ctx context.Context) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.database.ListBinPhotos(ctx)
	if err != nil {
		return nil, storageErr("listing bin", err)
	}
	ids := make([]int64, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return s.permanentlyDelete(ctx, ids)
}

func (s *VaultService) permanentlyDelete(ctx context.Context, photoIDs []int64) (*BatchResult, error) {
	result := &BatchResult{}
	for _, id := range photoIDs {
		photo, err := s.database.FindPhotoByID(ctx, id)
		if err != nil {
			s.logger.Warn("permanent delete failed", "photo_id", id, "error", err)
			result.fail(id, storageErr("finding photo", err))
			continue
		}
		if photo == nil {
			result.skip(id, ErrNotFound)
			continue
		}
		if !photo.IsDeleted {
			result.skip(id, ErrNotInBin)
			continue
		}

		if !s.files.DeleteOwnedFile(photo.FilePath) {
			s.logger.Warn("failed to delete photo file", "photo_id", id, "path", photo.FilePath)
		}
		if err := s.database.DeletePhoto(ctx, id); err != nil {
			s.logger.Warn("permanent delete failed", "photo_id", id, "error", err)
			result.fail(id, storageErr("deleting photo", err))
			continue
		}
		result.Done++
	}

	s.logger.Info("photos permanently deleted", "deleted", result.Done, "skipped", len(result.Skipped), "failed", len(result.Failed))
	return result, nil
}
