package pv

import (
	"context"
	"fmt"
)

// Move reassigns active photos to another album. A source album whose cover
// moved away gets a newly derived cover; the target keeps its cover if it has
// one. Photos already in the target or in the bin are skipped.
func (s *VaultService) Move(ctx context.Context, photoIDs []int64, targetAlbumID int64) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.database.FindAlbumByID(ctx, targetAlbumID)
	if err != nil {
		return nil, storageErr("finding album", err)
	}
	if target == nil {
		return nil, notFound("album", targetAlbumID)
	}
	if target.Name == BinHoldingAlbumName {
		return nil, &ValidationError{Name: target.Name, Reason: "album cannot receive photos", Err: ErrReservedName}
	}

	result := &BatchResult{}
	var sources albumSet
	covers := make(map[int64]string)
	displaced := make(map[int64]bool)

	for _, id := range photoIDs {
		photo, err := s.database.FindPhotoByID(ctx, id)
		if err != nil {
			return result, storageErr("finding photo", err)
		}
		switch {
		case photo == nil:
			result.skip(id, ErrNotFound)
			continue
		case photo.IsDeleted:
			result.skip(id, ErrInBin)
			continue
		case photo.AlbumID == targetAlbumID:
			result.skip(id, fmt.Errorf("photo is already in album %q", target.Name))
			continue
		}

		// The cover is read once per source album, before any photo leaves it.
		cover, ok := covers[photo.AlbumID]
		if !ok {
			src, err := s.database.FindAlbumByID(ctx, photo.AlbumID)
			if err != nil {
				return result, storageErr("finding album", err)
			}
			if src != nil && src.CoverPhotoPath.Valid {
				cover = src.CoverPhotoPath.String
			}
			covers[photo.AlbumID] = cover
		}
		if cover != "" && cover == photo.FilePath {
			displaced[photo.AlbumID] = true
		}

		if err := s.database.MovePhotos(ctx, []int64{id}, targetAlbumID); err != nil {
			return result, storageErr("moving photo", err)
		}
		sources.add(photo.AlbumID)
		result.Done++
	}

	for _, albumID := range sources.sorted() {
		if displaced[albumID] {
			if err := s.deriveCover(ctx, albumID); err != nil {
				return result, err
			}
		}
		if err := s.refreshCount(ctx, albumID); err != nil {
			return result, err
		}
	}
	if result.Done > 0 {
		if err := s.refreshCount(ctx, targetAlbumID); err != nil {
			return result, err
		}
		if err := s.ensureCover(ctx, targetAlbumID); err != nil {
			return result, err
		}
	}

	s.logger.Info("photos moved", "target_album_id", targetAlbumID, "moved", result.Done, "skipped", len(result.Skipped))
	return result, nil
}
