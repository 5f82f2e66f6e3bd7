package pv

import (
	"context"

	"photovault/internal/database/sqlc"
)

// SetFavorite marks or unmarks photos as favorites. Binned photos keep their
// flag but are not listed as favorites until restored.
func (s *VaultService) SetFavorite(ctx context.Context, photoIDs []int64, favorite bool) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &BatchResult{}
	for _, id := range photoIDs {
		photo, err := s.database.FindPhotoByID(ctx, id)
		if err != nil {
			return result, storageErr("finding photo", err)
		}
		if photo == nil {
			result.skip(id, ErrNotFound)
			continue
		}
		if photo.IsFavorite == favorite {
			result.Done++
			continue
		}
		if err := s.database.SetPhotoFavorite(ctx, id, favorite); err != nil {
			return result, storageErr("updating favorite", err)
		}
		result.Done++
	}

	s.logger.Info("favorites updated", "favorite", favorite, "photos", result.Done)
	return result, nil
}

// ListFavorites returns the active favorite photos of every album.
func (s *VaultService) ListFavorites(ctx context.Context) ([]*sqlc.Photo, error) {
	photos, err := s.database.ListFavoritePhotos(ctx)
	if err != nil {
		return nil, storageErr("listing favorites", err)
	}
	return photos, nil
}
