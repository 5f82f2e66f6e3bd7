package pv

import (
	"context"
	"fmt"
	"path/filepath"
)

// ExportPhotos writes copies of active photos to the configured destination.
// A photo that fails to export is reported and the rest continue. The batch
// is not interrupted by cancelling ctx.
func (s *VaultService) ExportPhotos(ctx context.Context, photoIDs []int64) (*ExportResult, error) {
	if s.exporter == nil {
		return nil, ErrNoExporter
	}
	ctx = context.WithoutCancel(ctx)

	result := &ExportResult{Locations: make(map[int64]string)}
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

		location, err := s.exportOne(ctx, photo.FilePath, photo.FileSize)
		if err != nil {
			s.logger.Warn("export failed", "photo_id", id, "error", err)
			result.fail(id, err)
			continue
		}
		result.Locations[id] = location
		result.Done++
	}

	s.logger.Info("photos exported", "exported", result.Done, "failed", len(result.Failed))
	return result, nil
}

func (s *VaultService) exportOne(ctx context.Context, path string, size int64) (string, error) {
	r, err := s.files.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening vault file: %w", err)
	}
	defer r.Close()

	location, err := s.exporter.Export(ctx, filepath.Base(path), r, size)
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", filepath.Base(path), err)
	}
	return location, nil
}
