package projection

import (
	"context"

	"photovault/internal/database/sqlc"
	"photovault/internal/pv"
)

// Projector offers the live views of the vault.
type Projector struct {
	hub      *Hub
	database pv.Database
}

// NewProjector creates live views over database. The database must report
// its changes to hub.
func NewProjector(hub *Hub, database pv.Database) *Projector {
	return &Projector{hub: hub, database: database}
}

// Albums streams the user-visible albums with their cached counts, newest first.
func (p *Projector) Albums(ctx context.Context) *Stream[[]*sqlc.Album] {
	return Subscribe[[]*sqlc.Album](ctx, p.hub, []pv.Table{pv.TableAlbums}, func(ctx context.Context) ([]*sqlc.Album, error) {
		albums, err := p.database.ListAlbums(ctx)
		if err != nil {
			return nil, err
		}
		return pv.VisibleAlbums(albums), nil
	})
}

// ActivePhotos streams the active photos of an album, newest import first.
func (p *Projector) ActivePhotos(ctx context.Context, albumID int64) *Stream[[]*sqlc.Photo] {
	return Subscribe[[]*sqlc.Photo](ctx, p.hub, []pv.Table{pv.TablePhotos}, func(ctx context.Context) ([]*sqlc.Photo, error) {
		return p.database.ListActivePhotos(ctx, albumID)
	})
}

// Bin streams the photos in the bin, most recently deleted first.
func (p *Projector) Bin(ctx context.Context) *Stream[[]*sqlc.Photo] {
	return Subscribe[[]*sqlc.Photo](ctx, p.hub, []pv.Table{pv.TablePhotos}, p.database.ListBinPhotos)
}

// Favorites streams the active favorite photos.
func (p *Projector) Favorites(ctx context.Context) *Stream[[]*sqlc.Photo] {
	return Subscribe[[]*sqlc.Photo](ctx, p.hub, []pv.Table{pv.TablePhotos}, p.database.ListFavoritePhotos)
}
