package pv

import (
	"context"
	"time"

	"photovault/internal/database/sqlc"
)

// Database provides an interface for album and photo record storage.
// Find methods return (nil, nil) when the record does not exist.
// Every mutation is atomic on its own; multi-row mutations run in one transaction.
type Database interface {
	// Album operations

	// ListAlbums returns every album, newest first.
	ListAlbums(ctx context.Context) ([]*sqlc.Album, error)

	FindAlbumByID(ctx context.Context, id int64) (*sqlc.Album, error)
	FindAlbumByName(ctx context.Context, name string) (*sqlc.Album, error)

	// CreateAlbum inserts an album with a zero photo count and no cover.
	CreateAlbum(ctx context.Context, name string, createdAt time.Time) (*sqlc.Album, error)

	RenameAlbum(ctx context.Context, id int64, name string) error
	DeleteAlbum(ctx context.Context, id int64) error

	// RefreshAlbumPhotoCount recomputes photo_count from the active photos of the album.
	RefreshAlbumPhotoCount(ctx context.Context, id int64) error

	SetAlbumCover(ctx context.Context, id int64, path string) error
	ClearAlbumCover(ctx context.Context, id int64) error

	// Photo operations

	// ListActivePhotos returns the non-deleted photos of an album, newest import first.
	ListActivePhotos(ctx context.Context, albumID int64) ([]*sqlc.Photo, error)

	// ListAlbumPhotos returns every photo pointing at albumID, including binned ones.
	ListAlbumPhotos(ctx context.Context, albumID int64) ([]*sqlc.Photo, error)

	FindPhotoByID(ctx context.Context, id int64) (*sqlc.Photo, error)

	// FindFirstActivePhoto returns the earliest imported active photo of an album.
	FindFirstActivePhoto(ctx context.Context, albumID int64) (*sqlc.Photo, error)

	// CreatePhoto inserts a new active photo. ID, IsDeleted, DeletedAt and IsFavorite are ignored.
	CreatePhoto(ctx context.Context, photo *sqlc.Photo) (*sqlc.Photo, error)

	// MovePhotos points every photo in ids at albumID.
	MovePhotos(ctx context.Context, ids []int64, albumID int64) error

	DeletePhoto(ctx context.Context, id int64) error
	DeletePhotosByAlbum(ctx context.Context, albumID int64) error

	// Bin operations

	// MovePhotoToBin marks a photo deleted at the given time. displacedCover records
	// that the photo was its album's cover when it was binned.
	MovePhotoToBin(ctx context.Context, id int64, at time.Time, displacedCover bool) error

	// ListBinPhotos returns every binned photo, most recently deleted first.
	ListBinPhotos(ctx context.Context) ([]*sqlc.Photo, error)

	// RestorePhotos clears the deleted state of every photo in ids.
	RestorePhotos(ctx context.Context, ids []int64) error

	// ClearDisplacedCovers forgets which binned photos of an album used to be its cover.
	ClearDisplacedCovers(ctx context.Context, albumID int64) error

	// Favorite operations

	// ListFavoritePhotos returns active favorite photos across all albums.
	ListFavoritePhotos(ctx context.Context) ([]*sqlc.Photo, error)

	SetPhotoFavorite(ctx context.Context, id int64, favorite bool) error

	// Operation journal

	CreateOperation(ctx context.Context, operation string, parameters string) (*sqlc.Operation, error)
	FinishOperation(ctx context.Context, id int64, status string) error
	ListOperations(ctx context.Context, limit int) ([]*sqlc.Operation, error)

	// Close closes the database connection.
	Close() error
}

// Table names a record collection that live queries can observe.
type Table string

const (
	TableAlbums Table = "albums"
	TablePhotos Table = "photos"
)

// ChangeNotifier is told which tables changed after a mutation commits.
// Implementations must not block.
type ChangeNotifier interface {
	Notify(tables ...Table)
}
