package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"photovault/internal/database/migrations"
	"photovault/internal/database/sqlc"
	"photovault/internal/pv"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the Database interface using SQLite.
type SQLiteDatabase struct {
	db       *sql.DB
	queries  *sqlc.Queries
	path     string
	notifier pv.ChangeNotifier
	clock    pv.Clock
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
// notifier may be nil.
func NewSQLiteDatabase(path string, notifier pv.ChangeNotifier) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteDatabaseFromDB(db, path, notifier), nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB, path string, notifier pv.ChangeNotifier) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:       db,
		queries:  sqlc.New(db),
		path:     path,
		notifier: notifier,
		clock:    pv.RealClock{},
	}
}

// SetClock replaces the clock that stamps journal entries.
func (s *SQLiteDatabase) SetClock(clock pv.Clock) {
	s.clock = clock
}

// OpenConnection opens and configures a SQLite database connection.
// The pool is limited to one connection: writes are serialized by SQLite
// anyway, and every connection to ":memory:" would be a separate database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// changed tells the notifier about committed mutations.
func (s *SQLiteDatabase) changed(tables ...pv.Table) {
	if s.notifier != nil {
		s.notifier.Notify(tables...)
	}
}

// inTx runs fn in a transaction. fn must only use the queries it is given;
// the pool has a single connection.
func (s *SQLiteDatabase) inTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func photoList(rows []sqlc.Photo) []*sqlc.Photo {
	result := make([]*sqlc.Photo, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}

// Album operations

func (s *SQLiteDatabase) ListAlbums(ctx context.Context) ([]*sqlc.Album, error) {
	rows, err := s.queries.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	result := make([]*sqlc.Album, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) FindAlbumByID(ctx context.Context, id int64) (*sqlc.Album, error) {
	album, err := s.queries.GetAlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding album by id: %w", err)
	}
	return &album, nil
}

func (s *SQLiteDatabase) FindAlbumByName(ctx context.Context, name string) (*sqlc.Album, error) {
	album, err := s.queries.GetAlbumByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding album by name: %w", err)
	}
	return &album, nil
}

func (s *SQLiteDatabase) CreateAlbum(ctx context.Context, name string, createdAt time.Time) (*sqlc.Album, error) {
	album, err := s.queries.InsertAlbum(ctx, sqlc.InsertAlbumParams{
		Name:      name,
		CreatedAt: createdAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}
	s.changed(pv.TableAlbums)
	return &album, nil
}

func (s *SQLiteDatabase) RenameAlbum(ctx context.Context, id int64, name string) error {
	n, err := s.queries.UpdateAlbumName(ctx, sqlc.UpdateAlbumNameParams{Name: name, ID: id})
	if err != nil {
		return fmt.Errorf("renaming album: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("renaming album %d: no such album", id)
	}
	s.changed(pv.TableAlbums)
	return nil
}

func (s *SQLiteDatabase) DeleteAlbum(ctx context.Context, id int64) error {
	if err := s.queries.DeleteAlbumByID(ctx, id); err != nil {
		return fmt.Errorf("deleting album: %w", err)
	}
	s.changed(pv.TableAlbums)
	return nil
}

func (s *SQLiteDatabase) RefreshAlbumPhotoCount(ctx context.Context, id int64) error {
	if err := s.queries.UpdateAlbumPhotoCount(ctx, id); err != nil {
		return fmt.Errorf("updating album photo count: %w", err)
	}
	s.changed(pv.TableAlbums)
	return nil
}

func (s *SQLiteDatabase) SetAlbumCover(ctx context.Context, id int64, path string) error {
	err := s.queries.UpdateAlbumCoverPhoto(ctx, sqlc.UpdateAlbumCoverPhotoParams{
		CoverPhotoPath: sql.NullString{String: path, Valid: true},
		ID:             id,
	})
	if err != nil {
		return fmt.Errorf("setting album cover: %w", err)
	}
	s.changed(pv.TableAlbums)
	return nil
}

func (s *SQLiteDatabase) ClearAlbumCover(ctx context.Context, id int64) error {
	err := s.queries.UpdateAlbumCoverPhoto(ctx, sqlc.UpdateAlbumCoverPhotoParams{ID: id})
	if err != nil {
		return fmt.Errorf("clearing album cover: %w", err)
	}
	s.changed(pv.TableAlbums)
	return nil
}

// Photo operations

func (s *SQLiteDatabase) ListActivePhotos(ctx context.Context, albumID int64) ([]*sqlc.Photo, error) {
	rows, err := s.queries.ListActivePhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("listing active photos: %w", err)
	}
	return photoList(rows), nil
}

func (s *SQLiteDatabase) ListAlbumPhotos(ctx context.Context, albumID int64) ([]*sqlc.Photo, error) {
	rows, err := s.queries.ListPhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("listing album photos: %w", err)
	}
	return photoList(rows), nil
}

func (s *SQLiteDatabase) FindPhotoByID(ctx context.Context, id int64) (*sqlc.Photo, error) {
	photo, err := s.queries.GetPhotoByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding photo by id: %w", err)
	}
	return &photo, nil
}

func (s *SQLiteDatabase) FindFirstActivePhoto(ctx context.Context, albumID int64) (*sqlc.Photo, error) {
	photo, err := s.queries.GetFirstActivePhotoInAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Album has no active photos
		}
		return nil, fmt.Errorf("finding first active photo: %w", err)
	}
	return &photo, nil
}

func (s *SQLiteDatabase) CreatePhoto(ctx context.Context, photo *sqlc.Photo) (*sqlc.Photo, error) {
	created, err := s.queries.InsertPhoto(ctx, sqlc.InsertPhotoParams{
		AlbumID:      photo.AlbumID,
		FilePath:     photo.FilePath,
		OriginalName: photo.OriginalName,
		ImportedAt:   photo.ImportedAt.UTC(),
		FileSize:     photo.FileSize,
		Width:        photo.Width,
		Height:       photo.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("creating photo: %w", err)
	}
	s.changed(pv.TablePhotos)
	return &created, nil
}

func (s *SQLiteDatabase) MovePhotos(ctx context.Context, ids []int64, albumID int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.inTx(ctx, func(q *sqlc.Queries) error {
		for _, id := range ids {
			if err := q.UpdatePhotoAlbum(ctx, sqlc.UpdatePhotoAlbumParams{AlbumID: albumID, ID: id}); err != nil {
				return fmt.Errorf("moving photo %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.changed(pv.TablePhotos)
	return nil
}

func (s *SQLiteDatabase) DeletePhoto(ctx context.Context, id int64) error {
	if err := s.queries.DeletePhotoByID(ctx, id); err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	s.changed(pv.TablePhotos)
	return nil
}

func (s *SQLiteDatabase) DeletePhotosByAlbum(ctx context.Context, albumID int64) error {
	if err := s.queries.DeletePhotosByAlbum(ctx, albumID); err != nil {
		return fmt.Errorf("deleting photos by album: %w", err)
	}
	s.changed(pv.TablePhotos)
	return nil
}

// Bin operations

func (s *SQLiteDatabase) MovePhotoToBin(ctx context.Context, id int64, at time.Time, displacedCover bool) error {
	err := s.queries.MovePhotoToBin(ctx, sqlc.MovePhotoToBinParams{
		DeletedAt:      sql.NullTime{Time: at.UTC(), Valid: true},
		DisplacedCover: displacedCover,
		ID:             id,
	})
	if err != nil {
		return fmt.Errorf("moving photo to bin: %w", err)
	}
	s.changed(pv.TablePhotos)
	return nil
}

func (s *SQLiteDatabase) ListBinPhotos(ctx context.Context) ([]*sqlc.Photo, error) {
	rows, err := s.queries.ListBinPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bin photos: %w", err)
	}
	return photoList(rows), nil
}

func (s *SQLiteDatabase) RestorePhotos(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.inTx(ctx, func(q *sqlc.Queries) error {
		for _, id := range ids {
			if err := q.RestorePhotoFromBin(ctx, id); err != nil {
				return fmt.Errorf("restoring photo %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.changed(pv.TablePhotos)
	return nil
}

func (s *SQLiteDatabase) ClearDisplacedCovers(ctx context.Context, albumID int64) error {
	if err := s.queries.ClearDisplacedCovers(ctx, albumID); err != nil {
		return fmt.Errorf("clearing displaced covers: %w", err)
	}
	s.changed(pv.TablePhotos)
	return nil
}

// Favorite operations

func (s *SQLiteDatabase) ListFavoritePhotos(ctx context.Context) ([]*sqlc.Photo, error) {
	rows, err := s.queries.ListFavoritePhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing favorite photos: %w", err)
	}
	return photoList(rows), nil
}

func (s *SQLiteDatabase) SetPhotoFavorite(ctx context.Context, id int64, favorite bool) error {
	err := s.queries.SetPhotoFavorite(ctx, sqlc.SetPhotoFavoriteParams{IsFavorite: favorite, ID: id})
	if err != nil {
		return fmt.Errorf("setting favorite: %w", err)
	}
	s.changed(pv.TablePhotos)
	return nil
}

// Operation journal

func (s *SQLiteDatabase) CreateOperation(ctx context.Context, operation string, parameters string) (*sqlc.Operation, error) {
	op, err := s.queries.InsertOperation(ctx, sqlc.InsertOperationParams{
		Operation:  operation,
		Parameters: parameters,
		StartedAt:  s.clock.Now().UTC(),
		Status:     "running",
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}
	return &op, nil
}

func (s *SQLiteDatabase) FinishOperation(ctx context.Context, id int64, status string) error {
	err := s.queries.FinishOperation(ctx, sqlc.FinishOperationParams{
		FinishedAt: sql.NullTime{Time: s.clock.Now().UTC(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(ctx context.Context, limit int) ([]*sqlc.Operation, error) {
	ops, err := s.queries.GetOperations(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	result := make([]*sqlc.Operation, len(ops))
	for i := range ops {
		result[i] = &ops[i]
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// Migrate applies pending schema migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements pv.Database interface
var _ pv.Database = (*SQLiteDatabase)(nil)
