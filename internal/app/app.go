package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"photovault/internal/config"
	"photovault/internal/database"
	"photovault/internal/database/sqlc"
	"photovault/internal/export"
	"photovault/internal/filestore"
	"photovault/internal/projection"
	"photovault/internal/pv"
	"photovault/internal/source"
)

// logOutput receives a copy of every log line next to the log file.
var logOutput io.Writer = os.Stderr

// PVApp is the application layer between the CLI and VaultService.
// It constructs all dependencies from config, resolves album names given on
// the command line, and manages the database and log lifecycle on Close.
type PVApp struct {
	db        *database.SQLiteDatabase
	source    *source.DirSource
	service   *pv.VaultService
	projector *projection.Projector
	logger    pv.Logger
	logCloser io.Closer
	op        *Operation
}

// NewPVApp creates a fully wired PVApp from the given config.
// operation identifies the CLI command being run (e.g. "CreateAlbum", "Import").
// The caller must call Close when done.
func NewPVApp(ctx context.Context, cfg *config.Config, operation string) (*PVApp, error) {
	hub := projection.NewHub()
	clock := pv.RealClock{}

	db, err := database.NewDatabaseFromConfig(cfg.Database, hub)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}
	db.SetClock(clock)
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logCloser, err := newLogger(cfg.LogDir, opID, cfg.Log, logOutput)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	fail := func(err error) (*PVApp, error) {
		db.Close()
		logCloser.Close()
		return nil, err
	}

	files, err := filestore.NewLocalStore(cfg.VaultRoot, clock, pv.UUIDGenerator{}, logger)
	if err != nil {
		return fail(fmt.Errorf("creating file store: %w", err))
	}

	dirSource, err := source.NewSourceFromConfig(cfg.Source, pv.UUIDGenerator{}, logger)
	if err != nil {
		return fail(fmt.Errorf("creating photo source: %w", err))
	}
	var src pv.PhotoSource
	if dirSource != nil {
		src = dirSource
	}

	exporter, err := export.NewExporterFromConfig(ctx, cfg.Export)
	if err != nil {
		return fail(fmt.Errorf("creating exporter: %w", err))
	}

	svc := pv.NewVaultService(db, files, src, exporter, logger, clock)

	return &PVApp{
		db:        db,
		source:    dirSource,
		service:   svc,
		projector: projection.NewProjector(hub, db),
		logger:    logger,
		logCloser: logCloser,
		op:        NewOperation(operation, ""),
	}, nil
}

// persistOperation saves the operation to the journal, giving it an auto-increment ID.
// This should only be called for commands that mutate the vault.
func (a *PVApp) persistOperation(ctx context.Context, params ...string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Parameters = strings.Join(params, " ")
	dbOp, err := a.db.CreateOperation(ctx, a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// Projector returns the live query layer over this app's database.
func (a *PVApp) Projector() *projection.Projector {
	return a.projector
}

// Album looks up a user-visible album by name.
func (a *PVApp) Album(ctx context.Context, name string) (*sqlc.Album, error) {
	return a.service.FindAlbumByName(ctx, name)
}

// CreateAlbum creates an empty album.
func (a *PVApp) CreateAlbum(ctx context.Context, name string) (*sqlc.Album, error) {
	if err := a.persistOperation(ctx, name); err != nil {
		return nil, err
	}
	album, err := a.service.CreateAlbum(ctx, name)
	return album, a.op.Record(err)
}

// ListAlbums returns the user-visible albums.
func (a *PVApp) ListAlbums(ctx context.Context) ([]*sqlc.Album, error) {
	return a.service.ListAlbums(ctx)
}

// RenameAlbum renames the album called name.
func (a *PVApp) RenameAlbum(ctx context.Context, name, newName string) error {
	if err := a.persistOperation(ctx, name, newName); err != nil {
		return err
	}
	album, err := a.Album(ctx, name)
	if err != nil {
		return a.op.Record(err)
	}
	return a.op.Record(a.service.RenameAlbum(ctx, album.ID, newName))
}

// DeleteAlbum deletes the album called name with its active photos.
func (a *PVApp) DeleteAlbum(ctx context.Context, name string) error {
	if err := a.persistOperation(ctx, name); err != nil {
		return err
	}
	album, err := a.Album(ctx, name)
	if err != nil {
		return a.op.Record(err)
	}
	return a.op.Record(a.service.DeleteAlbum(ctx, album.ID))
}

// SetCover makes photoID the cover of the album called name.
func (a *PVApp) SetCover(ctx context.Context, name string, photoID int64) error {
	if err := a.persistOperation(ctx, name, fmt.Sprint(photoID)); err != nil {
		return err
	}
	album, err := a.Album(ctx, name)
	if err != nil {
		return a.op.Record(err)
	}
	return a.op.Record(a.service.SetCover(ctx, album.ID, photoID))
}

// ReconcileAlbums repairs photo counts and covers of every album.
func (a *PVApp) ReconcileAlbums(ctx context.Context) (int, error) {
	if err := a.persistOperation(ctx); err != nil {
		return 0, err
	}
	repaired, err := a.service.ReconcileAlbums(ctx)
	return repaired, a.op.Record(err)
}

// ListPhotos returns the active photos of the album called name.
func (a *PVApp) ListPhotos(ctx context.Context, name string) ([]*sqlc.Photo, error) {
	album, err := a.Album(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.service.ListPhotos(ctx, album.ID)
}

// MovePhotos moves photos into the album called target.
func (a *PVApp) MovePhotos(ctx context.Context, photoIDs []int64, target string) (*pv.BatchResult, error) {
	if err := a.persistOperation(ctx, target, joinIDs(photoIDs)); err != nil {
		return nil, err
	}
	album, err := a.Album(ctx, target)
	if err != nil {
		return nil, a.op.Record(err)
	}
	result, err := a.service.Move(ctx, photoIDs, album.ID)
	return result, a.op.Record(err)
}

// MoveToBin soft-deletes photos.
func (a *PVApp) MoveToBin(ctx context.Context, photoIDs []int64) (*pv.BatchResult, error) {
	if err := a.persistOperation(ctx, joinIDs(photoIDs)); err != nil {
		return nil, err
	}
	result, err := a.service.MoveToBin(ctx, photoIDs)
	return result, a.op.Record(err)
}

// ListBin returns the photos in the bin.
func (a *PVApp) ListBin(ctx context.Context) ([]*sqlc.Photo, error) {
	return a.service.ListBin(ctx)
}

// Restore takes photos back out of the bin.
func (a *PVApp) Restore(ctx context.Context, photoIDs []int64) (*pv.BatchResult, error) {
	if err := a.persistOperation(ctx, joinIDs(photoIDs)); err != nil {
		return nil, err
	}
	result, err := a.service.Restore(ctx, photoIDs)
	return result, a.op.Record(err)
}

// PermanentlyDelete removes binned photos and their vault files.
func (a *PVApp) PermanentlyDelete(ctx context.Context, photoIDs []int64) (*pv.BatchResult, error) {
	if err := a.persistOperation(ctx, joinIDs(photoIDs)); err != nil {
		return nil, err
	}
	result, err := a.service.PermanentlyDelete(ctx, photoIDs)
	return result, a.op.Record(err)
}

// EmptyBin permanently deletes every binned photo.
func (a *PVApp) EmptyBin(ctx context.Context) (*pv.BatchResult, error) {
	if err := a.persistOperation(ctx); err != nil {
		return nil, err
	}
	result, err := a.service.EmptyBin(ctx)
	return result, a.op.Record(err)
}

// SetFavorite marks or unmarks photos as favorites.
func (a *PVApp) SetFavorite(ctx context.Context, photoIDs []int64, favorite bool) (*pv.BatchResult, error) {
	if err := a.persistOperation(ctx, fmt.Sprint(favorite), joinIDs(photoIDs)); err != nil {
		return nil, err
	}
	result, err := a.service.SetFavorite(ctx, photoIDs, favorite)
	return result, a.op.Record(err)
}

// ListFavorites returns the active favorite photos.
func (a *PVApp) ListFavorites(ctx context.Context) ([]*sqlc.Photo, error) {
	return a.service.ListFavorites(ctx)
}

// ExportPhotos copies photos to the configured export destination.
func (a *PVApp) ExportPhotos(ctx context.Context, photoIDs []int64) (*pv.ExportResult, error) {
	return a.service.ExportPhotos(ctx, photoIDs)
}

// ListSource returns the photos available for import.
func (a *PVApp) ListSource(ctx context.Context) ([]pv.SourcePhoto, error) {
	return a.service.ListSource(ctx)
}

// Import copies source photos into the album called name. With all set every
// source photo is imported, otherwise the ones named by sourceIDs. It returns
// the source items that were imported so their originals can be removed.
func (a *PVApp) Import(ctx context.Context, name string, sourceIDs []string, all bool) (*pv.ImportResult, []pv.SourcePhoto, error) {
	if err := a.persistOperation(ctx, append([]string{name}, sourceIDs...)...); err != nil {
		return nil, nil, err
	}
	album, err := a.Album(ctx, name)
	if err != nil {
		return nil, nil, a.op.Record(err)
	}
	items, err := a.selectSource(ctx, sourceIDs, all)
	if err != nil {
		return nil, nil, a.op.Record(err)
	}

	result, err := a.service.Import(ctx, album.ID, items)
	if err != nil {
		return result, nil, a.op.Record(err)
	}

	failed := make(map[string]bool, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.Item] = true
	}
	imported := make([]pv.SourcePhoto, 0, len(items))
	for _, item := range items {
		if !failed[item.ID] {
			imported = append(imported, item)
		}
	}
	return result, imported, nil
}

// selectSource resolves source ids against the current source listing.
func (a *PVApp) selectSource(ctx context.Context, sourceIDs []string, all bool) ([]pv.SourcePhoto, error) {
	available, err := a.service.ListSource(ctx)
	if err != nil {
		return nil, err
	}
	if all {
		return available, nil
	}

	byID := make(map[string]pv.SourcePhoto, len(available))
	for _, item := range available {
		byID[item.ID] = item
	}
	items := make([]pv.SourcePhoto, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("source photo %q: %w", id, pv.ErrNotFound)
		}
		items = append(items, item)
	}
	return items, nil
}

// RemoveOriginals deletes imported items from the source.
func (a *PVApp) RemoveOriginals(ctx context.Context, items []pv.SourcePhoto) (*pv.RemovalResult, error) {
	result, err := a.service.RemoveOriginals(ctx, items)
	return result, a.op.Record(err)
}

// ConfirmRemoval answers a pending removal grant.
func (a *PVApp) ConfirmRemoval(ctx context.Context, grant string, granted bool) (*pv.RemovalResult, error) {
	result, err := a.service.ConfirmRemoval(ctx, grant, granted)
	return result, a.op.Record(err)
}

// Watch imports new images arriving in the source directory into the album
// called name until ctx is cancelled. onImport is called after every batch.
func (a *PVApp) Watch(ctx context.Context, name string, settle time.Duration, onImport func(*pv.ImportResult)) error {
	if a.source == nil {
		return pv.ErrNoSource
	}
	if err := a.persistOperation(ctx, name); err != nil {
		return err
	}
	album, err := a.Album(ctx, name)
	if err != nil {
		return a.op.Record(err)
	}

	err = a.source.Watch(ctx, settle, func(arrived []pv.SourcePhoto) {
		result, err := a.service.Import(ctx, album.ID, arrived)
		if err != nil {
			a.logger.Error("watch import failed", "album", name, "error", err)
			return
		}
		if onImport != nil {
			onImport(result)
		}
	})
	return a.op.Record(err)
}

// History returns the most recent journal entries.
func (a *PVApp) History(ctx context.Context, limit int) ([]*sqlc.Operation, error) {
	return a.db.ListOperations(ctx, limit)
}

// Close finalizes the operation and closes all resources.
func (a *PVApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishOperation(context.Background(), a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if err := a.logCloser.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing log: %w", err)
	}

	return firstErr
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
