package pv_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"photovault/internal/database"
	"photovault/internal/database/sqlc"
	"photovault/internal/filestore"
	"photovault/internal/pv"
	"photovault/internal/testutil"
)

type fixture struct {
	ctx      context.Context
	db       *database.SQLiteDatabase
	store    *filestore.LocalStore
	source   *testutil.MemorySource
	exporter *testutil.MemoryExporter
	svc      *pv.VaultService
	next     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := testutil.TickingClock(time.Second)
	db := testutil.NewTestDatabase(t)
	store, err := filestore.NewLocalStore(t.TempDir(), clock, testutil.NewStubIDGenerator(), nil)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	source := testutil.NewMemorySource(false)
	exporter := testutil.NewMemoryExporter()

	return &fixture{
		ctx:      context.Background(),
		db:       db,
		store:    store,
		source:   source,
		exporter: exporter,
		svc:      pv.NewVaultService(db, store, source, exporter, pv.NewNopLogger(), clock),
	}
}

func (f *fixture) album(t *testing.T, name string) *sqlc.Album {
	t.Helper()
	album, err := f.svc.CreateAlbum(f.ctx, name)
	if err != nil {
		t.Fatalf("CreateAlbum(%q) error = %v", name, err)
	}
	return album
}

// importN imports n new source photos into album, oldest first.
func (f *fixture) importN(t *testing.T, album *sqlc.Album, n int) []*sqlc.Photo {
	t.Helper()
	var items []pv.SourcePhoto
	for i := 0; i < n; i++ {
		f.next++
		ref := fmt.Sprintf("src-%d", f.next)
		items = append(items, f.source.AddPhoto(ref, ref+".jpg", []byte("photo "+ref)))
	}
	result, err := f.svc.Import(f.ctx, album.ID, items)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Imported) != n {
		t.Fatalf("Import() imported %d, want %d (failures: %v)", len(result.Imported), n, result.Failed)
	}
	return result.Imported
}

func (f *fixture) reload(t *testing.T, album *sqlc.Album) *sqlc.Album {
	t.Helper()
	found, err := f.db.FindAlbumByID(f.ctx, album.ID)
	if err != nil {
		t.Fatalf("FindAlbumByID() error = %v", err)
	}
	if found == nil {
		t.Fatalf("album %q no longer exists", album.Name)
	}
	return found
}

func (f *fixture) photo(t *testing.T, id int64) *sqlc.Photo {
	t.Helper()
	found, err := f.db.FindPhotoByID(f.ctx, id)
	if err != nil {
		t.Fatalf("FindPhotoByID() error = %v", err)
	}
	return found
}

func ids(photos ...*sqlc.Photo) []int64 {
	result := make([]int64, len(photos))
	for i, p := range photos {
		result[i] = p.ID
	}
	return result
}

// checkInvariants verifies that every album's count matches its active photos
// and that its cover, when set, is one of them.
func (f *fixture) checkInvariants(t *testing.T) {
	t.Helper()
	albums, err := f.db.ListAlbums(f.ctx)
	if err != nil {
		t.Fatalf("ListAlbums() error = %v", err)
	}
	for _, album := range albums {
		active, err := f.db.ListActivePhotos(f.ctx, album.ID)
		if err != nil {
			t.Fatalf("ListActivePhotos() error = %v", err)
		}
		if album.PhotoCount != int64(len(active)) {
			t.Errorf("album %q photo_count = %d, want %d", album.Name, album.PhotoCount, len(active))
		}
		if len(active) == 0 {
			if album.CoverPhotoPath.Valid {
				t.Errorf("album %q is empty but has cover %q", album.Name, album.CoverPhotoPath.String)
			}
			continue
		}
		if !album.CoverPhotoPath.Valid {
			continue
		}
		found := false
		for _, p := range active {
			if p.FilePath == album.CoverPhotoPath.String {
				found = true
			}
		}
		if !found {
			t.Errorf("album %q cover %q is not an active photo of the album", album.Name, album.CoverPhotoPath.String)
		}
	}
}

func coverOf(album *sqlc.Album) string {
	if !album.CoverPhotoPath.Valid {
		return "<none>"
	}
	return album.CoverPhotoPath.String
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
