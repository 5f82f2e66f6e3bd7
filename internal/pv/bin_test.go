package pv_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"photovault/internal/database/sqlc"
	"photovault/internal/pv"
)

func TestVaultService_MoveToBin(t *testing.T) {
	t.Run("binning the cover derives the next one", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 3)

		result, err := f.svc.MoveToBin(f.ctx, ids(photos[0]))
		if err != nil {
			t.Fatalf("MoveToBin() error = %v", err)
		}
		if result.Done != 1 {
			t.Errorf("Done = %d, want 1", result.Done)
		}

		got := f.reload(t, trip)
		if coverOf(got) != photos[1].FilePath || got.PhotoCount != 2 {
			t.Errorf("Trip = cover %q count %d, want cover %q count 2", coverOf(got), got.PhotoCount, photos[1].FilePath)
		}
		binned := f.photo(t, photos[0].ID)
		if !binned.IsDeleted || !binned.DeletedAt.Valid || !binned.DisplacedCover {
			t.Errorf("binned photo = %+v, want deleted with timestamp and displaced cover", binned)
		}
		if !fileExists(binned.FilePath) {
			t.Error("binned photo file was removed")
		}
		f.checkInvariants(t)
	})

	t.Run("binning a non-cover keeps the cover", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 3)

		f.svc.MoveToBin(f.ctx, ids(photos[2]))

		if got := coverOf(f.reload(t, trip)); got != photos[0].FilePath {
			t.Errorf("cover = %q, want %q", got, photos[0].FilePath)
		}
		if f.photo(t, photos[2].ID).DisplacedCover {
			t.Error("non-cover photo marked as displaced cover")
		}
	})

	t.Run("binning every photo clears the cover", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 2)

		f.svc.MoveToBin(f.ctx, ids(photos...))

		got := f.reload(t, trip)
		if got.CoverPhotoPath.Valid || got.PhotoCount != 0 {
			t.Errorf("Trip = %+v, want empty without cover", got)
		}
		f.checkInvariants(t)
	})

	t.Run("skips missing and already binned", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 1)
		f.svc.MoveToBin(f.ctx, ids(photos[0]))

		result, err := f.svc.MoveToBin(f.ctx, []int64{photos[0].ID, 404})
		if err != nil {
			t.Fatalf("MoveToBin() error = %v", err)
		}
		if result.Done != 0 || len(result.Skipped) != 2 {
			t.Fatalf("MoveToBin() = %+v, want 2 skipped", result)
		}
		if !errors.Is(result.Skipped[0].Err, pv.ErrInBin) {
			t.Errorf("skip reason = %v, want ErrInBin", result.Skipped[0].Err)
		}
		if !errors.Is(result.Skipped[1].Err, pv.ErrNotFound) {
			t.Errorf("skip reason = %v, want ErrNotFound", result.Skipped[1].Err)
		}
	})
}

func TestVaultService_ListBin(t *testing.T) {
	f := newFixture(t)
	trip := f.album(t, "Trip")
	photos := f.importN(t, trip, 3)
	f.svc.MoveToBin(f.ctx, ids(photos[0]))
	f.svc.MoveToBin(f.ctx, ids(photos[2]))

	bin, err := f.svc.ListBin(f.ctx)
	if err != nil {
		t.Fatalf("ListBin() error = %v", err)
	}
	if len(bin) != 2 || bin[0].ID != photos[2].ID || bin[1].ID != photos[0].ID {
		t.Errorf("ListBin() = %v, want most recently deleted first", ids(bin...))
	}
}

func TestVaultService_Restore(t *testing.T) {
	t.Run("round trip brings the cover back", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 3)
		before := f.reload(t, trip)

		f.svc.MoveToBin(f.ctx, ids(photos[0]))
		result, err := f.svc.Restore(f.ctx, ids(photos[0]))
		if err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if result.Done != 1 {
			t.Errorf("Done = %d, want 1", result.Done)
		}

		after := f.reload(t, trip)
		if coverOf(after) != coverOf(before) || after.PhotoCount != before.PhotoCount {
			t.Errorf("after round trip = cover %q count %d, want cover %q count %d",
				coverOf(after), after.PhotoCount, coverOf(before), before.PhotoCount)
		}
		restored := f.photo(t, photos[0].ID)
		if restored.IsDeleted || restored.DeletedAt.Valid || restored.DisplacedCover {
			t.Errorf("restored photo = %+v, want active with cleared bin state", restored)
		}
		f.checkInvariants(t)
	})

	t.Run("earliest displaced cover wins", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 3)

		f.svc.MoveToBin(f.ctx, ids(photos[0]))
		f.svc.MoveToBin(f.ctx, ids(photos[1]))
		f.svc.Restore(f.ctx, ids(photos[1], photos[0]))

		if got := coverOf(f.reload(t, trip)); got != photos[0].FilePath {
			t.Errorf("cover = %q, want %q", got, photos[0].FilePath)
		}
		f.checkInvariants(t)
	})

	t.Run("restoring into an empty album sets a cover", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 2)
		f.svc.MoveToBin(f.ctx, ids(photos...))

		f.svc.Restore(f.ctx, ids(photos[1]))

		got := f.reload(t, trip)
		if coverOf(got) != photos[1].FilePath || got.PhotoCount != 1 {
			t.Errorf("Trip = cover %q count %d, want cover %q count 1", coverOf(got), got.PhotoCount, photos[1].FilePath)
		}
		f.checkInvariants(t)
	})

	t.Run("active photos are skipped", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 2)
		before := f.reload(t, trip)

		result, err := f.svc.Restore(f.ctx, ids(photos...))
		if err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if result.Done != 0 || len(result.Skipped) != 2 {
			t.Errorf("Restore() = %+v, want 2 skipped", result)
		}
		if !errors.Is(result.Skipped[0].Err, pv.ErrNotInBin) {
			t.Errorf("skip reason = %v, want ErrNotInBin", result.Skipped[0].Err)
		}
		after := f.reload(t, trip)
		if coverOf(after) != coverOf(before) || after.PhotoCount != before.PhotoCount {
			t.Errorf("album changed by a no-op restore: %+v", after)
		}
	})

	t.Run("repeated ids are restored once", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 2)
		if _, err := f.svc.MoveToBin(f.ctx, ids(photos[0])); err != nil {
			t.Fatalf("MoveToBin() error = %v", err)
		}

		result, err := f.svc.Restore(f.ctx, []int64{photos[0].ID, photos[0].ID})
		if err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if result.Done != 1 || len(result.Skipped) != 1 {
			t.Errorf("Restore() = %+v, want 1 done 1 skipped", result)
		}
		if len(result.Skipped) == 1 && !errors.Is(result.Skipped[0].Err, pv.ErrNotInBin) {
			t.Errorf("skip reason = %v, want ErrNotInBin", result.Skipped[0].Err)
		}
		if got := f.reload(t, trip); got.PhotoCount != 2 {
			t.Errorf("PhotoCount = %d, want 2", got.PhotoCount)
		}
		f.checkInvariants(t)
	})

	t.Run("photos of a missing album go to Restored", func(t *testing.T) {
		f := newFixture(t)
		orphan := f.binnedPhoto(t, 999, "orphan.jpg")

		if _, err := f.svc.Restore(f.ctx, []int64{orphan.ID}); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		restored, err := f.svc.FindAlbumByName(f.ctx, pv.RestoredAlbumName)
		if err != nil {
			t.Fatalf("FindAlbumByName(Restored) error = %v", err)
		}
		got := f.photo(t, orphan.ID)
		if got.AlbumID != restored.ID || got.IsDeleted {
			t.Errorf("photo = %+v, want active in Restored", got)
		}
		if coverOf(restored) != orphan.FilePath || restored.PhotoCount != 1 {
			t.Errorf("Restored = cover %q count %d, want cover %q count 1", coverOf(restored), restored.PhotoCount, orphan.FilePath)
		}
		f.checkInvariants(t)
	})

	t.Run("photos of the holding album go to Restored", func(t *testing.T) {
		f := newFixture(t)
		holding, err := f.db.CreateAlbum(f.ctx, pv.BinHoldingAlbumName, time.Now().UTC())
		if err != nil {
			t.Fatalf("CreateAlbum(holding) error = %v", err)
		}
		held := f.binnedPhoto(t, holding.ID, "held.jpg")

		if _, err := f.svc.Restore(f.ctx, []int64{held.ID}); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		restored, err := f.svc.FindAlbumByName(f.ctx, pv.RestoredAlbumName)
		if err != nil {
			t.Fatalf("FindAlbumByName(Restored) error = %v", err)
		}
		if got := f.photo(t, held.ID); got.AlbumID != restored.ID {
			t.Errorf("AlbumID = %d, want Restored (%d)", got.AlbumID, restored.ID)
		}
		albums, _ := f.svc.ListAlbums(f.ctx)
		for _, a := range albums {
			if a.Name == pv.BinHoldingAlbumName {
				t.Error("holding album is listed")
			}
		}
		f.checkInvariants(t)
	})

	t.Run("existing Restored album is reused", func(t *testing.T) {
		f := newFixture(t)
		existing := f.album(t, pv.RestoredAlbumName)
		first := f.importN(t, existing, 1)
		orphan := f.binnedPhoto(t, 999, "orphan.jpg")

		f.svc.Restore(f.ctx, []int64{orphan.ID})

		got := f.reload(t, existing)
		if got.PhotoCount != 2 || coverOf(got) != first[0].FilePath {
			t.Errorf("Restored = cover %q count %d, want cover %q count 2", coverOf(got), got.PhotoCount, first[0].FilePath)
		}
		albums, _ := f.svc.ListAlbums(f.ctx)
		if len(albums) != 1 {
			t.Errorf("ListAlbums() returned %d albums, want 1", len(albums))
		}
	})
}

func TestVaultService_PermanentlyDelete(t *testing.T) {
	t.Run("removes record and file", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 2)
		f.svc.MoveToBin(f.ctx, ids(photos[0]))

		result, err := f.svc.PermanentlyDelete(f.ctx, ids(photos[0]))
		if err != nil {
			t.Fatalf("PermanentlyDelete() error = %v", err)
		}
		if result.Done != 1 {
			t.Errorf("Done = %d, want 1", result.Done)
		}
		if f.photo(t, photos[0].ID) != nil {
			t.Error("photo record still exists")
		}
		if fileExists(photos[0].FilePath) {
			t.Error("photo file still exists")
		}
		f.checkInvariants(t)
	})

	t.Run("active photos are skipped", func(t *testing.T) {
		f := newFixture(t)
		trip := f.album(t, "Trip")
		photos := f.importN(t, trip, 1)

		result, err := f.svc.PermanentlyDelete(f.ctx, ids(photos...))
		if err != nil {
			t.Fatalf("PermanentlyDelete() error = %v", err)
		}
		if result.Done != 0 || len(result.Skipped) != 1 {
			t.Errorf("PermanentlyDelete() = %+v, want 1 skipped", result)
		}
		if f.photo(t, photos[0].ID) == nil || !fileExists(photos[0].FilePath) {
			t.Error("active photo was deleted")
		}
	})

	t.Run("missing file does not keep the record", func(t *testing.T) {
		f := newFixture(t)
		orphan := f.binnedPhoto(t, 999, "gone.jpg")

		result, err := f.svc.PermanentlyDelete(f.ctx, []int64{orphan.ID})
		if err != nil {
			t.Fatalf("PermanentlyDelete() error = %v", err)
		}
		if result.Done != 1 || f.photo(t, orphan.ID) != nil {
			t.Errorf("PermanentlyDelete() = %+v, want record removed", result)
		}
	})
}

func TestVaultService_EmptyBin(t *testing.T) {
	f := newFixture(t)
	trip := f.album(t, "Trip")
	photos := f.importN(t, trip, 3)
	f.svc.MoveToBin(f.ctx, ids(photos[0], photos[1]))

	result, err := f.svc.EmptyBin(f.ctx)
	if err != nil {
		t.Fatalf("EmptyBin() error = %v", err)
	}
	if result.Done != 2 {
		t.Errorf("Done = %d, want 2", result.Done)
	}
	bin, _ := f.svc.ListBin(f.ctx)
	if len(bin) != 0 {
		t.Errorf("bin has %d photos after EmptyBin", len(bin))
	}
	if f.photo(t, photos[2].ID) == nil {
		t.Error("active photo was removed by EmptyBin")
	}
	got := f.reload(t, trip)
	if got.PhotoCount != 1 || coverOf(got) != photos[2].FilePath {
		t.Errorf("Trip = cover %q count %d, want cover %q count 1", coverOf(got), got.PhotoCount, photos[2].FilePath)
	}
	f.checkInvariants(t)
}

// binnedPhoto records a binned photo directly, bypassing the service, with a
// file path inside the vault that does not exist on disk.
func (f *fixture) binnedPhoto(t *testing.T, albumID int64, name string) *sqlc.Photo {
	t.Helper()
	photo, err := f.db.CreatePhoto(f.ctx, &sqlc.Photo{
		AlbumID:      albumID,
		FilePath:     filepath.Join(f.store.Root(), "orphans", name),
		OriginalName: name,
		ImportedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreatePhoto() error = %v", err)
	}
	if err := f.db.MovePhotoToBin(f.ctx, photo.ID, time.Now().UTC(), false); err != nil {
		t.Fatalf("MovePhotoToBin() error = %v", err)
	}
	return f.photo(t, photo.ID)
}
