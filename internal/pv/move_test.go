package pv_test

import (
	"errors"
	"testing"

	"photovault/internal/pv"
)

func TestVaultService_Move(t *testing.T) {
	t.Run("empty target takes moved photo as cover", func(t *testing.T) {
		f := newFixture(t)
		a := f.album(t, "A")
		b := f.album(t, "B")
		photos := f.importN(t, a, 5)
		p5 := photos[4]

		result, err := f.svc.Move(f.ctx, ids(p5), b.ID)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if result.Done != 1 {
			t.Errorf("Done = %d, want 1", result.Done)
		}

		gotB := f.reload(t, b)
		if coverOf(gotB) != p5.FilePath || gotB.PhotoCount != 1 {
			t.Errorf("B = %+v, want p5 as cover and count 1", gotB)
		}
		gotA := f.reload(t, a)
		if coverOf(gotA) != photos[0].FilePath || gotA.PhotoCount != 4 {
			t.Errorf("A = %+v, want cover unchanged and count 4", gotA)
		}
		f.checkInvariants(t)
	})

	t.Run("moving the cover re-derives source cover", func(t *testing.T) {
		f := newFixture(t)
		a := f.album(t, "A")
		b := f.album(t, "B")
		photos := f.importN(t, a, 3)
		existing := f.importN(t, b, 1)

		if _, err := f.svc.Move(f.ctx, ids(photos[0], photos[1]), b.ID); err != nil {
			t.Fatalf("Move() error = %v", err)
		}

		if got := coverOf(f.reload(t, a)); got != photos[2].FilePath {
			t.Errorf("A cover = %q, want %q", got, photos[2].FilePath)
		}
		if got := coverOf(f.reload(t, b)); got != existing[0].FilePath {
			t.Errorf("B cover = %q, want unchanged %q", got, existing[0].FilePath)
		}
		f.checkInvariants(t)
	})

	t.Run("moving every photo clears source cover", func(t *testing.T) {
		f := newFixture(t)
		a := f.album(t, "A")
		b := f.album(t, "B")
		photos := f.importN(t, a, 2)

		if _, err := f.svc.Move(f.ctx, ids(photos...), b.ID); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		gotA := f.reload(t, a)
		if gotA.CoverPhotoPath.Valid || gotA.PhotoCount != 0 {
			t.Errorf("A = %+v, want empty without cover", gotA)
		}
		if got := coverOf(f.reload(t, b)); got != photos[0].FilePath {
			t.Errorf("B cover = %q, want oldest moved photo %q", got, photos[0].FilePath)
		}
		f.checkInvariants(t)
	})

	t.Run("photos from several albums", func(t *testing.T) {
		f := newFixture(t)
		a := f.album(t, "A")
		b := f.album(t, "B")
		c := f.album(t, "C")
		fromA := f.importN(t, a, 2)
		fromB := f.importN(t, b, 2)

		if _, err := f.svc.Move(f.ctx, ids(fromA[0], fromB[0]), c.ID); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if got := f.reload(t, c); got.PhotoCount != 2 {
			t.Errorf("C count = %d, want 2", got.PhotoCount)
		}
		f.checkInvariants(t)
	})

	t.Run("skips binned, missing and already-placed photos", func(t *testing.T) {
		f := newFixture(t)
		a := f.album(t, "A")
		b := f.album(t, "B")
		photos := f.importN(t, a, 2)
		inB := f.importN(t, b, 1)
		f.svc.MoveToBin(f.ctx, ids(photos[1]))

		result, err := f.svc.Move(f.ctx, []int64{photos[1].ID, 999, inB[0].ID}, b.ID)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if result.Done != 0 || len(result.Skipped) != 3 {
			t.Errorf("Move() = %+v, want 3 skipped", result)
		}
		if p := f.photo(t, photos[1].ID); p.AlbumID != a.ID {
			t.Errorf("binned photo moved to album %d", p.AlbumID)
		}
		f.checkInvariants(t)
	})

	t.Run("missing target", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.svc.Move(f.ctx, []int64{1}, 99); !errors.Is(err, pv.ErrNotFound) {
			t.Errorf("Move() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty batch is not an error", func(t *testing.T) {
		f := newFixture(t)
		b := f.album(t, "B")
		result, err := f.svc.Move(f.ctx, nil, b.ID)
		if err != nil || result.Done != 0 {
			t.Errorf("Move(nil) = %+v, %v", result, err)
		}
	})
}
