package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photovault/internal/config"
	"photovault/internal/testutil"
)

// writeFile creates rel below root with the given modification time.
func writeFile(t *testing.T, root, rel, content string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func newTestSource(t *testing.T, opts Options) (*DirSource, string) {
	t.Helper()
	root := t.TempDir()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	writeFile(t, root, "old.jpg", "old", base)
	writeFile(t, root, "new.PNG", "newer", base.Add(time.Hour))
	writeFile(t, root, "notes.txt", "not a photo", base)
	writeFile(t, root, ".hidden.jpg", "hidden", base)
	writeFile(t, root, "trip/beach.webp", "beach", base.Add(30*time.Minute))
	writeFile(t, root, "trip/skip-me.jpg", "skip", base)

	s, err := NewDirSource(root, opts, testutil.NewStubIDGenerator(), nil)
	if err != nil {
		t.Fatalf("NewDirSource() error = %v", err)
	}
	return s, root
}

func refs(t *testing.T, s *DirSource) []string {
	t.Helper()
	photos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var result []string
	for _, p := range photos {
		result = append(result, p.Ref)
	}
	return result
}

func TestDirSource_List(t *testing.T) {
	t.Run("top level only", func(t *testing.T) {
		s, _ := newTestSource(t, Options{})
		got := refs(t, s)
		if len(got) != 2 || got[0] != "new.PNG" || got[1] != "old.jpg" {
			t.Errorf("List() = %q, want [new.PNG old.jpg]", got)
		}
	})

	t.Run("recursive with ignore patterns", func(t *testing.T) {
		s, _ := newTestSource(t, Options{Recursive: true, Ignore: []string{"skip-*"}})
		got := refs(t, s)
		want := []string{"new.PNG", "trip/beach.webp", "old.jpg"}
		if len(got) != len(want) {
			t.Fatalf("List() = %q, want %q", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("ignore file in root", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.jpg", "a", time.Now())
		writeFile(t, root, "b.jpg", "b", time.Now())
		writeFile(t, root, IgnoreFileName, "b.jpg\n", time.Now())

		s, err := NewDirSource(root, Options{}, testutil.NewStubIDGenerator(), nil)
		if err != nil {
			t.Fatalf("NewDirSource() error = %v", err)
		}
		if got := refs(t, s); len(got) != 1 || got[0] != "a.jpg" {
			t.Errorf("List() = %q, want [a.jpg]", got)
		}
	})

	t.Run("describes photos", func(t *testing.T) {
		s, _ := newTestSource(t, Options{})
		photos, _ := s.List(context.Background())
		p := photos[0]
		if p.DisplayName != "new.PNG" || p.Size != int64(len("newer")) || p.ModifiedAt.Location() != time.UTC {
			t.Errorf("photo = %+v", p)
		}
	})
}

func TestNewDirSource_Errors(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "missing"), Options{}, nil, nil); err == nil {
		t.Error("NewDirSource() accepted a missing directory")
	}
	file := filepath.Join(t.TempDir(), "file.jpg")
	os.WriteFile(file, []byte("x"), 0600)
	if _, err := NewDirSource(file, Options{}, nil, nil); err == nil {
		t.Error("NewDirSource() accepted a regular file")
	}
}

func TestDirSource_Open(t *testing.T) {
	s, _ := newTestSource(t, Options{Recursive: true})
	ctx := context.Background()

	r, err := s.Open(ctx, "trip/beach.webp")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := io.ReadAll(r)
	r.Close()
	if string(data) != "beach" {
		t.Errorf("content = %q, want beach", data)
	}

	for _, ref := range []string{"../escape.jpg", "/etc/passwd", "", "trip/../../x.jpg"} {
		if _, err := s.Open(ctx, ref); err == nil {
			t.Errorf("Open(%q) succeeded, want error", ref)
		}
	}
}

func TestDirSource_Lookup(t *testing.T) {
	s, _ := newTestSource(t, Options{Recursive: true})

	p, err := s.Lookup("trip/beach.webp")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if p.ID != "trip/beach.webp" || p.DisplayName != "beach.webp" {
		t.Errorf("Lookup() = %+v", p)
	}
	if _, err := s.Lookup("notes.txt"); err == nil {
		t.Error("Lookup() accepted a non-image")
	}
}

func TestDirSource_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("immediate", func(t *testing.T) {
		s, root := newTestSource(t, Options{})
		result, err := s.Delete(ctx, []string{"old.jpg", "missing.jpg"})
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if result.Deleted != 1 || result.Failed != 1 {
			t.Errorf("Delete() = %+v, want 1 deleted and 1 failed", result)
		}
		if _, err := os.Stat(filepath.Join(root, "old.jpg")); !os.IsNotExist(err) {
			t.Error("old.jpg still exists")
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		s, root := newTestSource(t, Options{ConfirmDelete: true})
		pending, err := s.Delete(ctx, []string{"old.jpg"})
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if pending.Grant != "id-1" || pending.Pending != 1 {
			t.Fatalf("Delete() = %+v, want pending behind grant id-1", pending)
		}
		if _, err := os.Stat(filepath.Join(root, "old.jpg")); err != nil {
			t.Fatal("file removed before the grant")
		}

		result, err := s.Resume(ctx, pending.Grant, true)
		if err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		if result.Deleted != 1 {
			t.Errorf("Resume() = %+v, want 1 deleted", result)
		}
		if _, err := s.Resume(ctx, pending.Grant, true); err == nil {
			t.Error("Resume() accepted a used grant")
		}
	})

	t.Run("declined", func(t *testing.T) {
		s, root := newTestSource(t, Options{ConfirmDelete: true})
		pending, _ := s.Delete(ctx, []string{"old.jpg"})
		result, err := s.Resume(ctx, pending.Grant, false)
		if err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		if result.Declined != 1 {
			t.Errorf("Resume() = %+v, want 1 declined", result)
		}
		if _, err := os.Stat(filepath.Join(root, "old.jpg")); err != nil {
			t.Error("declined removal deleted the file")
		}
	})
}

func TestNewSourceFromConfig(t *testing.T) {
	idgen := testutil.NewStubIDGenerator()

	s, err := NewSourceFromConfig(config.SourceConfig{Type: "none"}, idgen, nil)
	if err != nil || s != nil {
		t.Errorf("none: got %v, %v; want nil, nil", s, err)
	}
	if _, err := NewSourceFromConfig(config.SourceConfig{Type: "directory"}, idgen, nil); err == nil {
		t.Error("directory without dir: want error")
	}
	if _, err := NewSourceFromConfig(config.SourceConfig{Type: "camera"}, idgen, nil); err == nil {
		t.Error("unknown type: want error")
	}
	dir := t.TempDir()
	s, err = NewSourceFromConfig(config.SourceConfig{Type: "directory", Dir: dir, Recursive: true}, idgen, nil)
	if err != nil {
		t.Fatalf("directory: error = %v", err)
	}
	if !s.recursive || s.Root() != dir {
		t.Errorf("directory source = %+v", s)
	}
}
