package export

import (
	"context"
	"path/filepath"
	"testing"

	"filippo.io/age"

	"photovault/internal/config"
)

func TestNewExporterFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		e, err := NewExporterFromConfig(ctx, config.ExportConfig{Type: "none"})
		if err != nil || e != nil {
			t.Errorf("got %v, %v; want nil, nil", e, err)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		e, err := NewExporterFromConfig(ctx, config.ExportConfig{Type: "filesystem", Dir: filepath.Join(t.TempDir(), "x")})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if _, ok := e.(*DirExporter); !ok {
			t.Errorf("got %T, want *DirExporter", e)
		}
	})

	t.Run("filesystem with encryption", func(t *testing.T) {
		identity, _ := age.GenerateX25519Identity()
		e, err := NewExporterFromConfig(ctx, config.ExportConfig{
			Type:          "filesystem",
			Dir:           t.TempDir(),
			AgeRecipients: []string{identity.Recipient().String()},
		})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if _, ok := e.(*AgeExporter); !ok {
			t.Errorf("got %T, want *AgeExporter", e)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		cases := []config.ExportConfig{
			{Type: "filesystem"},
			{Type: "s3"},
			{Type: "ftp"},
			{Type: "filesystem", Dir: t.TempDir(), AgeRecipients: []string{"bogus"}},
		}
		for _, cfg := range cases {
			if e, err := NewExporterFromConfig(ctx, cfg); err == nil || e != nil {
				t.Errorf("NewExporterFromConfig(%+v) = %v, %v; want error", cfg, e, err)
			}
		}
	})
}
