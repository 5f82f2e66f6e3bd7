package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"photovault/internal/database/sqlc"
	"photovault/internal/pv"
)

// parseIDs converts photo id arguments.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid photo id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func printAlbum(album *sqlc.Album) {
	cover := "-"
	if album.CoverPhotoPath.Valid {
		cover = filepath.Base(album.CoverPhotoPath.String)
	}
	fmt.Printf("#%-4d  %-24s  %5d photo(s)  cover:%s  created %s\n",
		album.ID,
		album.Name,
		album.PhotoCount,
		cover,
		humanize.Time(album.CreatedAt),
	)
}

func printPhoto(p *sqlc.Photo) {
	flags := ""
	if p.IsFavorite {
		flags += "*"
	}
	when := "imported " + humanize.Time(p.ImportedAt)
	if p.IsDeleted && p.DeletedAt.Valid {
		when = "binned " + humanize.Time(p.DeletedAt.Time)
	}
	fmt.Printf("#%-6d %-1s %-32s  %8s  %dx%d  %s\n",
		p.ID,
		flags,
		p.OriginalName,
		humanize.Bytes(uint64(p.FileSize)),
		p.Width,
		p.Height,
		when,
	)
}

func printSourcePhoto(item pv.SourcePhoto) {
	fmt.Printf("%-40s  %8s  %s\n",
		item.ID,
		humanize.Bytes(uint64(item.Size)),
		item.ModifiedAt.Local().Format("2006-01-02 15:04:05"),
	)
}

func printBatch(verb string, r *pv.BatchResult) {
	for _, s := range r.Skipped {
		fmt.Printf("  skipped  %s: %v\n", s.Item, s.Err)
	}
	for _, f := range r.Failed {
		fmt.Printf("  failed   %s: %v\n", f.Item, f.Err)
	}
	fmt.Printf("%s %d photo(s)", verb, r.Done)
	if n := len(r.Skipped) + len(r.Failed); n > 0 {
		fmt.Printf(", %d not processed", n)
	}
	fmt.Println()
}

func printRemoval(r *pv.RemovalResult) {
	fmt.Printf("Removed %d original(s)", r.Deleted)
	if r.Declined > 0 {
		fmt.Printf(", kept %d", r.Declined)
	}
	if r.Failed > 0 {
		fmt.Printf(", %d failed", r.Failed)
	}
	fmt.Println()
}

func printOperation(op *sqlc.Operation) {
	duration := ""
	if op.FinishedAt.Valid {
		d := op.FinishedAt.Time.Sub(op.StartedAt)
		duration = d.Truncate(time.Millisecond).String()
	}
	fmt.Printf("#%d  %-18s  %s  %-8s  %-10s  %s\n",
		op.ID,
		op.Operation,
		op.StartedAt.Local().Format("2006-01-02 15:04:05"),
		op.Status,
		duration,
		op.Parameters,
	)
}
