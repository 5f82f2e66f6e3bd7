package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// photo command
var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage photos",
}

var photoListCmd = &cobra.Command{
	Use:   "list ALBUM",
	Short: "List the photos of an album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ListPhotos")
		if err != nil {
			return err
		}
		defer a.Close()

		photos, err := a.ListPhotos(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(photos) == 0 {
			fmt.Println("No photos.")
			return nil
		}
		for _, p := range photos {
			printPhoto(p)
		}
		return nil
	},
}

var photoMoveCmd = &cobra.Command{
	Use:   "move ALBUM PHOTO_ID...",
	Short: "Move photos into another album",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "MovePhotos")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.MovePhotos(cmd.Context(), ids, args[0])
		if err != nil {
			return err
		}
		printBatch("Moved", result)
		return nil
	},
}

var photoBinCmd = &cobra.Command{
	Use:   "bin PHOTO_ID...",
	Short: "Move photos to the bin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "MoveToBin")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.MoveToBin(cmd.Context(), ids)
		if err != nil {
			return err
		}
		printBatch("Binned", result)
		return nil
	},
}

var photoFavoriteCmd = &cobra.Command{
	Use:   "favorite PHOTO_ID...",
	Short: "Mark photos as favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unset, _ := cmd.Flags().GetBool("unset")
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "SetFavorite")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.SetFavorite(cmd.Context(), ids, !unset)
		if err != nil {
			return err
		}
		printBatch("Updated", result)
		return nil
	},
}

var photoExportCmd = &cobra.Command{
	Use:   "export PHOTO_ID...",
	Short: "Copy photos to the export destination",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "ExportPhotos")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.ExportPhotos(cmd.Context(), ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if loc, ok := result.Locations[id]; ok {
				fmt.Printf("#%d  %s\n", id, loc)
			}
		}
		printBatch("Exported", &result.BatchResult)
		return nil
	},
}

// favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ListFavorites")
		if err != nil {
			return err
		}
		defer a.Close()

		photos, err := a.ListFavorites(cmd.Context())
		if err != nil {
			return err
		}
		if len(photos) == 0 {
			fmt.Println("No favorites.")
			return nil
		}
		for _, p := range photos {
			printPhoto(p)
		}
		return nil
	},
}

// bin command
var binCmd = &cobra.Command{
	Use:   "bin",
	Short: "Manage the bin",
}

var binListCmd = &cobra.Command{
	Use:   "list",
	Short: "List photos in the bin",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ListBin")
		if err != nil {
			return err
		}
		defer a.Close()

		photos, err := a.ListBin(cmd.Context())
		if err != nil {
			return err
		}
		if len(photos) == 0 {
			fmt.Println("The bin is empty.")
			return nil
		}
		for _, p := range photos {
			printPhoto(p)
		}
		return nil
	},
}

var binRestoreCmd = &cobra.Command{
	Use:   "restore PHOTO_ID...",
	Short: "Restore photos from the bin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Restore(cmd.Context(), ids)
		if err != nil {
			return err
		}
		printBatch("Restored", result)
		return nil
	},
}

var binPurgeCmd = &cobra.Command{
	Use:   "purge PHOTO_ID...",
	Short: "Permanently delete photos from the bin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "PermanentlyDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.PermanentlyDelete(cmd.Context(), ids)
		if err != nil {
			return err
		}
		printBatch("Deleted", result)
		return nil
	},
}

var binEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Permanently delete every photo in the bin",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "EmptyBin")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.EmptyBin(cmd.Context())
		if err != nil {
			return err
		}
		printBatch("Deleted", result)
		return nil
	},
}
