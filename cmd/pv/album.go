package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// album command
var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var albumCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "CreateAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		album, err := a.CreateAlbum(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created album %q (#%d)\n", album.Name, album.ID)
		return nil
	},
}

var albumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ListAlbums")
		if err != nil {
			return err
		}
		defer a.Close()

		albums, err := a.ListAlbums(cmd.Context())
		if err != nil {
			return err
		}
		if len(albums) == 0 {
			fmt.Println("No albums.")
			return nil
		}
		for _, album := range albums {
			printAlbum(album)
		}
		return nil
	},
}

var albumRenameCmd = &cobra.Command{
	Use:   "rename NAME NEW_NAME",
	Short: "Rename an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "RenameAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RenameAlbum(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed %q to %q\n", args[0], args[1])
		return nil
	},
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an album and its photos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "DeleteAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteAlbum(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted album %q\n", args[0])
		return nil
	},
}

var albumCoverCmd = &cobra.Command{
	Use:   "cover NAME PHOTO_ID",
	Short: "Choose the cover photo of an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "SetCover")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetCover(cmd.Context(), args[0], ids[0]); err != nil {
			return err
		}
		fmt.Printf("Photo #%d is now the cover of %q\n", ids[0], args[0])
		return nil
	},
}

var albumReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Repair photo counts and covers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ReconcileAlbums")
		if err != nil {
			return err
		}
		defer a.Close()

		repaired, err := a.ReconcileAlbums(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Repaired %d cover(s)\n", repaired)
		return nil
	},
}
