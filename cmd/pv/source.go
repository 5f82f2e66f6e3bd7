package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"photovault/internal/pv"
)

// source command
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Inspect the photo source",
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List photos available for import",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ListSource")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.ListSource(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No photos in the source.")
			return nil
		}
		for _, item := range items {
			printSourcePhoto(item)
		}
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import ALBUM [SOURCE_ID...]",
	Short: "Import photos from the source into an album",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		removeOriginals, _ := cmd.Flags().GetBool("remove-originals")
		yes, _ := cmd.Flags().GetBool("yes")

		if !all && len(args) < 2 {
			return fmt.Errorf("name source photos to import or pass --all")
		}

		a, err := newApp(cmd.Context(), "Import")
		if err != nil {
			return err
		}
		defer a.Close()

		result, imported, err := a.Import(cmd.Context(), args[0], args[1:], all)
		if err != nil {
			return err
		}
		for _, f := range result.Failed {
			fmt.Printf("  failed  %s: %v\n", f.Item, f.Err)
		}
		fmt.Printf("Imported %d photo(s) into %q\n", len(result.Imported), args[0])

		if !removeOriginals || len(imported) == 0 {
			return nil
		}

		removal, err := a.RemoveOriginals(cmd.Context(), imported)
		if err != nil {
			return fmt.Errorf("removing originals: %w", err)
		}
		if removal.Grant != "" {
			granted := yes || confirm(fmt.Sprintf("Delete %d original(s) from the source?", removal.Pending))
			removal, err = a.ConfirmRemoval(cmd.Context(), removal.Grant, granted)
			if err != nil {
				return fmt.Errorf("removing originals: %w", err)
			}
		}
		printRemoval(removal)
		return nil
	},
}

// confirm asks a yes/no question on the terminal. Without a terminal the
// answer is no; --yes is the non-interactive way to agree.
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Not a terminal, keeping originals (use --yes to remove them).")
		return false
	}
	fmt.Printf("%s [y/N] ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch ALBUM",
	Short: "Import new photos from the source as they arrive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settle, _ := cmd.Flags().GetDuration("settle")
		ctx := cmd.Context()

		a, err := newApp(ctx, "Watch")
		if err != nil {
			return err
		}
		defer a.Close()

		album, err := a.Album(ctx, args[0])
		if err != nil {
			return err
		}

		photos := a.Projector().ActivePhotos(ctx, album.ID)
		defer photos.Close()
		go func() {
			for list := range photos.Updates() {
				fmt.Printf("%q now holds %d photo(s)\n", album.Name, len(list))
			}
		}()

		fmt.Printf("Watching source for %q, press Ctrl-C to stop\n", album.Name)
		return a.Watch(ctx, album.Name, settle, func(result *pv.ImportResult) {
			for _, p := range result.Imported {
				fmt.Printf("  imported  #%d  %s\n", p.ID, p.OriginalName)
			}
			for _, f := range result.Failed {
				fmt.Printf("  failed    %s: %v\n", f.Item, f.Err)
			}
		})
	},
}
