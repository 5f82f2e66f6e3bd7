package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photovault/internal/app"
	"photovault/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a PVApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "CreateAlbum", "Import").
func newApp(ctx context.Context, operation string) (*app.PVApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewPVApp(ctx, cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "pv",
	Short:        "Local photo vault",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Vault Root: %s\n", cfg.VaultRoot)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Vault Root: %s\n", cfg.VaultRoot)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Source:     %s %s\n", cfg.Source.Type, cfg.Source.Dir)
		fmt.Printf("Export:     %s %s\n", cfg.Export.Type, exportTarget(cfg.Export))
		if len(cfg.Export.AgeRecipients) > 0 {
			fmt.Printf("Encrypted:  %d age recipient(s)\n", len(cfg.Export.AgeRecipients))
		}
		fmt.Printf("Log Level:  %s\n", cfg.Log.Level)
		return nil
	},
}

func exportTarget(cfg config.ExportConfig) string {
	if cfg.Type == "s3" {
		return "s3://" + cfg.S3Bucket + "/" + cfg.S3Prefix
	}
	return cfg.Dir
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context(), "GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			printOperation(op)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// album subcommands
	albumCmd.AddCommand(albumCreateCmd)
	albumCmd.AddCommand(albumListCmd)
	albumCmd.AddCommand(albumRenameCmd)
	albumCmd.AddCommand(albumDeleteCmd)
	albumCmd.AddCommand(albumCoverCmd)
	albumCmd.AddCommand(albumReconcileCmd)

	// photo subcommands
	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoMoveCmd)
	photoCmd.AddCommand(photoBinCmd)
	photoCmd.AddCommand(photoFavoriteCmd)
	photoFavoriteCmd.Flags().Bool("unset", false, "Remove the favorite mark instead")
	photoCmd.AddCommand(photoExportCmd)

	// bin subcommands
	binCmd.AddCommand(binListCmd)
	binCmd.AddCommand(binRestoreCmd)
	binCmd.AddCommand(binPurgeCmd)
	binCmd.AddCommand(binEmptyCmd)

	// source subcommands
	sourceCmd.AddCommand(sourceListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(binCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("all", false, "Import every photo in the source")
	importCmd.Flags().Bool("remove-originals", false, "Delete imported photos from the source")
	importCmd.Flags().BoolP("yes", "y", false, "Confirm removal of originals without asking")
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("settle", 0, "How long a new file must stay unchanged before import")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
