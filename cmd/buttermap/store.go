package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udisondev/buttermap/internal/data"
	"github.com/udisondev/buttermap/internal/db"
)

// NewImportCommand creates the import command.
func NewImportCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a map file into the map store",
		Long: `Load a map file, enhance it as configured and replace the stored map.

Examples:
  buttermap import --file data/map.json
  buttermap import --file data/map.json.zst --config config/prod.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.Map.Path
			}
			cells, err := loadMapCells(file, a.cfg.Map)
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), a.cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := db.NewMapRepository(store).ReplaceCells(cmd.Context(), cells); err != nil {
				return fmt.Errorf("importing map: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cells from %s\n", len(cells), file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Map file to import (default map.path)")
	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current map snapshot to a map file",
		Long: `Write the map from the configured source to a file.
A .zst suffix compresses the output.

Examples:
  buttermap export --file enhanced_map.json.zst`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file flag is required")
			}
			snap, err := loadSnapshot(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			if err := data.WriteMapFile(file, snap.Cells()); err != nil {
				return fmt.Errorf("exporting map: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d cells to %s\n", snap.Len(), file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Output map file (required)")
	return cmd
}
