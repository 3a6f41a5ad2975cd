package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show map statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			ext := snap.Extents()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:      %s\n", a.cfg.Map.Source)
			fmt.Fprintf(out, "Cells:       %d\n", snap.Len())
			fmt.Fprintf(out, "Size:        %dx%d\n", ext.Width(), ext.Height())
			fmt.Fprintf(out, "Targets:     %d\n", len(snap.TargetCells()))
			fmt.Fprintf(out, "Transports:  %d\n", len(snap.TransportCells()))
			fmt.Fprintf(out, "Digest:      %s\n", snap.Digest())
			return nil
		},
	}
}
