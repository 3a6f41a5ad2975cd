package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/buttermap/internal/route"
)

// NewExpandCommand creates the expand command.
func NewExpandCommand() *cobra.Command {
	var compress bool

	cmd := &cobra.Command{
		Use:   "expand <directions>",
		Short: "Print every step of a compressed route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if compress {
				fmt.Fprintln(cmd.OutOrStdout(), route.CompressRoute(args[0]))
				return nil
			}
			tokens, err := route.Expand(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&compress, "compress", false, "Re-compress instead of expanding")
	return cmd
}
