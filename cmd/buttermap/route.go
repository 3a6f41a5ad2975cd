package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/buttermap/internal/model"
	"github.com/udisondev/buttermap/internal/route"
)

// NewRouteCommand creates the route command.
func NewRouteCommand(a *app) *cobra.Command {
	var (
		from, to     string
		avoid        []string
		noTransports bool
		roundTrip    bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute directions between two cells",
		Long: `Compute compressed walking directions between two cells.

A direct route wrapping around the map edges is preferred. When none exists,
the route walks to a transport, issues its command and continues from the
landing cell. Avoided features default to route.avoid from the config.

Examples:
  buttermap route --from 10,4 --to 250,31
  buttermap route --from 10,4,0 --to 250,31,0 --avoid WATER --no-transports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to flags are required")
			}
			start, err := parseCoordinate(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := parseCoordinate(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			if !cmd.Flags().Changed("avoid") {
				avoid = a.cfg.Route.Avoid
			}
			avoidSet, err := model.ParseFeatureSet(avoid)
			if err != nil {
				return fmt.Errorf("--avoid: %w", err)
			}
			if !cmd.Flags().Changed("no-transports") {
				noTransports = !a.cfg.Route.UseTransports
			}
			opts := route.RouteOptions{Avoid: avoidSet, SkipTransports: noTransports}

			snap, err := loadSnapshot(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			r := route.New(snap)

			var res route.RouteResult
			if roundTrip {
				res, err = r.RoundTrip(cmd.Context(), start, end, opts)
			} else {
				res, err = r.GenerateRoute(start, end, opts)
			}
			if err != nil {
				return fmt.Errorf("routing: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printRoute(out, "route", res)
			if res.Back != nil {
				printRoute(out, "back", *res.Back)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start cell as x,y[,z] (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination cell as x,y[,z] (required)")
	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "Features to avoid, e.g. WATER,MOUNTAIN")
	cmd.Flags().BoolVar(&noTransports, "no-transports", false, "Never fall back to transports")
	cmd.Flags().BoolVar(&roundTrip, "round-trip", false, "Also compute the way back")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func printRoute(w io.Writer, label string, res route.RouteResult) {
	if res.Empty() {
		fmt.Fprintf(w, "%s: no route\n", label)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, res.Directions)
	fmt.Fprintf(w, "  steps: %d\n", len(res.Coordinates))
	fmt.Fprintf(w, "  ends at: %s\n", res.Coordinates[len(res.Coordinates)-1])
}

// parseCoordinate parses "x,y" or "x,y,z".
func parseCoordinate(s string) (model.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return model.Coordinate{}, fmt.Errorf("coordinate %q: want x,y[,z]", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.Coordinate{}, fmt.Errorf("coordinate %q: %w", s, err)
		}
		vals[i] = v
	}
	return model.NewCoordinate(vals[0], vals[1], vals[2]), nil
}
