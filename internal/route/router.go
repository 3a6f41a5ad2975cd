package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/buttermap/internal/geo"
	"github.com/udisondev/buttermap/internal/model"
)

// ErrNoTransportTarget is returned when a direct route is missing and the map
// has no transport target at all.
var ErrNoTransportTarget = errors.New("no transport target cell on map")

// RouteOptions controls a single route request. The zero value avoids
// nothing and allows transports.
type RouteOptions struct {
	Avoid          model.FeatureSet
	SkipTransports bool
}

// RouteResult is a compressed direction string and the positions it visits,
// excluding the start. Back is only set by RoundTrip.
type RouteResult struct {
	Directions  string             `json:"directions"`
	Coordinates []model.Coordinate `json:"coordinates"`
	Back        *RouteResult       `json:"back,omitempty"`
}

// Empty reports whether the result carries no movement.
func (r RouteResult) Empty() bool {
	return r.Directions == "" && len(r.Coordinates) == 0
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Router generates routes over one immutable snapshot.
// It keeps no state between calls and is safe for concurrent use.
type Router struct {
	snap    *model.Snapshot
	torus   geo.Torus
	locator *Locator
	direct  *geo.Searcher
	leg     *geo.Searcher
	logger  *slog.Logger
}

// New creates a router for snap.
func New(snap *model.Snapshot, opts ...Option) *Router {
	torus := geo.NewTorus(snap.Extents())
	r := &Router{
		snap:    snap,
		torus:   torus,
		locator: NewLocator(snap),
		direct:  geo.NewDirectSearcher(torus),
		leg:     geo.NewLegSearcher(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns the map the router was built from.
func (r *Router) Snapshot() *model.Snapshot {
	return r.snap
}

// GenerateRoute computes directions from start to end.
//
// A direct wrapped route is preferred. Without one, and unless
// opts.SkipTransports is set, the route walks to the nearest transport
// leading to the target closest to end, issues its move command and walks
// from the landing cell to end. Any failure other than a map without
// targets yields an empty result and a nil error.
func (r *Router) GenerateRoute(start, end model.Coordinate, opts RouteOptions) (RouteResult, error) {
	start = r.torus.WrapCoordinate(start)
	end = r.torus.WrapCoordinate(end)
	log := r.logger.With(slog.String("from", start.String()), slog.String("to", end.String()))

	grid := geo.BuildGrid(r.snap, opts.Avoid)

	path, stats := r.direct.Search(grid, geo.PointOf(start), geo.PointOf(end))
	log.Debug("direct search finished",
		slog.Int("expanded", stats.Expanded),
		slog.Int("pushed", stats.Pushed),
		slog.Bool("found", path != nil))
	if path != nil {
		leg := r.translate(log, path, start.Z)
		return RouteResult{Directions: Compress(leg.Tokens), Coordinates: leg.Coordinates}, nil
	}

	if opts.SkipTransports {
		log.Info("no direct route, transports disabled")
		return emptyResult(), nil
	}
	return r.transportRoute(log, grid, start, end)
}

func (r *Router) transportRoute(log *slog.Logger, grid *geo.Grid, start, end model.Coordinate) (RouteResult, error) {
	target, ok := r.locator.NearestTarget(end)
	if !ok {
		return RouteResult{}, fmt.Errorf("routing %s -> %s: %w", start, end, ErrNoTransportTarget)
	}
	log = log.With(slog.String("target", target.Name))

	via, transport, ok := r.locator.NearestTransport(start, target.Name)
	if !ok {
		log.Warn("no transport leads to target")
		return emptyResult(), nil
	}

	landing, ok := r.snap.CellByName(transport.TargetName)
	if !ok {
		log.Warn("transport landing cell not found", slog.String("landing", transport.TargetName))
		return emptyResult(), nil
	}

	pathA := r.leg.FindPath(grid.Clone(), geo.PointOf(start), geo.PointOf(via.Coordinate))
	if pathA == nil {
		log.Warn("no path to transport", slog.String("transport", via.Coordinate.String()))
		return emptyResult(), nil
	}
	pathB := r.leg.FindPath(grid.Clone(), geo.PointOf(landing.Coordinate), geo.PointOf(end))
	if pathB == nil {
		log.Warn("no path from landing cell", slog.String("landing", landing.Coordinate.String()))
		return emptyResult(), nil
	}

	legA := r.translate(log, pathA, start.Z)
	legB := r.translate(log, pathB, landing.Z)

	coords := make([]model.Coordinate, 0, len(legA.Coordinates)+1+len(legB.Coordinates))
	coords = append(coords, legA.Coordinates...)
	coords = append(coords, via.Coordinate)
	coords = append(coords, legB.Coordinates...)

	log.Info("routed through transport",
		slog.String("transport", via.Coordinate.String()),
		slog.String("command", transport.MoveCommand))

	return RouteResult{
		Directions:  JoinSegments(Compress(legA.Tokens), transport.MoveCommand, Compress(legB.Tokens)),
		Coordinates: coords,
	}, nil
}

// RoundTrip computes the route to end and, independently, the route back to
// start. The forward result is returned with Back set.
func (r *Router) RoundTrip(ctx context.Context, start, end model.Coordinate, opts RouteOptions) (RouteResult, error) {
	var forward, back RouteResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		res, err := r.GenerateRoute(start, end, opts)
		if err != nil {
			return fmt.Errorf("forward route: %w", err)
		}
		forward = res
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		res, err := r.GenerateRoute(end, start, opts)
		if err != nil {
			return fmt.Errorf("return route: %w", err)
		}
		back = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return RouteResult{}, err
	}

	forward.Back = &back
	return forward, nil
}

func (r *Router) translate(log *slog.Logger, path []geo.Point, z int) Leg {
	leg, err := Translate(r.torus, path, z)
	if err != nil {
		log.Error("dropping illegal steps", slog.Any("error", err))
	}
	return leg
}

func emptyResult() RouteResult {
	return RouteResult{Coordinates: []model.Coordinate{}}
}
