package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/buttermap/internal/config"
	"github.com/udisondev/buttermap/internal/data"
	"github.com/udisondev/buttermap/internal/db"
	"github.com/udisondev/buttermap/internal/model"
)

// loadSnapshot builds the map snapshot from the configured source.
func loadSnapshot(ctx context.Context, cfg config.Config) (*model.Snapshot, error) {
	var (
		cells []model.Cell
		err   error
	)
	switch cfg.Map.Source {
	case config.SourceDatabase:
		cells, err = loadStoredCells(ctx, cfg.Database)
	default:
		cells, err = loadMapCells(cfg.Map.Path, cfg.Map)
	}
	if err != nil {
		return nil, err
	}

	snap, err := model.NewSnapshot(cells, model.ComputeExtents(cells))
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	ext := snap.Extents()
	slog.Info("map ready",
		"source", cfg.Map.Source,
		"cells", snap.Len(),
		"width", ext.Width(),
		"height", ext.Height(),
		"digest", snap.Digest())
	return snap, nil
}

// loadMapCells reads a map file and applies glyph enhancement and accepted changes as configured.
func loadMapCells(path string, m config.MapConfig) ([]model.Cell, error) {
	cells, err := data.LoadMapFile(path)
	if err != nil {
		return nil, err
	}
	if m.Enhance {
		cells = data.Enhance(cells)
	}
	if m.ChangesDir != "" {
		changes, err := data.LoadChanges(m.ChangesDir)
		if err != nil {
			return nil, fmt.Errorf("loading map changes: %w", err)
		}
		cells = data.ApplyChanges(cells, changes)
	}
	return cells, nil
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*db.DB, error) {
	store, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening map store: %w", err)
	}
	if err := db.RunMigrations(ctx, store); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func loadStoredCells(ctx context.Context, cfg config.DatabaseConfig) ([]model.Cell, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	cells, err := db.NewMapRepository(store).LoadCells(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stored map: %w", err)
	}
	return cells, nil
}
