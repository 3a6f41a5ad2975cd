package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/udisondev/buttermap/internal/model"
)

// MapRepository stores map cells and their transports.
// Cell ids follow map order, so reading back by id restores it.
type MapRepository struct {
	db *DB
}

// NewMapRepository creates a new MapRepository.
func NewMapRepository(db *DB) *MapRepository {
	return &MapRepository{db: db}
}

// LoadCells loads all cells in map order.
func (r *MapRepository) LoadCells(ctx context.Context) ([]model.Cell, error) {
	query := `
		SELECT id, x, y, z, glyph, color, name, features, area_name, area_enter, area_exit
		FROM map_cells
		ORDER BY id
	`

	rows, err := r.db.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying map cells: %w", err)
	}
	defer rows.Close()

	var cells []model.Cell
	byID := make(map[int64]int)
	for rows.Next() {
		var (
			id        int64
			c         model.Cell
			features  int64
			areaName  sql.NullString
			areaEnter string
			areaExit  string
		)
		if err := rows.Scan(&id, &c.X, &c.Y, &c.Z, &c.Char, &c.Color, &c.Name, &features, &areaName, &areaEnter, &areaExit); err != nil {
			return nil, fmt.Errorf("scanning map cell row: %w", err)
		}
		c.Features = model.FeatureSet(uint32(features))
		if areaName.Valid {
			c.Area = &model.Area{Name: areaName.String, EnterCommand: areaEnter, ExitCommand: areaExit}
		}
		byID[id] = len(cells)
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating map cell rows: %w", err)
	}

	if err := r.loadTransports(ctx, cells, byID); err != nil {
		return nil, err
	}
	return cells, nil
}

func (r *MapRepository) loadTransports(ctx context.Context, cells []model.Cell, byID map[int64]int) error {
	query := `
		SELECT cell_id, target_name, move_command
		FROM map_transports
		ORDER BY cell_id, position
	`

	rows, err := r.db.sql.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying map transports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cellID int64
			t      model.Transport
		)
		if err := rows.Scan(&cellID, &t.TargetName, &t.MoveCommand); err != nil {
			return fmt.Errorf("scanning map transport row: %w", err)
		}
		i, ok := byID[cellID]
		if !ok {
			return fmt.Errorf("transport references unknown cell %d", cellID)
		}
		cells[i].Transports = append(cells[i].Transports, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating map transport rows: %w", err)
	}
	return nil
}

// LoadSnapshot loads all cells and builds a snapshot sized to them.
func (r *MapRepository) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	cells, err := r.LoadCells(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := model.NewSnapshot(cells, model.ComputeExtents(cells))
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	return snap, nil
}

// CountCells returns the number of stored cells.
func (r *MapRepository) CountCells(ctx context.Context) (int, error) {
	var n int
	if err := r.db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM map_cells`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting map cells: %w", err)
	}
	return n, nil
}

// ReplaceCells replaces the stored map with cells in one transaction.
func (r *MapRepository) ReplaceCells(ctx context.Context, cells []model.Cell) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM map_transports`); err != nil {
		return fmt.Errorf("clearing map transports: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM map_cells`); err != nil {
		return fmt.Errorf("clearing map cells: %w", err)
	}

	cellStmt, err := tx.PrepareContext(ctx, r.db.rebind(`
		INSERT INTO map_cells (id, x, y, z, glyph, color, name, features, area_name, area_enter, area_exit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("preparing cell insert: %w", err)
	}
	defer cellStmt.Close()

	transportStmt, err := tx.PrepareContext(ctx, r.db.rebind(`
		INSERT INTO map_transports (cell_id, position, target_name, move_command)
		VALUES (?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("preparing transport insert: %w", err)
	}
	defer transportStmt.Close()

	for i := range cells {
		c := &cells[i]
		id := int64(i + 1)

		var areaName sql.NullString
		var areaEnter, areaExit string
		if c.Area != nil {
			areaName = sql.NullString{String: c.Area.Name, Valid: true}
			areaEnter, areaExit = c.Area.EnterCommand, c.Area.ExitCommand
		}

		if _, err := cellStmt.ExecContext(ctx, id, c.X, c.Y, c.Z, c.Char, c.Color, c.Name,
			int64(c.Features), areaName, areaEnter, areaExit); err != nil {
			return fmt.Errorf("inserting cell %s: %w", c.Coordinate, err)
		}
		for pos, t := range c.Transports {
			if _, err := transportStmt.ExecContext(ctx, id, pos, t.TargetName, t.MoveCommand); err != nil {
				return fmt.Errorf("inserting transport %d of cell %s: %w", pos, c.Coordinate, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing map import: %w", err)
	}
	slog.Info("imported map", "cells", len(cells))
	return nil
}
