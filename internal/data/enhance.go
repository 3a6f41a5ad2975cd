package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/udisondev/buttermap/internal/model"
)

// glyphRule derives a feature from a rendered glyph and its color.
type glyphRule struct {
	char    string
	color   string
	feature model.Feature
}

// glyphRules: таблица char+color → feature.
var glyphRules = []glyphRule{
	{"w", "#0033CC", model.FeatureWater},
	{"w", "#0000FF", model.FeatureWater},
	{"r", "#0000FF", model.FeatureWater},
	{"R", "#000066", model.FeatureWater},
	{"l", "#000066", model.FeatureWater},
	{"^", "#847D84", model.FeatureMountain},
	{"&", "#847D84", model.FeatureBlocking},
	{"#", "#847D84", model.FeatureBlocking},
}

// GlyphFeatures returns the features implied by a glyph and color.
// Colors are compared exactly.
func GlyphFeatures(char, color string) model.FeatureSet {
	var set model.FeatureSet
	for _, r := range glyphRules {
		if r.char == char && r.color == color {
			set = set.Add(r.feature)
		}
	}
	return set
}

// Enhance adds glyph-derived features to every cell and drops duplicate
// transports. Cells are modified in place and returned.
func Enhance(cells []model.Cell) []model.Cell {
	derived := 0
	for i := range cells {
		c := &cells[i]
		extra := GlyphFeatures(c.Char, c.Color)
		if !extra.Empty() && c.Features|extra != c.Features {
			derived++
		}
		c.Features |= extra
		c.Transports = DedupeTransports(c.Transports)
	}
	slog.Debug("enhanced map", "cells", len(cells), "derived", derived)
	return cells
}

// DedupeTransports keeps the first occurrence of every (target, command) pair.
func DedupeTransports(ts []model.Transport) []model.Transport {
	if len(ts) < 2 {
		return ts
	}
	seen := make(map[model.Transport]struct{}, len(ts))
	out := ts[:0]
	for _, t := range ts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ChangeAction says whether a change adds or removes features.
type ChangeAction string

const (
	ChangeAdd    ChangeAction = "ADD"
	ChangeRemove ChangeAction = "REMOVE"
)

// ChangeStatus is the review state of a change. Only accepted changes are applied.
type ChangeStatus string

const (
	ChangePending  ChangeStatus = "PENDING"
	ChangeAccepted ChangeStatus = "ACCEPTED"
)

// ChangeTarget locates the cell a change applies to.
type ChangeTarget struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Change is a reviewed edit of one map cell.
type Change struct {
	Action      ChangeAction      `json:"action"`
	Status      ChangeStatus      `json:"status"`
	Coord       *ChangeTarget     `json:"coord,omitempty"`
	Features    []model.Feature   `json:"features,omitempty"`
	CharChange  string            `json:"charChange,omitempty"`
	Color       string            `json:"color,omitempty"`
	Name        string            `json:"name,omitempty"`
	Transports  []model.Transport `json:"transports,omitempty"`
	Author      string            `json:"author,omitempty"`
	Description string            `json:"description,omitempty"`
}

// ApplyChanges overlays accepted changes onto cells matched by exact
// coordinate (first cell in map order). Pending changes, changes without a
// coordinate and changes for unknown cells are skipped.
func ApplyChanges(cells []model.Cell, changes []Change) []model.Cell {
	index := make(map[model.Coordinate]int, len(cells))
	for i := range cells {
		if _, ok := index[cells[i].Coordinate]; !ok {
			index[cells[i].Coordinate] = i
		}
	}

	applied := 0
	for _, ch := range changes {
		if ch.Status != ChangeAccepted || ch.Coord == nil {
			continue
		}
		i, ok := index[model.NewCoordinate(ch.Coord.X, ch.Coord.Y, ch.Coord.Z)]
		if !ok {
			continue
		}
		applyChange(&cells[i], ch)
		applied++
	}

	for i := range cells {
		cells[i].Transports = DedupeTransports(cells[i].Transports)
	}
	slog.Debug("applied map changes", "total", len(changes), "applied", applied)
	return cells
}

func applyChange(c *model.Cell, ch Change) {
	features := model.NewFeatureSet(ch.Features...)
	switch ch.Action {
	case ChangeAdd:
		c.Features |= features
	case ChangeRemove:
		c.Features &^= features
	}

	for _, t := range ch.Transports {
		if containsTransport(c.Transports, t) {
			continue
		}
		c.Transports = append(c.Transports, t)
	}

	if strings.TrimSpace(ch.CharChange) != "" {
		c.Char = ch.CharChange
	}
	if strings.TrimSpace(ch.Color) != "" {
		c.Color = ch.Color
	}
	if strings.TrimSpace(ch.Name) != "" {
		c.Name = ch.Name
	}
}

func containsTransport(ts []model.Transport, t model.Transport) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

// LoadChanges reads every *.json change record in dir, ordered by file name.
func LoadChanges(dir string) ([]Change, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing changes: %w", err)
	}
	sort.Strings(matches)

	changes := make([]Change, 0, len(matches))
	for _, path := range matches {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading change %s: %w", path, err)
		}
		var ch Change
		if err := json.Unmarshal(raw, &ch); err != nil {
			return nil, fmt.Errorf("parsing change %s: %w", path, err)
		}
		changes = append(changes, ch)
	}

	slog.Info("loaded map changes", "dir", dir, "count", len(changes))
	return changes, nil
}
