package data

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/udisondev/buttermap/internal/model"
)

// ErrInvalidMap is returned when a map document does not match the map file schema.
var ErrInvalidMap = errors.New("invalid map file")

//go:embed schema/map.schema.json
var mapSchemaJSON string

var mapSchema = jsonschema.MustCompileString("map.schema.json", mapSchemaJSON)

// mapDocument is the on-disk map format.
type mapDocument struct {
	Coordinates []fileCell `json:"coordinates"`
}

type fileCell struct {
	X          int               `json:"x"`
	Y          int               `json:"y"`
	Z          int               `json:"z"`
	Char       string            `json:"char"`
	Color      string            `json:"color,omitempty"`
	Name       string            `json:"name,omitempty"`
	Features   []int             `json:"features,omitempty"`
	Transports []model.Transport `json:"transports,omitempty"`
	Area       *model.Area       `json:"area,omitempty"`
}

// IsCompressed reports whether path names a zstd-compressed map file.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zst")
}

// LoadMapFile reads a map file. Files ending in .zst are decompressed first.
func LoadMapFile(path string) ([]model.Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	cells, err := DecodeMap(r)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("loaded map file", "path", path, "cells", len(cells))
	return cells, nil
}

// DecodeMap validates a JSON map document against the map schema and
// converts it into cells, preserving document order.
func DecodeMap(r io.Reader) ([]model.Cell, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMap, err)
	}
	if err := mapSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMap, err)
	}

	var doc mapDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMap, err)
	}

	cells := make([]model.Cell, len(doc.Coordinates))
	for i, fc := range doc.Coordinates {
		cells[i] = fc.toCell()
	}
	return cells, nil
}

// WriteMapFile writes cells in the map file format. Paths ending in .zst are compressed.
func WriteMapFile(path string, cells []model.Cell) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating map file: %w", err)
	}
	defer f.Close()

	if !IsCompressed(path) {
		return EncodeMap(f, cells)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := EncodeMap(enc, cells); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// EncodeMap writes cells as a JSON map document.
func EncodeMap(w io.Writer, cells []model.Cell) error {
	doc := mapDocument{Coordinates: make([]fileCell, len(cells))}
	for i := range cells {
		doc.Coordinates[i] = fromCell(&cells[i])
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding map: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (fc fileCell) toCell() model.Cell {
	c := model.Cell{
		Coordinate: model.NewCoordinate(fc.X, fc.Y, fc.Z),
		Char:       fc.Char,
		Color:      fc.Color,
		Name:       fc.Name,
		Transports: fc.Transports,
	}
	// значения уже проверены схемой
	for _, f := range fc.Features {
		c.Features = c.Features.Add(model.Feature(f))
	}
	if fc.Area != nil {
		area := *fc.Area
		c.Area = &area
	}
	return c
}

func fromCell(c *model.Cell) fileCell {
	fc := fileCell{
		X:          c.X,
		Y:          c.Y,
		Z:          c.Z,
		Char:       c.Char,
		Color:      c.Color,
		Name:       c.Name,
		Transports: c.Transports,
		Area:       c.Area,
	}
	for _, f := range c.Features.Features() {
		fc.Features = append(fc.Features, int(f))
	}
	return fc
}
