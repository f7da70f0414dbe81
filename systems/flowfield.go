package systems

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a lookup falls outside the generated grid.
var ErrOutOfRange = errors.New("point outside flow field")

// FlowField is an immutable grid of direction angles covering the surface.
// A new FlowField is generated whenever the surface size or shaping changes;
// existing snapshots are never modified, so readers always see a whole grid.
type FlowField struct {
	values     []float64 // row-major, index = row*cols + col
	cols, rows int
	cellSize   float64
	width      float64
	height     float64
	zoom       float64
	curve      float64
	generation uint64
}

// GenerateFlowField builds the angle grid for a surface of the given size.
// Each cell holds (sin(col*zoom) + cos(row*zoom)) * curve.
// Non-positive dimensions or cell size produce an empty grid.
func GenerateFlowField(width, height, cellSize, zoom, curve float64) *FlowField {
	f := &FlowField{
		cellSize: cellSize,
		width:    width,
		height:   height,
		zoom:     zoom,
		curve:    curve,
	}

	if cellSize > 0 {
		f.cols = gridCount(width, cellSize)
		f.rows = gridCount(height, cellSize)
	}

	f.values = make([]float64, 0, f.cols*f.rows)
	for y := 0; y < f.rows; y++ {
		for x := 0; x < f.cols; x++ {
			angle := (math.Sin(float64(x)*zoom) + math.Cos(float64(y)*zoom)) * curve
			f.values = append(f.values, angle)
		}
	}

	return f
}

// gridCount returns floor(length/cellSize) clamped to zero.
func gridCount(length, cellSize float64) int {
	n := math.Floor(length / cellSize)
	if !(n > 0) {
		return 0
	}
	return int(n)
}

// AngleAt returns the angle of the cell containing (x, y).
// The lookup uses the flat row-major index and fails with ErrOutOfRange
// when that index is outside the grid.
func (f *FlowField) AngleAt(x, y float64) (float64, error) {
	if f.Empty() {
		return 0, fmt.Errorf("angle at (%g, %g): %w", x, y, ErrOutOfRange)
	}

	col := int(math.Floor(x / f.cellSize))
	row := int(math.Floor(y / f.cellSize))
	idx := row*f.cols + col
	if idx < 0 || idx >= len(f.values) {
		return 0, fmt.Errorf("angle at (%g, %g) index %d of %d: %w", x, y, idx, len(f.values), ErrOutOfRange)
	}
	return f.values[idx], nil
}

// Sample returns the angle nearest to (x, y), clamping the column and row
// into the grid independently. An empty grid yields 0 (no turn).
func (f *FlowField) Sample(x, y float64) float64 {
	if f.Empty() {
		return 0
	}

	col := clampCell(x/f.cellSize, f.cols)
	row := clampCell(y/f.cellSize, f.rows)
	return f.values[row*f.cols+col]
}

// clampCell floors v and clamps it into [0, n).
func clampCell(v float64, n int) int {
	v = math.Floor(v)
	if !(v >= 0) { // also catches NaN
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(v)
}

// Empty reports whether the grid has no cells.
func (f *FlowField) Empty() bool {
	return f == nil || len(f.values) == 0
}

// Cols returns the number of grid columns.
func (f *FlowField) Cols() int { return f.cols }

// Rows returns the number of grid rows.
func (f *FlowField) Rows() int { return f.rows }

// Len returns the number of cells (cols*rows).
func (f *FlowField) Len() int { return len(f.values) }

// CellSize returns the side length of one cell.
func (f *FlowField) CellSize() float64 { return f.cellSize }

// Width returns the surface width the grid was generated for.
func (f *FlowField) Width() float64 { return f.width }

// Height returns the surface height the grid was generated for.
func (f *FlowField) Height() float64 { return f.height }

// Zoom returns the spatial frequency used to generate the grid.
func (f *FlowField) Zoom() float64 { return f.zoom }

// Curve returns the amplitude multiplier used to generate the grid.
func (f *FlowField) Curve() float64 { return f.curve }

// Generation returns the sequence number assigned by the owning system.
func (f *FlowField) Generation() uint64 { return f.generation }

// Values returns a copy of the row-major angle grid.
func (f *FlowField) Values() []float64 {
	out := make([]float64, len(f.values))
	copy(out, f.values)
	return out
}
