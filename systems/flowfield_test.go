package systems

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateFlowFieldFormula(t *testing.T) {
	const (
		cellSize = 20.0
		zoom     = 0.07
		curve    = 5.0
	)
	f := GenerateFlowField(800, 600, cellSize, zoom, curve)

	if f.Cols() != 40 || f.Rows() != 30 {
		t.Fatalf("expected 40x30 grid, got %dx%d", f.Cols(), f.Rows())
	}

	for y := 0; y < f.Rows(); y++ {
		for x := 0; x < f.Cols(); x++ {
			want := (math.Sin(float64(x)*zoom) + math.Cos(float64(y)*zoom)) * curve

			// Sample from the middle of the cell
			got, err := f.AngleAt(float64(x)*cellSize+cellSize/2, float64(y)*cellSize+cellSize/2)
			if err != nil {
				t.Fatalf("AngleAt cell (%d,%d): %v", x, y, err)
			}
			if got != want {
				t.Fatalf("cell (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestGenerateFlowFieldDeterministic(t *testing.T) {
	a := GenerateFlowField(1280, 720, 20, 0.07, 5)
	b := GenerateFlowField(1280, 720, 20, 0.07, 5)

	av, bv := a.Values(), b.Values()
	if len(av) != len(bv) {
		t.Fatalf("length mismatch: %d vs %d", len(av), len(bv))
	}
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("value %d differs: %v vs %v", i, av[i], bv[i])
		}
	}
}

func TestGenerateFlowFieldDimensions(t *testing.T) {
	testCases := []struct {
		name          string
		width, height float64
		cellSize      float64
		cols, rows    int
	}{
		{"800x600", 800, 600, 20, 40, 30},
		{"400x300", 400, 300, 20, 20, 15},
		{"partial cells floored", 419, 319, 20, 20, 15},
		{"smaller than one cell", 10, 10, 20, 0, 0},
		{"zero cell size", 800, 600, 0, 0, 0},
		{"negative cell size", 800, 600, -20, 0, 0},
		{"negative width", -800, 600, 20, 0, 30},
		{"zero height", 800, 0, 20, 40, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := GenerateFlowField(tc.width, tc.height, tc.cellSize, 0.07, 5)
			if f.Cols() != tc.cols || f.Rows() != tc.rows {
				t.Errorf("expected %dx%d, got %dx%d", tc.cols, tc.rows, f.Cols(), f.Rows())
			}
			if f.Len() != f.Cols()*f.Rows() {
				t.Errorf("expected %d values, got %d", f.Cols()*f.Rows(), f.Len())
			}
		})
	}
}

func TestAngleAtOutOfRange(t *testing.T) {
	f := GenerateFlowField(400, 300, 20, 0.07, 5)

	points := []struct{ x, y float64 }{
		{-1, -1},
		{0, 300},
		{399, 300},
		{0, -20},
	}
	for _, pt := range points {
		if _, err := f.AngleAt(pt.x, pt.y); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("AngleAt(%v, %v): expected ErrOutOfRange, got %v", pt.x, pt.y, err)
		}
	}

	// Last cell is still valid
	if _, err := f.AngleAt(399, 299); err != nil {
		t.Errorf("AngleAt(399, 299): unexpected error %v", err)
	}
}

func TestAngleAtEmptyField(t *testing.T) {
	f := GenerateFlowField(800, 600, 0, 0.07, 5)

	if !f.Empty() {
		t.Fatal("expected empty field")
	}
	if _, err := f.AngleAt(10, 10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange from empty field, got %v", err)
	}
}

func TestSampleClampsToGrid(t *testing.T) {
	f := GenerateFlowField(400, 300, 20, 0.07, 5)

	testCases := []struct {
		name     string
		x, y     float64
		col, row int
	}{
		{"inside", 25, 45, 1, 2},
		{"left of grid", -50, 45, 0, 2},
		{"right of grid", 1000, 45, 19, 2},
		{"above grid", 25, -3, 1, 0},
		{"below grid", 25, 300, 1, 14},
		{"far corner", 1e9, 1e9, 19, 14},
		{"NaN", math.NaN(), math.NaN(), 0, 0},
	}

	values := f.Values()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			want := values[tc.row*f.Cols()+tc.col]
			if got := f.Sample(tc.x, tc.y); got != want {
				t.Errorf("Sample(%v, %v) = %v, want cell (%d,%d) = %v", tc.x, tc.y, got, tc.col, tc.row, want)
			}
		})
	}
}

func TestSampleEmptyFieldIsNoTurn(t *testing.T) {
	f := GenerateFlowField(0, 0, 20, 0.07, 5)
	if got := f.Sample(5, 5); got != 0 {
		t.Errorf("expected 0 from empty field, got %v", got)
	}

	var nilField *FlowField
	if got := nilField.Sample(5, 5); got != 0 {
		t.Errorf("expected 0 from nil field, got %v", got)
	}
}

func TestValuesIsCopy(t *testing.T) {
	f := GenerateFlowField(100, 100, 20, 0.07, 5)
	v := f.Values()
	v[0] = 1234

	if f.Values()[0] == 1234 {
		t.Error("expected Values to return a copy")
	}
}
