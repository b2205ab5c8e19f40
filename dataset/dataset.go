package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmpty is returned when a dataset has no points.
	ErrEmpty = errors.New("dataset is empty")

	// ErrNonFinite is returned when a coordinate is NaN or ±Inf.
	ErrNonFinite = errors.New("non-finite coordinate")
)

// ErrDimensionMismatch indicates a point whose length differs from the first point.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("point %d: dimension mismatch: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrInvalidDimension indicates a dataset whose points have no coordinates.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// Point is a fixed-length coordinate vector.
type Point []float64

// Clone returns a copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Dataset is an ordered sequence of points of uniform dimension.
type Dataset []Point

// Len returns the number of points.
func (ds Dataset) Len() int { return len(ds) }

// Dim returns the dimension of the first point, or 0 for an empty dataset.
func (ds Dataset) Dim() int {
	if len(ds) == 0 {
		return 0
	}
	return len(ds[0])
}

// Validate checks that ds is non-empty, has dimension > 0, that every point
// has the same dimension and that every coordinate is finite.
// It returns the dimension on success.
func (ds Dataset) Validate() (int, error) {
	if len(ds) == 0 {
		return 0, ErrEmpty
	}

	dim := len(ds[0])
	if dim == 0 {
		return 0, &ErrInvalidDimension{Dimension: dim}
	}

	for i, p := range ds {
		if len(p) != dim {
			return 0, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(p)}
		}
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("point %d coordinate %d: %w", i, j, ErrNonFinite)
			}
		}
	}

	return dim, nil
}
