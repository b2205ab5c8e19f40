package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/resource"
)

var (
	// ErrEmptyDataset is returned when the dataset has no points.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrTooManyClusters is returned when k exceeds the number of points.
	ErrTooManyClusters = errors.New("k exceeds number of points")

	// ErrInvalidMaxIterations is returned when the iteration cap is not positive.
	ErrInvalidMaxIterations = errors.New("max iterations must be positive")

	// ErrNonFiniteValue is returned when a coordinate is NaN or ±Inf.
	ErrNonFiniteValue = errors.New("non-finite coordinate")

	// ErrInsufficientMemory is returned when the resource controller cannot
	// reserve the working set of a run.
	ErrInsufficientMemory = errors.New("insufficient memory for clustering run")
)

// ErrDimensionMismatch indicates a point whose dimension differs from the
// first point of the dataset.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates points without coordinates.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, dataset.ErrEmpty) {
		return fmt.Errorf("%w: %w", ErrEmptyDataset, err)
	}
	if errors.Is(err, dataset.ErrNonFinite) {
		return fmt.Errorf("%w: %w", ErrNonFiniteValue, err)
	}

	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrInsufficientMemory, err)
	}

	var dm *dataset.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Index: dm.Index, Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var id *dataset.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}

	return err
}
