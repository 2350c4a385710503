package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stationing returns the cumulative planar distance along the path
// described by xs and ys. The first station is always 0.
func Stationing(xs, ys []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("stationing %d x values against %d y values: %w", len(xs), len(ys), ErrLengthMismatch)
	}

	stations := make([]float64, len(xs))
	if len(xs) == 0 {
		return stations, nil
	}

	// stations[i] holds the length of the segment ending at point i until CumSum runs
	for i := 1; i < len(xs); i++ {
		stations[i] = math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1])
	}
	return floats.CumSum(stations, stations), nil
}
