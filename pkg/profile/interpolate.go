package profile

import "fmt"

// Interpolate fills the missing values in a series indexed by station.
// Each gap bounded by known values on both sides is filled linearly
// between the nearest known neighbors. Gaps at either end have no
// neighbor on one side and stay missing. The input is left untouched.
func Interpolate(stations, values []float64) ([]float64, error) {
	if len(stations) != len(values) {
		return nil, fmt.Errorf("interpolating %d values over %d stations: %w", len(values), len(stations), ErrLengthMismatch)
	}

	filled := append([]float64(nil), values...)

	prev := -1 // index of the last known value
	for i, v := range values {
		if IsMissing(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			fillGap(stations, filled, prev, i)
		}
		prev = i
	}

	return filled, nil
}

// fillGap interpolates filled[lo+1:hi] from the known values at lo and hi
func fillGap(stations, filled []float64, lo, hi int) {
	v0, v1 := filled[lo], filled[hi]
	s0, s1 := stations[lo], stations[hi]
	span := s1 - s0

	for j := lo + 1; j < hi; j++ {
		var frac float64
		if span > 0 {
			frac = (stations[j] - s0) / span
		} else {
			// Neighbors share a station; fall back to index order.
			frac = float64(j-lo) / float64(hi-lo)
		}
		filled[j] = v0 + (v1-v0)*frac
	}
}
