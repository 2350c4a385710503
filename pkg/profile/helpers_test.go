package profile

import "math"

const epsilon = 1e-9

// sameFloats treats two missing values as equal
func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if IsMissing(a[i]) || IsMissing(b[i]) {
			if IsMissing(a[i]) != IsMissing(b[i]) {
				return false
			}
			continue
		}
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func sameRuns(a, b []Run) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tagColumn returns an n-row tag column holding value on the given rows
func tagColumn(n int, value float64, rows ...int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = Missing
	}
	for _, r := range rows {
		col[r] = value
	}
	return col
}

// straightTable returns an n-shot table along the x axis with one unit between shots
func straightTable(n int) map[string][]float64 {
	xs := make([]float64, n)
	ys := make([]float64, n)
	thw := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
		thw[i] = 100 - 0.1*float64(i)
	}
	return map[string][]float64{ColX: xs, ColY: ys, ColThalweg: thw}
}
