package profile

import "fmt"

// Run is a half-open row interval [Start, End) carrying one morphology label
type Run struct {
	Label Morphology
	Start int
	End   int
}

// Len returns the number of rows covered
func (r Run) Len() int {
	return r.End - r.Start
}

func (r Run) String() string {
	return fmt.Sprintf("%s[%d,%d)", r.Label, r.Start, r.End)
}

// ExtractRuns scans rows 0..n-1 and returns every maximal stretch of rows
// for which member holds, in ascending order. The result is empty, never
// nil, when no row is a member.
func ExtractRuns(n int, label Morphology, member func(i int) bool) []Run {
	runs := []Run{}

	open := false
	start := 0
	for i := 0; i < n; i++ {
		in := member(i)
		switch {
		case in && !open:
			open = true
			start = i
		case !in && open:
			open = false
			runs = append(runs, Run{Label: label, Start: start, End: i})
		}
	}
	if open {
		runs = append(runs, Run{Label: label, Start: start, End: n})
	}

	return runs
}

// ColumnRuns extracts the runs of a tag column. A row carries the tag
// when its value is not missing.
func ColumnRuns(values []float64, label Morphology) []Run {
	return ExtractRuns(len(values), label, func(i int) bool {
		return !IsMissing(values[i])
	})
}
