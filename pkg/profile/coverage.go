package profile

import (
	"fmt"
	"sort"
)

// Reconcile merges the named-morphology runs of an n-row table into one
// sorted run list partitioning [0, n). Rows no named run claims are
// covered by synthesized Unclassified runs, including the stretches
// before the first run and after the last one. Runs labeled Unclassified
// in the input are ignored and rebuilt. Overlapping runs are rejected
// with an *OverlapError.
func Reconcile(n int, named []Run) ([]Run, error) {
	sorted, err := sortNamed(n, named)
	if err != nil {
		return nil, err
	}

	combined := make([]Run, 0, 2*len(sorted)+1)

	// cursor is the first row not yet covered
	cursor := 0
	for _, r := range sorted {
		if r.Start > cursor {
			combined = append(combined, Run{Label: MorphUnclassified, Start: cursor, End: r.Start})
		}
		combined = append(combined, r)
		cursor = r.End
	}
	if cursor < n {
		combined = append(combined, Run{Label: MorphUnclassified, Start: cursor, End: n})
	}

	return combined, nil
}

// Unclassified returns only the runs Reconcile synthesizes for the gaps.
// The result is empty, never nil, when the named runs cover every row.
func Unclassified(n int, named []Run) ([]Run, error) {
	combined, err := Reconcile(n, named)
	if err != nil {
		return nil, err
	}

	gaps := []Run{}
	for _, r := range combined {
		if r.Label == MorphUnclassified {
			gaps = append(gaps, r)
		}
	}
	return gaps, nil
}

// sortNamed drops Unclassified runs, checks bounds, sorts by start and
// rejects any overlap.
func sortNamed(n int, runs []Run) ([]Run, error) {
	sorted := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Label == MorphUnclassified {
			continue
		}
		if r.Start < 0 || r.Start >= r.End || r.End > n {
			return nil, fmt.Errorf("run %s out of range for %d rows: %w", r, n, ErrInconsistent)
		}
		sorted = append(sorted, r)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Label.rank() < sorted[j].Label.rank()
	})

	// Runs before i are disjoint once checked, so the predecessor always
	// reaches furthest.
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &OverlapError{First: sorted[i-1], Second: sorted[i]}
		}
	}

	return sorted, nil
}

// CheckPartition verifies that runs cover every row of [0, n) exactly once
func CheckPartition(n int, runs []Run) error {
	counts := make([]int, n)
	for _, r := range runs {
		if r.Start < 0 || r.Start >= r.End || r.End > n {
			return fmt.Errorf("run %s out of range for %d rows: %w", r, n, ErrInconsistent)
		}
		for i := r.Start; i < r.End; i++ {
			counts[i]++
		}
	}

	for i, c := range counts {
		if c != 1 {
			return fmt.Errorf("row %d covered %d times: %w", i, c, ErrInconsistent)
		}
	}
	return nil
}
