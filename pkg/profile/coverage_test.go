package profile

import (
	"errors"
	"math/rand"
	"testing"
)

func TestReconcile(t *testing.T) {
	u := MorphUnclassified
	tests := []struct {
		name     string
		n        int
		named    []Run
		expected []Run
	}{
		{
			name:     "gap between riffle and pool",
			n:        5,
			named:    []Run{{MorphRiffle, 0, 2}, {MorphPool, 3, 5}},
			expected: []Run{{MorphRiffle, 0, 2}, {u, 2, 3}, {MorphPool, 3, 5}},
		},
		{
			name:     "no morphology at all",
			n:        4,
			named:    nil,
			expected: []Run{{u, 0, 4}},
		},
		{
			name:     "empty table",
			n:        0,
			named:    nil,
			expected: []Run{},
		},
		{
			name:     "leading and trailing gaps",
			n:        8,
			named:    []Run{{MorphRun, 2, 4}, {MorphGlide, 4, 6}},
			expected: []Run{{u, 0, 2}, {MorphRun, 2, 4}, {MorphGlide, 4, 6}, {u, 6, 8}},
		},
		{
			name:     "full coverage needs no unclassified",
			n:        6,
			named:    []Run{{MorphPool, 3, 6}, {MorphRiffle, 0, 3}},
			expected: []Run{{MorphRiffle, 0, 3}, {MorphPool, 3, 6}},
		},
		{
			name:     "single shot at each boundary",
			n:        5,
			named:    []Run{{MorphRiffle, 1, 4}},
			expected: []Run{{u, 0, 1}, {MorphRiffle, 1, 4}, {u, 4, 5}},
		},
		{
			name:     "supplied unclassified runs are rebuilt",
			n:        4,
			named:    []Run{{u, 0, 4}, {MorphPool, 1, 2}},
			expected: []Run{{u, 0, 1}, {MorphPool, 1, 2}, {u, 2, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reconcile(tt.n, tt.named)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sameRuns(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			if err := CheckPartition(tt.n, got); err != nil {
				t.Errorf("partition check failed: %v", err)
			}
		})
	}
}

func TestReconcileRejectsOverlap(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		named []Run
	}{
		{"different labels", 6, []Run{{MorphRiffle, 0, 3}, {MorphPool, 2, 5}}},
		{"contained run", 10, []Run{{MorphPool, 0, 8}, {MorphRun, 3, 4}}},
		{"same start", 5, []Run{{MorphGlide, 1, 2}, {MorphRun, 1, 3}}},
		{"same label", 5, []Run{{MorphRun, 0, 3}, {MorphRun, 1, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reconcile(tt.n, tt.named)
			if !errors.Is(err, ErrInconsistent) {
				t.Fatalf("expected ErrInconsistent, got %v", err)
			}
			var overlap *OverlapError
			if !errors.As(err, &overlap) {
				t.Fatalf("expected *OverlapError, got %T", err)
			}
		})
	}
}

func TestReconcileRejectsOutOfRange(t *testing.T) {
	for _, r := range []Run{{MorphPool, -1, 2}, {MorphPool, 2, 2}, {MorphPool, 3, 7}} {
		if _, err := Reconcile(5, []Run{r}); !errors.Is(err, ErrInconsistent) {
			t.Errorf("run %v: expected ErrInconsistent, got %v", r, err)
		}
	}
}

func TestUnclassified(t *testing.T) {
	got, err := Unclassified(5, []Run{{MorphRiffle, 0, 2}, {MorphPool, 3, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Run{{MorphUnclassified, 2, 3}}
	if !sameRuns(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestUnclassifiedFullCoverage(t *testing.T) {
	got, err := Unclassified(4, []Run{{MorphRiffle, 0, 2}, {MorphPool, 2, 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected an empty non-nil slice, got %#v", got)
	}
}

func TestCheckPartition(t *testing.T) {
	if err := CheckPartition(3, []Run{{MorphPool, 0, 2}}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("expected a gap to fail, got %v", err)
	}
	if err := CheckPartition(3, []Run{{MorphPool, 0, 2}, {MorphRun, 1, 3}}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("expected an overlap to fail, got %v", err)
	}
	if err := CheckPartition(0, nil); err != nil {
		t.Errorf("expected an empty table to pass, got %v", err)
	}
}

// TestReconcilePartitionLaw labels random rows with at most one morphology
// each and checks that the reconciled runs cover every row exactly once
// while keeping every named run intact.
func TestReconcilePartitionLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 300; trial++ {
		n := rng.Intn(40)
		labels := make([]int, n) // -1 means unclassified
		for i := range labels {
			labels[i] = rng.Intn(len(NamedMorphologies)+1) - 1
		}

		var named []Run
		for k, label := range NamedMorphologies {
			named = append(named, ExtractRuns(n, label, func(i int) bool { return labels[i] == k })...)
		}

		runs, err := Reconcile(n, named)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		if err := CheckPartition(n, runs); err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		for k := 1; k < len(runs); k++ {
			if runs[k].Start != runs[k-1].End {
				t.Fatalf("trial %d: runs not contiguous at %v, %v", trial, runs[k-1], runs[k])
			}
		}

		kept := 0
		for _, r := range runs {
			if r.Label == MorphUnclassified {
				for i := r.Start; i < r.End; i++ {
					if labels[i] != -1 {
						t.Fatalf("trial %d: classified row %d marked unclassified", trial, i)
					}
				}
				continue
			}
			kept++
		}
		if kept != len(named) {
			t.Fatalf("trial %d: kept %d named runs of %d", trial, kept, len(named))
		}
	}
}
