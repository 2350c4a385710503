// Package profile models a longitudinal stream survey and extracts its
// morphological features (riffles, runs, pools, glides and the
// unclassified stretches between them).
package profile

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/chrissnell/streamprofile/pkg/units"
)

// State is the derivation stage a profile's table has reached
type State int

const (
	StateRaw State = iota
	StateStationed
	StateFilled
	StateClassified
)

func (s State) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateStationed:
		return "stationed"
	case StateFilled:
		return "filled"
	case StateClassified:
		return "classified"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Profile
type Option func(*Profile)

// WithName sets the profile name used in feature names
func WithName(name string) Option {
	return func(p *Profile) {
		p.name = name
	}
}

// WithLogger sets the logger used to trace derivation
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Profile) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Profile is a longitudinal stream profile together with the features
// derived from it. It is immutable once New returns.
type Profile struct {
	name        string
	metric      bool
	units       units.Dict
	logger      *zap.SugaredLogger
	table       *Table
	state       State
	precomputed bool
	runs        []Run
	features    map[Morphology][]*Feature
}

// New validates a record table and derives its stationing, filled
// elevation series and morphology runs. A table that already carries a
// Station column is taken as precomputed: nothing is re-derived and the
// features come straight from the tag columns it holds.
func New(t *Table, metric bool, opts ...Option) (*Profile, error) {
	p := &Profile{
		metric: metric,
		units:  units.For(metric),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := Validate(t); err != nil {
		return nil, err
	}

	if t.Has(ColStation) {
		if err := validateStations(t); err != nil {
			return nil, err
		}
		p.precomputed = true
		p.table = t
		p.runs = tagRuns(t, Morphologies)
		p.logger.Debugw("using precomputed profile", "profile", p.String(), "rows", t.Len())
	} else {
		table, runs, err := p.derive(t)
		if err != nil {
			return nil, fmt.Errorf("deriving profile %s: %w", p, err)
		}
		p.table = table
		p.runs = runs
	}

	features, err := p.materialize()
	if err != nil {
		return nil, err
	}
	p.features = features

	return p, nil
}

// Validate checks that the mandatory columns are present and complete
func Validate(t *Table) error {
	verr := &ValidationError{}
	for _, name := range BasicColumns {
		if t == nil || !t.Has(name) {
			verr.Missing = append(verr.Missing, name)
			continue
		}
		for i := 0; i < t.Len(); i++ {
			if IsMissing(t.Value(name, i)) {
				verr.Incomplete = append(verr.Incomplete, name)
				break
			}
		}
	}

	if len(verr.Missing) > 0 || len(verr.Incomplete) > 0 {
		return verr
	}
	return nil
}

// validateStations checks a supplied Station column: complete and never
// decreasing downstream
func validateStations(t *Table) error {
	verr := &ValidationError{}
	prev := math.Inf(-1)
	for i := 0; i < t.Len(); i++ {
		s := t.Value(ColStation, i)
		if IsMissing(s) {
			verr.Incomplete = append(verr.Incomplete, ColStation)
			return verr
		}
		if s < prev {
			verr.Unordered = append(verr.Unordered, ColStation)
			return verr
		}
		prev = s
	}
	return nil
}

// Derive runs the full pipeline on t regardless of any Station or
// Unclassified column it already carries, returning the classified table
// and the combined runs.
func Derive(t *Table) (*Table, []Run, error) {
	if err := Validate(t); err != nil {
		return nil, nil, err
	}
	// Derived columns are rebuilt, and appended in pipeline order
	t = t.Without(ColStation).Without(string(MorphUnclassified))
	p := &Profile{logger: zap.NewNop().Sugar()}
	return p.derive(t)
}

func (p *Profile) derive(t *Table) (*Table, []Run, error) {
	p.state = StateRaw

	stationed, err := withStations(t)
	if err != nil {
		return nil, nil, err
	}
	p.advance(StateStationed)

	filled, err := withFilledColumns(stationed)
	if err != nil {
		return nil, nil, err
	}
	p.advance(StateFilled)

	classified, runs, err := withUnclassified(filled)
	if err != nil {
		return nil, nil, err
	}
	p.advance(StateClassified)

	return classified, runs, nil
}

func (p *Profile) advance(s State) {
	p.logger.Debugw("profile stage complete", "profile", p.String(), "from", p.state, "to", s)
	p.state = s
}

// withStations adds the Station column computed from the planform coordinates
func withStations(t *Table) (*Table, error) {
	xs, _ := t.Column(ColX)
	ys, _ := t.Column(ColY)
	stations, err := Stationing(xs, ys)
	if err != nil {
		return nil, err
	}
	return t.With(ColStation, stations)
}

// withFilledColumns interpolates every fill column present in t
func withFilledColumns(t *Table) (*Table, error) {
	stations, _ := t.Column(ColStation)
	for _, name := range FillColumns {
		values, ok := t.Column(name)
		if !ok {
			continue
		}
		filled, err := Interpolate(stations, values)
		if err != nil {
			return nil, fmt.Errorf("filling %s: %w", name, err)
		}
		if t, err = t.With(name, filled); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// withUnclassified reconciles the named tag columns and writes the
// Unclassified column: the thalweg elevation on rows no named
// morphology claims, missing elsewhere.
func withUnclassified(t *Table) (*Table, []Run, error) {
	runs, err := Reconcile(t.Len(), tagRuns(t, NamedMorphologies))
	if err != nil {
		return nil, nil, err
	}
	if err := CheckPartition(t.Len(), runs); err != nil {
		return nil, nil, err
	}

	unclassified := make([]float64, t.Len())
	for i := range unclassified {
		unclassified[i] = Missing
	}
	for _, r := range runs {
		if r.Label != MorphUnclassified {
			continue
		}
		for i := r.Start; i < r.End; i++ {
			unclassified[i] = t.Value(ColThalweg, i)
		}
	}

	classified, err := t.With(string(MorphUnclassified), unclassified)
	if err != nil {
		return nil, nil, err
	}
	return classified, runs, nil
}

// tagRuns extracts the runs of every listed label present in t, sorted by start
func tagRuns(t *Table, labels []Morphology) []Run {
	var runs []Run
	for _, label := range labels {
		values, ok := t.Column(string(label))
		if !ok {
			continue
		}
		runs = append(runs, ColumnRuns(values, label)...)
	}
	sortRuns(runs)
	return runs
}

func sortRuns(runs []Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Start != runs[j].Start {
			return runs[i].Start < runs[j].Start
		}
		return runs[i].Label.rank() < runs[j].Label.rank()
	})
}

// materialize slices one Feature per run. Sequence numbers count the
// runs of each label in row order.
func (p *Profile) materialize() (map[Morphology][]*Feature, error) {
	features := make(map[Morphology][]*Feature)
	for _, r := range p.runs {
		rows, err := p.table.Slice(r.Start, r.End)
		if err != nil {
			return nil, err
		}
		seq := len(features[r.Label])
		features[r.Label] = append(features[r.Label], &Feature{
			label: r.Label,
			seq:   seq,
			name:  fmt.Sprintf("%s, %s %d", p, r.Label, seq),
			run:   r,
			table: rows,
		})
	}
	return features, nil
}

func (p *Profile) String() string {
	if p.name != "" {
		return p.name
	}
	return "UNNAMED"
}

// Name returns the profile name, empty if none was given
func (p *Profile) Name() string {
	return p.name
}

// Metric reports whether the survey is in metric units
func (p *Profile) Metric() bool {
	return p.metric
}

// Units returns the unit labels for the survey
func (p *Profile) Units() units.Dict {
	return p.units
}

// Table returns the augmented record table
func (p *Profile) Table() *Table {
	return p.table
}

// State returns the derivation stage reached during construction
func (p *Profile) State() State {
	return p.state
}

// Precomputed reports whether the input already carried a Station column
func (p *Profile) Precomputed() bool {
	return p.precomputed
}

// Len returns the number of survey shots
func (p *Profile) Len() int {
	return p.table.Len()
}

// Length returns the total stationed length of the profile
func (p *Profile) Length() float64 {
	if p.table.Len() == 0 {
		return 0
	}
	return p.table.Value(ColStation, p.table.Len()-1)
}

// Runs returns every run sorted by starting row
func (p *Profile) Runs() []Run {
	return append([]Run(nil), p.runs...)
}

// Features returns the features of one label in row order. The result
// is empty when the label's column was not part of the survey.
func (p *Profile) Features(label Morphology) []*Feature {
	return append([]*Feature{}, p.features[label]...)
}

// AllFeatures returns every feature sorted by starting row
func (p *Profile) AllFeatures() []*Feature {
	var all []*Feature
	for _, label := range labelsOf(p.features) {
		all = append(all, p.features[label]...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].run.Start < all[j].run.Start
	})
	return all
}

// labelsOf returns the map keys in label order
func labelsOf(features map[Morphology][]*Feature) []Morphology {
	labels := make([]Morphology, 0, len(features))
	for label := range features {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].rank() != labels[j].rank() {
			return labels[i].rank() < labels[j].rank()
		}
		return labels[i] < labels[j]
	})
	return labels
}
