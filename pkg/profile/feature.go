package profile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Feature is one morphological unit cut out of a profile. It owns a copy
// of its rows, so it is unaffected by anything done to the parent table.
type Feature struct {
	label Morphology
	seq   int
	name  string
	run   Run
	table *Table
}

// Label returns the morphology of the feature
func (f *Feature) Label() Morphology {
	return f.label
}

// Seq returns the position of the feature among those of its label
func (f *Feature) Seq() int {
	return f.seq
}

// Name returns the display name, e.g. "Reach 2, Pool 3"
func (f *Feature) Name() string {
	return f.name
}

func (f *Feature) String() string {
	return f.name
}

// Run returns the parent row range the feature was cut from
func (f *Feature) Run() Run {
	return f.run
}

// Table returns the feature's rows
func (f *Feature) Table() *Table {
	return f.table
}

// Summary describes the extent and thalweg of a feature
type Summary struct {
	Shots        int
	StartStation float64
	EndStation   float64
	Length       float64
	MeanThalweg  float64
	MinThalweg   float64
	MaxThalweg   float64
	ThalwegDrop  float64 // thalweg at the first shot minus thalweg at the last
}

// Summary computes the feature's extent and thalweg statistics
func (f *Feature) Summary() Summary {
	s := Summary{Shots: f.table.Len()}
	if s.Shots == 0 {
		return s
	}

	thalweg, _ := f.table.Column(ColThalweg)
	s.StartStation = f.table.Value(ColStation, 0)
	s.EndStation = f.table.Value(ColStation, s.Shots-1)
	s.Length = s.EndStation - s.StartStation
	s.MeanThalweg = stat.Mean(thalweg, nil)
	s.MinThalweg = floats.Min(thalweg)
	s.MaxThalweg = floats.Max(thalweg)
	s.ThalwegDrop = thalweg[0] - thalweg[s.Shots-1]
	return s
}
