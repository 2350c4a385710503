package profile

// Morphology is a channel-unit classification label
type Morphology string

const (
	MorphRiffle       Morphology = "Riffle"
	MorphRun          Morphology = "Run"
	MorphPool         Morphology = "Pool"
	MorphGlide        Morphology = "Glide"
	MorphUnclassified Morphology = "Unclassified"
)

// Morphologies lists every label in precedence order. Unclassified is last.
var Morphologies = []Morphology{MorphRiffle, MorphRun, MorphPool, MorphGlide, MorphUnclassified}

// NamedMorphologies are the labels recorded in the field; Unclassified is derived from them.
var NamedMorphologies = []Morphology{MorphRiffle, MorphRun, MorphPool, MorphGlide}

var morphColors = map[Morphology]string{
	MorphUnclassified: "black",
	MorphRiffle:       "red",
	MorphRun:          "yellow",
	MorphPool:         "blue",
	MorphGlide:        "green",
}

// Color returns the plotting color for the label
func (m Morphology) Color() string {
	if c, ok := morphColors[m]; ok {
		return c
	}
	return "gray"
}

// Known reports whether m is one of the standard labels
func (m Morphology) Known() bool {
	_, ok := morphColors[m]
	return ok
}

// rank orders labels for tie-breaking; unknown labels sort after the known ones
func (m Morphology) rank() int {
	for i, known := range Morphologies {
		if known == m {
			return i
		}
	}
	return len(Morphologies)
}
