// Package units holds the display constants for metric and imperial surveys.
package units

// Dict is a fixed set of unit labels and constants used when presenting
// survey results. It never affects how a profile is computed.
type Dict struct {
	LengthUnit    string
	AreaUnit      string
	VolumeUnit    string
	DischargeUnit string
	VelocityUnit  string
	Gravity       float64 // gravitational acceleration in LengthUnit/s²
	WaterDensity  float64 // mass of water per VolumeUnit
}

// Metric is used when a survey is recorded in meters
var Metric = Dict{
	LengthUnit:    "m",
	AreaUnit:      "m²",
	VolumeUnit:    "m³",
	DischargeUnit: "cms",
	VelocityUnit:  "m/s",
	Gravity:       9.80665,
	WaterDensity:  1000,
}

// Imperial is used when a survey is recorded in feet
var Imperial = Dict{
	LengthUnit:    "ft",
	AreaUnit:      "ft²",
	VolumeUnit:    "ft³",
	DischargeUnit: "cfs",
	VelocityUnit:  "ft/s",
	Gravity:       32.174,
	WaterDensity:  1.94,
}

// For selects the dictionary for a survey
func For(metric bool) Dict {
	if metric {
		return Metric
	}
	return Imperial
}

// Label looks up a unit string by key, e.g. "lengthUnit"
func (d Dict) Label(key string) (string, bool) {
	switch key {
	case "lengthUnit":
		return d.LengthUnit, true
	case "areaUnit":
		return d.AreaUnit, true
	case "volumeUnit":
		return d.VolumeUnit, true
	case "dischargeUnit":
		return d.DischargeUnit, true
	case "velocityUnit":
		return d.VelocityUnit, true
	}
	return "", false
}

// System names the unit system, "metric" or "imperial"
func (d Dict) System() string {
	if d.LengthUnit == Metric.LengthUnit {
		return "metric"
	}
	return "imperial"
}
