package config

import (
	"sort"

	"github.com/san-kum/vipor/internal/orbit"
)

// Preset is a named starting point for a render: model, slider values, orbit
// and duration.
type Preset struct {
	Model   string                  `yaml:"model"`
	Profile string                  `yaml:"profile"`
	Values  []float64               `yaml:"values"`
	Years   float64                 `yaml:"years"`
	Initial orbit.InitialConditions `yaml:"initial"`
}

var Presets = map[string]map[string]Preset{
	"Homogeneous Sphere Potential": {
		"inside": {
			Model: "Homogeneous Sphere Potential", Profile: "spherical-2d", Values: []float64{10}, Years: 14,
			Initial: orbit.InitialConditions{R: 10, Z: 5},
		},
		"outside": {
			Model: "Homogeneous Sphere Potential", Profile: "spherical-2d", Values: []float64{5}, Years: 14,
			Initial: orbit.InitialConditions{R: 20, Z: 5, VT: 60},
		},
	},
	"Plummer Potential": {
		"rosette": {
			Model: "Plummer Potential", Profile: "spherical-2d", Values: []float64{2}, Years: 10,
			Initial: orbit.InitialConditions{R: 12, Z: 3, VT: 120},
		},
		"radial": {
			Model: "Plummer Potential", Profile: "spherical-3d", Values: []float64{1}, Years: 10,
			Initial: orbit.InitialConditions{R: 30},
		},
	},
	"Spherical Shell Potential": {
		"bounce": {
			Model: "Spherical Shell Potential", Profile: "spherical-2d", Values: []float64{20}, Years: 14,
			Initial: orbit.InitialConditions{R: 10, Z: 5, VT: 40},
		},
	},
	"Double Exponential Disk Potential": {
		"midplane": {
			Model: "Double Exponential Disk Potential", Profile: "axisymmetric", Values: []float64{3, 1}, Years: 5,
			Initial: orbit.InitialConditions{R: 8, VT: 150},
		},
		"thick": {
			Model: "Double Exponential Disk Potential", Profile: "axisymmetric", Values: []float64{3, 1}, Years: 5,
			Initial: orbit.InitialConditions{R: 8, Z: 2, VT: 120, VZ: 20},
		},
	},
	"Power Triaxial Potential": {
		"box": {
			Model: "Power Triaxial Potential", Profile: "triaxial", Values: []float64{1, 1.5, 0.75}, Years: 5,
			Initial: orbit.InitialConditions{R: 10, Z: 5},
		},
		"tube": {
			Model: "Power Triaxial Potential", Profile: "triaxial", Values: []float64{1, 1.2, 0.9}, Years: 5,
			Initial: orbit.InitialConditions{R: 10, Z: 1, VT: 150},
		},
	},
}

func GetPreset(model, preset string) (Preset, bool) {
	modelPresets, ok := Presets[model]
	if !ok {
		return Preset{}, false
	}
	p, ok := modelPresets[preset]
	return p, ok
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
