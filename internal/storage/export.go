package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/vipor/internal/orbit"
)

// ExportData is the JSON form of a run. Positions are in kpc, velocities in
// km/s and times in Gyr.
type ExportData struct {
	RunMetadata
	Times []float64 `json:"times_gyr"`
	R     []float64 `json:"r_kpc"`
	Z     []float64 `json:"z_kpc"`
	X     []float64 `json:"x_kpc"`
	Y     []float64 `json:"y_kpc"`
	VR    []float64 `json:"vr_kms"`
	VT    []float64 `json:"vt_kms"`
	VZ    []float64 `json:"vz_kms"`
}

func NewExportData(meta RunMetadata, tr *orbit.Trajectory) ExportData {
	return ExportData{
		RunMetadata: meta,
		Times:       tr.Times,
		R:           tr.R(),
		Z:           tr.Z(),
		X:           tr.X(),
		Y:           tr.Y(),
		VR:          tr.VR(),
		VT:          tr.VT(),
		VZ:          tr.VZ(),
	}
}

func ExportJSON(w io.Writer, meta RunMetadata, tr *orbit.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, tr))
}
