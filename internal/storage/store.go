package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/units"
)

var ErrNotFound = errors.New("storage: run not found")

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"t_gyr", "x_kpc", "y_kpc", "z_kpc", "vx_kms", "vy_kms", "vz_kms"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is everything needed to rebuild the potential and repeat the
// integration.
type RunMetadata struct {
	ID         string                  `json:"id"`
	Model      string                  `json:"model"`
	Values     []float64               `json:"values"`
	SpiralArms int                     `json:"spiral_arms,omitempty"`
	DarkMatter bool                    `json:"dark_matter,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
	Years      float64                 `json:"years"`
	Initial    orbit.InitialConditions `json:"initial"`
	Integrator string                  `json:"integrator"`
	Profile    string                  `json:"profile"`
	Samples    int                     `json:"samples"`
	Metrics    map[string]float64      `json:"metrics"`
}

// Slug is the file-name form of a model name: "Plummer Potential" becomes
// "plummer".
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, " potential")
	return strings.Join(strings.Fields(s), "-")
}

// Save writes meta and the trajectory to a new run directory and returns the
// run ID. The ID and timestamp fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, tr *orbit.Trajectory) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", Slug(meta.Model), now.UnixNano())
	meta.Timestamp = now
	meta.Samples = tr.Len()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, tr); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes one row per sample in kpc, km/s and Gyr.
func WriteCSV(w io.Writer, tr *orbit.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, x := range tr.States {
		row := []string{
			format(tr.Times[i]),
			format(units.NaturalToKpc(x[0])),
			format(units.NaturalToKpc(x[1])),
			format(units.NaturalToKpc(x[2])),
			format(units.NaturalToKms(x[3])),
			format(units.NaturalToKms(x[4])),
			format(units.NaturalToKms(x[5])),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads the samples of a run back into natural units.
func (s *Store) LoadTrajectory(runID string) (*orbit.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) (*orbit.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &orbit.Trajectory{}
	if len(records) < 2 {
		return tr, nil
	}
	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line+2, trajectoryHeader[j], err)
			}
			vals[j] = v
		}
		tr.Times = append(tr.Times, vals[0])
		tr.States = append(tr.States, dynamo.State{
			units.KpcToNatural(vals[1]),
			units.KpcToNatural(vals[2]),
			units.KpcToNatural(vals[3]),
			units.KmsToNatural(vals[4]),
			units.KmsToNatural(vals[5]),
			units.KmsToNatural(vals[6]),
		})
	}
	return tr, nil
}
