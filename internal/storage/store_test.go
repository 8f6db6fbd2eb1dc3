package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/orbit"
)

func sampleTrajectory() *orbit.Trajectory {
	return &orbit.Trajectory{
		Times: []float64{0, 0.5, 1},
		States: []dynamo.State{
			{1, 0, 0.5, 0, 1, 0},
			{0, 1, 0.25, -1, 0, 0.1},
			{-1, 0, 0, 0, -1, -0.1},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Model:      "Plummer Potential",
		Values:     []float64{2},
		Years:      1,
		Initial:    orbit.InitialConditions{R: 8, VT: 220},
		Integrator: "rk45",
		Metrics:    map[string]float64{"energy_drift": 1e-9},
	}
	runID, err := st.Save(meta, sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model != "Plummer Potential" || loaded.Samples != 3 || loaded.Initial.VT != 220 {
		t.Errorf("unexpected metadata %+v", loaded)
	}
	if loaded.Metrics["energy_drift"] != 1e-9 {
		t.Errorf("metric = %v", loaded.Metrics["energy_drift"])
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	want := sampleTrajectory()
	if tr.Len() != want.Len() {
		t.Fatalf("samples = %d, want %d", tr.Len(), want.Len())
	}
	for i := range want.States {
		if tr.Times[i] != want.Times[i] {
			t.Errorf("time %d = %v, want %v", i, tr.Times[i], want.Times[i])
		}
		for j := range want.States[i] {
			if math.Abs(tr.States[i][j]-want.States[i][j]) > 1e-12 {
				t.Errorf("state %d[%d] = %v, want %v", i, j, tr.States[i][j], want.States[i][j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty store list = %v, %v", runs, err)
	}

	for _, model := range []string{"NFW", "Kepler"} {
		if _, err := st.Save(RunMetadata{Model: model}, sampleTrajectory()); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("runs = %d, want 2", len(runs))
	}
}

func TestMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load err = %v, want ErrNotFound", err)
	}
	if _, err := st.LoadTrajectory("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadTrajectory err = %v, want ErrNotFound", err)
	}
}

func TestReadCSVRejectsBadRows(t *testing.T) {
	bad := "t_gyr,x_kpc,y_kpc,z_kpc,vx_kms,vy_kms,vz_kms\n0,1,2,3,4,5,oops\n"
	if _, err := ReadCSV(bytes.NewBufferString(bad)); err == nil {
		t.Error("expected a parse error")
	}
	short := "t_gyr,x_kpc\n0,1\n"
	if _, err := ReadCSV(bytes.NewBufferString(short)); err == nil {
		t.Error("expected a column count error")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, RunMetadata{ID: "run", Model: "Kepler"}, sampleTrajectory()); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "run" || got.Model != "Kepler" {
		t.Errorf("metadata lost: %+v", got.RunMetadata)
	}
	if len(got.R) != 3 || math.Abs(got.R[0]-8) > 1e-12 {
		t.Errorf("R = %v, want first sample 8 kpc", got.R)
	}
	if math.Abs(got.VT[0]-220) > 1e-9 {
		t.Errorf("vT = %v, want 220 km/s", got.VT[0])
	}
}
