package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/beamsim/internal/machine"
)

func sampleResult() *machine.Result {
	return &machine.Result{
		Times:    []float64{0, 0.1, 0.2},
		Energies: []float64{10, 10, 10},
		MeanPos:  []float64{0.01, 0.02, 0.03},
		Spread:   []float64{0.009, 0.010, 0.011},
		Metrics:  map[string]float64{"mean_beta": 0.99},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())

	meta := RunMetadata{
		Species:   "Proton",
		Seed:      42,
		Dt:        0.1,
		Duration:  0.2,
		Energy:    10,
		Particles: 100,
	}
	runID, err := store.Save(meta, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Species != "Proton" {
		t.Errorf("expected Proton, got %s", loaded.Species)
	}
	if loaded.Metrics["mean_beta"] != 0.99 {
		t.Errorf("metrics not persisted: %v", loaded.Metrics)
	}

	series, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series.Times))
	}
	if series.Spread[2] != 0.011 {
		t.Errorf("series values lost: %v", series.Spread)
	}
}

func TestRunIDSanitizesSpecies(t *testing.T) {
	store := New(t.TempDir())

	runID, err := store.Save(RunMetadata{Species: "Lead Ion"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, r := range runID {
		if r == ' ' {
			t.Fatalf("run id contains a space: %q", runID)
		}
	}
}

func TestListEmptyAndMalformed(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	dir := t.TempDir()
	store = New(dir)
	if _, err := store.Save(RunMetadata{Species: "Proton"}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	// A junk directory without metadata is skipped, not an error.
	if err := os.MkdirAll(filepath.Join(dir, "garbage"), 0755); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "broken_1")
	if err := os.MkdirAll(bad, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bad, "metadata.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 valid run, got %d", len(runs))
	}
}

func TestExportJSONToFile(t *testing.T) {
	store := New(t.TempDir())
	runID, err := store.Save(RunMetadata{Species: "Electron", Energy: 3}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "run.json")
	if err := store.ExportJSON(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var decoded exportRun
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Metadata.Species != "Electron" {
		t.Errorf("expected Electron, got %s", decoded.Metadata.Species)
	}
	if len(decoded.Times) != 3 {
		t.Errorf("expected 3 samples, got %d", len(decoded.Times))
	}
}

func TestExportCSV(t *testing.T) {
	store := New(t.TempDir())
	runID, err := store.Save(RunMetadata{Species: "Proton"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "run.csv")
	if err := store.ExportCSV(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty export")
	}
}

func TestExportUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if err := store.ExportJSON("no-such-run", ""); err == nil {
		t.Error("expected error for unknown run")
	}
}
