package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type exportRun struct {
	Metadata RunMetadata `json:"metadata"`
	Times    []float64   `json:"times"`
	Energies []float64   `json:"energies"`
	MeanPos  []float64   `json:"mean_pos"`
	Spread   []float64   `json:"spread"`
}

// ExportJSON writes a run's metadata and series as a single JSON document.
// Empty path writes to stdout.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return fmt.Errorf("load series %s: %w", runID, err)
	}

	run := exportRun{
		Metadata: *meta,
		Times:    series.Times,
		Energies: series.Energies,
		MeanPos:  series.MeanPos,
		Spread:   series.Spread,
	}

	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// ExportCSV copies a run's series to path with the standard header.
func (s *Store) ExportCSV(runID, path string) error {
	series, err := s.LoadSeries(runID)
	if err != nil {
		return fmt.Errorf("load series %s: %w", runID, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Energies[i], 'f', 6, 64),
			strconv.FormatFloat(series.MeanPos[i], 'f', 6, 64),
			strconv.FormatFloat(series.Spread[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
