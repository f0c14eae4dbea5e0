package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/chemsim/internal/kinetics"
)

type ExportData struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Integrator     string   `json:"integrator"`
	Time           float64  `json:"time"`
	Steps          int      `json:"steps"`
	Dt             float64  `json:"dt"`
	Formulas       []string `json:"formulas"`
	Names          []string `json:"names"`
	Reactions      []string `json:"reactions"`
	TimePoints     Series   `json:"time_points"`
	Concentrations Rows     `json:"concentrations"`
	Metrics        Metrics  `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, tr *kinetics.Trajectory) error {
	data := ExportData{
		ID:             meta.ID,
		Name:           meta.Name,
		Integrator:     meta.Integrator,
		Time:           meta.Time,
		Steps:          tr.Steps(),
		Dt:             tr.Dt(),
		Formulas:       tr.Formulas,
		Names:          tr.Names,
		Reactions:      meta.Reactions,
		TimePoints:     tr.TimePoints,
		Concentrations: tr.Table(),
		Metrics:        meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes a "time,<formula>..." header and one row per time point
// using the shortest representation that round-trips.
func ExportCSV(w io.Writer, tr *kinetics.Trajectory) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, tr.Formulas...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(tr.Formulas)+1)
	for i, t := range tr.TimePoints {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, v := range tr.Concentrations[i] {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
