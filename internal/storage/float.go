package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSON has no literal for NaN or the infinities, and a diverging run
// produces both. They are written as the strings "NaN", "+Inf" and "-Inf",
// which is also what the CSV files hold.

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !(math.IsNaN(v) || math.IsInf(v, 0)) {
			return fmt.Errorf("storage: invalid float %s", b)
		}
		*f = jsonFloat(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("storage: invalid float %s", b)
	}
	*f = jsonFloat(v)
	return nil
}

// Metrics is a metric table that survives JSON with non-finite values.
type Metrics map[string]float64

func (m Metrics) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	out := make(map[string]jsonFloat, len(m))
	for k, v := range m {
		out[k] = jsonFloat(v)
	}
	return json.Marshal(out)
}

func (m *Metrics) UnmarshalJSON(b []byte) error {
	var in map[string]jsonFloat
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in == nil {
		*m = nil
		return nil
	}
	out := make(Metrics, len(in))
	for k, v := range in {
		out[k] = float64(v)
	}
	*m = out
	return nil
}

// Series is a column of values that survives JSON with non-finite values.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := make([]jsonFloat, len(s))
	for i, v := range s {
		out[i] = jsonFloat(v)
	}
	return json.Marshal(out)
}

func (s *Series) UnmarshalJSON(b []byte) error {
	var in []jsonFloat
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in == nil {
		*s = nil
		return nil
	}
	out := make(Series, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	*s = out
	return nil
}

// Rows is a table of values, one row per time point.
type Rows [][]float64

func (r Rows) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	out := make([]Series, len(r))
	for i, row := range r {
		out[i] = row
	}
	return json.Marshal(out)
}

func (r *Rows) UnmarshalJSON(b []byte) error {
	var in []Series
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in == nil {
		*r = nil
		return nil
	}
	out := make(Rows, len(in))
	for i, row := range in {
		out[i] = row
	}
	*r = out
	return nil
}
