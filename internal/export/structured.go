// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Float is a float64 that survives JSON when non-finite: NaN and the
// infinities are written as the strings "NaN", "+Inf" and "-Inf". YAML
// encodes these natively as .nan and .inf.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(FormatFloat(v))
	}
	return []byte(FormatFloat(v)), nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("decoding float %q: %w", s, err)
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Record is one exported row. Exactly one of Name, RV and Dist is set
// when the result has a correlating column.
type Record struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	RV   *Float `json:"rv,omitempty" yaml:"rv,omitempty"`
	Dist *Float `json:"dist,omitempty" yaml:"dist,omitempty"`
	X    Float  `json:"x" yaml:"x"`
	Y    Float  `json:"y" yaml:"y"`
	Z    Float  `json:"z" yaml:"z"`
	U    Float  `json:"u" yaml:"u"`
	V    Float  `json:"v" yaml:"v"`
	W    Float  `json:"w" yaml:"w"`
}

// Records converts res into exportable rows.
func Records(res types.CartesianResult) []Record {
	out := make([]Record, res.Len())
	for i := range out {
		row := res.Row(i)
		rec := Record{
			Name: row.Name,
			X:    Float(row.X),
			Y:    Float(row.Y),
			Z:    Float(row.Z),
			U:    Float(row.U),
			V:    Float(row.V),
			W:    Float(row.W),
		}
		swept := Float(row.Swept)
		switch res.Swept {
		case types.FieldRV:
			rec.RV = &swept
		case types.FieldDist:
			rec.Dist = &swept
		}
		out[i] = rec
	}
	return out
}

// FromRecords rebuilds a result. The first record decides the mode; every
// record must carry the same correlating field.
func FromRecords(recs []Record) (types.CartesianResult, error) {
	mode := types.ModeSingle
	if len(recs) > 0 {
		mode = recordMode(recs[0])
	}

	res := types.NewCartesianResult(mode, len(recs))
	res.Swept = mode.SweepField()
	if res.Swept != "" {
		res.SweptValues = make([]float64, len(recs))
	}
	if mode == types.ModeBatch {
		res.Names = make([]string, len(recs))
	}

	for i, rec := range recs {
		if recordMode(rec) != mode {
			return types.CartesianResult{}, fmt.Errorf("record %d: mixed correlating columns", i+1)
		}
		switch mode {
		case types.ModeBatch:
			res.Names[i] = rec.Name
		case types.ModeSweepRV:
			res.SweptValues[i] = float64(*rec.RV)
		case types.ModeSweepDist:
			res.SweptValues[i] = float64(*rec.Dist)
		}
		res.SetRow(i, float64(rec.X), float64(rec.Y), float64(rec.Z),
			float64(rec.U), float64(rec.V), float64(rec.W))
	}
	return res, nil
}

func recordMode(rec Record) types.InputMode {
	switch {
	case rec.Name != "":
		return types.ModeBatch
	case rec.RV != nil:
		return types.ModeSweepRV
	case rec.Dist != nil:
		return types.ModeSweepDist
	}
	return types.ModeSingle
}

// WriteJSON writes res as an indented JSON array of records.
func WriteJSON(w io.Writer, res types.CartesianResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(res)); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// ReadJSON parses output of WriteJSON.
func ReadJSON(r io.Reader) (types.CartesianResult, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return types.CartesianResult{}, fmt.Errorf("unmarshaling JSON: %w", err)
	}
	return FromRecords(recs)
}

// WriteYAML writes res as a YAML sequence of records.
func WriteYAML(w io.Writer, res types.CartesianResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(res)); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ReadYAML parses output of WriteYAML.
func ReadYAML(r io.Reader) (types.CartesianResult, error) {
	var recs []Record
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil {
		if errors.Is(err, io.EOF) {
			return FromRecords(nil)
		}
		return types.CartesianResult{}, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	return FromRecords(recs)
}
