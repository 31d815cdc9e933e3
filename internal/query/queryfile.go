// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query saves a kinematics request, and optionally its result, to a
// YAML file so it can be reloaded and recomputed later.
package query

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kinematics-engine/internal/export"
	"github.com/pdiddy/kinematics-engine/internal/ingest"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// QueryFile is the on-disk representation of a request and its results.
type QueryFile struct {
	Query   QueryParams     `yaml:"query"`
	Config  QueryFileConfig `yaml:"config"`
	Results []export.Record `yaml:"results,omitempty"`
	Summary QuerySummary    `yaml:"summary"`
}

// QueryParams stores the raw request exactly as entered.
type QueryParams struct {
	// Star is the name the values were resolved from, if any.
	Star   string               `yaml:"star,omitempty"`
	Fields map[string]string    `yaml:"fields"`
	Sweeps []transform.RawSweep `yaml:"sweeps,omitempty"`
}

// QueryFileConfig stores the engine configuration that produced the results.
type QueryFileConfig struct {
	MaxSweepPoints int `yaml:"max_sweep_points"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Mode       string    `yaml:"mode,omitempty"`
	Rows       int       `yaml:"rows"`
	Degenerate int       `yaml:"degenerate"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// NewQueryFile builds a query file from a raw request. res may be nil when
// only the request is saved.
func NewQueryFile(star string, raw transform.RawRequest, cfg types.EngineConfig, res *types.CartesianResult) QueryFile {
	qf := QueryFile{
		Query: QueryParams{
			Star:   star,
			Fields: raw.Fields,
			Sweeps: raw.Sweeps,
		},
		Config:  QueryFileConfig{MaxSweepPoints: cfg.MaxSweepPoints},
		Summary: QuerySummary{Timestamp: time.Now().UTC()},
	}
	if res != nil {
		qf.Results = export.Records(*res)
		qf.Summary.Mode = res.Mode.String()
		qf.Summary.Rows = res.Len()
		qf.Summary.Degenerate = res.Degenerate()
	}
	return qf
}

// WriteQueryFile saves qf to path as YAML.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToRawRequest converts stored parameters back into a RawRequest.
func (p QueryParams) ToRawRequest() transform.RawRequest {
	fields := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = v
	}
	return transform.RawRequest{Fields: fields, Sweeps: p.Sweeps}
}

// WithOverrides returns a copy of p whose fields are replaced by any
// present in overrides. Keys are compared after normalization, so a
// "dist" override replaces a stored "distance".
func (p QueryParams) WithOverrides(overrides map[string]string) QueryParams {
	merged := make(map[string]string, len(p.Fields)+len(overrides))
	for f, v := range ingest.NormalizeKeys(p.Fields) {
		merged[string(f)] = v
	}
	for f, v := range ingest.NormalizeKeys(overrides) {
		merged[string(f)] = v
	}
	p.Fields = merged
	return p
}

// StoredResult rebuilds the saved result, or reports false when the file
// holds only a request.
func (qf *QueryFile) StoredResult() (types.CartesianResult, bool, error) {
	if len(qf.Results) == 0 {
		return types.CartesianResult{}, false, nil
	}
	res, err := export.FromRecords(qf.Results)
	if err != nil {
		return types.CartesianResult{}, false, fmt.Errorf("reading stored results: %w", err)
	}
	return res, true, nil
}
