// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"io"
	"strings"

	"github.com/pdiddy/kinematics-engine/internal/ingest"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Records validates a table and parses every row. The first problem found
// rejects the whole batch. Unrecognized extra columns are ignored.
func Records(t Table) ([]types.NamedObservableSet, error) {
	index := make(map[types.Field]int, len(t.Header))
	for i, h := range t.Header {
		f := ingest.NormalizeField(h)
		if _, seen := index[f]; !seen {
			index[f] = i
		}
	}

	nameCol, ok := index[types.FieldName]
	if !ok {
		return nil, &SchemaError{Problem: MissingIdentifier}
	}
	var missing []types.Field
	for _, f := range types.ObservableFields {
		if _, ok := index[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Problem: MissingColumns, Columns: missing}
	}

	out := make([]types.NamedObservableSet, len(t.Rows))
	for i, row := range t.Rows {
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			return nil, &SchemaError{Problem: EmptyName, Row: i + 1}
		}
		out[i].Name = name
		for _, f := range types.ObservableFields {
			v, err := ingest.ParseField(f, row[index[f]])
			if err != nil {
				return nil, &RowError{Row: i + 1, Name: name, Err: err}
			}
			out[i].ObservableSet = out[i].ObservableSet.With(f, v)
		}
	}
	return out, nil
}

// Load reads and validates a table in one step.
func Load(r io.Reader, d Delimiter) ([]types.NamedObservableSet, error) {
	t, err := ReadTable(r, d)
	if err != nil {
		return nil, err
	}
	return Records(t)
}
