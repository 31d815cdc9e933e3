// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Problem classifies a SchemaError.
type Problem int

const (
	// EmptyTable means the input held no header line.
	EmptyTable Problem = iota
	// RaggedRow means a data row has a different cell count than the header.
	RaggedRow
	// MissingIdentifier means no column normalizes to "name".
	MissingIdentifier
	// MissingColumns means one or more observable columns are absent.
	MissingColumns
	// EmptyName means a data row has a blank identifier.
	EmptyName
)

func (p Problem) String() string {
	switch p {
	case EmptyTable:
		return "empty table"
	case RaggedRow:
		return "ragged row"
	case MissingIdentifier:
		return "missing identifier column"
	case MissingColumns:
		return "missing columns"
	case EmptyName:
		return "empty name"
	default:
		return "unknown problem"
	}
}

// SchemaError reports a table whose shape or headers cannot be used.
// Row is the 1-based data row (header excluded) where relevant.
type SchemaError struct {
	Problem Problem
	Columns []types.Field
	Row     int
}

func (e *SchemaError) Error() string {
	switch e.Problem {
	case MissingColumns:
		cols := make([]string, len(e.Columns))
		for i, c := range e.Columns {
			cols[i] = string(c)
		}
		return fmt.Sprintf("batch schema: missing columns %s", strings.Join(cols, ", "))
	case MissingIdentifier:
		return "batch schema: no name column; add a column labelled name"
	case RaggedRow, EmptyName:
		return fmt.Sprintf("batch schema: %s at row %d", e.Problem, e.Row)
	default:
		return "batch schema: " + e.Problem.String()
	}
}

// RowError wraps a cell-level parse failure with its row position.
type RowError struct {
	Row  int
	Name string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Name, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
