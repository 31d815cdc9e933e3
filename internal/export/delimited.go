// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// ErrUnrepresentableName is returned when a batch name cannot be written
// in space-delimited form.
var ErrUnrepresentableName = errors.New("name contains whitespace")

// WriteDelimited writes a header row and one line per row, separated by
// sep. Comma output quotes names that need it; space output rejects names
// containing whitespace.
func WriteDelimited(w io.Writer, res types.CartesianResult, sep rune) error {
	switch sep {
	case ',':
		cw := csv.NewWriter(w)
		if err := cw.Write(Header(res)); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := cw.WriteAll(Cells(res)); err != nil {
			return fmt.Errorf("writing rows: %w", err)
		}
		return nil
	case ' ':
		return writeSpaced(w, res)
	}
	return fmt.Errorf("unsupported separator %q", sep)
}

func writeSpaced(w io.Writer, res types.CartesianResult) error {
	for i, name := range res.Names {
		if name == "" || strings.ContainsFunc(name, isSpace) {
			return fmt.Errorf("row %d %q: %w", i+1, name, ErrUnrepresentableName)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(Header(res), " "))
	for _, row := range Cells(res) {
		fmt.Fprintln(bw, strings.Join(row, " "))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// ReadDelimited parses output of WriteDelimited with the same separator.
func ReadDelimited(r io.Reader, sep rune) (types.CartesianResult, error) {
	var records [][]string
	switch sep {
	case ',':
		var err error
		if records, err = csv.NewReader(r).ReadAll(); err != nil {
			return types.CartesianResult{}, fmt.Errorf("reading csv: %w", err)
		}
	case ' ':
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
				records = append(records, fields)
			}
		}
		if err := scanner.Err(); err != nil {
			return types.CartesianResult{}, fmt.Errorf("reading text: %w", err)
		}
	default:
		return types.CartesianResult{}, fmt.Errorf("unsupported separator %q", sep)
	}

	if len(records) == 0 {
		return types.CartesianResult{}, errors.New("reading table: no header")
	}
	return fromTable(records[0], records[1:])
}
