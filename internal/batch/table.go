// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch reads uploaded tables of named stars and turns them into
// validated observable rows for the engine's batch mode.
package batch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Delimiter selects how table cells are separated.
type Delimiter int

const (
	// Auto picks Tab, Comma or Whitespace from the header line.
	Auto Delimiter = iota
	Comma
	Tab
	// Whitespace splits on runs of spaces or tabs.
	Whitespace
)

// ParseDelimiter maps a flag or form value to a Delimiter.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "comma", "csv", ",":
		return Comma, nil
	case "tab", "tsv", `\t`:
		return Tab, nil
	case "space", "whitespace", "txt":
		return Whitespace, nil
	}
	return Auto, fmt.Errorf("unknown delimiter %q (use auto, comma, tab or space)", s)
}

func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Whitespace:
		return "space"
	default:
		return "auto"
	}
}

// Table is a header plus data rows, all rows as wide as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads a delimited table. Blank lines are skipped.
func ReadTable(r io.Reader, d Delimiter) (Table, error) {
	br := bufio.NewReader(r)
	if d == Auto {
		d = detect(br)
	}

	var records [][]string
	var err error
	if d == Whitespace {
		records, err = readFields(br)
	} else {
		records, err = readCSV(br, d)
	}
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, &SchemaError{Problem: EmptyTable}
	}

	t := Table{Header: records[0], Rows: records[1:]}
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return Table{}, &SchemaError{Problem: RaggedRow, Row: i + 1}
		}
	}
	return t, nil
}

// detect inspects the first non-blank line within the reader's buffer.
func detect(br *bufio.Reader) Delimiter {
	buf, _ := br.Peek(br.Size())
	for _, line := range strings.Split(string(buf), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.Contains(line, "\t"):
			return Tab
		case strings.Contains(line, ","):
			return Comma
		default:
			return Whitespace
		}
	}
	return Comma
}

func readCSV(r io.Reader, d Delimiter) ([][]string, error) {
	reader := csv.NewReader(r)
	if d == Tab {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	// Leading-space trimming would swallow empty tab-separated cells.
	reader.TrimLeadingSpace = d != Tab

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s table: %w", d, err)
	}

	kept := records[:0]
	for _, rec := range records {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, nil
}

func readFields(r io.Reader) ([][]string, error) {
	var records [][]string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read space table: %w", err)
	}
	return records, nil
}
