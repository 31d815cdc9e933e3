// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes computed kinematics as delimited text, HTML tables,
// JSON or YAML, and reads each format back. Every writer puts the
// correlating column (Name, RV or Dist) first, followed by X Y Z U V W.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatCSV, FormatTXT, FormatHTML, FormatJSON, FormatYAML}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "txt", "text", "space":
		return FormatTXT, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (use csv, txt, html, json or yaml)", s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename returns the attachment name for an export in format f.
func (f Format) Filename() string {
	return "kinematics." + string(f)
}

// Write encodes res to w in format f.
func Write(w io.Writer, res types.CartesianResult, f Format) error {
	switch f {
	case FormatCSV:
		return WriteDelimited(w, res, ',')
	case FormatTXT:
		return WriteDelimited(w, res, ' ')
	case FormatHTML:
		return WriteHTML(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatYAML:
		return WriteYAML(w, res)
	}
	return fmt.Errorf("unknown format %q", f)
}

// Read decodes a result previously written in format f.
func Read(r io.Reader, f Format) (types.CartesianResult, error) {
	switch f {
	case FormatCSV:
		return ReadDelimited(r, ',')
	case FormatTXT:
		return ReadDelimited(r, ' ')
	case FormatHTML:
		return ReadHTML(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return types.CartesianResult{}, fmt.Errorf("unknown format %q", f)
}
