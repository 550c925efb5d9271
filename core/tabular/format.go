package tabular

import (
	"path/filepath"
	"strings"
)

// Format identifies the concrete encoding of a tabular source.
type Format string

const (
	// FormatDelimited is comma separated text with a header record.
	FormatDelimited Format = "csv"
	// FormatSpreadsheet is an Office Open XML workbook.
	FormatSpreadsheet Format = "xlsx"
)

// Valid reports whether the format can be read.
func (f Format) Valid() bool {
	switch f {
	case FormatDelimited, FormatSpreadsheet:
		return true
	default:
		return false
	}
}

// FormatFromPath maps a file name to its format by extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f := Format(ext)
	if !f.Valid() {
		return "", &UnsupportedFormatError{Format: filepath.Ext(path)}
	}
	return f, nil
}
