package tabular

import "fmt"

// SourceNotFoundError is returned when the source path does not exist.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found at %s", e.Path)
}

// UnsupportedFormatError is returned for formats other than delimited text
// and spreadsheets.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: supported formats are CSV and XLSX", e.Format)
}

// DecodeError is returned when the source cannot be decoded past a point.
type DecodeError struct {
	// Sheet is the 1-based sheet number, zero for delimited sources.
	Sheet int
	// Line is the 1-based line (or spreadsheet row) where decoding failed, if known.
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Sheet > 0 && e.Line > 0:
		return fmt.Sprintf("decode sheet %d row %d: %v", e.Sheet, e.Line, e.Err)
	case e.Sheet > 0:
		return fmt.Sprintf("decode sheet %d: %v", e.Sheet, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("decode line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
