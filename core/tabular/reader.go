package tabular

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultChunkSize is the batch size used when none is configured.
// It is deliberately small so chunk boundaries show up in tests.
const DefaultChunkSize = 3

// Row maps a header name to a decoded cell value.
// A missing key or a nil value means the cell was empty.
type Row map[string]any

// Batch is one bounded group of rows.
type Batch struct {
	// Sheet is the 1-based sheet number, zero for delimited sources.
	Sheet int
	// SheetName is the spreadsheet tab name, empty for delimited sources.
	SheetName string
	// Index is the 1-based chunk number within the current sheet.
	Index int
	// Rows holds at most ChunkSize rows.
	Rows []Row
}

// Progress is the notification emitted once per batch.
type Progress struct {
	Sheet     int
	SheetName string
	Chunk     int
	Rows      int
	// RowsRead is cumulative across sheets.
	RowsRead int
}

// Observer receives one Progress per batch.
type Observer func(Progress)

// Reader produces batches until io.EOF.
type Reader interface {
	// Next returns the next batch, io.EOF when the source is exhausted, or a
	// *DecodeError when the source is corrupt.
	Next(ctx context.Context) (Batch, error)
	// RowsRead returns the number of rows returned so far.
	RowsRead() int
	// Close releases the underlying source.
	Close() error
}

type options struct {
	chunkSize int
	observer  Observer
}

// Option configures a Reader.
type Option func(*options)

// WithChunkSize bounds the number of rows per batch. Values below one fall
// back to DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithObserver registers a progress callback.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		if fn != nil {
			o.observer = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		chunkSize: DefaultChunkSize,
		observer:  func(Progress) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open opens the file at path. An empty format is inferred from the
// file extension.
func Open(path string, format Format, opts ...Option) (Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat source %s: %w", path, err)
	}

	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if !format.Valid() {
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}

	r, err := newReader(file, file, format, buildOptions(opts))
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads an already opened stream, such as an uploaded payload.
// The caller keeps ownership of r; Close on the returned Reader does not
// close it.
func NewReader(r io.Reader, format Format, opts ...Option) (Reader, error) {
	if !format.Valid() {
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	return newReader(r, nil, format, buildOptions(opts))
}

func newReader(r io.Reader, closer io.Closer, format Format, o options) (Reader, error) {
	switch format {
	case FormatDelimited:
		return newDelimitedReader(r, closer, o), nil
	case FormatSpreadsheet:
		return newSpreadsheetReader(r, closer, o)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}

// cleanHeader trims a header cell so " Name " and "name" address the same field.
func cleanHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// buildRow zips a header with a record. Blank cells are left out of the row.
func buildRow(header, record []string) Row {
	row := make(Row, len(header))
	for i, h := range header {
		if h == "" || i >= len(record) {
			continue
		}
		if strings.TrimSpace(record[i]) == "" {
			continue
		}
		row[h] = record[i]
	}
	return row
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
