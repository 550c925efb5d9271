package tabular

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type delimitedReader struct {
	src    *bufio.Reader
	csv    *csv.Reader
	closer io.Closer
	opts   options

	header []string
	chunk  int
	rows   int
	done   bool
}

func newDelimitedReader(r io.Reader, closer io.Closer, o options) *delimitedReader {
	return &delimitedReader{
		src:    bufio.NewReader(r),
		closer: closer,
		opts:   o,
	}
}

// start strips a BOM and consumes the header record.
func (d *delimitedReader) start() error {
	if prefix, err := d.src.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = d.src.Discard(len(utf8BOM))
	}

	d.csv = csv.NewReader(d.src)
	// Short records are padded with nulls; long records are rejected in Next.
	d.csv.FieldsPerRecord = -1

	header, err := d.csv.Read()
	if errors.Is(err, io.EOF) {
		return &DecodeError{Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return decodeCSVError(err)
	}

	d.header = make([]string, len(header))
	for i, h := range header {
		d.header[i] = cleanHeader(h)
	}
	return nil
}

func (d *delimitedReader) Next(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	if d.done {
		return Batch{}, io.EOF
	}
	if d.header == nil {
		if err := d.start(); err != nil {
			d.done = true
			return Batch{}, err
		}
	}

	batch := Batch{Index: d.chunk + 1}
	for len(batch.Rows) < d.opts.chunkSize {
		record, err := d.csv.Read()
		if errors.Is(err, io.EOF) {
			d.done = true
			break
		}
		if err != nil {
			d.done = true
			return Batch{}, decodeCSVError(err)
		}

		line, _ := d.csv.FieldPos(0)
		if len(record) > len(d.header) {
			d.done = true
			return Batch{}, &DecodeError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(d.header), len(record)),
			}
		}
		batch.Rows = append(batch.Rows, buildRow(d.header, record))
	}

	if len(batch.Rows) == 0 {
		return Batch{}, io.EOF
	}

	d.chunk++
	d.rows += len(batch.Rows)
	d.opts.observer(Progress{
		Chunk:    batch.Index,
		Rows:     len(batch.Rows),
		RowsRead: d.rows,
	})
	return batch, nil
}

func (d *delimitedReader) RowsRead() int {
	return d.rows
}

func (d *delimitedReader) Close() error {
	d.done = true
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

func decodeCSVError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &DecodeError{Line: perr.Line, Err: perr.Err}
	}
	return &DecodeError{Err: err}
}
