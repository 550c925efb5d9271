package tabular

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
)

type spreadsheetReader struct {
	file   *excelize.File
	closer io.Closer
	opts   options
	sheets []string

	// sheet is the index into sheets of the sheet being read.
	sheet  int
	rows   *excelize.Rows
	header []string
	rowNum int
	chunk  int
	total  int
	done   bool
}

func newSpreadsheetReader(r io.Reader, closer io.Closer, o options) (*spreadsheetReader, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &spreadsheetReader{
		file:   file,
		closer: closer,
		opts:   o,
		sheets: file.GetSheetList(),
	}, nil
}

// openSheet positions the reader on the next sheet that has a header row.
// It returns false once every sheet has been consumed.
func (s *spreadsheetReader) openSheet() (bool, error) {
	for s.sheet < len(s.sheets) {
		rows, err := s.file.Rows(s.sheets[s.sheet])
		if err != nil {
			return false, &DecodeError{Sheet: s.sheet + 1, Err: err}
		}

		s.rowNum = 0
		s.chunk = 0
		s.header = nil
		for rows.Next() {
			s.rowNum++
			cols, err := rows.Columns()
			if err != nil {
				_ = rows.Close()
				return false, &DecodeError{Sheet: s.sheet + 1, Line: s.rowNum, Err: err}
			}
			if isBlankRecord(cols) {
				continue
			}
			s.header = make([]string, len(cols))
			for i, h := range cols {
				s.header[i] = cleanHeader(h)
			}
			break
		}

		if s.header != nil {
			s.rows = rows
			return true, nil
		}

		// Empty sheet.
		err = rows.Error()
		_ = rows.Close()
		if err != nil {
			return false, &DecodeError{Sheet: s.sheet + 1, Err: err}
		}
		s.sheet++
	}
	return false, nil
}

func (s *spreadsheetReader) closeSheet() error {
	err := s.rows.Error()
	_ = s.rows.Close()
	s.rows = nil
	s.sheet++
	if err != nil {
		return &DecodeError{Sheet: s.sheet, Err: err}
	}
	return nil
}

func (s *spreadsheetReader) Next(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}

	for !s.done {
		if s.rows == nil {
			ok, err := s.openSheet()
			if err != nil {
				s.done = true
				return Batch{}, err
			}
			if !ok {
				s.done = true
				break
			}
		}

		batch := Batch{
			Sheet:     s.sheet + 1,
			SheetName: s.sheets[s.sheet],
			Index:     s.chunk + 1,
		}
		exhausted := false
		for len(batch.Rows) < s.opts.chunkSize {
			if !s.rows.Next() {
				exhausted = true
				break
			}
			s.rowNum++
			cols, err := s.rows.Columns()
			if err != nil {
				s.done = true
				return Batch{}, &DecodeError{Sheet: batch.Sheet, Line: s.rowNum, Err: err}
			}
			if isBlankRecord(cols) {
				continue
			}
			batch.Rows = append(batch.Rows, buildRow(s.header, cols))
		}

		if exhausted {
			if err := s.closeSheet(); err != nil {
				s.done = true
				return Batch{}, err
			}
		}

		if len(batch.Rows) == 0 {
			continue
		}

		s.chunk++
		s.total += len(batch.Rows)
		s.opts.observer(Progress{
			Sheet:     batch.Sheet,
			SheetName: batch.SheetName,
			Chunk:     batch.Index,
			Rows:      len(batch.Rows),
			RowsRead:  s.total,
		})
		return batch, nil
	}

	return Batch{}, io.EOF
}

func (s *spreadsheetReader) RowsRead() int {
	return s.total
}

func (s *spreadsheetReader) Close() error {
	s.done = true
	if s.rows != nil {
		_ = s.rows.Close()
		s.rows = nil
	}
	err := s.file.Close()
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
