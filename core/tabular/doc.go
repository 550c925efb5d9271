// Package tabular reads rows out of delimited text and spreadsheet sources in
// bounded batches.
//
// A Reader is lazy and single-pass: each call to Next decodes at most
// ChunkSize rows and returns them as a Batch, and io.EOF once the source is
// exhausted. Readers are not restartable; open the source again to re-read it.
//
// # Formats
//
//   - FormatDelimited (.csv): the first record is the header. Encoding is
//     read through encoding/csv, a leading UTF-8 BOM is dropped.
//   - FormatSpreadsheet (.xlsx): every sheet is read in workbook order, the
//     first row of each sheet is that sheet's header. Batch numbering restarts
//     per sheet while RowsRead keeps counting across sheets.
//
// # Errors
//
//   - *SourceNotFoundError: Open was given a path that does not exist.
//   - *UnsupportedFormatError: the format (or file extension) is not supported.
//     Returned before any row is read.
//   - *DecodeError: the source is corrupt or truncated. Returned from Next;
//     batches returned before it remain valid.
//
// # Usage
//
//	r, err := tabular.Open("students.xlsx", "", tabular.WithChunkSize(500))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    batch, err := r.Next(ctx)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    handle(batch.Rows)
//	}
package tabular
