package claimio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimmap/internal/model"
)

// Output formats.
const (
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
)

// RowWriter receives mapped claims one at a time.
type RowWriter interface {
	Write(row *model.ClaimRow) error
	Close() error
}

// NewWriter returns a RowWriter encoding rows in format to w. Closing the
// RowWriter does not close w.
func NewWriter(format string, w io.Writer) (RowWriter, error) {
	switch format {
	case FormatJSONL:
		return &jsonlWriter{enc: json.NewEncoder(w)}, nil
	case FormatParquet:
		return NewParquetWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type jsonlWriter struct {
	enc *json.Encoder
}

func (j *jsonlWriter) Write(row *model.ClaimRow) error {
	if err := j.enc.Encode(row); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	return nil
}

func (j *jsonlWriter) Close() error { return nil }

const parquetBatchSize = 1024

// ParquetWriter buffers rows and flushes them through a parquet GenericWriter.
type ParquetWriter struct {
	writer *parquet.GenericWriter[model.ClaimRow]
	buf    []model.ClaimRow
}

// NewParquetWriter creates a ParquetWriter over w.
func NewParquetWriter(w io.Writer) *ParquetWriter {
	return &ParquetWriter{
		writer: parquet.NewGenericWriter[model.ClaimRow](w),
		buf:    make([]model.ClaimRow, 0, parquetBatchSize),
	}
}

// Write appends a row, flushing when the buffer is full.
func (p *ParquetWriter) Write(row *model.ClaimRow) error {
	p.buf = append(p.buf, *row)
	if len(p.buf) >= parquetBatchSize {
		return p.flush()
	}
	return nil
}

func (p *ParquetWriter) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	if _, err := p.writer.Write(p.buf); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	p.buf = p.buf[:0]
	return nil
}

// Close flushes buffered rows and writes the parquet footer.
func (p *ParquetWriter) Close() error {
	if err := p.flush(); err != nil {
		return err
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
