package claimio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimmap/internal/model"
)

// ErrSchemaMismatch is returned when a Parquet file lacks ClaimRow columns.
var ErrSchemaMismatch = errors.New("parquet schema does not match claim rows")

var claimRowSchema = parquet.SchemaOf(model.ClaimRow{})

// ParquetReader reads back claim rows exported by ParquetWriter.
type ParquetReader struct {
	file   *os.File
	rows   *parquet.GenericReader[model.ClaimRow]
	total  int64
	served int64
}

// OpenParquet opens a claim export and checks that every ClaimRow column is
// present before any row is decoded.
func OpenParquet(path string) (*ParquetReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claim export: %w", err)
	}
	pr, err := newParquetReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pr, nil
}

func newParquetReader(f *os.File) (*ParquetReader, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("read parquet footer: %w", err)
	}
	if missing := missingColumns(pf.Schema()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return &ParquetReader{
		file:  f,
		rows:  parquet.NewGenericReader[model.ClaimRow](pf),
		total: pf.NumRows(),
	}, nil
}

func missingColumns(schema *parquet.Schema) []string {
	have := make(map[string]bool)
	for _, path := range schema.Columns() {
		have[strings.Join(path, ".")] = true
	}
	var missing []string
	for _, path := range claimRowSchema.Columns() {
		if col := strings.Join(path, "."); !have[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// NumRows is the row count recorded in the file footer.
func (r *ParquetReader) NumRows() int64 {
	return r.total
}

// Next returns up to limit rows. It returns io.EOF, and no rows, once every
// row has been served.
func (r *ParquetReader) Next(limit int) ([]model.ClaimRow, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("batch size %d must be positive", limit)
	}
	if r.served >= r.total {
		return nil, io.EOF
	}
	if left := r.total - r.served; int64(limit) > left {
		limit = int(left)
	}
	batch := make([]model.ClaimRow, limit)
	n, err := r.rows.Read(batch)
	r.served += int64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		return batch[:n], fmt.Errorf("read claim rows: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}
	return batch[:n], nil
}

// Close releases the reader and its file.
func (r *ParquetReader) Close() error {
	rerr := r.rows.Close()
	ferr := r.file.Close()
	if rerr != nil {
		return rerr
	}
	return ferr
}
