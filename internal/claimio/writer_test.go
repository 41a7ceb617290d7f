package claimio

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimmap/internal/model"
)

func sampleRows() []model.ClaimRow {
	seq := int64(2)
	payer := "PAY"
	return []model.ClaimRow{
		{
			RunID: "run", SourceIndex: 0, ClaimHash: "h0",
			ClaimID: "C1", MemberID: "M1", ProviderNPI: "1000000004",
			ProcedureCodes: []string{"99213", "97110"}, DiagnosisCodes: []string{"E11.9"},
			DateOfService: "2024-01-15", TotalChargeCents: 10025,
		},
		{
			RunID: "run", SourceIndex: 2, ClaimHash: "h2",
			ClaimID: "C3", MemberID: "M3", ProviderNPI: "1234567893",
			ProcedureCodes: []string{"36415"}, DiagnosisCodes: []string{"I10", "R51"},
			DateOfService: "2023-12-31", TotalChargeCents: 0,
			COBSequence: &seq, COBOtherPayerID: &payer,
		},
	}
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatJSONL, &buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	rows := sampleRows()
	for i := range rows {
		if err := w.Write(&rows[i]); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := json.NewDecoder(&buf)
	var got []model.ClaimRow
	for {
		var r model.ClaimRow
		if err := dec.Decode(&r); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, r)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func writeParquet(t *testing.T, rows []model.ClaimRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w, err := NewWriter(FormatParquet, f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for i := range rows {
		if err := w.Write(&rows[i]); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestParquetWriter_ReadBack(t *testing.T) {
	rows := sampleRows()
	r, err := OpenParquet(writeParquet(t, rows))
	if err != nil {
		t.Fatalf("OpenParquet: %v", err)
	}
	defer r.Close()

	if r.NumRows() != int64(len(rows)) {
		t.Fatalf("NumRows = %d; want %d", r.NumRows(), len(rows))
	}
	got, err := r.Next(8)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Next(8); err != io.EOF {
		t.Errorf("Next after last row: err = %v; want io.EOF", err)
	}
}

func TestParquetReader_Batches(t *testing.T) {
	var rows []model.ClaimRow
	for i := 0; i < 5; i++ {
		rows = append(rows, sampleRows()...)
	}
	for i := range rows {
		rows[i].SourceIndex = int64(i)
	}

	r, err := OpenParquet(writeParquet(t, rows))
	if err != nil {
		t.Fatalf("OpenParquet: %v", err)
	}
	defer r.Close()

	var got []model.ClaimRow
	for {
		batch, err := r.Next(3)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if len(batch) > 3 {
			t.Fatalf("batch of %d rows exceeds limit 3", len(batch))
		}
		got = append(got, batch...)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Next(0); err == nil {
		t.Error("expected error for non-positive batch size")
	}
}

func TestOpenParquet_SchemaMismatch(t *testing.T) {
	type priceRow struct {
		Description string  `parquet:"description"`
		Rate        float64 `parquet:"rate"`
	}
	path := filepath.Join(t.TempDir(), "prices.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := parquet.NewGenericWriter[priceRow](f)
	if _, err := w.Write([]priceRow{{Description: "office visit", Rate: 120}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	f.Close()

	if _, err := OpenParquet(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("err = %v; want ErrSchemaMismatch", err)
	}
}

func TestOpenParquet_NotParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.jsonl")
	if err := os.WriteFile(path, []byte("{\"claimId\":\"A\"}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenParquet(path); err == nil {
		t.Fatal("expected error opening a non-parquet file")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	if _, err := NewWriter("csv", io.Discard); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
