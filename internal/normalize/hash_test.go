package normalize

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/claimmap/internal/model"
)

func sampleClaim() *model.Claim {
	return &model.Claim{
		ClaimID:          "C1",
		MemberID:         "M1",
		ProviderNPI:      "1000000004",
		ProcedureCodes:   []string{"99213"},
		DiagnosisCodes:   []string{"E11.9", "I10"},
		DateOfService:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalChargeCents: 10025,
	}
}

func TestClaimHash_Stable(t *testing.T) {
	a, b := sampleClaim(), sampleClaim()
	if !bytes.Equal(ClaimHash(a), ClaimHash(b)) {
		t.Error("equal claims should hash equally")
	}

	b.DiagnosisCodes = []string{"E11.9I10"}
	if bytes.Equal(ClaimHash(a), ClaimHash(b)) {
		t.Error("list boundaries should affect the hash")
	}
}

func TestClaimHash_COBChangesHash(t *testing.T) {
	a, b := sampleClaim(), sampleClaim()
	b.COB = &model.COB{Sequence: 1}
	if bytes.Equal(ClaimHash(a), ClaimHash(b)) {
		t.Error("COB should affect the hash")
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	os.WriteFile(path, []byte("abc"), 0644)

	got, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("FileHash = %s; want %s", got, want)
	}
}

func TestToClaimRow(t *testing.T) {
	c := sampleClaim()
	paid := int64(500)
	payer := "PAY"
	c.COB = &model.COB{Sequence: 2, OtherPayerID: &payer, OtherPayerPaidCents: &paid}
	runID := uuid.New()

	r := ToClaimRow(c, runID, 7)
	if r.RunID != runID.String() || r.SourceIndex != 7 {
		t.Errorf("unexpected run tagging: %+v", r)
	}
	if r.DateOfService != "2024-01-15" {
		t.Errorf("DateOfService = %q", r.DateOfService)
	}
	if r.COBSequence == nil || *r.COBSequence != 2 {
		t.Errorf("COBSequence = %v", r.COBSequence)
	}
	if r.COBOtherPayerPaidCents == nil || *r.COBOtherPayerPaidCents != 500 {
		t.Errorf("COBOtherPayerPaidCents = %v", r.COBOtherPayerPaidCents)
	}
	if len(r.ClaimHash) != 64 {
		t.Errorf("ClaimHash = %q; want 64 hex chars", r.ClaimHash)
	}
}

func TestToClaimRow_NoCOB(t *testing.T) {
	r := ToClaimRow(sampleClaim(), uuid.New(), 0)
	if r.COBSequence != nil || r.COBOtherPayerID != nil || r.COBOtherPayerPaidCents != nil {
		t.Errorf("COB columns should be nil: %+v", r)
	}
}
