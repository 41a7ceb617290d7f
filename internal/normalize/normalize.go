package normalize

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/claimmap/internal/model"
)

// ToClaimRow flattens a mapped Claim into its export row, tagging it with the
// run that produced it and its position in the input.
func ToClaimRow(c *model.Claim, runID uuid.UUID, index int64) *model.ClaimRow {
	r := &model.ClaimRow{
		RunID:       runID.String(),
		SourceIndex: index,
		ClaimHash:   fmt.Sprintf("%x", ClaimHash(c)),

		ClaimID:          c.ClaimID,
		MemberID:         c.MemberID,
		ProviderNPI:      c.ProviderNPI,
		ProcedureCodes:   c.ProcedureCodes,
		DiagnosisCodes:   c.DiagnosisCodes,
		DateOfService:    c.DateOfService.Format(time.DateOnly),
		TotalChargeCents: c.TotalChargeCents,
	}

	if c.COB != nil {
		seq := c.COB.Sequence
		r.COBSequence = &seq
		r.COBOtherPayerID = c.COB.OtherPayerID
		r.COBOtherPayerPaidCents = c.COB.OtherPayerPaidCents
	}
	return r
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
