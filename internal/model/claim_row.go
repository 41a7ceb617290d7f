package model

// ClaimRow is the flattened export form of a Claim, shared by the JSON Lines
// and Parquet writers. Dates are ISO-8601 calendar dates.
type ClaimRow struct {
	RunID       string `json:"runId" parquet:"run_id"`
	SourceIndex int64  `json:"sourceIndex" parquet:"source_index"`
	ClaimHash   string `json:"claimHash" parquet:"claim_hash"`

	ClaimID          string   `json:"claimId" parquet:"claim_id"`
	MemberID         string   `json:"memberId" parquet:"member_id"`
	ProviderNPI      string   `json:"providerNpi" parquet:"provider_npi"`
	ProcedureCodes   []string `json:"cptCodes" parquet:"cpt_codes"`
	DiagnosisCodes   []string `json:"icdCodes" parquet:"icd_codes"`
	DateOfService    string   `json:"dateOfService" parquet:"date_of_service"`
	TotalChargeCents int64    `json:"totalChargeCents" parquet:"total_charge_cents"`

	// Coordination of benefits; all nil when the claim carries none.
	COBSequence            *int64  `json:"cobSequence,omitempty" parquet:"cob_sequence,optional"`
	COBOtherPayerID        *string `json:"cobOtherPayerId,omitempty" parquet:"cob_other_payer_id,optional"`
	COBOtherPayerPaidCents *int64  `json:"cobOtherPayerPaidCents,omitempty" parquet:"cob_other_payer_paid_cents,optional"`
}
