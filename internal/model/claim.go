package model

import "time"

// RawRecord is one externally sourced claim: field name to untyped value,
// as produced by a JSON decoder.
type RawRecord = map[string]any

// Claim is the validated, canonical form of a single claim. Money is held in
// integer cents and DateOfService is a UTC-midnight calendar date.
type Claim struct {
	ClaimID          string
	MemberID         string
	ProviderNPI      string
	ProcedureCodes   []string
	DiagnosisCodes   []string
	DateOfService    time.Time
	TotalChargeCents int64
	COB              *COB
}

// COB is the coordination-of-benefits sub-record. Sequence is always >= 1.
type COB struct {
	Sequence            int64
	OtherPayerID        *string
	OtherPayerPaidCents *int64
}
