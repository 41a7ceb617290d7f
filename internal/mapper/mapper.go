// Package mapper turns one raw claim record into a validated model.Claim.
//
// Defects are either fatal, returned as a *normalize.Error with no partial
// claim, or recoverable, reported once through the Logger's Warn level
// while mapping continues with a degraded value.
package mapper

import (
	"github.com/gyeh/claimmap/internal/logging"
	"github.com/gyeh/claimmap/internal/model"
	"github.com/gyeh/claimmap/internal/normalize"
)

// Input field names.
const (
	FieldClaimID       = "claimId"
	FieldMemberID      = "memberId"
	FieldProviderNPI   = "providerNpi"
	FieldCPTCodes      = "cptCodes"
	FieldICDCodes      = "icdCodes"
	FieldDateOfService = "dateOfService"
	FieldTotalCharge   = "totalCharge"
	FieldCOB           = "cob"
)

// Mapper holds no per-record state; one Mapper may serve concurrent callers
// if its Logger is safe for concurrent use.
type Mapper struct {
	log logging.Logger
}

// New returns a Mapper reporting recoverable defects to log. A nil log
// discards them.
func New(log logging.Logger) *Mapper {
	if log == nil {
		log = logging.Nop()
	}
	return &Mapper{log: log}
}

// Map validates raw and builds its Claim. Fields are processed in a fixed
// order and the first fatal defect aborts the whole record.
func (m *Mapper) Map(raw model.RawRecord) (*model.Claim, error) {
	var (
		c   model.Claim
		err error
	)

	if c.ClaimID, err = m.requiredString(raw, FieldClaimID); err != nil {
		return nil, err
	}
	if c.MemberID, err = m.requiredString(raw, FieldMemberID); err != nil {
		return nil, err
	}

	npi, err := m.requiredString(raw, FieldProviderNPI)
	if err != nil {
		return nil, err
	}
	if c.ProviderNPI, err = normalize.ProviderNPI(FieldProviderNPI, npi); err != nil {
		return nil, err
	}

	cpt, err := m.codeList(raw, FieldCPTCodes)
	if err != nil {
		return nil, err
	}
	if c.ProcedureCodes, err = normalize.ProcedureCodes(FieldCPTCodes, cpt); err != nil {
		return nil, err
	}

	icd, err := m.codeList(raw, FieldICDCodes)
	if err != nil {
		return nil, err
	}
	if c.DiagnosisCodes, err = normalize.DiagnosisCodes(FieldICDCodes, icd); err != nil {
		return nil, err
	}

	dos, err := m.requiredString(raw, FieldDateOfService)
	if err != nil {
		return nil, err
	}
	if c.DateOfService, err = normalize.Date(FieldDateOfService, dos); err != nil {
		return nil, err
	}

	if c.TotalChargeCents, err = normalize.MinorUnits(FieldTotalCharge, raw[FieldTotalCharge]); err != nil {
		return nil, err
	}

	cob, warns, err := ParseCOB(raw[FieldCOB])
	m.warn(warns)
	if err != nil {
		return nil, err
	}
	c.COB = cob

	return &c, nil
}

func (m *Mapper) requiredString(raw model.RawRecord, field string) (string, error) {
	s, warns, err := normalize.RequiredString(raw, field)
	m.warn(warns)
	return s, err
}

func (m *Mapper) codeList(raw model.RawRecord, field string) ([]string, error) {
	list, warns, err := normalize.CodeList(raw[field], field)
	m.warn(warns)
	return list, err
}

func (m *Mapper) warn(warns []normalize.Warning) {
	for _, w := range warns {
		m.log.Warn(w.Msg, w.Fields())
	}
}
