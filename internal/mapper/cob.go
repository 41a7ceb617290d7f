package mapper

import (
	"fmt"
	"strings"

	"github.com/gyeh/claimmap/internal/model"
	"github.com/gyeh/claimmap/internal/normalize"
)

// COB sub-record keys.
const (
	COBSequence       = "sequence"
	COBOtherPayerID   = "otherPayerId"
	COBOtherPayerPaid = "otherPayerPaid"
)

// ParseCOB parses the optional coordination-of-benefits object. A nil value
// yields no sub-record. Without a sequence the whole sub-record is dropped
// with a warning; a defective payer id or paid amount drops just that field.
func ParseCOB(v any) (*model.COB, []normalize.Warning, error) {
	if v == nil {
		return nil, nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, nil, normalize.TypeMismatch(FieldCOB, "object", v)
	}

	rawSeq, ok := obj[COBSequence]
	if !ok || rawSeq == nil {
		return nil, []normalize.Warning{{
			Field: FieldCOB,
			Value: v,
			Msg:   fmt.Sprintf("field %q: no %s; dropping coordination of benefits", FieldCOB, COBSequence),
		}}, nil
	}

	field := FieldCOB + "." + COBSequence
	seq, ok := normalize.Int(rawSeq)
	if !ok {
		return nil, nil, normalize.TypeMismatch(field, "integer", rawSeq)
	}
	if seq < 1 {
		return nil, nil, normalize.Invalid(normalize.KindInvalidAmount, field, rawSeq,
			"field %q: sequence %d must be at least 1", field, seq)
	}

	cob := &model.COB{Sequence: seq}
	var warns []normalize.Warning

	if id, present := obj[COBOtherPayerID]; present && id != nil {
		field := FieldCOB + "." + COBOtherPayerID
		if s, ok := id.(string); ok && strings.TrimSpace(s) != "" {
			s = strings.TrimSpace(s)
			cob.OtherPayerID = &s
		} else {
			warns = append(warns, normalize.Warning{
				Field: field,
				Value: id,
				Msg:   fmt.Sprintf("field %q: expected non-empty string; dropping", field),
			})
		}
	}

	if paid, present := obj[COBOtherPayerPaid]; present && paid != nil {
		field := FieldCOB + "." + COBOtherPayerPaid
		cents, err := normalize.MinorUnits(field, paid)
		if err != nil {
			warns = append(warns, normalize.Warning{
				Field: field,
				Value: paid,
				Msg:   fmt.Sprintf("field %q: %v; dropping", field, err),
			})
		} else {
			cob.OtherPayerPaidCents = &cents
		}
	}

	return cob, warns, nil
}
