package mapper

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gyeh/claimmap/internal/logging"
	"github.com/gyeh/claimmap/internal/normalize"
)

func TestParseCOB_Absent(t *testing.T) {
	cob, warns, err := ParseCOB(nil)
	if cob != nil || len(warns) != 0 || err != nil {
		t.Errorf("ParseCOB(nil) = %v, %v, %v; want nothing", cob, warns, err)
	}
}

func TestParseCOB_MissingSequenceDropsAll(t *testing.T) {
	rec := &logging.Recorder{}
	r := validRecord()
	r["cob"] = map[string]any{"otherPayerId": "X", "otherPayerPaid": "5.00"}

	got, err := New(rec).Map(r)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got.COB != nil {
		t.Errorf("COB should be dropped, got %+v", got.COB)
	}
	if n := len(rec.Warnings()); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}
}

func TestParseCOB_InvalidPaidDropsOnlyPaid(t *testing.T) {
	rec := &logging.Recorder{}
	r := validRecord()
	r["cob"] = map[string]any{"sequence": 2, "otherPayerId": "PAY", "otherPayerPaid": "abc"}

	got, err := New(rec).Map(r)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got.COB == nil {
		t.Fatal("COB should be kept")
	}
	if got.COB.Sequence != 2 {
		t.Errorf("Sequence = %d; want 2", got.COB.Sequence)
	}
	if got.COB.OtherPayerID == nil || *got.COB.OtherPayerID != "PAY" {
		t.Errorf("OtherPayerID = %v; want PAY", got.COB.OtherPayerID)
	}
	if got.COB.OtherPayerPaidCents != nil {
		t.Errorf("OtherPayerPaidCents = %d; want absent", *got.COB.OtherPayerPaidCents)
	}
	warns := rec.Warnings()
	if len(warns) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warns))
	}
	if warns[0].Fields["field"] != "cob.otherPayerPaid" {
		t.Errorf("warning field = %v", warns[0].Fields["field"])
	}
}

func TestParseCOB_NegativePaidIsRecoverable(t *testing.T) {
	cob, warns, err := ParseCOB(map[string]any{"sequence": 1, "otherPayerPaid": -3})
	if err != nil {
		t.Fatalf("ParseCOB: %v", err)
	}
	if cob == nil || cob.OtherPayerPaidCents != nil {
		t.Errorf("expected COB without paid amount, got %+v", cob)
	}
	if len(warns) != 1 {
		t.Errorf("expected 1 warning, got %d", len(warns))
	}
}

func TestParseCOB_BadPayerIDIsRecoverable(t *testing.T) {
	for _, id := range []any{"   ", 42, []any{"X"}} {
		cob, warns, err := ParseCOB(map[string]any{"sequence": 1, "otherPayerId": id})
		if err != nil {
			t.Fatalf("ParseCOB(%v): %v", id, err)
		}
		if cob == nil || cob.OtherPayerID != nil {
			t.Errorf("otherPayerId %v: expected COB without payer id, got %+v", id, cob)
		}
		if len(warns) != 1 {
			t.Errorf("otherPayerId %v: expected 1 warning, got %d", id, len(warns))
		}
	}
}

func TestParseCOB_Sequence(t *testing.T) {
	tests := []struct {
		name    string
		seq     any
		want    int64
		wantErr error
	}{
		{"int", 1, 1, nil},
		{"string", " 3 ", 3, nil},
		{"json number", json.Number("2"), 2, nil},
		{"integral float", 2.0, 2, nil},
		{"fractional float", 1.5, 0, normalize.ErrTypeMismatch},
		{"word", "first", 0, normalize.ErrTypeMismatch},
		{"bool", true, 0, normalize.ErrTypeMismatch},
		{"zero", 0, 0, normalize.ErrInvalidAmount},
		{"negative string", "-1", 0, normalize.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cob, _, err := ParseCOB(map[string]any{"sequence": tt.seq})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v; want %v", err, tt.wantErr)
				}
				if cob != nil {
					t.Errorf("expected no COB on error, got %+v", cob)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCOB: %v", err)
			}
			if cob.Sequence != tt.want {
				t.Errorf("Sequence = %d; want %d", cob.Sequence, tt.want)
			}
		})
	}
}

func TestParseCOB_NullOptionalFieldsAreAbsent(t *testing.T) {
	cob, warns, err := ParseCOB(map[string]any{"sequence": 1, "otherPayerId": nil, "otherPayerPaid": nil})
	if err != nil {
		t.Fatalf("ParseCOB: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("expected no warnings, got %v", warns)
	}
	if cob.OtherPayerID != nil || cob.OtherPayerPaidCents != nil {
		t.Errorf("expected empty optional fields, got %+v", cob)
	}
}
