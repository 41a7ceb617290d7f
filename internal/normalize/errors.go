package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies why a field was rejected.
type Kind string

const (
	KindMissingField      Kind = "missing_field"
	KindTypeMismatch      Kind = "type_mismatch"
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindInvalidCode       Kind = "invalid_code"
	KindInvalidDate       Kind = "invalid_date"
	KindInvalidAmount     Kind = "invalid_amount"
)

// Sentinels for errors.Is matching against an *Error of the same Kind.
var (
	ErrMissingField      = errors.New("missing field")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidCode       = errors.New("invalid code")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMissingField:
		return ErrMissingField
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindInvalidIdentifier:
		return ErrInvalidIdentifier
	case KindInvalidCode:
		return ErrInvalidCode
	case KindInvalidDate:
		return ErrInvalidDate
	case KindInvalidAmount:
		return ErrInvalidAmount
	}
	return nil
}

// Error is a fatal field defect. Only the payload fields relevant to its
// Kind are set: Expected and Actual are populated for type mismatches.
type Error struct {
	Kind     Kind
	Field    string
	Value    any
	Expected string
	Actual   string
	Msg      string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Msg)

	ctx := e.Context()
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s=%s", k, renderValue(ctx[k]))
		}
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Context returns the structured diagnostic context for logging.
func (e *Error) Context() map[string]any {
	ctx := make(map[string]any, 4)
	if e.Field != "" {
		ctx["field"] = e.Field
	}
	if e.Kind != KindMissingField {
		ctx["value"] = e.Value
	}
	if e.Expected != "" {
		ctx["expected"] = e.Expected
	}
	if e.Actual != "" {
		ctx["actual"] = e.Actual
	}
	return ctx
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// MissingField reports an absent required field.
func MissingField(field string) *Error {
	return &Error{
		Kind:  KindMissingField,
		Field: field,
		Msg:   fmt.Sprintf("required field %q is absent", field),
	}
}

// TypeMismatch reports a present value of the wrong shape.
func TypeMismatch(field, expected string, v any) *Error {
	return &Error{
		Kind:     KindTypeMismatch,
		Field:    field,
		Value:    v,
		Expected: expected,
		Actual:   kindName(v),
		Msg:      fmt.Sprintf("field %q: expected %s, got %s", field, expected, kindName(v)),
	}
}

// Invalid reports a value of the right shape that fails validation.
func Invalid(kind Kind, field string, v any, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Field: field,
		Value: v,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	case json.Number:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

// kindName names the runtime shape of a raw value in JSON terms.
func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any, []string:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
