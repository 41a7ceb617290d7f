package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Warning is a recoverable defect: the value was degraded (coerced, dropped)
// rather than rejected.
type Warning struct {
	Field string
	Value any
	Msg   string
}

// Fields returns the structured context for the warn-level log entry.
func (w Warning) Fields() map[string]any {
	return map[string]any{
		"field": w.Field,
		"value": w.Value,
	}
}

// RequiredString extracts field from raw as a trimmed, non-empty string.
// Numbers are coerced to their string form with a warning.
func RequiredString(raw map[string]any, field string) (string, []Warning, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", nil, MissingField(field)
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", nil, TypeMismatch(field, "non-empty string", v)
		}
		return s, nil, nil
	}
	if s, ok := numberString(v); ok {
		return s, []Warning{{
			Field: field,
			Value: v,
			Msg:   fmt.Sprintf("field %q: coerced number to string %q", field, s),
		}}, nil
	}
	return "", nil, TypeMismatch(field, "string", v)
}

// CodeList splits a raw code field into ordered candidate strings.
// A comma-separated string and an array of strings are both accepted;
// array elements that are not non-empty strings are dropped with a warning.
func CodeList(v any, field string) ([]string, []Warning, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil, nil
	case string:
		var out []string
		for _, seg := range strings.Split(x, ",") {
			if seg = strings.TrimSpace(seg); seg != "" {
				out = append(out, seg)
			}
		}
		return out, nil, nil
	case []string:
		elems := make([]any, len(x))
		for i, s := range x {
			elems[i] = s
		}
		return codeElements(elems, field)
	case []any:
		return codeElements(x, field)
	}
	return nil, nil, TypeMismatch(field, "string or array", v)
}

func codeElements(elems []any, field string) ([]string, []Warning, error) {
	var (
		out   []string
		warns []Warning
	)
	for i, e := range elems {
		if s, ok := e.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
				continue
			}
		}
		warns = append(warns, Warning{
			Field: field,
			Value: e,
			Msg:   fmt.Sprintf("field %q: dropped element %d (%s)", field, i, kindName(e)),
		})
	}
	return out, warns, nil
}

// numberString renders a numeric raw value. Integral floats render without
// a fractional part.
func numberString(v any) (string, bool) {
	switch x := v.(type) {
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return formatFloat(float64(x), 32), true
	case float64:
		return formatFloat(x, 64), true
	}
	return "", false
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Int extracts an integer from a number or a numeric string. Fractional
// numbers are rejected.
func Int(v any) (int64, bool) {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return floatInt(f)
	case float32:
		return floatInt(float64(x))
	case float64:
		return floatInt(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	s, ok := numberString(v)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func floatInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
