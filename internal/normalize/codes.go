package normalize

import (
	"regexp"
	"strings"
)

var (
	nonDigit      = regexp.MustCompile(`[^0-9]`)
	diagnosisCode = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,6}$`)
)

// ProcedureCode strips every non-digit and requires exactly five digits to remain.
func ProcedureCode(field, s string) (string, error) {
	d := nonDigit.ReplaceAllString(s, "")
	if len(d) != 5 {
		return "", Invalid(KindInvalidCode, field, s,
			"procedure code %q must contain exactly 5 digits, found %d", s, len(d))
	}
	return d, nil
}

// DiagnosisCode uppercases, removes dots and trims the candidate, then
// validates it as a letter followed by 2 to 6 alphanumerics. Codes longer
// than three characters get a dot after the third.
func DiagnosisCode(field, s string) (string, error) {
	c := strings.TrimSpace(strings.ReplaceAll(strings.ToUpper(s), ".", ""))
	if !diagnosisCode.MatchString(c) {
		return "", Invalid(KindInvalidCode, field, s,
			"diagnosis code %q must be a letter followed by 2 to 6 alphanumerics", s)
	}
	if len(c) > 3 {
		c = c[:3] + "." + c[3:]
	}
	return c, nil
}

// ProcedureCodes normalizes every candidate. An empty result is an error.
func ProcedureCodes(field string, candidates []string) ([]string, error) {
	return codes(field, "procedure", candidates, ProcedureCode)
}

// DiagnosisCodes normalizes every candidate. An empty result is an error.
func DiagnosisCodes(field string, candidates []string) ([]string, error) {
	return codes(field, "diagnosis", candidates, DiagnosisCode)
}

func codes(field, label string, candidates []string, fn func(string, string) (string, error)) ([]string, error) {
	if len(candidates) == 0 {
		return nil, Invalid(KindInvalidCode, field, candidates, "at least one %s code is required", label)
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		n, err := fn(field, c)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
