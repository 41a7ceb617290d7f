package normalize

// npiPrefix is the card issuer prefix (80840) the NPI check digit is computed over.
const npiPrefix = "80840"

// ProviderNPI strips non-digits and validates a 10-digit NPI against its
// Luhn check digit.
func ProviderNPI(field, s string) (string, error) {
	d := nonDigit.ReplaceAllString(s, "")
	if len(d) != 10 {
		return "", Invalid(KindInvalidIdentifier, field, s,
			"provider identifier %q must contain exactly 10 digits, found %d", s, len(d))
	}
	want := NPICheckDigit(d[:9])
	if got := int(d[9] - '0'); got != want {
		return "", Invalid(KindInvalidIdentifier, field, s,
			"provider identifier %q fails checksum: check digit %d, expected %d", s, got, want)
	}
	return d, nil
}

// NPICheckDigit computes the check digit for the first nine digits of an NPI.
// base must contain only ASCII digits.
func NPICheckDigit(base string) int {
	payload := npiPrefix + base
	sum := 0
	for i := 0; i < len(payload); i++ {
		n := int(payload[len(payload)-1-i] - '0')
		// The check digit would sit at distance 0, so the payload's
		// rightmost digit is the first one doubled.
		if i%2 == 0 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
	}
	return (10 - sum%10) % 10
}
