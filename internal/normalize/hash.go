package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gyeh/claimmap/internal/model"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// ClaimHash computes a stable SHA-256 over the canonical content of a claim.
// Values are written in field order with null separators; list fields are
// prefixed by their length so element boundaries cannot shift.
func ClaimHash(c *model.Claim) []byte {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	write(c.ClaimID)
	write(c.MemberID)
	write(c.ProviderNPI)
	for _, list := range [][]string{c.ProcedureCodes, c.DiagnosisCodes} {
		write(strconv.Itoa(len(list)))
		for _, code := range list {
			write(code)
		}
	}
	write(c.DateOfService.Format(time.DateOnly))
	write(strconv.FormatInt(c.TotalChargeCents, 10))

	if c.COB == nil {
		write("")
		return h.Sum(nil)
	}
	write(strconv.FormatInt(c.COB.Sequence, 10))
	write(derefStr(c.COB.OtherPayerID))
	if c.COB.OtherPayerPaidCents != nil {
		write(strconv.FormatInt(*c.COB.OtherPayerPaidCents, 10))
	} else {
		write("")
	}
	return h.Sum(nil)
}
