// mkfixture writes a synthetic JSON Lines claim fixture mixing the input shapes
// the mapper accepts, plus a share of deliberately defective records.
// Usage: go run ./cmd/mkfixture --out testdata/claims.jsonl --rows 200 --bad 0.1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/gyeh/claimmap/internal/normalize"
)

var (
	cptPool = []string{"99213", "99214", "97110", "36415", "80053", "93000", "71046"}
	icdPool = []string{"E11.9", "I10", "J06.9", "M54.5", "Z00.00", "R51", "E78.5"}
)

func main() {
	out := flag.String("out", "testdata/claims.jsonl", "output JSON Lines file")
	rows := flag.Int("rows", 200, "records to write")
	bad := flag.Float64("bad", 0.1, "fraction of records with a fatal defect")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	badCount := 0
	for i := 0; i < *rows; i++ {
		rec := goodRecord(rng, i)
		if rng.Float64() < *bad {
			breakRecord(rng, rec)
			badCount++
		}
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote %d records to %s (%d defective)\n", *rows, *out, badCount)
}

func goodRecord(rng *rand.Rand, i int) map[string]any {
	rec := map[string]any{
		"claimId":       fmt.Sprintf("CLM-%06d", i),
		"memberId":      fmt.Sprintf("M%08d", rng.IntN(100_000_000)),
		"providerNpi":   validNPI(rng),
		"dateOfService": dateString(rng),
		"totalCharge":   chargeValue(rng),
	}

	cpt := pick(rng, cptPool, 1+rng.IntN(3))
	icd := pick(rng, icdPool, 1+rng.IntN(3))
	if rng.IntN(2) == 0 {
		rec["cptCodes"] = strings.Join(cpt, ", ")
		rec["icdCodes"] = strings.Join(icd, ", ")
	} else {
		rec["cptCodes"] = cpt
		rec["icdCodes"] = icd
	}

	if rng.IntN(4) == 0 {
		cob := map[string]any{"sequence": 1 + rng.IntN(3)}
		if rng.IntN(2) == 0 {
			cob["otherPayerId"] = fmt.Sprintf("PAYER%03d", rng.IntN(1000))
		}
		if rng.IntN(2) == 0 {
			cob["otherPayerPaid"] = fmt.Sprintf("%d.%02d", rng.IntN(500), rng.IntN(100))
		}
		rec["cob"] = cob
	}
	return rec
}

// breakRecord introduces one fatal defect.
func breakRecord(rng *rand.Rand, rec map[string]any) {
	switch rng.IntN(5) {
	case 0:
		delete(rec, "claimId")
	case 1:
		npi := rec["providerNpi"].(string)
		last := (int(npi[9]-'0') + 1) % 10
		rec["providerNpi"] = npi[:9] + strconv.Itoa(last)
	case 2:
		rec["cptCodes"] = []string{}
	case 3:
		rec["dateOfService"] = "15.01.2024"
	case 4:
		rec["totalCharge"] = "-12.00"
	}
}

func validNPI(rng *rand.Rand) string {
	base := fmt.Sprintf("%d%08d", 1+rng.IntN(2), rng.IntN(100_000_000))
	return base + strconv.Itoa(normalize.NPICheckDigit(base))
}

func dateString(rng *rand.Rand) string {
	y, m, d := 2023+rng.IntN(2), 1+rng.IntN(12), 1+rng.IntN(28)
	switch rng.IntN(3) {
	case 0:
		return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	case 1:
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00Z", y, m, d, rng.IntN(24), rng.IntN(60))
	default:
		return fmt.Sprintf("%d/%d/%04d", m, d, y)
	}
}

func chargeValue(rng *rand.Rand) any {
	dollars, cents := rng.IntN(5000), rng.IntN(100)
	switch rng.IntN(3) {
	case 0:
		return float64(dollars) + float64(cents)/100
	case 1:
		return fmt.Sprintf("$%d.%02d", dollars, cents)
	default:
		return fmt.Sprintf("%d.%02d", dollars, cents)
	}
}

func pick(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
