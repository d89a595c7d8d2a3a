// Package leaderboard ranks account balances, highest first.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"math/big"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

const (
	// CreditsField holds the balance in minor currency units.
	CreditsField = "creditsMinor"
	// RankField is added to every ranked record.
	RankField = "rank"
)

// Record is one decoded leaderboard row. Fields other than creditsMinor are carried
// through untouched.
type Record map[string]any

// Rank returns the records sorted by creditsMinor descending, each with a 1-based
// rank. Records with equal balances keep their input order. The input slice and
// its records are not modified.
func Rank(records []Record) ([]Record, error) {
	type keyed struct {
		rec Record
		key decimal.Decimal
	}

	rows := make([]keyed, len(records))
	for i, rec := range records {
		key, err := CreditsMinor(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows[i] = keyed{rec: rec, key: key}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		return b.key.Cmp(a.key)
	})

	out := make([]Record, len(rows))
	for i, row := range rows {
		rec := maps.Clone(row.rec)
		if rec == nil {
			rec = Record{}
		}
		rec[RankField] = i + 1
		out[i] = rec
	}
	return out, nil
}

// CreditsMinor extracts the exact integer balance of rec. Strings must be integer
// literals ("-120", "300"); JSON and Go numbers must denote an integer (300.0 and
// 1e3 are fine, 10.5 is not).
// Anything missing, non-numeric or fractional is MalformedInput. Balances are not
// bounded to int64.
func CreditsMinor(rec Record) (decimal.Decimal, error) {
	raw, ok := rec[CreditsField]
	if !ok {
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "missing")
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch v := raw.(type) {
	case string:
		d, err = parseInteger(v)
	case json.Number:
		d, err = decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, kernel.Malformed(CreditsField, "not a number: %q", v.String()).WithCause(err)
		}
		if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
			return decimal.Decimal{}, kernel.Malformed(CreditsField, "exponent out of range: %q", v.String())
		}
	case int:
		d = decimal.NewFromInt(int64(v))
	case int32:
		d = decimal.NewFromInt32(v)
	case int64:
		d = decimal.NewFromInt(v)
	case uint64:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, kernel.Malformed(CreditsField, "not a finite number: %v", v)
		}
		d = decimal.NewFromFloat(v)
	case nil:
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "null")
	default:
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "unsupported type %T", raw)
	}
	if err != nil {
		return decimal.Decimal{}, err
	}

	if !d.IsInteger() {
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "not an integer: %s", d.String())
	}
	return d, nil
}

// maxExponent bounds json.Number exponents so comparisons never rescale to
// enormous integers.
const maxExponent = 1000

func parseInteger(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "empty string")
	}
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "not an integer: %q", s)
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Decimal{}, kernel.Malformed(CreditsField, "not an integer: %q", s).WithCause(err)
	}
	return d, nil
}
