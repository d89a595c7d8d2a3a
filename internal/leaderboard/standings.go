package leaderboard

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Standing is the typed leaderboard row served to group members.
type Standing struct {
	Rank         int             `json:"rank"`
	UserID       string          `json:"userId"`
	Username     string          `json:"username"`
	CreditsMinor decimal.Decimal `json:"creditsMinor"`
}

// Standings ranks records and projects them onto Standing rows. userId and
// username are optional and left empty when absent or not strings.
func Standings(records []Record) ([]Standing, error) {
	ranked, err := Rank(records)
	if err != nil {
		return nil, err
	}

	out := make([]Standing, len(ranked))
	for i, rec := range ranked {
		credits, err := CreditsMinor(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = Standing{
			Rank:         i + 1,
			UserID:       stringField(rec, "userId"),
			Username:     stringField(rec, "username"),
			CreditsMinor: credits,
		}
	}
	return out, nil
}

func stringField(rec Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

var hundred = decimal.NewFromInt(100)

// FormatCredits renders a minor-unit amount as credits with at most two fraction
// digits: 12345 -> "123.45", 100 -> "1", -250 -> "-2.5".
func FormatCredits(minor decimal.Decimal) string {
	return minor.Div(hundred).Round(2).String()
}
