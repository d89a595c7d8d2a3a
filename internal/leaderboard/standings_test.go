package leaderboard

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

func TestStandings(t *testing.T) {
	in := []Record{
		{"userId": "u1", "username": "ann", "creditsMinor": "100000"},
		{"userId": "u2", "username": "bob", "creditsMinor": "250000"},
		{"userId": "u3", "creditsMinor": "-500"},
	}

	got, err := Standings(in)
	if err != nil {
		t.Fatalf("Standings() error: %v", err)
	}

	want := []struct {
		rank     int
		userID   string
		username string
		credits  int64
	}{
		{1, "u2", "bob", 250000},
		{2, "u1", "ann", 100000},
		{3, "u3", "", -500},
	}
	if len(got) != len(want) {
		t.Fatalf("Standings() returned %d rows, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Rank != w.rank || g.UserID != w.userID || g.Username != w.username {
			t.Errorf("row %d = %+v, want rank=%d user=%s name=%s", i, g, w.rank, w.userID, w.username)
		}
		if !g.CreditsMinor.Equal(decimal.NewFromInt(w.credits)) {
			t.Errorf("row %d credits = %s, want %d", i, g.CreditsMinor, w.credits)
		}
	}
}

func TestStandingsMalformed(t *testing.T) {
	_, err := Standings([]Record{{"userId": "u1"}})
	if !errors.Is(err, kernel.ErrMalformedInput) {
		t.Errorf("Standings() error = %v, want ErrMalformedInput", err)
	}
}

func TestFormatCredits(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{12345, "123.45"},
		{100, "1"},
		{100000, "1000"},
		{-250, "-2.5"},
		{7, "0.07"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatCredits(decimal.NewFromInt(tt.minor)); got != tt.want {
			t.Errorf("FormatCredits(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}
