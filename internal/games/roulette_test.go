package games

import (
	"errors"
	"testing"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

func TestRouletteWheelLayout(t *testing.T) {
	if RouletteSlices != 37 {
		t.Fatalf("RouletteSlices = %d, want 37", RouletteSlices)
	}
	seen := make(map[int]bool)
	reds := 0
	for _, n := range rouletteWheel {
		if n < 0 || n > 36 || seen[n] {
			t.Errorf("bad or repeated pocket %d", n)
		}
		seen[n] = true
		if NumberColor(n) == Red {
			reds++
		}
	}
	if reds != 18 {
		t.Errorf("%d red pockets, want 18", reds)
	}
	if NumberColor(0) != Green {
		t.Error("0 is not green")
	}
}

func TestSpinPointerRoundTrip(t *testing.T) {
	rng := newPCG(9)
	for range 5000 {
		res := Spin(rng)
		if res.StopRotationDeg < 0 || res.StopRotationDeg >= 360 {
			t.Fatalf("stop %v out of [0, 360)", res.StopRotationDeg)
		}
		idx, err := PointerSlice(res.StopRotationDeg)
		if err != nil {
			t.Fatalf("PointerSlice() error: %v", err)
		}
		if idx != res.WheelIndex {
			t.Fatalf("stop %v reads slice %d, spin said %d", res.StopRotationDeg, idx, res.WheelIndex)
		}
		if res.WinningNumber != rouletteWheel[res.WheelIndex] {
			t.Fatalf("winning number %d does not match wheel index %d", res.WinningNumber, res.WheelIndex)
		}
		if res.Color != NumberColor(res.WinningNumber) {
			t.Fatalf("color %s does not match number %d", res.Color, res.WinningNumber)
		}
	}
}

func TestSpinEdges(t *testing.T) {
	// Lowest and highest jitter on the first and last pockets stay inside them.
	for _, seq := range [][]int{{0, 0}, {0, rouletteJitterSteps - 1}, {36, 0}, {36, rouletteJitterSteps - 1}} {
		res := Spin(&sequenceRNG{values: seq})
		idx, err := PointerSlice(res.StopRotationDeg)
		if err != nil {
			t.Fatalf("PointerSlice() error: %v", err)
		}
		if idx != seq[0] {
			t.Errorf("seq %v: stop %v reads slice %d, want %d", seq, res.StopRotationDeg, idx, seq[0])
		}
	}
}

func TestSpinZeroPocket(t *testing.T) {
	res := Spin(fixedRNG{val: 0})
	if res.WheelIndex != 0 || res.WinningNumber != 0 || res.Color != Green {
		t.Errorf("Spin() = %+v, want pocket 0 green", res)
	}
}

func TestResolveBet(t *testing.T) {
	seventeen := 17
	zero := 0
	spin := SpinResult{Color: Black, WheelIndex: 8, WinningNumber: 17}
	greenSpin := SpinResult{Color: Green, WheelIndex: 0, WinningNumber: 0}

	tests := []struct {
		name   string
		bet    RouletteBet
		result SpinResult
		want   BetOutcome
	}{
		{"black wins", RouletteBet{BetType: BetBlack}, spin, BetOutcome{Won: true, PayoutMinor: 200}},
		{"red loses", RouletteBet{BetType: BetRed}, spin, BetOutcome{}},
		{"green wins", RouletteBet{BetType: BetGreen}, greenSpin, BetOutcome{Won: true, PayoutMinor: 1400}},
		{"straight wins", RouletteBet{BetType: BetStraight, Selection: &seventeen}, spin, BetOutcome{Won: true, PayoutMinor: 3600}},
		{"straight zero wins", RouletteBet{BetType: BetStraight, Selection: &zero}, greenSpin, BetOutcome{Won: true, PayoutMinor: 3600}},
		{"straight loses", RouletteBet{BetType: BetStraight, Selection: &zero}, spin, BetOutcome{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBet(tt.bet, tt.result, 100)
			if err != nil {
				t.Fatalf("ResolveBet() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveBet() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveBetInvalid(t *testing.T) {
	spin := SpinResult{Color: Red, WinningNumber: 1}
	bad := 37

	tests := []struct {
		name   string
		bet    RouletteBet
		amount int64
	}{
		{"zero amount", RouletteBet{BetType: BetRed}, 0},
		{"unknown type", RouletteBet{BetType: "odd"}, 100},
		{"straight without selection", RouletteBet{BetType: BetStraight}, 100},
		{"straight out of range", RouletteBet{BetType: BetStraight, Selection: &bad}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ResolveBet(tt.bet, spin, tt.amount); !errors.Is(err, kernel.ErrInvalidArgument) {
				t.Errorf("ResolveBet() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
