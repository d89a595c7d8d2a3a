package games

import (
	"math"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// European wheel order, clockwise from 0.
var rouletteWheel = [...]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10, 5,
	24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

// RouletteSlices is the number of pockets on a European wheel.
const RouletteSlices = len(rouletteWheel)

// Stop angles stay this many degrees inside a pocket so the pointer never rests
// on a divider.
const rouletteEdgeMargin = 0.35

// Jitter resolution inside the allowed band.
const rouletteJitterSteps = 100000

var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Color of a roulette pocket.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// NumberColor returns the pocket color for num.
func NumberColor(num int) Color {
	if num == 0 {
		return Green
	}
	if rouletteRed[num] {
		return Red
	}
	return Black
}

// SpinResult is where the wheel stops. The pointer reads the pocket at
// 360 - StopRotationDeg.
type SpinResult struct {
	Color           Color   `json:"color"`
	StopRotationDeg float64 `json:"stopRotationDeg"`
	WheelIndex      int     `json:"wheelIndex"`
	WinningNumber   int     `json:"winningNumber"`
}

// Spin picks a pocket uniformly, then a stop angle strictly inside it.
func Spin(rng RNG) SpinResult {
	if rng == nil {
		rng = StdRNG{}
	}
	sliceDeg := 360.0 / float64(RouletteSlices)

	wheelIndex := rng.Intn(RouletteSlices)
	jitterRange := sliceDeg/2 - rouletteEdgeMargin
	jitter := float64(rng.Intn(rouletteJitterSteps))/rouletteJitterSteps*(jitterRange*2) - jitterRange

	pointer := float64(wheelIndex)*sliceDeg + sliceDeg/2 + jitter
	stop := math.Mod(360-math.Mod(pointer, 360)+360, 360)

	num := rouletteWheel[wheelIndex]
	return SpinResult{
		Color:           NumberColor(num),
		StopRotationDeg: stop,
		WheelIndex:      wheelIndex,
		WinningNumber:   num,
	}
}

// PointerSlice returns the wheel index under the pointer for a stop rotation.
func PointerSlice(stopRotationDeg float64) (int, error) {
	return SliceIndex(360-stopRotationDeg, RouletteSlices)
}

// BetType is a supported roulette wager.
type BetType string

const (
	BetRed      BetType = "red"
	BetBlack    BetType = "black"
	BetGreen    BetType = "green"
	BetStraight BetType = "straight"
)

// Payout multipliers, stake included.
var roulettePayouts = map[BetType]int64{
	BetRed:      2,
	BetBlack:    2,
	BetGreen:    14,
	BetStraight: 36,
}

// RouletteBet is a wager; Selection is only used by straight bets.
type RouletteBet struct {
	BetType   BetType `json:"betType"`
	Selection *int    `json:"selection"`
}

// BetOutcome is the settled bet.
type BetOutcome struct {
	Won         bool  `json:"won"`
	PayoutMinor int64 `json:"payoutMinor"`
}

// ResolveBet settles bet against a spin. Amounts are in minor units.
func ResolveBet(bet RouletteBet, result SpinResult, amountMinor int64) (BetOutcome, error) {
	if amountMinor <= 0 {
		return BetOutcome{}, kernel.Invalid("amountMinor", "must be positive, got %d", amountMinor)
	}
	multiplier, ok := roulettePayouts[bet.BetType]
	if !ok {
		return BetOutcome{}, kernel.Invalid("betType", "unknown bet type %q", bet.BetType)
	}

	var won bool
	switch bet.BetType {
	case BetStraight:
		if bet.Selection == nil || *bet.Selection < 0 || *bet.Selection > 36 {
			return BetOutcome{}, kernel.Invalid("selection", "straight bets need a number in 0..36")
		}
		won = result.WinningNumber == *bet.Selection
	default:
		won = string(result.Color) == string(bet.BetType)
	}

	if !won {
		return BetOutcome{}, nil
	}
	if amountMinor > math.MaxInt64/multiplier {
		return BetOutcome{}, kernel.Invalid("amountMinor", "payout overflows")
	}
	return BetOutcome{Won: true, PayoutMinor: amountMinor * multiplier}, nil
}
