package games

import (
	"math"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// SliceInput is the wheel-stop payload.
type SliceInput struct {
	StopRotationDeg float64 `json:"stopRotationDeg"`
	SliceCount      int     `json:"sliceCount"`
}

// SliceResult is the slice the stop angle falls into.
type SliceResult struct {
	SliceIndex int `json:"sliceIndex"`
}

// SliceIndex maps an angle to one of sliceCount equal slices covering [0, 360).
// Negative and >360 angles wrap (-10 is 350). The clamp only absorbs floating
// point error at the 360/0 seam.
func SliceIndex(stopRotationDeg float64, sliceCount int) (int, error) {
	if sliceCount <= 0 {
		return 0, kernel.Invalid("sliceCount", "must be positive, got %d", sliceCount)
	}
	if math.IsNaN(stopRotationDeg) || math.IsInf(stopRotationDeg, 0) {
		return 0, kernel.Invalid("stopRotationDeg", "must be finite, got %v", stopRotationDeg)
	}

	deg := normalizeDeg(stopRotationDeg)
	width := 360.0 / float64(sliceCount)
	raw := math.Floor(deg / width)

	// Clamp before converting: near math.MaxInt the quotient can reach 2^63.
	if raw < 0 {
		return 0, nil
	}
	if raw >= float64(sliceCount) {
		return sliceCount - 1, nil
	}
	return int(raw), nil
}

// Slice evaluates a decoded SliceInput.
func Slice(in SliceInput) (SliceResult, error) {
	idx, err := SliceIndex(in.StopRotationDeg, in.SliceCount)
	if err != nil {
		return SliceResult{}, err
	}
	return SliceResult{SliceIndex: idx}, nil
}

// normalizeDeg is floor-style modulo: math.Mod keeps the sign of the dividend,
// so negatives are shifted up. A tiny negative angle rounds to exactly 360 here
// and is left for the clamp, which puts it in the last slice.
func normalizeDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}
