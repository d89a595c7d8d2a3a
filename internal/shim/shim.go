// Package shim moves JSON between a byte stream and the kernels.
package shim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/MJE43/pf-crosscheck/internal/games"
	"github.com/MJE43/pf-crosscheck/internal/kernel"
	"github.com/MJE43/pf-crosscheck/internal/leaderboard"
)

// Exit codes for the CLI.
const (
	ExitOK              = 0
	ExitInternal        = 1
	ExitMalformedInput  = 2
	ExitInvalidArgument = 3
	ExitEmptyDeck       = 4
)

// ExitCode maps a kernel failure onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch kernel.KindOf(err) {
	case kernel.KindMalformedInput:
		return ExitMalformedInput
	case kernel.KindInvalidArgument:
		return ExitInvalidArgument
	case kernel.KindEmptyDeck:
		return ExitEmptyDeck
	default:
		return ExitInternal
	}
}

// Rank reads a JSON array of records and writes them ranked.
func Rank(r io.Reader, w io.Writer) error {
	var records []leaderboard.Record
	if err := Decode(r, &records); err != nil {
		return err
	}
	if records == nil {
		return kernel.Malformed("input", "expected a JSON array of records")
	}
	ranked, err := leaderboard.Rank(records)
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	return Encode(w, ranked)
}

// Deal writes a fresh two-card deal.
func Deal(w io.Writer, rng games.RNG) error {
	hand, err := games.DealHand(rng)
	if err != nil {
		return fmt.Errorf("deal: %w", err)
	}
	return Encode(w, hand)
}

// sliceWire keeps both fields required and exact.
type sliceWire struct {
	StopRotationDeg *json.Number `json:"stopRotationDeg"`
	SliceCount      *json.Number `json:"sliceCount"`
}

// DecodeSliceInput reads a SliceInput. Both fields are required; sliceCount must
// be an integer literal.
func DecodeSliceInput(r io.Reader) (games.SliceInput, error) {
	var wire sliceWire
	if err := Decode(r, &wire); err != nil {
		return games.SliceInput{}, err
	}
	return wire.input()
}

func (w sliceWire) input() (games.SliceInput, error) {
	if w.StopRotationDeg == nil {
		return games.SliceInput{}, kernel.Malformed("stopRotationDeg", "missing")
	}
	if w.SliceCount == nil {
		return games.SliceInput{}, kernel.Malformed("sliceCount", "missing")
	}
	deg, err := strconv.ParseFloat(w.StopRotationDeg.String(), 64)
	if err != nil || math.IsInf(deg, 0) {
		return games.SliceInput{}, kernel.Malformed("stopRotationDeg", "not a finite number: %s", *w.StopRotationDeg)
	}
	count, err := strconv.Atoi(w.SliceCount.String())
	if err != nil {
		return games.SliceInput{}, kernel.Malformed("sliceCount", "not an integer: %s", *w.SliceCount)
	}
	return games.SliceInput{StopRotationDeg: deg, SliceCount: count}, nil
}

// Slice reads {stopRotationDeg, sliceCount} and writes {sliceIndex}.
func Slice(r io.Reader, w io.Writer) error {
	in, err := DecodeSliceInput(r)
	if err != nil {
		return err
	}
	res, err := games.Slice(in)
	if err != nil {
		return fmt.Errorf("slice: %w", err)
	}
	return Encode(w, res)
}

// Spin writes one European roulette spin.
func Spin(w io.Writer, rng games.RNG) error {
	return Encode(w, games.Spin(rng))
}

// PokerEngine reads one engine action and writes its result.
func PokerEngine(r io.Reader, w io.Writer, rng games.RNG) error {
	var req games.PokerEngineRequest
	if err := Decode(r, &req); err != nil {
		return err
	}
	res, err := games.RunPokerEngine(req, rng)
	if err != nil {
		return fmt.Errorf("poker engine %s: %w", req.Action, err)
	}
	return Encode(w, res)
}

// Decode reads exactly one JSON value into v, keeping numbers as json.Number.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return kernel.Malformed("input", "empty").WithCause(io.EOF)
		}
		return kernel.Malformed("input", "invalid JSON").WithCause(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return kernel.Malformed("input", "trailing data after JSON value")
	}
	return nil
}

// Encode writes v as one line of compact JSON. HTML escaping is off so suit
// symbols and other text pass through as-is.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
