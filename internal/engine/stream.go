package engine

import "math"

// Stream turns the float stream into uniform integer picks, so a deal or spin
// can be replayed from its seeds and nonce.
type Stream struct {
	bg    *ByteGenerator
	drawn int
}

// NewStream starts a stream at cursor 0.
func NewStream(serverSeed, clientSeed string, nonce uint64) *Stream {
	return &Stream{bg: NewByteGenerator(serverSeed, clientSeed, nonce, 0)}
}

// Intn returns floor(f * n) for the next float f, clamped into [0, n).
// Panics if n <= 0, like math/rand.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("engine: Intn called with non-positive n")
	}
	s.drawn++
	idx := int(math.Floor(s.bg.NextFloat() * float64(n)))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// Drawn reports how many picks have been consumed.
func (s *Stream) Drawn() int { return s.drawn }
