package engine

import "math/rand/v2"

// Rand is the random source used for gate geometry.
type Rand interface {
	// IntRange returns an integer in [lo, hi). hi must be greater than lo.
	IntRange(lo, hi int) int
}

type pcgRand struct {
	r *rand.Rand
}

// NewRand returns a fast seeded source. Equal seeds produce equal sequences.
func NewRand(seed int64) Rand {
	s := uint64(seed)
	return &pcgRand{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (p *pcgRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.r.IntN(hi-lo)
}

// SequenceRand replays a fixed list of offsets, cycling when exhausted.
// Each offset is reduced modulo the requested range width, so IntRange(lo, hi)
// returns lo + offset mod (hi-lo).
type SequenceRand struct {
	Offsets []int
	next    int
}

// NewSequenceRand creates a source that returns the given offsets in order.
func NewSequenceRand(offsets ...int) *SequenceRand {
	return &SequenceRand{Offsets: offsets}
}

func (s *SequenceRand) IntRange(lo, hi int) int {
	if hi <= lo || len(s.Offsets) == 0 {
		return lo
	}
	off := s.Offsets[s.next%len(s.Offsets)]
	s.next++

	width := hi - lo
	off %= width
	if off < 0 {
		off += width
	}
	return lo + off
}
