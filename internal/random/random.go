// Package random provides byte sources for the random number instruction.
package random

import (
	"math/rand/v2"
	"time"
)

// Source supplies uniformly distributed bytes.
type Source interface {
	Byte() byte
}

// PRNG is a seeded pseudo random Source.
type PRNG struct {
	rnd *rand.Rand
}

// New returns a PRNG that produces a reproducible sequence for the given seed.
func New(seed uint64) *PRNG {
	return &PRNG{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// NewTimeSeeded returns a PRNG seeded from the current time.
func NewTimeSeeded() *PRNG {
	return New(uint64(time.Now().UnixNano()))
}

// Byte returns the next random byte.
func (p *PRNG) Byte() byte {
	return byte(p.rnd.UintN(256))
}

// Sequence is a Source that repeats a fixed list of bytes, mainly for tests.
type Sequence struct {
	values []byte
	pos    int
}

// NewSequence returns a Source cycling through values.
// An empty list yields zero bytes.
func NewSequence(values ...byte) *Sequence {
	return &Sequence{values: values}
}

// Byte returns the next byte of the sequence.
func (s *Sequence) Byte() byte {
	if len(s.values) == 0 {
		return 0
	}
	b := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return b
}
