package rng

import (
	"errors"
	"fmt"
	"io"

	"github.com/codahale/psi/internal/group"
	"github.com/codahale/psi/internal/protocols"
	"github.com/sammyne/strobe"
)

const (
	Random = "random" // Random draws every blinding scalar independently.
	Chain  = "chain"  // Chain derives blinding scalars from a single per-run seed.
)

// Schedules returns the names of the supported blinding schedules.
func Schedules() []string {
	return []string{Random, Chain}
}

// Schedule produces a sequence of non-zero blinding scalars.
type Schedule interface {
	Next() (group.Scalar, error)
}

// NewSchedule returns the named schedule, drawing its randomness from rand.
func NewSchedule(name string, g group.Group, rand io.Reader) (Schedule, error) {
	switch name {
	case Random:
		return &randomSchedule{g: g, rand: rand}, nil
	case Chain:
		return newChainSchedule(g, rand)
	default:
		return nil, fmt.Errorf("unsupported blinding schedule %q", name)
	}
}

type randomSchedule struct {
	g    group.Group
	rand io.Reader
}

func (s *randomSchedule) Next() (group.Scalar, error) {
	return s.g.RandomScalar(s.rand)
}

// chainSchedule derives scalars from a fresh 64-byte seed S with the STROBE protocol:
//
//	INIT('psi.scaldf.chain', level=256)
//	KEY(S)
//
// For the i-th scalar:
//
//	AD(LE_U64(i), meta=true)
//	PRF(64) -> d_i
//	RATCHET(32)
//
// Each d_i is reduced to a scalar; zero scalars are skipped. The seed is never reused.
type chainSchedule struct {
	g     group.Group
	chain *strobe.Strobe
	i     uint64
}

func newChainSchedule(g group.Group, rand io.Reader) (*chainSchedule, error) {
	seed := make([]byte, group.UniformSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, err
	}

	chain := protocols.New("psi.scaldf.chain")
	protocols.Must(chain.KEY(seed, false))

	return &chainSchedule{g: g, chain: chain}, nil
}

func (s *chainSchedule) Next() (group.Scalar, error) {
	var buf [group.UniformSize]byte

	for {
		protocols.Must(s.chain.AD(protocols.LittleEndianU64(s.i), &strobe.Options{Meta: true}))
		protocols.Must(s.chain.PRF(buf[:], false))
		protocols.Must(s.chain.RATCHET(protocols.RatchetSize))
		s.i++

		d, err := s.g.ScalarFromUniform(buf[:])
		if errors.Is(err, group.ErrDegenerateScalar) {
			continue
		}

		return d, err
	}
}
