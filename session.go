package psi

import (
	"fmt"

	"github.com/codahale/psi/internal/rng"
)

// Phase is the state of a run.
type Phase int

const (
	Init           Phase = iota // Init is the state of a new session.
	BobPublished                // BobPublished follows Publish.
	AliceBlinded                // AliceBlinded follows Blind.
	BobResponded                // BobResponded follows Respond.
	AliceUnblinded              // AliceUnblinded follows Unblind.
	Matched                     // Matched follows Match and is terminal.
)

func (p Phase) String() string {
	switch p {
	case Init:
		return "INIT"
	case BobPublished:
		return "BOB_PUBLISHED"
	case AliceBlinded:
		return "ALICE_BLINDED"
	case BobResponded:
		return "BOB_RESPONDED"
	case AliceUnblinded:
		return "ALICE_UNBLINDED"
	case Matched:
		return "MATCHED"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Session is a single run of the protocol with both roles in-process. Its steps must be called in
// order, and each step either completes or leaves the session unchanged. Sessions are not safe for
// concurrent use, and a Session must not be reused for a second run.
type Session struct {
	cfg       Config
	suite     *Suite
	holder    *Holder
	requester *Requester
	phase     Phase

	records    []EncryptedRecord
	queries    []BlindedQuery
	responses  []MaskedResponse
	candidates []Candidate
	matches    []MatchResult
}

// NewSession validates the configuration and returns a new session with fresh key material for
// both roles.
func NewSession(cfg Config) (*Session, error) {
	suite, err := NewSuite(&cfg)
	if err != nil {
		return nil, err
	}

	// Each session hardens its own randomness; nothing is shared between runs.
	rand := rng.NewReader(cfg.rand())

	holder, err := NewHolder(suite, rand, cfg.ShuffleRecords)
	if err != nil {
		return nil, err
	}

	requester, err := NewRequester(suite, rand)
	if err != nil {
		return nil, err
	}

	return &Session{cfg: cfg, suite: suite, holder: holder, requester: requester}, nil
}

// Phase returns the session's current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Publish has the holder encrypt its items.
func (s *Session) Publish(items [][]byte) error {
	return s.step(Init, func() (err error) {
		s.records, err = s.holder.Publish(items)

		return err
	}, "records")
}

// Blind has the requester blind its items.
func (s *Session) Blind(items [][]byte) error {
	return s.step(BobPublished, func() (err error) {
		s.queries, err = s.requester.Blind(items)

		return err
	}, "queries")
}

// Respond has the holder respond to the requester's queries.
func (s *Session) Respond() error {
	return s.step(AliceBlinded, func() error {
		s.responses = s.holder.Respond(s.queries)

		return nil
	}, "responses")
}

// Unblind has the requester unblind the holder's responses.
func (s *Session) Unblind() error {
	return s.step(BobResponded, func() error {
		s.candidates = s.requester.Unblind(s.responses)

		return nil
	}, "candidates")
}

// Match has the requester match its candidate keys against the holder's records.
func (s *Session) Match() error {
	return s.step(AliceUnblinded, func() error {
		s.matches = s.suite.Match(s.records, s.candidates)

		return nil
	}, "matches")
}

func (s *Session) step(from Phase, f func() error, what string) error {
	if s.phase != from {
		return fmt.Errorf("%w: %s requires %s", ErrPhase, from+1, from)
	}

	if err := f(); err != nil {
		return err
	}

	s.phase++

	s.suite.log.Debug("phase complete", "phase", s.phase, what, s.count())

	return nil
}

func (s *Session) count() int {
	switch s.phase {
	case BobPublished:
		return len(s.records)
	case AliceBlinded:
		return len(s.queries)
	case BobResponded:
		return len(s.responses)
	case AliceUnblinded:
		return len(s.candidates)
	case Matched:
		return len(s.matches)
	default:
		return 0
	}
}
