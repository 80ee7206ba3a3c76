package psi

import (
	"io"

	"github.com/codahale/psi/internal/group"
	"github.com/codahale/psi/internal/rng"
)

// Candidate is a key the requester derived for one of its items, and the item it came from.
type Candidate struct {
	Label []byte
	Key   SymmetricKey
}

// SentQuery is the requester's private view of one blinded item.
type SentQuery struct {
	Item        []byte
	MaskedPoint []byte
}

type pendingQuery struct {
	item     []byte
	r        group.Scalar
	masked   []byte
	answered bool
}

// Requester is the party (Alice) whose items are blinded and sent to the holder. Blinding scalars
// stay with the Requester and must not be reused across runs.
type Requester struct {
	suite    *Suite
	schedule rng.Schedule
	pending  []pendingQuery
}

// NewRequester returns a Requester whose blinding scalars are drawn from rand using the suite's
// blinding schedule.
func NewRequester(s *Suite, rand io.Reader) (*Requester, error) {
	schedule, err := rng.NewSchedule(s.blinding, s.group, rand)
	if err != nil {
		return nil, err
	}

	return &Requester{suite: s, schedule: schedule}, nil
}

// Blind hashes each item to the group and multiplies it by a fresh blinding scalar r.
func (a *Requester) Blind(items [][]byte) ([]BlindedQuery, error) {
	pending := make([]pendingQuery, 0, len(items))
	queries := make([]BlindedQuery, 0, len(items))

	for i, item := range items {
		r, err := a.schedule.Next()
		if err != nil {
			return nil, err
		}

		masked := a.suite.group.HashToElement(item).ScalarMult(r).Encode()

		pending = append(pending, pendingQuery{item: append([]byte(nil), item...), r: r, masked: masked})
		queries = append(queries, BlindedQuery{Index: i, MaskedPoint: masked})
	}

	a.pending = pending

	return queries, nil
}

// Unblind removes the blinding scalar from each response and derives a candidate key. Responses
// which are malformed, duplicated, do not answer a query, or answer a query whose scalar cannot be
// inverted are skipped and logged.
func (a *Requester) Unblind(responses []MaskedResponse) []Candidate {
	candidates := make([]Candidate, 0, len(responses))

	for _, resp := range responses {
		if resp.Index < 0 || resp.Index >= len(a.pending) || a.pending[resp.Index].answered {
			a.suite.log.Warn("skipping response", "index", resp.Index, "err", ErrInvalidRecord)

			continue
		}

		y, err := a.suite.group.DecodeElement(resp.MaskedPoint)
		if err != nil {
			a.suite.log.Warn("skipping response", "index", resp.Index, "err", err)

			continue
		}

		q := &a.pending[resp.Index]

		rInv, err := q.r.Invert()
		if err != nil {
			a.suite.log.Warn("skipping response", "index", resp.Index, "err", err)

			continue
		}

		q.answered = true
		candidates = append(candidates, Candidate{
			Label: q.item,
			Key:   a.suite.deriveKey(y.ScalarMult(rInv)),
		})
	}

	return candidates
}

// Sent returns the requester's items with the elements sent for them, in order.
func (a *Requester) Sent() []SentQuery {
	sent := make([]SentQuery, len(a.pending))
	for i, q := range a.pending {
		sent[i] = SentQuery{Item: q.item, MaskedPoint: q.masked}
	}

	return sent
}

// Scalars returns the encodings of the requester's blinding scalars. They are diagnostic only and
// must never be sent to the holder.
func (a *Requester) Scalars() [][]byte {
	scalars := make([][]byte, len(a.pending))
	for i, q := range a.pending {
		scalars[i] = q.r.Encode()
	}

	return scalars
}
