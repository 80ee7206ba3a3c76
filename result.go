package psi

import (
	"unicode/utf8"
)

// BobRow is one of the holder's items as displayed.
type BobRow struct {
	Item       string `json:"item"`
	Key        string `json:"key"`
	OwnedPoint string `json:"ownedPoint"`
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
}

// AliceSentRow is one of the requester's items and the blinded element sent for it.
type AliceSentRow struct {
	Item        string `json:"item"`
	MaskedPoint string `json:"maskedPoint"`
}

// MatchRow is a confirmed element of the intersection.
type MatchRow struct {
	Item string `json:"item"`
	Key  string `json:"key"`
}

// Result is the outcome of a run, with every binary value in a text-safe encoding.
type Result struct {
	Phase     string         `json:"phase"`
	BobTable  []BobRow       `json:"bobTable"`
	AliceSent []AliceSentRow `json:"aliceSent"`

	// AliceScalars is only populated when Config.RevealScalars is set.
	AliceScalars []string `json:"aliceScalars,omitempty"`

	Matches []MatchRow `json:"matches"`

	// MatchResults are the raw matches, in the same order as Matches.
	MatchResults []MatchResult `json:"-"`
}

// Result returns a snapshot of the session's state. It may be called in any phase; collections for
// steps which have not yet run are empty.
func (s *Session) Result() *Result {
	text := s.suite.text
	res := &Result{
		Phase:        s.phase.String(),
		BobTable:     make([]BobRow, 0),
		AliceSent:    make([]AliceSentRow, 0),
		Matches:      make([]MatchRow, 0, len(s.matches)),
		MatchResults: s.matches,
	}

	for _, e := range s.holder.Entries() {
		res.BobTable = append(res.BobTable, BobRow{
			Item:       s.label(e.Item),
			Key:        text.EncodeToString(e.Key[:]),
			OwnedPoint: text.EncodeToString(e.Owned),
			Ciphertext: text.EncodeToString(e.Record.Ciphertext),
			Nonce:      text.EncodeToString(e.Record.Nonce),
		})
	}

	for _, q := range s.requester.Sent() {
		res.AliceSent = append(res.AliceSent, AliceSentRow{
			Item:        s.label(q.Item),
			MaskedPoint: text.EncodeToString(q.MaskedPoint),
		})
	}

	if s.cfg.RevealScalars {
		for _, r := range s.requester.Scalars() {
			res.AliceScalars = append(res.AliceScalars, text.EncodeToString(r))
		}
	}

	for _, m := range s.matches {
		res.Matches = append(res.Matches, MatchRow{
			Item: s.label(m.Payload),
			Key:  text.EncodeToString(m.Key[:]),
		})
	}

	return res
}

// label returns item labels as text, encoding those which are not valid UTF-8.
func (s *Session) label(item []byte) string {
	if utf8.Valid(item) {
		return string(item)
	}

	return s.suite.text.EncodeToString(item)
}
