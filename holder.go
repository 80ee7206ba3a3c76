package psi

import (
	"fmt"
	"io"

	"github.com/codahale/psi/internal/group"
)

// HolderEntry is the holder's private view of one published item.
type HolderEntry struct {
	Item   []byte
	Key    SymmetricKey
	Owned  []byte // Owned is the encoding of H1(item)^k.
	Record EncryptedRecord
}

// Holder is the party (Bob) whose items are published as encrypted records. A Holder draws a fresh
// secret scalar when created and must not be reused across runs.
type Holder struct {
	suite   *Suite
	rand    io.Reader
	k       group.Scalar
	shuffle bool
	entries []HolderEntry
}

// NewHolder returns a Holder with a fresh secret scalar drawn from rand.
func NewHolder(s *Suite, rand io.Reader, shuffle bool) (*Holder, error) {
	k, err := s.group.RandomScalar(rand)
	if err != nil {
		return nil, err
	}

	return &Holder{suite: s, rand: rand, k: k, shuffle: shuffle}, nil
}

// Publish encrypts each item under the key derived from H1(item)^k and returns the records.
func (h *Holder) Publish(items [][]byte) ([]EncryptedRecord, error) {
	entries := make([]HolderEntry, 0, len(items))
	records := make([]EncryptedRecord, 0, len(items))

	for _, item := range items {
		owned := h.suite.group.HashToElement(item).ScalarMult(h.k)
		key := h.suite.deriveKey(owned)

		ciphertext, nonce, err := h.suite.cipher.Seal(h.rand, &key, item)
		if err != nil {
			return nil, fmt.Errorf("encrypt record: %w", err)
		}

		record := EncryptedRecord{Ciphertext: ciphertext, Nonce: nonce}
		entries = append(entries, HolderEntry{
			Item:   append([]byte(nil), item...),
			Key:    key,
			Owned:  owned.Encode(),
			Record: record,
		})
		records = append(records, record)
	}

	if h.shuffle {
		if err := Shuffle(h.rand, records); err != nil {
			return nil, err
		}
	}

	h.entries = entries

	return records, nil
}

// Respond multiplies each query's element by k. Queries which do not decode to a valid element are
// skipped and logged.
func (h *Holder) Respond(queries []BlindedQuery) []MaskedResponse {
	responses := make([]MaskedResponse, 0, len(queries))

	for _, q := range queries {
		x, err := h.suite.group.DecodeElement(q.MaskedPoint)
		if err != nil {
			h.suite.log.Warn("skipping query", "index", q.Index, "err", err)

			continue
		}

		responses = append(responses, MaskedResponse{
			Index:       q.Index,
			MaskedPoint: x.ScalarMult(h.k).Encode(),
		})
	}

	return responses
}

// Entries returns the holder's items in their original order, with their keys, elements, and
// records.
func (h *Holder) Entries() []HolderEntry {
	return h.entries
}
