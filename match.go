package psi

import (
	"errors"
)

// MatchResult is a confirmed element of the intersection: a payload recovered from one of the
// holder's records and the key which decrypted it.
type MatchResult struct {
	Payload []byte
	Key     SymmetricKey
}

// Match tries each candidate key against the records in order. The first record a key decrypts is
// a match, and a key which has already matched is not tried again. Results follow the order of the
// candidates. Records with malformed nonces are skipped and logged.
//
// This costs up to len(candidates) * len(records) decryptions.
func (s *Suite) Match(records []EncryptedRecord, candidates []Candidate) []MatchResult {
	valid := make([]EncryptedRecord, 0, len(records))

	for i, r := range records {
		if len(r.Nonce) != s.cipher.NonceSize() {
			s.log.Warn("skipping record", "index", i, "err", ErrInvalidRecord)

			continue
		}

		valid = append(valid, r)
	}

	results := make([]MatchResult, 0)
	used := make(map[SymmetricKey]bool)

	for _, c := range candidates {
		if used[c.Key] {
			continue
		}

		for _, r := range valid {
			payload, err := s.cipher.Open(&c.Key, r.Ciphertext, r.Nonce)
			if errors.Is(err, ErrAuthentication) {
				continue
			} else if err != nil {
				s.log.Warn("skipping record", "err", err)

				continue
			}

			results = append(results, MatchResult{Payload: payload, Key: c.Key})
			used[c.Key] = true

			break
		}
	}

	return results
}
