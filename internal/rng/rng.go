// Package rng provides per-run randomness for the blind exchange.
//
// A Reader wraps a host RNG in a STROBE protocol:
//
//	INIT('psi.rng', level=256)
//
// When a block of random data is required, a block B of equivalent size is read from the host
// RNG, and the following operations performed:
//
//	AD(LE_U64(LEN(B)), meta=true)
//	KEY(B)
//	PRF(LEN(B)) -> B
//	RATCHET(32)
//
// Readers are created for each run and are not safe for concurrent use.
package rng

import (
	"io"

	"github.com/codahale/psi/internal/protocols"
	"github.com/sammyne/strobe"
)

// NewReader returns a reader which hardens the output of src.
func NewReader(src io.Reader) io.Reader {
	return &reader{src: src, rng: protocols.New("psi.rng")}
}

type reader struct {
	src io.Reader
	rng *strobe.Strobe
}

func (r *reader) Read(p []byte) (n int, err error) {
	// Include length of PRF request as associated data.
	protocols.Must(r.rng.AD(protocols.LittleEndianU64(uint64(len(p))), &strobe.Options{Meta: true}))

	// Read a new block of data from the underlying RNG.
	if _, err := io.ReadFull(r.src, p); err != nil {
		return 0, err
	}

	// Re-key the protocol with the block.
	protocols.Must(r.rng.KEY(p, false))

	// Return the results of the PRF.
	protocols.Must(r.rng.PRF(p, false))

	// Ratchet the state of the RNG to prevent rollback.
	protocols.Must(r.rng.RATCHET(protocols.RatchetSize))

	return len(p), nil
}
