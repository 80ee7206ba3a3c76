// Package psi implements a blind-exchange private set intersection.
//
// A holder (Bob) and a requester (Alice) each have a set of opaque item labels. Bob hashes each of
// his labels to a group element, multiplies it by his secret scalar k, derives a symmetric key from
// the result, and publishes his labels encrypted under those keys. Alice hashes each of her labels,
// blinds it with a fresh scalar r, and sends the blinded element to Bob, who multiplies it by k and
// returns it. Alice removes her blind with r⁻¹, which leaves H1(x)^k, derives the same key Bob
// would have for x, and attempts to decrypt Bob's records with it. Every successful decryption is
// an element of the intersection.
//
// Neither party sends a plaintext label to the other, but set sizes are revealed, the parties are
// assumed to be honest, and nothing here is constant-time. Matching is by brute-force trial
// decryption and is only suitable for small sets.
//
// You should not use this.
package psi

import (
	"errors"

	"github.com/codahale/psi/internal/aead"
	"github.com/codahale/psi/internal/group"
	"github.com/codahale/psi/internal/kdf"
)

var (
	// ErrConfiguration is returned when a run is configured with unsupported parameters. No key
	// material is generated for such a run.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrEncoding is returned when a record, query, or response is malformed. Such values are
	// skipped during a run.
	ErrEncoding = errors.New("invalid encoding")

	// ErrPhase is returned when a protocol step is called out of order.
	ErrPhase = errors.New("protocol step out of order")

	// ErrAuthentication is returned when a record cannot be decrypted with a key. During matching
	// it means "no match".
	ErrAuthentication = aead.ErrAuthentication

	// ErrDegenerateScalar is logged when a response answers a query whose scalar cannot be inverted.
	ErrDegenerateScalar = group.ErrDegenerateScalar
)

// KeySize is the length of a derived symmetric key in bytes.
const KeySize = kdf.KeySize

// SymmetricKey is a key derived from a group element.
type SymmetricKey = kdf.Key
