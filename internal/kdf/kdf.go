// Package kdf derives symmetric keys from group element encodings.
//
// A key is the first 32 bytes of a collision- and preimage-resistant hash of the encoding. Equal
// encodings always yield bit-identical keys. The strobe KDF is the STROBE protocol:
//
//	INIT('psi.kdf', level=256)
//	KEY(E)
//	PRF(32)
package kdf

import (
	"crypto/sha512"
	"fmt"

	"github.com/codahale/psi/internal/protocols"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// KeySize is the length of a derived key in bytes.
const KeySize = 32

const (
	SHA512  = "sha512"  // SHA512 truncates SHA-512 to 32 bytes.
	BLAKE2b = "blake2b" // BLAKE2b is BLAKE2b-256.
	SHA3    = "sha3"    // SHA3 is SHA3-256.
	STROBE  = "strobe"  // STROBE is a STROBE PRF keyed with the encoding.
)

// Key is a derived symmetric key.
type Key [KeySize]byte

// Func derives a key from an encoded element.
type Func func(encoding []byte) Key

// Names returns the names of the supported key derivation functions.
func Names() []string {
	return []string{SHA512, BLAKE2b, SHA3, STROBE}
}

// New returns the named key derivation function.
func New(name string) (Func, error) {
	switch name {
	case SHA512:
		return deriveSHA512, nil
	case BLAKE2b:
		return func(enc []byte) Key { return blake2b.Sum256(enc) }, nil
	case SHA3:
		return func(enc []byte) Key { return sha3.Sum256(enc) }, nil
	case STROBE:
		return deriveSTROBE, nil
	default:
		return nil, fmt.Errorf("unsupported kdf %q", name)
	}
}

func deriveSHA512(enc []byte) Key {
	var k Key

	h := sha512.Sum512(enc)
	copy(k[:], h[:KeySize])

	return k
}

func deriveSTROBE(enc []byte) Key {
	var k Key

	kdf := protocols.New("psi.kdf")
	protocols.Must(kdf.KEY(protocols.Copy(enc), false))
	protocols.Must(kdf.PRF(k[:], false))

	return k
}
