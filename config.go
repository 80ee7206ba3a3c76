package psi

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/codahale/psi/internal/aead"
	"github.com/codahale/psi/internal/group"
	"github.com/codahale/psi/internal/kdf"
	"github.com/codahale/psi/internal/rng"
	"github.com/codahale/psi/internal/textenc"
)

// Config selects the algorithms and options for a run.
type Config struct {
	Group    string // Group is the prime-order group: ristretto255, go-ristretto, edwards25519, or p256.
	Mapping  string // Mapping is the hash-to-group mapping: scalar-base, elligator, or hash-to-curve.
	KDF      string // KDF is the key derivation hash: sha512, blake2b, sha3, or strobe.
	Cipher   string // Cipher is the payload AEAD: xchacha20poly1305, secretbox, strobe, or aes256gcm.
	Encoding string // Encoding is the text encoding for displayed values: base64, base58, or hex.
	Blinding string // Blinding is the requester's blinding schedule: random or chain.

	// ShuffleRecords shuffles the holder's published records so their order does not follow the
	// order of the holder's items.
	ShuffleRecords bool

	// RevealScalars includes the requester's blinding scalars in the result. This is for
	// demonstrations only.
	RevealScalars bool

	// Rand is the source of randomness. If nil, crypto/rand is used. Each run hardens it with its
	// own STROBE protocol.
	Rand io.Reader

	// Log receives phase transitions and skipped values. If nil, nothing is logged.
	Log *slog.Logger
}

// DefaultConfig returns a Config with the default algorithms.
func DefaultConfig() Config {
	return Config{
		Group:    group.Ristretto255,
		Mapping:  group.MapScalarBase,
		KDF:      kdf.SHA512,
		Cipher:   aead.XChaCha20Poly1305,
		Encoding: textenc.Base64,
		Blinding: rng.Random,
	}
}

// Validate returns an error wrapping ErrConfiguration if the configuration is unsupported.
func (c *Config) Validate() error {
	_, err := NewSuite(c)

	return err
}

func (c *Config) rand() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}

	return c.Rand
}

func (c *Config) logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.Log
}

// Suite is an immutable set of algorithms shared by both roles of a run. A Suite holds no key
// material and may be shared between concurrent runs.
type Suite struct {
	group    group.Group
	derive   kdf.Func
	cipher   aead.Cipher
	text     textenc.Encoding
	blinding string
	log      *slog.Logger
}

// NewSuite returns the Suite for the given configuration.
func NewSuite(c *Config) (*Suite, error) {
	g, err := group.New(c.Group, c.Mapping)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	derive, err := kdf.New(c.KDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	cipher, err := aead.New(c.Cipher)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	text, err := textenc.New(c.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if !slices.Contains(rng.Schedules(), c.Blinding) {
		return nil, fmt.Errorf("%w: unsupported blinding schedule %q", ErrConfiguration, c.Blinding)
	}

	return &Suite{
		group:    g,
		derive:   derive,
		cipher:   cipher,
		text:     text,
		blinding: c.Blinding,
		log:      c.logger(),
	}, nil
}

// deriveKey returns the symmetric key for an element.
func (s *Suite) deriveKey(e group.Element) SymmetricKey {
	return s.derive(e.Encode())
}
