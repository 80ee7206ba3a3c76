// Package group provides the prime-order group arithmetic used by the blind exchange.
//
// Every supported backend encodes elements canonically and derives scalars from 64-byte uniform
// strings by wide reduction mod n. The Curve25519 groups use 32-byte elements; P-256 uses 33-byte
// compressed points. Labels are mapped to elements in one of three ways:
//
//	scalar-base:   H1(x) = (SHA-512(x || ctr) mod n) * B, resampling ctr while the digest is zero
//	elligator:     H1(x) = Map(SHA-512(x || ctr)), the one-way map of the ristretto255 group
//	hash-to-curve: H1(x) = hash_to_curve(x || ctr), the P256_XMD:SHA-256_SSWU_RO_ suite
//
// Groups are immutable values and are safe to share between concurrent runs.
package group

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/codahale/psi/internal/kdf"
)

const (
	ElementSize    = 32 // ElementSize is the length of an encoded Curve25519 group element in bytes.
	CompressedSize = 33 // CompressedSize is the length of a compressed P-256 point in bytes.
	UniformSize    = 64 // UniformSize is the length of a uniform string mapped to a scalar or element.

	Ristretto255 = "ristretto255" // Ristretto255 is the gtank/ristretto255 backend.
	GoRistretto  = "go-ristretto" // GoRistretto is the bwesterb/go-ristretto backend.
	Edwards25519 = "edwards25519" // Edwards25519 is the prime-order subgroup of edwards25519.
	P256         = "p256"         // P256 is the NIST P-256 group, via bytemare/crypto.

	MapScalarBase  = "scalar-base"   // MapScalarBase maps labels to digest * B.
	MapElligator   = "elligator"     // MapElligator maps labels with the ristretto255 one-way map.
	MapHashToCurve = "hash-to-curve" // MapHashToCurve maps labels with RFC 9380 hash_to_curve.
)

var (
	// ErrDegenerateScalar is returned when a scalar which must be non-zero is zero.
	ErrDegenerateScalar = errors.New("degenerate scalar")

	// ErrInvalidElement is returned when bytes do not encode a valid, non-identity element.
	ErrInvalidElement = errors.New("invalid element encoding")

	// ErrUnsupported is returned when a group or mapping is not supported.
	ErrUnsupported = errors.New("unsupported group parameters")
)

// Names returns the names of the supported groups.
func Names() []string {
	return []string{Ristretto255, GoRistretto, Edwards25519, P256}
}

// Mappings returns the names of the supported hash-to-group mappings.
func Mappings() []string {
	return []string{MapScalarBase, MapElligator, MapHashToCurve}
}

// Scalar is an integer mod n.
type Scalar interface {
	// Invert returns the multiplicative inverse of the scalar, or ErrDegenerateScalar if it is zero.
	Invert() (Scalar, error)

	// IsZero returns true if the scalar is zero.
	IsZero() bool

	// Encode returns the canonical 32-byte encoding of the scalar.
	Encode() []byte
}

// Element is an element of the group.
type Element interface {
	// ScalarMult returns s times the element. The receiver is not modified.
	ScalarMult(s Scalar) Element

	// Encode returns the canonical encoding of the element.
	Encode() []byte

	// Equal returns true if the two elements are the same element.
	Equal(o Element) bool
}

// Group is a prime-order group with a fixed hash-to-group mapping.
type Group interface {
	// Name returns the group's name.
	Name() string

	// Mapping returns the name of the group's hash-to-group mapping.
	Mapping() string

	// ElementSize returns the length of an encoded element in bytes.
	ElementSize() int

	// HashToElement deterministically maps a label to an element.
	HashToElement(label []byte) Element

	// RandomScalar returns a scalar selected uniformly from [1, n-1].
	RandomScalar(rand io.Reader) (Scalar, error)

	// ScalarFromUniform reduces a 64-byte uniform string to a scalar, returning
	// ErrDegenerateScalar if the result is zero.
	ScalarFromUniform(b []byte) (Scalar, error)

	// DecodeElement decodes a canonical, non-identity element encoding.
	DecodeElement(b []byte) (Element, error)
}

// backend is the arithmetic a concrete group library provides.
type backend interface {
	size() int
	supports(mapping string) bool
	scalarFromUniform(b []byte) Scalar
	baseMult(s Scalar) Element
	mapToElement(mapping string, b []byte) Element // elligator and hash-to-curve only
	decode(b []byte) (Element, error)
	isIdentity(e Element) bool
}

// New returns the named group using the given mapping.
func New(name, mapping string) (Group, error) {
	var b backend

	switch name {
	case Ristretto255:
		b = r255Backend{}
	case GoRistretto:
		b = goRistrettoBackend{}
	case Edwards25519:
		b = ed25519Backend{}
	case P256:
		b = p256Backend{}
	default:
		return nil, fmt.Errorf("%w: group %q", ErrUnsupported, name)
	}

	switch mapping {
	case MapScalarBase:
	case MapElligator, MapHashToCurve:
		if !b.supports(mapping) {
			return nil, fmt.Errorf("%w: %s has no %s mapping", ErrUnsupported, name, mapping)
		}
	default:
		return nil, fmt.Errorf("%w: mapping %q", ErrUnsupported, mapping)
	}

	return &group{name: name, mapping: mapping, b: b}, nil
}

type group struct {
	name, mapping string
	b             backend
}

func (g *group) Name() string {
	return g.name
}

func (g *group) Mapping() string {
	return g.mapping
}

func (g *group) ElementSize() int {
	return g.b.size()
}

func (g *group) HashToElement(label []byte) Element {
	var ctr [4]byte

	for i := uint32(0); ; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)

		if g.mapping == MapHashToCurve {
			// hash_to_curve does its own domain separation.
			in := append(append(make([]byte, 0, len(label)+len(ctr)), label...), ctr[:]...)
			if e := g.b.mapToElement(g.mapping, in); !g.b.isIdentity(e) {
				return e
			}

			continue
		}

		h := kdf.NewLabelHash()
		_, _ = h.Write(label)
		_, _ = h.Write(ctr[:])
		d := h.Sum(nil)

		if g.mapping == MapElligator {
			if e := g.b.mapToElement(g.mapping, d); !g.b.isIdentity(e) {
				return e
			}

			continue
		}

		// A zero digest would map every such label to the identity.
		if s := g.b.scalarFromUniform(d); !s.IsZero() {
			return g.b.baseMult(s)
		}
	}
}

func (g *group) RandomScalar(rand io.Reader) (Scalar, error) {
	var buf [UniformSize]byte

	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, err
		}

		if s := g.b.scalarFromUniform(buf[:]); !s.IsZero() {
			return s, nil
		}
	}
}

func (g *group) ScalarFromUniform(b []byte) (Scalar, error) {
	if len(b) != UniformSize {
		return nil, fmt.Errorf("uniform string must be %d bytes, got %d", UniformSize, len(b))
	}

	s := g.b.scalarFromUniform(b)
	if s.IsZero() {
		return nil, ErrDegenerateScalar
	}

	return s, nil
}

func (g *group) DecodeElement(b []byte) (Element, error) {
	if len(b) != g.b.size() {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidElement, g.b.size(), len(b))
	}

	e, err := g.b.decode(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidElement, err)
	}

	// Some backends accept non-canonical encodings of valid elements.
	if !bytes.Equal(e.Encode(), b) {
		return nil, fmt.Errorf("%w: non-canonical", ErrInvalidElement)
	}

	if g.b.isIdentity(e) {
		return nil, fmt.Errorf("%w: identity", ErrInvalidElement)
	}

	return e, nil
}
