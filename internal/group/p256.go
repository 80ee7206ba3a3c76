package group

import (
	"bytes"
	"math/big"

	crypto "github.com/bytemare/crypto"
)

// p256DST is the RFC 9380 domain separation tag for the hash-to-curve mapping.
var p256DST = []byte("psi-v1-P256_XMD:SHA-256_SSWU_RO_")

// p256Order is n, the order of the P-256 base point.
var p256Order, _ = new(big.Int).SetString(
	"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551", 16)

// p256Backend is NIST P-256 with SEC1 compressed point encodings. It has no Elligator map, but
// offers the RFC 9380 random-oracle hash_to_curve suite instead.
type p256Backend struct{}

type p256Scalar struct {
	s *crypto.Scalar
}

type p256Element struct {
	p *crypto.Element
}

func (p256Backend) size() int {
	return CompressedSize
}

func (p256Backend) supports(mapping string) bool {
	return mapping == MapHashToCurve
}

func (p256Backend) scalarFromUniform(b []byte) Scalar {
	r := new(big.Int).SetBytes(b)
	r.Mod(r, p256Order)

	s := crypto.P256Sha256.NewScalar()
	if r.Sign() == 0 {
		return p256Scalar{s: s}
	}

	if err := s.Decode(r.FillBytes(make([]byte, 32))); err != nil {
		panic(err)
	}

	return p256Scalar{s: s}
}

func (p256Backend) baseMult(s Scalar) Element {
	return p256Element{p: crypto.P256Sha256.Base().Multiply(s.(p256Scalar).s)}
}

func (p256Backend) mapToElement(_ string, b []byte) Element {
	return p256Element{p: crypto.P256Sha256.HashToGroup(b, p256DST)}
}

func (p256Backend) decode(b []byte) (Element, error) {
	p := crypto.P256Sha256.NewElement()
	if err := p.Decode(b); err != nil {
		return nil, err
	}

	return p256Element{p: p}, nil
}

func (p256Backend) isIdentity(e Element) bool {
	return e.(p256Element).p.IsIdentity()
}

func (s p256Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrDegenerateScalar
	}

	return p256Scalar{s: s.s.Copy().Invert()}, nil
}

func (s p256Scalar) IsZero() bool {
	return s.s.IsZero()
}

func (s p256Scalar) Encode() []byte {
	return s.s.Encode()
}

func (e p256Element) ScalarMult(s Scalar) Element {
	return p256Element{p: e.p.Copy().Multiply(s.(p256Scalar).s)}
}

func (e p256Element) Encode() []byte {
	return e.p.Encode()
}

func (e p256Element) Equal(o Element) bool {
	other, ok := o.(p256Element)

	return ok && bytes.Equal(e.p.Encode(), other.p.Encode())
}
