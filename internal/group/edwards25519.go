package group

import (
	"errors"

	"filippo.io/edwards25519"
)

var errTorsion = errors.New("element not in the prime-order subgroup")

// ed25519Backend works in the subgroup of order l generated by the edwards25519 base point. It has
// no one-way map, so only the scalar-base mapping is available.
type ed25519Backend struct{}

type ed25519Scalar struct {
	s *edwards25519.Scalar
}

type ed25519Element struct {
	p *edwards25519.Point
}

func (ed25519Backend) scalarFromUniform(b []byte) Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(b)
	if err != nil {
		panic(err)
	}

	return ed25519Scalar{s: s}
}

func (ed25519Backend) baseMult(s Scalar) Element {
	return ed25519Element{p: new(edwards25519.Point).ScalarBaseMult(s.(ed25519Scalar).s)}
}

func (ed25519Backend) size() int {
	return ElementSize
}

func (ed25519Backend) supports(string) bool {
	return false
}

func (ed25519Backend) mapToElement(string, []byte) Element {
	panic("edwards25519: no one-way map")
}

func (ed25519Backend) decode(b []byte) (Element, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, err
	}

	// P is in the subgroup iff (l-1)P = -P, since l-1 = 4 mod 8 never cancels a torsion component.
	minusOne := edwards25519.NewScalar().Negate(oneScalar())
	if new(edwards25519.Point).ScalarMult(minusOne, p).Equal(new(edwards25519.Point).Negate(p)) != 1 {
		return nil, errTorsion
	}

	return ed25519Element{p: p}, nil
}

func (ed25519Backend) isIdentity(e Element) bool {
	return e.(ed25519Element).p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (s ed25519Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrDegenerateScalar
	}

	return ed25519Scalar{s: edwards25519.NewScalar().Invert(s.s)}, nil
}

func (s ed25519Scalar) IsZero() bool {
	return s.s.Equal(edwards25519.NewScalar()) == 1
}

func (s ed25519Scalar) Encode() []byte {
	return s.s.Bytes()
}

func (e ed25519Element) ScalarMult(s Scalar) Element {
	return ed25519Element{p: new(edwards25519.Point).ScalarMult(s.(ed25519Scalar).s, e.p)}
}

func (e ed25519Element) Encode() []byte {
	return e.p.Bytes()
}

func (e ed25519Element) Equal(o Element) bool {
	other, ok := o.(ed25519Element)

	return ok && e.p.Equal(other.p) == 1
}

func oneScalar() *edwards25519.Scalar {
	var b [32]byte

	b[0] = 1

	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}

	return s
}
