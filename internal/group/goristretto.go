package group

import (
	"errors"

	"github.com/bwesterb/go-ristretto"
)

var errNotRistretto = errors.New("not a ristretto255 encoding")

type goRistrettoBackend struct{}

type goRistrettoScalar struct {
	s *ristretto.Scalar
}

type goRistrettoElement struct {
	p *ristretto.Point
}

func (goRistrettoBackend) scalarFromUniform(b []byte) Scalar {
	var buf [UniformSize]byte

	copy(buf[:], b)

	return goRistrettoScalar{s: new(ristretto.Scalar).SetReduced(&buf)}
}

func (goRistrettoBackend) baseMult(s Scalar) Element {
	return goRistrettoElement{p: new(ristretto.Point).ScalarMultBase(s.(goRistrettoScalar).s)}
}

func (goRistrettoBackend) size() int {
	return ElementSize
}

func (goRistrettoBackend) supports(mapping string) bool {
	return mapping == MapElligator
}

func (goRistrettoBackend) mapToElement(_ string, b []byte) Element {
	return goRistrettoElement{p: new(ristretto.Point).Derive(b)}
}

func (goRistrettoBackend) decode(b []byte) (Element, error) {
	var buf [ElementSize]byte

	copy(buf[:], b)

	p := new(ristretto.Point)
	if !p.SetBytes(&buf) {
		return nil, errNotRistretto
	}

	return goRistrettoElement{p: p}, nil
}

func (goRistrettoBackend) isIdentity(e Element) bool {
	return e.(goRistrettoElement).p.Equals(new(ristretto.Point).SetZero())
}

func (s goRistrettoScalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrDegenerateScalar
	}

	return goRistrettoScalar{s: new(ristretto.Scalar).Inverse(s.s)}, nil
}

func (s goRistrettoScalar) IsZero() bool {
	return s.s.Equals(new(ristretto.Scalar).SetZero())
}

func (s goRistrettoScalar) Encode() []byte {
	return s.s.Bytes()
}

func (e goRistrettoElement) ScalarMult(s Scalar) Element {
	return goRistrettoElement{p: new(ristretto.Point).ScalarMult(e.p, s.(goRistrettoScalar).s)}
}

func (e goRistrettoElement) Encode() []byte {
	return e.p.Bytes()
}

func (e goRistrettoElement) Equal(o Element) bool {
	other, ok := o.(goRistrettoElement)

	return ok && e.p.Equals(other.p)
}
