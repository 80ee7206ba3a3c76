package group

import (
	"github.com/gtank/ristretto255"
)

type r255Backend struct{}

type r255Scalar struct {
	s *ristretto255.Scalar
}

type r255Element struct {
	e *ristretto255.Element
}

func (r255Backend) scalarFromUniform(b []byte) Scalar {
	return r255Scalar{s: ristretto255.NewScalar().FromUniformBytes(b)}
}

func (r255Backend) baseMult(s Scalar) Element {
	return r255Element{e: ristretto255.NewElement().ScalarBaseMult(s.(r255Scalar).s)}
}

func (r255Backend) size() int {
	return ElementSize
}

func (r255Backend) supports(mapping string) bool {
	return mapping == MapElligator
}

func (r255Backend) mapToElement(_ string, b []byte) Element {
	return r255Element{e: ristretto255.NewElement().FromUniformBytes(b)}
}

func (r255Backend) decode(b []byte) (Element, error) {
	e := ristretto255.NewElement()
	if err := e.Decode(b); err != nil {
		return nil, err
	}

	return r255Element{e: e}, nil
}

func (r255Backend) isIdentity(e Element) bool {
	return e.(r255Element).e.Equal(ristretto255.NewElement()) == 1
}

func (s r255Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrDegenerateScalar
	}

	return r255Scalar{s: ristretto255.NewScalar().Invert(s.s)}, nil
}

func (s r255Scalar) IsZero() bool {
	return s.s.Equal(ristretto255.NewScalar()) == 1
}

func (s r255Scalar) Encode() []byte {
	return s.s.Encode(nil)
}

func (e r255Element) ScalarMult(s Scalar) Element {
	return r255Element{e: ristretto255.NewElement().ScalarMult(s.(r255Scalar).s, e.e)}
}

func (e r255Element) Encode() []byte {
	return e.e.Encode(nil)
}

func (e r255Element) Equal(o Element) bool {
	other, ok := o.(r255Element)

	return ok && e.e.Equal(other.e) == 1
}
