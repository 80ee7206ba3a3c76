package psi

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/codahale/psi/internal/group"
	"github.com/mr-tron/base58"
)

// ErrInvalidRecord is returned when an envelope cannot be unmarshalled.
var ErrInvalidRecord = fmt.Errorf("%w: invalid record", ErrEncoding)

// EncryptedRecord is one of the holder's items, encrypted under the key derived from the holder's
// element for that item.
//
// It can be marshalled as nonce length (u32be), nonce, and ciphertext, and as the base58 text of
// that.
type EncryptedRecord struct {
	Ciphertext []byte
	Nonce      []byte
}

// MarshalBinary encodes the record.
func (r *EncryptedRecord) MarshalBinary() ([]byte, error) {
	b := make([]byte, 4, 4+len(r.Nonce)+len(r.Ciphertext))
	binary.BigEndian.PutUint32(b, uint32(len(r.Nonce)))
	b = append(b, r.Nonce...)

	return append(b, r.Ciphertext...), nil
}

// UnmarshalBinary decodes the record.
func (r *EncryptedRecord) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return ErrInvalidRecord
	}

	n := binary.BigEndian.Uint32(data)
	if uint64(n) > uint64(len(data)-4) {
		return ErrInvalidRecord
	}

	r.Nonce = append([]byte(nil), data[4:4+n]...)
	r.Ciphertext = append([]byte(nil), data[4+n:]...)

	return nil
}

// MarshalText encodes the record as base58 text.
func (r *EncryptedRecord) MarshalText() ([]byte, error) {
	return marshalText(r)
}

// UnmarshalText decodes base58 text produced by MarshalText.
func (r *EncryptedRecord) UnmarshalText(text []byte) error {
	return unmarshalText(r, text)
}

// BlindedQuery is one of the requester's items, hashed to the group and blinded. The item and the
// blinding scalar never leave the requester.
type BlindedQuery struct {
	Index       int
	MaskedPoint []byte
}

// MarshalBinary encodes the query as index (u32be) and element.
func (q *BlindedQuery) MarshalBinary() ([]byte, error) {
	return marshalIndexed(q.Index, q.MaskedPoint), nil
}

// UnmarshalBinary decodes the query.
func (q *BlindedQuery) UnmarshalBinary(data []byte) error {
	i, p, err := unmarshalIndexed(data)
	if err != nil {
		return err
	}

	q.Index, q.MaskedPoint = i, p

	return nil
}

// MarshalText encodes the query as base58 text.
func (q *BlindedQuery) MarshalText() ([]byte, error) {
	return marshalText(q)
}

// UnmarshalText decodes base58 text produced by MarshalText.
func (q *BlindedQuery) UnmarshalText(text []byte) error {
	return unmarshalText(q, text)
}

// MaskedResponse is the holder's response to the BlindedQuery with the same index.
type MaskedResponse struct {
	Index       int
	MaskedPoint []byte
}

// MarshalBinary encodes the response as index (u32be) and element.
func (r *MaskedResponse) MarshalBinary() ([]byte, error) {
	return marshalIndexed(r.Index, r.MaskedPoint), nil
}

// UnmarshalBinary decodes the response.
func (r *MaskedResponse) UnmarshalBinary(data []byte) error {
	i, p, err := unmarshalIndexed(data)
	if err != nil {
		return err
	}

	r.Index, r.MaskedPoint = i, p

	return nil
}

// MarshalText encodes the response as base58 text.
func (r *MaskedResponse) MarshalText() ([]byte, error) {
	return marshalText(r)
}

// UnmarshalText decodes base58 text produced by MarshalText.
func (r *MaskedResponse) UnmarshalText(text []byte) error {
	return unmarshalText(r, text)
}

func marshalIndexed(i int, p []byte) []byte {
	b := make([]byte, 4, 4+len(p))
	binary.BigEndian.PutUint32(b, uint32(i))

	return append(b, p...)
}

func unmarshalIndexed(data []byte) (int, []byte, error) {
	// The group is checked when the element is decoded; here only its size is.
	if n := len(data) - 4; n != group.ElementSize && n != group.CompressedSize {
		return 0, nil, ErrInvalidRecord
	}

	return int(binary.BigEndian.Uint32(data)), append([]byte(nil), data[4:]...), nil
}

func marshalText(m encoding.BinaryMarshaler) ([]byte, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return []byte(base58.Encode(b)), nil
}

func unmarshalText(u encoding.BinaryUnmarshaler, text []byte) error {
	b, err := base58.Decode(string(text))
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	return u.UnmarshalBinary(b)
}

var (
	_ encoding.BinaryMarshaler   = &EncryptedRecord{}
	_ encoding.BinaryUnmarshaler = &EncryptedRecord{}
	_ encoding.TextMarshaler     = &EncryptedRecord{}
	_ encoding.TextUnmarshaler   = &EncryptedRecord{}
	_ encoding.BinaryMarshaler   = &BlindedQuery{}
	_ encoding.BinaryUnmarshaler = &BlindedQuery{}
	_ encoding.TextMarshaler     = &BlindedQuery{}
	_ encoding.TextUnmarshaler   = &BlindedQuery{}
	_ encoding.BinaryMarshaler   = &MaskedResponse{}
	_ encoding.BinaryUnmarshaler = &MaskedResponse{}
	_ encoding.TextMarshaler     = &MaskedResponse{}
	_ encoding.TextUnmarshaler   = &MaskedResponse{}
)
