// Package textenc encodes binary values as text for display and transport envelopes.
package textenc

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	Base64 = "base64" // Base64 is standard, padded base64.
	Base58 = "base58" // Base58 uses the Bitcoin alphabet.
	Hex    = "hex"    // Hex is lowercase hexadecimal.
)

// Names returns the names of the supported encodings.
func Names() []string {
	return []string{Base64, Base58, Hex}
}

// Encoding converts between bytes and text.
type Encoding interface {
	EncodeToString(b []byte) string
	DecodeString(s string) ([]byte, error)
}

// New returns the named encoding.
func New(name string) (Encoding, error) {
	switch name {
	case Base64:
		return base64.StdEncoding, nil
	case Base58:
		return b58{}, nil
	case Hex:
		return hexEncoding{}, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

type b58 struct{}

func (b58) EncodeToString(b []byte) string {
	return base58.Encode(b)
}

func (b58) DecodeString(s string) ([]byte, error) {
	return base58.Decode(s)
}

type hexEncoding struct{}

func (hexEncoding) EncodeToString(b []byte) string {
	return hex.EncodeToString(b)
}

func (hexEncoding) DecodeString(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
