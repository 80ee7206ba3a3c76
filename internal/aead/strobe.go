package aead

import (
	"io"

	"github.com/codahale/psi/internal/kdf"
	"github.com/codahale/psi/internal/protocols"
	"github.com/sammyne/strobe"
)

const (
	strobeNonceSize = 16
	strobeTagSize   = 16
)

// strobeAEAD encrypts payloads with the STROBE protocol:
//
//	INIT('psi.payload',    level=256)
//	AD(BIG_ENDIAN_U32(T),  meta=true)
//	KEY(K)
//	AD(N)
//	SEND_ENC(P)
//	SEND_MAC(T)
//
// Decryption is the same with RECV_ENC and RECV_MAC in place of SEND_ENC and SEND_MAC. No
// plaintext is returned without a successful RECV_MAC call.
type strobeAEAD struct{}

func (strobeAEAD) Name() string {
	return STROBE
}

func (strobeAEAD) NonceSize() int {
	return strobeNonceSize
}

func (strobeAEAD) Seal(rand io.Reader, key *kdf.Key, plaintext []byte) ([]byte, []byte, error) {
	nonce, err := newNonce(rand, strobeNonceSize)
	if err != nil {
		return nil, nil, err
	}

	payload := newPayloadProtocol(key, nonce)

	// Copy the plaintext to a buffer.
	ciphertext := make([]byte, len(plaintext), len(plaintext)+strobeTagSize)
	copy(ciphertext, plaintext)

	// Encrypt it in place.
	if _, err := payload.SendENC(ciphertext, &strobe.Options{}); err != nil {
		panic(err)
	}

	// Create a MAC.
	tag := make([]byte, strobeTagSize)
	protocols.Must(payload.SendMAC(tag, &strobe.Options{}))

	return append(ciphertext, tag...), nonce, nil
}

func (strobeAEAD) Open(key *kdf.Key, ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != strobeNonceSize {
		return nil, ErrInvalidNonce
	}

	if len(ciphertext) < strobeTagSize {
		return nil, ErrAuthentication
	}

	payload := newPayloadProtocol(key, nonce)

	// Copy the ciphertext and the tag.
	plaintext := protocols.Copy(ciphertext[:len(ciphertext)-strobeTagSize])
	tag := protocols.Copy(ciphertext[len(ciphertext)-strobeTagSize:])

	// Decrypt it in place.
	if _, err := payload.RecvENC(plaintext, &strobe.Options{}); err != nil {
		panic(err)
	}

	// Verify the MAC.
	if err := payload.RecvMAC(tag, &strobe.Options{}); err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

func newPayloadProtocol(key *kdf.Key, nonce []byte) *strobe.Strobe {
	payload := protocols.New("psi.payload")

	protocols.Must(payload.AD(protocols.BigEndianU32(strobeTagSize), &strobe.Options{Meta: true}))
	protocols.Must(payload.KEY(protocols.Copy(key[:]), false))
	protocols.Must(payload.AD(protocols.Copy(nonce), &strobe.Options{}))

	return payload
}
