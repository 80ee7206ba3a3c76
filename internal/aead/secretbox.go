package aead

import (
	"io"

	"github.com/codahale/psi/internal/kdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const secretBoxNonceSize = 24

// secretBox is byte-compatible with TweetNaCl's secretbox.
type secretBox struct{}

func (secretBox) Name() string {
	return SecretBox
}

func (secretBox) NonceSize() int {
	return secretBoxNonceSize
}

func (secretBox) Seal(rand io.Reader, key *kdf.Key, plaintext []byte) ([]byte, []byte, error) {
	var n [secretBoxNonceSize]byte

	if _, err := io.ReadFull(rand, n[:]); err != nil {
		return nil, nil, err
	}

	k := [kdf.KeySize]byte(*key)

	return secretbox.Seal(nil, plaintext, &n, &k), n[:], nil
}

func (secretBox) Open(key *kdf.Key, ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != secretBoxNonceSize {
		return nil, ErrInvalidNonce
	}

	var n [secretBoxNonceSize]byte

	copy(n[:], nonce)

	k := [kdf.KeySize]byte(*key)

	plaintext, ok := secretbox.Open(nil, ciphertext, &n, &k)
	if !ok {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}
