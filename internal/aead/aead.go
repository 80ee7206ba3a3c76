// Package aead provides the authenticated ciphers used to encrypt item payloads.
//
// Every cipher draws a fresh random nonce for each payload and returns it alongside the
// ciphertext. Decryption with the wrong key is the common case during matching, and is reported
// with the ErrAuthentication sentinel rather than as an exceptional condition.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"

	"github.com/codahale/psi/internal/kdf"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	XChaCha20Poly1305 = "xchacha20poly1305" // XChaCha20Poly1305 uses 24-byte nonces.
	SecretBox         = "secretbox"         // SecretBox is NaCl's XSalsa20-Poly1305.
	STROBE            = "strobe"            // STROBE is a STROBE SEND_ENC/SEND_MAC protocol.
	AES256GCM         = "aes256gcm"         // AES256GCM uses 12-byte nonces.
)

var (
	// ErrAuthentication is returned when a ciphertext cannot be decrypted, either due to an
	// incorrect key or tampering.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrInvalidNonce is returned when a nonce is not the size the cipher requires.
	ErrInvalidNonce = errors.New("invalid nonce size")
)

// Cipher encrypts and decrypts payloads under 32-byte keys.
type Cipher interface {
	// Name returns the cipher's name.
	Name() string

	// NonceSize returns the size of the cipher's nonces in bytes.
	NonceSize() int

	// Seal encrypts and authenticates the plaintext with a fresh nonce read from rand.
	Seal(rand io.Reader, key *kdf.Key, plaintext []byte) (ciphertext, nonce []byte, err error)

	// Open authenticates and decrypts the ciphertext, returning ErrAuthentication on failure.
	Open(key *kdf.Key, ciphertext, nonce []byte) ([]byte, error)
}

// Names returns the names of the supported ciphers.
func Names() []string {
	return []string{XChaCha20Poly1305, SecretBox, STROBE, AES256GCM}
}

// New returns the named cipher.
func New(name string) (Cipher, error) {
	switch name {
	case XChaCha20Poly1305:
		return &stdAEAD{name: name, nonceSize: chacha20poly1305.NonceSizeX, new: chacha20poly1305.NewX}, nil
	case SecretBox:
		return secretBox{}, nil
	case STROBE:
		return strobeAEAD{}, nil
	case AES256GCM:
		return &stdAEAD{name: name, nonceSize: 12, new: newGCM}, nil
	default:
		return nil, fmt.Errorf("unsupported cipher %q", name)
	}
}

func newNonce(rand io.Reader, size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, err
	}

	return nonce, nil
}

// stdAEAD adapts a cipher.AEAD constructor.
type stdAEAD struct {
	name      string
	nonceSize int
	new       func(key []byte) (cipher.AEAD, error)
}

func (c *stdAEAD) Name() string {
	return c.name
}

func (c *stdAEAD) NonceSize() int {
	return c.nonceSize
}

func (c *stdAEAD) Seal(rand io.Reader, key *kdf.Key, plaintext []byte) ([]byte, []byte, error) {
	aead, err := c.new(key[:])
	if err != nil {
		return nil, nil, err
	}

	nonce, err := newNonce(rand, c.nonceSize)
	if err != nil {
		return nil, nil, err
	}

	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

func (c *stdAEAD) Open(key *kdf.Key, ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != c.nonceSize {
		return nil, ErrInvalidNonce
	}

	aead, err := c.new(key[:])
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
