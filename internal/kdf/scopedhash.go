package kdf

import (
	"crypto/hmac"
	"crypto/sha512"
	"hash"
)

// NewLabelHash returns a hash instance suitable for mapping item labels to group elements.
func NewLabelHash() hash.Hash {
	return newHash("psilabel")
}

func newHash(scope string) hash.Hash {
	return hmac.New(sha512.New, []byte(scope))
}
