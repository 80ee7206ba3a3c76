package rng

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestReader(t *testing.T) {
	t.Parallel()

	r := NewReader(rand.Reader)

	a := make([]byte, 64)
	if _, err := io.ReadFull(r, a); err != nil {
		t.Fatal(err)
	}

	b := make([]byte, 64)
	if _, err := io.ReadFull(r, b); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a, b) {
		t.Error("two blocks should not be equal")
	}
}

func TestReaderHardensWeakSource(t *testing.T) {
	t.Parallel()

	zeros := make([]byte, 32)

	a := make([]byte, 32)
	if _, err := NewReader(bytes.NewReader(make([]byte, 32))).Read(a); err != nil {
		t.Fatal(err)
	}

	b := make([]byte, 32)
	if _, err := NewReader(bytes.NewReader(make([]byte, 32))).Read(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "deterministic", a, b)

	if bytes.Equal(a, zeros) {
		t.Error("output should not equal input")
	}
}

func TestReaderShortSource(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 32)
	if _, err := NewReader(bytes.NewReader(make([]byte, 8))).Read(buf); err == nil {
		t.Fatal("should have failed")
	}
}
