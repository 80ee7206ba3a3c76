package psi

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestEncryptedRecordText(t *testing.T) {
	t.Parallel()

	in := EncryptedRecord{Ciphertext: []byte("ciphertext"), Nonce: []byte("nonce")}

	text, err := in.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var out EncryptedRecord
	if err := out.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "record", in, out)
}

func TestEncryptedRecordInvalid(t *testing.T) {
	t.Parallel()

	var r EncryptedRecord

	for name, b := range map[string][]byte{
		"short header": {0, 0},
		"long nonce":   {0, 0, 0, 9, 1, 2, 3},
	} {
		if err := r.UnmarshalBinary(b); !errors.Is(err, ErrEncoding) {
			t.Errorf("%s: expected ErrEncoding but was %v", name, err)
		}
	}

	if err := r.UnmarshalText([]byte("0OIl")); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord but was %v", err)
	}
}

func TestQueryAndResponseText(t *testing.T) {
	t.Parallel()

	p := make([]byte, 32)
	if _, err := rand.Read(p); err != nil {
		t.Fatal(err)
	}

	q := BlindedQuery{Index: 3, MaskedPoint: p}

	text, err := q.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	// Responses share the query envelope.
	var r MaskedResponse
	if err := r.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "index", 3, r.Index)
	assert.Equal(t, "point", p, r.MaskedPoint)

	b, err := r.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var q2 BlindedQuery
	if err := q2.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "query", q, q2)

	if err := q2.UnmarshalBinary(b[:20]); !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding but was %v", err)
	}
}

func TestQueryElementSizes(t *testing.T) {
	t.Parallel()

	for n, valid := range map[int]bool{31: false, 32: true, 33: true, 34: false} {
		b, err := (&BlindedQuery{Index: 1, MaskedPoint: make([]byte, n)}).MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}

		var q BlindedQuery

		err = q.UnmarshalBinary(b)
		assert.Equal(t, fmt.Sprintf("%d-byte point", n), valid, err == nil)
	}
}

func TestShuffle(t *testing.T) {
	t.Parallel()

	records := make([]EncryptedRecord, 20)
	for i := range records {
		records[i] = EncryptedRecord{Nonce: []byte{byte(i)}}
	}

	if err := Shuffle(rand.Reader, records); err != nil {
		t.Fatal(err)
	}

	seen := make([]bool, len(records))
	for _, r := range records {
		seen[r.Nonce[0]] = true
	}

	assert.Equal(t, "all present", bytes.Repeat([]byte{1}, 20), boolsToBytes(seen))
}

func TestShuffleExhaustedReader(t *testing.T) {
	t.Parallel()

	records := make([]EncryptedRecord, 3)

	if err := Shuffle(bytes.NewReader(nil), records); err == nil {
		t.Error("expected an error from an empty reader")
	}

	// Nothing to permute, nothing to read.
	if err := Shuffle(bytes.NewReader(nil), records[:1]); err != nil {
		t.Error(err)
	}
}

func boolsToBytes(b []bool) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		if v {
			out[i] = 1
		}
	}

	return out
}
