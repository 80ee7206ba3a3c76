package psi

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Shuffle permutes the records in place, drawing swap positions from r, so that the published
// order says nothing about the order of the holder's items.
func Shuffle(r io.Reader, records []EncryptedRecord) error {
	n := len(records)

	for i := 0; i < n-1; i++ {
		// Positions before i are settled; i takes a uniformly chosen record from the rest.
		off, err := rand.Int(r, big.NewInt(int64(n-i)))
		if err != nil {
			return err
		}

		j := i + int(off.Int64())
		records[i], records[j] = records[j], records[i]
	}

	return nil
}
