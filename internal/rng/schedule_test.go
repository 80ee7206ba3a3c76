package rng

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/codahale/psi/internal/group"
)

func newGroup(t *testing.T) group.Group {
	t.Helper()

	g, err := group.New(group.Ristretto255, group.MapScalarBase)
	if err != nil {
		t.Fatal(err)
	}

	return g
}

func TestSchedulesProduceDistinctScalars(t *testing.T) {
	t.Parallel()

	g := newGroup(t)

	for _, name := range Schedules() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSchedule(name, g, rand.Reader)
			if err != nil {
				t.Fatal(err)
			}

			seen := make(map[string]bool)

			for i := 0; i < 32; i++ {
				d, err := s.Next()
				if err != nil {
					t.Fatal(err)
				}

				if d.IsZero() {
					t.Fatal("zero scalar")
				}

				seen[string(d.Encode())] = true
			}

			assert.Equal(t, "distinct scalars", 32, len(seen))
		})
	}
}

func TestChainIsSeeded(t *testing.T) {
	t.Parallel()

	g := newGroup(t)
	seed := bytes.Repeat([]byte{7}, group.UniformSize)

	a, err := NewSchedule(Chain, g, bytes.NewReader(seed))
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewSchedule(Chain, g, bytes.NewReader(seed))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		da, err := a.Next()
		if err != nil {
			t.Fatal(err)
		}

		db, err := b.Next()
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "scalar", da.Encode(), db.Encode())
	}
}

func TestChainNeedsSeed(t *testing.T) {
	t.Parallel()

	if _, err := NewSchedule(Chain, newGroup(t), bytes.NewReader(nil)); err == nil {
		t.Fatal("should have failed")
	}
}

func TestUnknownSchedule(t *testing.T) {
	t.Parallel()

	if _, err := NewSchedule("sequential", newGroup(t), rand.Reader); err == nil {
		t.Fatal("should not have returned a schedule")
	}
}
