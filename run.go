package psi

import (
	"context"
)

// Run executes a complete run with the given holder (Bob) and requester (Alice) items and returns
// its result. The context is checked between phases; an abandoned run leaves nothing behind.
//
// A run with no matches is not an error.
func Run(ctx context.Context, cfg Config, bob, alice [][]byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	steps := []func() error{
		func() error { return s.Publish(bob) },
		func() error { return s.Blind(alice) },
		s.Respond,
		s.Unblind,
		s.Match,
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := step(); err != nil {
			return nil, err
		}
	}

	return s.Result(), nil
}
