package psi

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/codahale/psi/internal/group"
	"github.com/google/go-cmp/cmp"
)

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()

	s, err := NewSession(cfg)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestPhaseOrder(t *testing.T) {
	t.Parallel()

	s := newSession(t, DefaultConfig())

	assert.Equal(t, "initial phase", Init, s.Phase())

	if err := s.Respond(); !errors.Is(err, ErrPhase) {
		t.Fatalf("expected ErrPhase but was %v", err)
	}

	assert.Equal(t, "phase after failed step", Init, s.Phase())

	if err := s.Publish(items("a")); err != nil {
		t.Fatal(err)
	}

	if err := s.Publish(items("b")); !errors.Is(err, ErrPhase) {
		t.Fatalf("expected ErrPhase but was %v", err)
	}

	assert.Equal(t, "bob table", 1, len(s.Result().BobTable))

	for _, step := range []func() error{
		func() error { return s.Blind(items("a")) },
		s.Respond,
		s.Unblind,
		s.Match,
	} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}

	assert.Equal(t, "final phase", Matched, s.Phase())

	if err := s.Match(); !errors.Is(err, ErrPhase) {
		t.Fatalf("expected ErrPhase but was %v", err)
	}
}

func TestPhaseNames(t *testing.T) {
	t.Parallel()

	var names []string
	for p := Init; p <= Matched; p++ {
		names = append(names, p.String())
	}

	assert.Equal(t, "names",
		[]string{"INIT", "BOB_PUBLISHED", "ALICE_BLINDED", "BOB_RESPONDED", "ALICE_UNBLINDED", "MATCHED"},
		names)
	assert.Equal(t, "unknown", "Phase(9)", Phase(9).String())
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	for name, f := range map[string]func(*Config){
		"group":    func(c *Config) { c.Group = "p256" },
		"mapping":  func(c *Config) { c.Group, c.Mapping = "edwards25519", "elligator" },
		"kdf":      func(c *Config) { c.KDF = "md5" },
		"cipher":   func(c *Config) { c.Cipher = "rc4" },
		"encoding": func(c *Config) { c.Encoding = "base32" },
		"blinding": func(c *Config) { c.Blinding = "fixed" },
	} {
		cfg := DefaultConfig()
		f(&cfg)

		if err := cfg.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration but was %v", name, err)
		}

		// Key material is never drawn for an invalid configuration.
		cfg.Rand = bytes.NewReader(nil)

		if _, err := Run(context.Background(), cfg, items("a"), items("a")); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration but was %v", name, err)
		}
	}
}

func TestCancelledRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, DefaultConfig(), items("a"), items("a")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled but was %v", err)
	}
}

func TestExhaustedRandomness(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Rand = bytes.NewReader(make([]byte, 10))

	if _, err := NewSession(cfg); err == nil {
		t.Fatal("should not have created a session")
	}
}

func TestMalformedQueriesAreSkipped(t *testing.T) {
	t.Parallel()

	logs := new(bytes.Buffer)
	cfg := DefaultConfig()
	cfg.Log = slog.New(slog.NewTextHandler(logs, nil))

	s := newSession(t, cfg)

	if err := s.Publish(items("a", "b")); err != nil {
		t.Fatal(err)
	}

	if err := s.Blind(items("a", "b")); err != nil {
		t.Fatal(err)
	}

	// Corrupt the first query in transit.
	s.queries[0].MaskedPoint = bytes.Repeat([]byte{0xff}, 32)

	for _, step := range []func() error{s.Respond, s.Unblind, s.Match} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}

	res := s.Result()

	assert.Equal(t, "matches", []MatchRow{{Item: "b", Key: res.BobTable[1].Key}}, res.Matches)

	if !strings.Contains(logs.String(), "skipping query") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestMalformedResponsesAreSkipped(t *testing.T) {
	t.Parallel()

	s := newSession(t, DefaultConfig())

	if err := s.Publish(items("a")); err != nil {
		t.Fatal(err)
	}

	queries, err := s.requester.Blind(items("a", "b"))
	if err != nil {
		t.Fatal(err)
	}

	responses := s.holder.Respond(queries)
	responses = append(responses,
		MaskedResponse{Index: 7, MaskedPoint: responses[0].MaskedPoint},
		MaskedResponse{Index: -1, MaskedPoint: responses[0].MaskedPoint},
		responses[0],
		MaskedResponse{Index: 1, MaskedPoint: make([]byte, 32)},
	)

	candidates := s.requester.Unblind(responses)

	assert.Equal(t, "candidate count", 2, len(candidates))
	assert.Equal(t, "first candidate", []byte("a"), candidates[0].Label)
	assert.Equal(t, "second candidate", []byte("b"), candidates[1].Label)
}

type zeroScalar struct{}

func (zeroScalar) Invert() (group.Scalar, error) {
	return nil, group.ErrDegenerateScalar
}

func (zeroScalar) IsZero() bool {
	return true
}

func (zeroScalar) Encode() []byte {
	return make([]byte, 32)
}

func TestDegenerateScalarIsSkipped(t *testing.T) {
	t.Parallel()

	logs := new(bytes.Buffer)
	cfg := DefaultConfig()
	cfg.Log = slog.New(slog.NewTextHandler(logs, nil))

	s := newSession(t, cfg)

	queries, err := s.requester.Blind(items("a", "b"))
	if err != nil {
		t.Fatal(err)
	}

	responses := s.holder.Respond(queries)
	s.requester.pending[0].r = zeroScalar{}

	candidates := s.requester.Unblind(responses)

	assert.Equal(t, "candidate count", 1, len(candidates))
	assert.Equal(t, "candidate", []byte("b"), candidates[0].Label)

	if !strings.Contains(logs.String(), ErrDegenerateScalar.Error()) {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestMatchDeduplicatesKeys(t *testing.T) {
	t.Parallel()

	suite, err := NewSuite(&Config{
		Group: "ristretto255", Mapping: "scalar-base", KDF: "sha512", Cipher: "xchacha20poly1305",
		Encoding: "hex", Blinding: "random",
	})
	if err != nil {
		t.Fatal(err)
	}

	holder, err := NewHolder(suite, rand.Reader, false)
	if err != nil {
		t.Fatal(err)
	}

	// Two records encrypted under the same key.
	records, err := holder.Publish(items("x", "x"))
	if err != nil {
		t.Fatal(err)
	}

	key := holder.Entries()[0].Key
	results := suite.Match(records, []Candidate{
		{Label: []byte("x"), Key: key},
		{Label: []byte("x again"), Key: key},
	})

	assert.Equal(t, "results", []MatchResult{{Payload: []byte("x"), Key: key}}, results)
}

func TestMatchSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	suite, err := NewSuite(func() *Config { c := DefaultConfig(); return &c }())
	if err != nil {
		t.Fatal(err)
	}

	holder, err := NewHolder(suite, rand.Reader, false)
	if err != nil {
		t.Fatal(err)
	}

	records, err := holder.Publish(items("x", "y"))
	if err != nil {
		t.Fatal(err)
	}

	records[0].Nonce = records[0].Nonce[:3]

	results := suite.Match(records, []Candidate{
		{Label: []byte("x"), Key: holder.Entries()[0].Key},
		{Label: []byte("y"), Key: holder.Entries()[1].Key},
	})

	assert.Equal(t, "results", []MatchResult{{Payload: []byte("y"), Key: holder.Entries()[1].Key}}, results)
}

func TestResultJSON(t *testing.T) {
	t.Parallel()

	res, err := Run(context.Background(), DefaultConfig(), items(), items("x"))
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	want := map[string]interface{}{
		"phase":    "MATCHED",
		"bobTable": []interface{}{},
		"aliceSent": []interface{}{
			map[string]interface{}{"item": "x", "maskedPoint": res.AliceSent[0].MaskedPoint},
		},
		"matches": []interface{}{},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestNonUTF8Labels(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Encoding = "hex"

	res, err := Run(context.Background(), cfg, [][]byte{{0xff, 0x00}}, [][]byte{{0xff, 0x00}})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "matches", []MatchRow{{Item: "ff00", Key: res.BobTable[0].Key}}, res.Matches)
}
