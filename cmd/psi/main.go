package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/codahale/psi"
)

type cli struct {
	Run    runCmd    `cmd:"" help:"Intersect a holder's labels with a requester's labels."`
	Demo   demoCmd   `cmd:"" help:"Run the protocol on a built-in example."`
	Suites suitesCmd `cmd:"" help:"List the supported algorithms."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli, kong.Description("Blind-exchange private set intersection."))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// SuiteFlags select the algorithms for a run.
type SuiteFlags struct {
	Group    string `help:"The prime-order group." default:"ristretto255" enum:"ristretto255,go-ristretto,edwards25519,p256"`
	Mapping  string `help:"The hash-to-group mapping." default:"scalar-base" enum:"scalar-base,elligator,hash-to-curve"`
	KDF      string `help:"The key derivation hash." default:"sha512" enum:"sha512,blake2b,sha3,strobe"`
	Cipher   string `help:"The payload cipher." default:"xchacha20poly1305" enum:"xchacha20poly1305,secretbox,strobe,aes256gcm"`
	Encoding string `help:"The text encoding for binary values." default:"base64" enum:"base64,base58,hex"`
	Blinding string `help:"The requester's blinding schedule." default:"random" enum:"random,chain"`

	Shuffle       bool   `help:"Shuffle the holder's published records."`
	RevealScalars bool   `help:"Include the requester's blinding scalars in the output."`
	Format        string `help:"The output format." default:"auto" enum:"auto,table,json"`
	Verbose       bool   `short:"v" help:"Log each protocol phase to stderr."`
}

func (f *SuiteFlags) config() psi.Config {
	level := slog.LevelWarn
	if f.Verbose {
		level = slog.LevelDebug
	}

	return psi.Config{
		Group:          f.Group,
		Mapping:        f.Mapping,
		KDF:            f.KDF,
		Cipher:         f.Cipher,
		Encoding:       f.Encoding,
		Blinding:       f.Blinding,
		ShuffleRecords: f.Shuffle,
		RevealScalars:  f.RevealScalars,
		Log:            slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

// readItems reads one label per line, ignoring blank lines.
func readItems(path string) ([][]byte, error) {
	src, err := openInput(path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = src.Close() }()

	var items [][]byte

	s := bufio.NewScanner(src)
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if line == "" {
			continue
		}

		items = append(items, []byte(line))
	}

	return items, s.Err()
}
