package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/codahale/psi/internal/aead"
	"github.com/codahale/psi/internal/group"
	"github.com/codahale/psi/internal/kdf"
	"github.com/codahale/psi/internal/rng"
	"github.com/codahale/psi/internal/textenc"
	"github.com/markkurossi/tabulate"
)

type suitesCmd struct{}

func (cmd *suitesCmd) Run(_ *kong.Context) error {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Option").SetAlign(tabulate.ML)
	tab.Header("Values").SetAlign(tabulate.ML)

	for _, opt := range []struct {
		name   string
		values []string
	}{
		{"group", group.Names()},
		{"mapping", group.Mappings()},
		{"kdf", kdf.Names()},
		{"cipher", aead.Names()},
		{"encoding", textenc.Names()},
		{"blinding", rng.Schedules()},
	} {
		row := tab.Row()
		row.Column(opt.name)
		row.Column(strings.Join(opt.values, ", "))
	}

	tab.Print(os.Stdout)

	_, err := fmt.Fprintln(os.Stdout, "The edwards25519 group supports only the scalar-base mapping.")

	return err
}
