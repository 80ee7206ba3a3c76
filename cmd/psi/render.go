package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/codahale/psi"
	"github.com/markkurossi/tabulate"
	"golang.org/x/term"
)

// render writes the result as tables or JSON. In auto mode, tables are written to terminals and
// JSON to everything else.
func render(w io.Writer, format string, res *psi.Result) error {
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "table"
		}
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(res)
	}

	bob := newTable("Item", "Key", "Owned Point", "Ciphertext", "Nonce")
	for _, r := range res.BobTable {
		addRow(bob, r.Item, r.Key, r.OwnedPoint, r.Ciphertext, r.Nonce)
	}

	sent := newTable("Item", "Masked Point")
	for _, r := range res.AliceSent {
		addRow(sent, r.Item, r.MaskedPoint)
	}

	matches := newTable("Item", "Key")
	for _, r := range res.Matches {
		addRow(matches, r.Item, r.Key)
	}

	sections := []section{{"Bob", bob}, {"Alice sent", sent}}

	if res.AliceScalars != nil {
		scalars := newTable("Scalar")
		for _, s := range res.AliceScalars {
			addRow(scalars, s)
		}

		sections = append(sections, section{"Alice scalars", scalars})
	}

	sections = append(sections, section{fmt.Sprintf("Matches (%d)", len(res.Matches)), matches})

	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s\n", s.title); err != nil {
			return err
		}

		s.tab.Print(w)
	}

	return nil
}

type section struct {
	title string
	tab   *tabulate.Tabulate
}

func newTable(headers ...string) *tabulate.Tabulate {
	tab := tabulate.New(tabulate.UnicodeLight)
	for _, h := range headers {
		tab.Header(h).SetAlign(tabulate.ML)
	}

	return tab
}

func addRow(tab *tabulate.Tabulate, cols ...string) {
	row := tab.Row()
	for _, c := range cols {
		row.Column(c)
	}
}
