package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/codahale/psi"
)

type runCmd struct {
	Bob   string `arg:"" type:"path" help:"The path to the holder's labels, one per line, or - for stdin."`
	Alice string `arg:"" type:"path" help:"The path to the requester's labels, one per line, or - for stdin."`

	SuiteFlags
}

func (cmd *runCmd) Run(_ *kong.Context) error {
	// Read both sets of labels.
	bob, err := readItems(cmd.Bob)
	if err != nil {
		return err
	}

	alice, err := readItems(cmd.Alice)
	if err != nil {
		return err
	}

	// Run the protocol.
	res, err := psi.Run(context.Background(), cmd.config(), bob, alice)
	if err != nil {
		return err
	}

	return render(os.Stdout, cmd.Format, res)
}
