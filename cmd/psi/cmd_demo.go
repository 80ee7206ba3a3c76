package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/codahale/psi"
)

type demoCmd struct {
	SuiteFlags
}

func (cmd *demoCmd) Run(_ *kong.Context) error {
	bob := [][]byte{[]byte("u1"), []byte("u2"), []byte("u3")}
	alice := [][]byte{[]byte("v1"), []byte("v2"), []byte("u3")}

	res, err := psi.Run(context.Background(), cmd.config(), bob, alice)
	if err != nil {
		return err
	}

	return render(os.Stdout, cmd.Format, res)
}
