// Command rvm loads a hand-assembled bytecode listing and runs it against
// the strand VM, either straight through or one step at a time.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rosette-vm/rvm/asm"
	"github.com/rosette-vm/rvm/prim"
	"github.com/rosette-vm/rvm/vm"
)

func main() {
	app := &cli.Command{
		Name:  "rvm",
		Usage: "Run a Rosette-style strand VM bytecode listing",
		Commands: []*cli.Command{
			runCommand,
			stepCommand,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rvm: %v\n", err)
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "assemble and run a bytecode listing to completion",
	ArgsUsage: "<listing-file>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "debug", Usage: "record a debug trace"},
		&cli.IntFlag{Name: "globals", Usage: "global environment size", Value: 16},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.Args().First()
		if path == "" {
			return fmt.Errorf("usage: rvm run <listing-file>")
		}
		st, err := loadState(path, int(cmd.Int("globals")))
		if err != nil {
			return err
		}
		st.Debug = cmd.Bool("debug")

		vm.Run(st)

		fmt.Printf("exit code: %d\n", st.ExitCode)
		if st.Debug {
			for _, line := range st.DebugInfo {
				fmt.Println("debug:", line)
			}
		}
		return nil
	},
}

func loadState(path string, globals int) (*vm.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := asm.Assemble(string(raw))
	if err != nil {
		return nil, err
	}
	return vm.New(c, globals, prim.NewTable()), nil
}
