package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"

	"github.com/rosette-vm/rvm/vm"
)

var stepCommand = &cli.Command{
	Name:      "step",
	Usage:     "assemble a listing and single-step it interactively",
	ArgsUsage: "<listing-file>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "globals", Usage: "global environment size", Value: 16},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.Args().First()
		if path == "" {
			return fmt.Errorf("usage: rvm step <listing-file>")
		}
		st, err := loadState(path, int(cmd.Int("globals")))
		if err != nil {
			return err
		}
		st.Debug = true
		return runStepper(st)
	},
}

// runStepper drives the VM one opcode at a time from an interactive
// prompt: "n"/empty advances one step, "r" runs to completion, "q" quits.
func runStepper(st *vm.State) error {
	rl, err := readline.New("(rvm) ")
	if err != nil {
		return err
	}
	defer rl.Close()

	printStatus(st)
	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return err
		}
		switch strings.TrimSpace(line) {
		case "q", "quit":
			return nil
		case "r", "run":
			vm.Run(st)
			printStatus(st)
			return nil
		default:
			if !vm.Step(st) {
				printStatus(st)
				fmt.Println("halted.")
				return nil
			}
			printStatus(st)
		}
	}
}

func printStatus(st *vm.State) {
	fmt.Printf("pc=%d exit=%v code=%d\n", st.PC, st.ExitFlag, st.ExitCode)
	if len(st.DebugInfo) > 0 {
		fmt.Println("  last:", st.DebugInfo[len(st.DebugInfo)-1])
	}
}
