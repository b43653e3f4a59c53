// main.go - command-line entry point for the LC-3 virtual machine.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmarek/lc3vm/internal/lc3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		trace      bool
		originFlag uint16
		limit      uint64
	)

	cmd := &cobra.Command{
		Use:   "lc3vm <object-file>",
		Short: "Run an LC-3 object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVM(args[0], trace, originFlag, limit)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print one \"pc: word\" line per fetched instruction to stderr")
	cmd.Flags().Uint16Var(&originFlag, "origin", 0, "override the object file's declared load origin (0 = use the file's own origin)")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "stop after this many fetch-execute cycles (0 = unbounded, run until HALT)")

	return cmd
}

func runVM(objPath string, trace bool, origin uint16, limit uint64) error {
	fd := int(os.Stdin.Fd())
	host := NewTerminalHost(fd)
	if err := host.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: warning: could not set terminal to raw mode: %v\n", err)
	}
	defer host.Stop()

	in := NewStdinPort(os.Stdin)
	out := lc3.NewStreamOutput(os.Stdout)

	vm := lc3.New(in, out)
	if trace {
		vm.Trace = os.Stderr
	}

	if err := vm.LoadProgram(objPath, origin); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		return err
	}

	_, err := vm.Run(limit)
	_ = out.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		return err
	}

	return nil
}
