// main.go - command-line entry point

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/disasm"
	"github.com/jaredr/x86emu/pkg/dump"
	"github.com/jaredr/x86emu/pkg/machine"
	"github.com/jaredr/x86emu/pkg/monitor"
	"github.com/jaredr/x86emu/pkg/search"
)

func main() {
	var showDisasm, step, showVRAM bool

	rootCmd := &cobra.Command{
		Use:   "emulator <filename>",
		Short: "Run a flat x86 16-bit real-mode program to HALT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmulator(args[0], showDisasm, step, showVRAM)
		},
	}
	rootCmd.Flags().BoolVar(&showDisasm, "disasm", false, "print a disassembly trace before running")
	rootCmd.Flags().BoolVar(&step, "step", false, "run under the interactive single-step monitor")
	rootCmd.Flags().BoolVar(&showVRAM, "vram", false, "include the 80x25 VRAM view in the halt dump")

	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runEmulator(filename string, showDisasm, step, showVRAM bool) error {
	program, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	s := cpu.New()
	if err := s.Load(program); err != nil {
		return err
	}

	if showDisasm {
		printDisasm(program)
	}

	var halted bool
	if step {
		halted, err = monitor.New(s, program, os.Stdout).Run()
	} else {
		err = machine.Run(s)
		halted = err == nil
	}
	if err != nil {
		fmt.Print(dump.State(s, showVRAM))
		return err
	}
	if halted {
		fmt.Print(dump.State(s, showVRAM))
	}
	return nil
}

func printDisasm(program []byte) {
	addr := uint16(0)
	for int(addr) < len(program) {
		line, ok := disasm.One(program, addr)
		if !ok {
			break
		}
		fmt.Printf("%04X: %-12s %s\n", line.Address, line.HexBytes, line.Mnemonic)
		addr += uint16(line.Size)
		if line.Mnemonic == "HLT" {
			break
		}
	}
}

func searchCmd() *cobra.Command {
	var maxLen, workers int

	cmd := &cobra.Command{
		Use:   "search <filename>",
		Short: "Search for a shorter, behaviorally equivalent replacement for a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pool := search.NewWorkerPool(workers)
			rule := pool.Search(target, maxLen, search.DefaultSeeds)
			checked, found := pool.Stats()
			fmt.Printf("checked %d candidates, %d equivalent matches\n", checked, found)
			if rule == nil {
				fmt.Println("no shorter equivalent sequence found")
				return nil
			}
			fmt.Printf("found a %d-byte-shorter replacement:\n", rule.BytesSaved)
			for _, c := range rule.Replacement {
				fmt.Printf("  %s\n", c.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxLen, "max-len", 2, "maximum candidate sequence length to try")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")
	return cmd
}
