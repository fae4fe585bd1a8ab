// Package monitor implements an interactive single-step front end: it puts
// the terminal into raw mode so individual keypresses drive stepping,
// printing the next instruction's disassembly and the register file after
// each step. Modeled on the raw-mode stdin handling a terminal host adapter
// uses to read keys without line buffering or OS echo.
package monitor

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/disasm"
	"github.com/jaredr/x86emu/pkg/dump"
	"github.com/jaredr/x86emu/pkg/machine"
)

// Monitor steps a machine one instruction at a time under operator control.
type Monitor struct {
	state  *cpu.State
	mem    []byte
	out    io.Writer
	fd     int
	oldTty *term.State
}

// New wraps a CPU state for interactive stepping. mem holds the bytes shown
// in the disassembly (the CLI passes the loaded program image); it is not
// the machine's live memory and the monitor never mutates it.
func New(s *cpu.State, mem []byte, out io.Writer) *Monitor {
	return &Monitor{state: s, mem: mem, out: out, fd: int(os.Stdin.Fd())}
}

// Run puts stdin in raw mode and steps on every keypress except 'q', which
// exits the loop. It returns the fault that ended the run, if any; a nil
// error with halted=true means the program reached 0xF4 normally.
func (m *Monitor) Run() (halted bool, err error) {
	oldState, rawErr := term.MakeRaw(m.fd)
	if rawErr != nil {
		return m.runLineMode()
	}
	m.oldTty = oldState
	defer m.restore()
	return m.runKeys(os.Stdin)
}

// runKeys steps once per keypress read from in, until 'q' or the program
// ends. Quitting executes nothing further — the CPU state stays exactly as
// the last completed step left it.
func (m *Monitor) runKeys(in io.Reader) (halted bool, err error) {
	buf := make([]byte, 1)
	for {
		m.printNext()
		n, readErr := in.Read(buf)
		if readErr == io.EOF || n == 0 {
			return false, nil
		}
		if readErr != nil {
			return false, readErr
		}
		if buf[0] == 'q' || buf[0] == 'Q' {
			return false, nil
		}
		halted, err = machine.Step(m.state)
		m.printState()
		if err != nil || halted {
			return halted, err
		}
	}
}

// runLineMode is the fallback used when stdin isn't a terminal (tests,
// pipes): it steps to completion without waiting on keypresses.
func (m *Monitor) runLineMode() (bool, error) {
	for {
		halted, err := machine.Step(m.state)
		if err != nil || halted {
			m.printState()
			return halted, err
		}
	}
}

func (m *Monitor) restore() {
	if m.oldTty != nil {
		_ = term.Restore(m.fd, m.oldTty)
		m.oldTty = nil
	}
}

func (m *Monitor) printNext() {
	ip := m.state.GetReg16(cpu.IP)
	if line, ok := disasm.One(m.mem, ip); ok {
		fmt.Fprintf(m.out, "\r\n%04X: %-12s %s", line.Address, line.HexBytes, line.Mnemonic)
	}
}

func (m *Monitor) printState() {
	fmt.Fprintf(m.out, "\r\n%s", dump.Registers(m.state))
}
