// state.go - CPU state: registers, flags, memory, fetch cursor

// Package cpu implements the register file, flags, flat memory, and the
// fetch/stack primitives every other package in this module is built on top
// of. It has no dependency on the decoder, the operand model, or the opcode
// table above it.
package cpu

// MemorySize is the number of addressable memory cells. Addresses at or
// beyond this value are fatal (InvalidAddress), matching the 65,535-cell
// flat memory this emulator models.
const MemorySize = 65535

// State is the entire machine: registers, flags, and memory. It is created
// once per run, mutated by every instruction, and owned exclusively by
// whatever goroutine is driving it — there is no internal locking.
type State struct {
	ax, bx, cx, dx uint16
	si, di, bp, sp uint16
	ip             uint16

	cf, of, sf, zf bool

	mem [MemorySize]byte
}

// New returns a freshly reset machine: all registers zero except SP, which
// starts at 0x0100, and memory zeroed.
func New() *State {
	s := &State{}
	s.sp = 0x0100
	return s
}

// Load copies program into the start of memory, leaving the remaining tail
// zeroed. program must fit within MemorySize.
func (s *State) Load(program []byte) error {
	if len(program) > MemorySize {
		return &Fault{Kind: InvalidAddress, Detail: "program larger than memory"}
	}
	copy(s.mem[:], program)
	return nil
}
