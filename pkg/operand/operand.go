// operand.go - tagged-union operand model

// Package operand implements the tagged Operand value the decoder produces
// and the operation engine consumes — a uniform read/write surface over
// immediates, registers, and memory addresses in both byte and word widths.
package operand

import "github.com/jaredr/x86emu/pkg/cpu"

// Kind discriminates the five Operand shapes. Operand is a tagged union in
// the style a Go sum type takes: one struct, one Kind field, and only the
// fields that Kind says are live.
type Kind int

const (
	RawByte Kind = iota
	RawWord
	Reg8
	Reg16
	Mem
)

// Operand identifies where a read or write targets. Raw operands are
// read-only immediates; the rest address CPU state.
type Operand struct {
	Kind Kind

	rawByte byte
	rawWord uint16
	reg8    cpu.Reg8
	reg16   cpu.Reg16
	addr    uint16
}

func NewRawByte(v byte) Operand    { return Operand{Kind: RawByte, rawByte: v} }
func NewRawWord(v uint16) Operand  { return Operand{Kind: RawWord, rawWord: v} }
func NewReg8(r cpu.Reg8) Operand   { return Operand{Kind: Reg8, reg8: r} }
func NewReg16(r cpu.Reg16) Operand { return Operand{Kind: Reg16, reg16: r} }
func NewMem(addr uint16) Operand   { return Operand{Kind: Mem, addr: addr} }

func widthFault(ip uint16, detail string) error {
	return &cpu.Fault{Kind: cpu.OperandWidthMismatch, IP: ip, Detail: detail}
}

// Read8 returns an operand's byte value. RawWord and Reg16 operands are a
// width mismatch; Mem reads a single cell.
func Read8(s *cpu.State, o Operand) (byte, error) {
	switch o.Kind {
	case RawByte:
		return o.rawByte, nil
	case Reg8:
		return s.GetReg8(o.reg8), nil
	case Mem:
		return s.ReadMem(o.addr)
	default:
		return 0, widthFault(0, "read8 on a word operand")
	}
}

// Write8 stores a byte into an operand. Raw operands of either width are
// read-only (InvalidOperandWrite); Reg16 is a width mismatch.
func Write8(s *cpu.State, o Operand, v byte) error {
	switch o.Kind {
	case RawByte, RawWord:
		return &cpu.Fault{Kind: cpu.InvalidOperandWrite, Detail: "write to an immediate operand"}
	case Reg8:
		s.SetReg8(o.reg8, v)
		return nil
	case Mem:
		return s.WriteMem(o.addr, v)
	default:
		return widthFault(0, "write8 on a word operand")
	}
}

// Read16 returns an operand's word value. RawByte and Reg8 operands are a
// width mismatch; Mem reads two cells, low byte first.
func Read16(s *cpu.State, o Operand) (uint16, error) {
	switch o.Kind {
	case RawWord:
		return o.rawWord, nil
	case Reg16:
		return s.GetReg16(o.reg16), nil
	case Mem:
		return s.ReadMem16(o.addr)
	default:
		return 0, widthFault(0, "read16 on a byte operand")
	}
}

// Write16 stores a word into an operand. Raw operands of either width are
// read-only (InvalidOperandWrite); Reg8 is a width mismatch.
func Write16(s *cpu.State, o Operand, v uint16) error {
	switch o.Kind {
	case RawByte, RawWord:
		return &cpu.Fault{Kind: cpu.InvalidOperandWrite, Detail: "write to an immediate operand"}
	case Reg16:
		s.SetReg16(o.reg16, v)
		return nil
	case Mem:
		return s.WriteMem16(o.addr, v)
	default:
		return widthFault(0, "write16 on a byte operand")
	}
}
