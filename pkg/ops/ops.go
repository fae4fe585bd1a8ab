// ops.go - push/pop/call/ret/jump/exchange operations
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

// Package ops implements the handful of operations that don't fit the
// read-transform-write pipeline in pkg/exec: stack push/pop, call/ret,
// the two jump shapes (including the deliberately non-standard 8-bit
// relative jump), flag-conditional jumps, exchange, and set-carry.
package ops

import (
	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/operand"
)

// Push reads reg16 and pushes it.
func Push(s *cpu.State, reg cpu.Reg16) error {
	return s.Push(s.GetReg16(reg))
}

// Pop pops a word and stores it into reg16.
func Pop(s *cpu.State, reg cpu.Reg16) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.SetReg16(reg, v)
	return nil
}

// Call pushes the current IP (the return address, already advanced past the
// call instruction's bytes) and jumps by adding imm16 to IP.
func Call(s *cpu.State, imm uint16) error {
	if err := s.Push(s.GetReg16(cpu.IP)); err != nil {
		return err
	}
	s.SetReg16(cpu.IP, s.GetReg16(cpu.IP)+imm)
	return nil
}

// Ret pops a word into IP.
func Ret(s *cpu.State) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.SetReg16(cpu.IP, v)
	return nil
}

// Jmp8 applies the pinned, deliberately non-two's-complement 8-bit relative
// jump: offsets below 127 add directly; 127 and above subtract (256-offset).
// This does not match standard signed-byte interpretation (the boundary
// would be 128, and 0x7F would be positive) — it matches the behavior this
// emulator is pinned to reproduce.
func Jmp8(s *cpu.State, offset byte) {
	ip := s.GetReg16(cpu.IP)
	if offset < 127 {
		s.SetReg16(cpu.IP, ip+uint16(offset))
	} else {
		s.SetReg16(cpu.IP, ip-(256-uint16(offset)))
	}
}

// Jmp16 adds offset to IP, wrapping.
func Jmp16(s *cpu.State, offset uint16) {
	s.SetReg16(cpu.IP, s.GetReg16(cpu.IP)+offset)
}

// FlagSelector reads a single flag out of a flags snapshot.
type FlagSelector func(cpu.Flags) bool

// JmpFlag performs Jmp8 when selector(flags) XOR invert is true.
func JmpFlag(s *cpu.State, selector FlagSelector, invert bool, offset byte) {
	if selector(s.GetFlags()) != invert {
		Jmp8(s, offset)
	}
}

// JmpFlags performs Jmp8 when (sel1(flags) || sel2(flags)) XOR invert is true.
func JmpFlags(s *cpu.State, sel1, sel2 FlagSelector, invert bool, offset byte) {
	flags := s.GetFlags()
	if (sel1(flags) || sel2(flags)) != invert {
		Jmp8(s, offset)
	}
}

// Xchg8 swaps the byte values of two operands.
func Xchg8(s *cpu.State, a, b operand.Operand) error {
	av, err := operand.Read8(s, a)
	if err != nil {
		return err
	}
	bv, err := operand.Read8(s, b)
	if err != nil {
		return err
	}
	if err := operand.Write8(s, a, bv); err != nil {
		return err
	}
	return operand.Write8(s, b, av)
}

// Xchg16 swaps the word values of two operands.
func Xchg16(s *cpu.State, a, b operand.Operand) error {
	av, err := operand.Read16(s, a)
	if err != nil {
		return err
	}
	bv, err := operand.Read16(s, b)
	if err != nil {
		return err
	}
	if err := operand.Write16(s, a, bv); err != nil {
		return err
	}
	return operand.Write16(s, b, av)
}

// Stc raises the carry flag, leaving the other three untouched.
func Stc(s *cpu.State) {
	s.SetCarry()
}

// CF, OF, SF, ZF are the four FlagSelectors the dispatch table's
// flag-conditional jumps are built from.
func CF(f cpu.Flags) bool { return f.Carry }
func OF(f cpu.Flags) bool { return f.Overflow }
func SF(f cpu.Flags) bool { return f.Sign }
func ZF(f cpu.Flags) bool { return f.Zero }
