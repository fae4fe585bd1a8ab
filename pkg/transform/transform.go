// transform.go - pure arithmetic/logic transforms

// Package transform implements the pure arithmetic/logic functions that sit
// in the middle of every instruction: given two operand values and the
// incoming flags, produce a result value and the outgoing flags. None of
// these functions touch CPU state directly — the operation engine in pkg/exec
// is what wires them to reads and writes.
package transform

import (
	"github.com/jaredr/x86emu/pkg/bits"
	"github.com/jaredr/x86emu/pkg/cpu"
)

// Func8 and Func16 are the shapes every opcode's arithmetic step takes.
type Func8 func(lhs, rhs byte, flagsIn cpu.Flags) (result byte, flagsOut cpu.Flags)
type Func16 func(lhs, rhs uint16, flagsIn cpu.Flags) (result uint16, flagsOut cpu.Flags)

func flagsOf(cf, of, sf, zf bool) cpu.Flags {
	return cpu.Flags{Carry: cf, Overflow: of, Sign: sf, Zero: zf}
}

// Add8 computes lhs+rhs and the flags that result.
func Add8(lhs, rhs byte, _ cpu.Flags) (byte, cpu.Flags) {
	result, cf, of, sf, zf := bits.Add8(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

// Sub8 computes lhs-rhs and the flags that result.
func Sub8(lhs, rhs byte, _ cpu.Flags) (byte, cpu.Flags) {
	result, cf, of, sf, zf := bits.Sub8(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func Or8(lhs, rhs byte, _ cpu.Flags) (byte, cpu.Flags) {
	result, cf, of, sf, zf := bits.Or8(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func Xor8(lhs, rhs byte, _ cpu.Flags) (byte, cpu.Flags) {
	result, cf, of, sf, zf := bits.Xor8(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func And8(lhs, rhs byte, _ cpu.Flags) (byte, cpu.Flags) {
	result, cf, of, sf, zf := bits.And8(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

// Adc8 adds lhs, rhs, and the incoming carry as a single three-way sum so
// overflow/carry account for the carry-in, not just lhs+rhs truncated.
func Adc8(lhs, rhs byte, flagsIn cpu.Flags) (byte, cpu.Flags) {
	carryIn := byte(0)
	if flagsIn.Carry {
		carryIn = 1
	}
	wide := uint16(lhs) + uint16(rhs) + uint16(carryIn)
	result := byte(wide)
	cf := wide > 0xFF
	lSign, rSign, rSign2 := lhs&0x80 != 0, rhs&0x80 != 0, result&0x80 != 0
	of := (lSign == rSign) && (rSign2 != lSign)
	return result, flagsOf(cf, of, rSign2, result == 0)
}

// Sbb8 subtracts rhs and the incoming borrow from lhs in one three-way
// subtraction, so a borrow chain across bytes is exact instead of being
// approximated by subtracting a truncated (rhs+borrow) byte.
func Sbb8(lhs, rhs byte, flagsIn cpu.Flags) (byte, cpu.Flags) {
	borrowIn := int16(0)
	if flagsIn.Carry {
		borrowIn = 1
	}
	wide := int16(lhs) - int16(rhs) - borrowIn
	result := byte(wide)
	cf := wide < 0
	lSign, rSign, rSign2 := lhs&0x80 != 0, rhs&0x80 != 0, result&0x80 != 0
	of := (!lSign && rSign && rSign2) || (lSign && !rSign && !rSign2)
	return result, flagsOf(cf, of, rSign2, result == 0)
}

// Noop8 returns rhs unchanged and leaves the flags untouched — this is the
// transform MOV is built from: the source passes through to the destination
// and nothing else about CPU state changes.
func Noop8(_, rhs byte, flagsIn cpu.Flags) (byte, cpu.Flags) {
	return rhs, flagsIn
}

// Add16 through Noop16 mirror the byte-width functions above, one level wider.

func Add16(lhs, rhs uint16, _ cpu.Flags) (uint16, cpu.Flags) {
	result, cf, of, sf, zf := bits.Add16(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func Sub16(lhs, rhs uint16, _ cpu.Flags) (uint16, cpu.Flags) {
	result, cf, of, sf, zf := bits.Sub16(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func Or16(lhs, rhs uint16, _ cpu.Flags) (uint16, cpu.Flags) {
	result, cf, of, sf, zf := bits.Or16(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func Xor16(lhs, rhs uint16, _ cpu.Flags) (uint16, cpu.Flags) {
	result, cf, of, sf, zf := bits.Xor16(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func And16(lhs, rhs uint16, _ cpu.Flags) (uint16, cpu.Flags) {
	result, cf, of, sf, zf := bits.And16(lhs, rhs)
	return result, flagsOf(cf, of, sf, zf)
}

func Adc16(lhs, rhs uint16, flagsIn cpu.Flags) (uint16, cpu.Flags) {
	carryIn := uint32(0)
	if flagsIn.Carry {
		carryIn = 1
	}
	wide := uint32(lhs) + uint32(rhs) + carryIn
	result := uint16(wide)
	cf := wide > 0xFFFF
	lSign, rSign, rSign2 := lhs&0x8000 != 0, rhs&0x8000 != 0, result&0x8000 != 0
	of := (lSign == rSign) && (rSign2 != lSign)
	return result, flagsOf(cf, of, rSign2, result == 0)
}

func Sbb16(lhs, rhs uint16, flagsIn cpu.Flags) (uint16, cpu.Flags) {
	borrowIn := int32(0)
	if flagsIn.Carry {
		borrowIn = 1
	}
	wide := int32(lhs) - int32(rhs) - borrowIn
	result := uint16(wide)
	cf := wide < 0
	lSign, rSign, rSign2 := lhs&0x8000 != 0, rhs&0x8000 != 0, result&0x8000 != 0
	of := (!lSign && rSign && rSign2) || (lSign && !rSign && !rSign2)
	return result, flagsOf(cf, of, rSign2, result == 0)
}

func Noop16(_, rhs uint16, flagsIn cpu.Flags) (uint16, cpu.Flags) {
	return rhs, flagsIn
}
