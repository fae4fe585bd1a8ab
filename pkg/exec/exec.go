// exec.go - shared read-transform-writeback operation engine

// Package exec implements the operation engine: the shared pipeline every
// arithmetic/logic opcode runs through. It reads both operands, runs a
// transform, commits the resulting flags, and either writes the result back
// (Op8/Op16) or discards it (Op8Dry/Op16Dry, for CMP/TEST-shaped opcodes that
// only want the flags).
package exec

import (
	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/operand"
	"github.com/jaredr/x86emu/pkg/transform"
)

// Op8 computes fn(dst, src), commits the flags fn produced, then writes the
// result back to dst.
func Op8(s *cpu.State, dst, src operand.Operand, fn transform.Func8) error {
	result, err := op8(s, dst, src, fn)
	if err != nil {
		return err
	}
	return operand.Write8(s, dst, result)
}

// Op8Dry computes fn(dst, src) and commits its flags without writing the
// result back.
func Op8Dry(s *cpu.State, dst, src operand.Operand, fn transform.Func8) error {
	_, err := op8(s, dst, src, fn)
	return err
}

func op8(s *cpu.State, dst, src operand.Operand, fn transform.Func8) (byte, error) {
	lhs, err := operand.Read8(s, dst)
	if err != nil {
		return 0, err
	}
	rhs, err := operand.Read8(s, src)
	if err != nil {
		return 0, err
	}
	result, flagsOut := fn(lhs, rhs, s.GetFlags())
	s.SetFlags(flagsOut.Carry, flagsOut.Overflow, flagsOut.Sign, flagsOut.Zero)
	return result, nil
}

// Op16 is Op8's word-width counterpart.
func Op16(s *cpu.State, dst, src operand.Operand, fn transform.Func16) error {
	result, err := op16(s, dst, src, fn)
	if err != nil {
		return err
	}
	return operand.Write16(s, dst, result)
}

// Op16Dry is Op8Dry's word-width counterpart.
func Op16Dry(s *cpu.State, dst, src operand.Operand, fn transform.Func16) error {
	_, err := op16(s, dst, src, fn)
	return err
}

func op16(s *cpu.State, dst, src operand.Operand, fn transform.Func16) (uint16, error) {
	lhs, err := operand.Read16(s, dst)
	if err != nil {
		return 0, err
	}
	rhs, err := operand.Read16(s, src)
	if err != nil {
		return 0, err
	}
	result, flagsOut := fn(lhs, rhs, s.GetFlags())
	s.SetFlags(flagsOut.Carry, flagsOut.Overflow, flagsOut.Sign, flagsOut.Zero)
	return result, nil
}
