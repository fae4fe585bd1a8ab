// machine.go - opcode dispatch table
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

// Package machine wires the CPU, ModR/M decoder, operand model, transforms,
// operation engine, and special ops together into the 256-entry opcode
// dispatch table and the driver loop that steps through a loaded program.
package machine

import (
	"fmt"

	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/exec"
	"github.com/jaredr/x86emu/pkg/modrm"
	"github.com/jaredr/x86emu/pkg/operand"
	"github.com/jaredr/x86emu/pkg/ops"
	"github.com/jaredr/x86emu/pkg/transform"
)

type handler func(s *cpu.State) error

// baseOps is the opcode dispatch table: one handler per possible opcode
// byte, nil where the opcode is not in the implemented subset.
var baseOps [256]handler

func init() {
	baseOps[0x04] = i8Op(cpu.AL, transform.Add8, false)
	baseOps[0x05] = i16Op(cpu.AX, transform.Add16, false)
	baseOps[0x2D] = i16Op(cpu.AX, transform.Sub16, false)
	baseOps[0x3C] = i8Op(cpu.AL, transform.Sub8, true)
	baseOps[0x3D] = i16Op(cpu.AX, transform.Sub16, true)

	baseOps[0x01] = mwOp(transform.Add16, false)
	baseOps[0x09] = mwOp(transform.Or16, false)
	baseOps[0x19] = mwOp(transform.Sbb16, false)
	baseOps[0x20] = mwOp(transform.And16, false)
	baseOps[0x29] = mwOp(transform.Sub16, false)
	baseOps[0x31] = mwOp(transform.Xor16, false)
	baseOps[0x38] = mbOp(transform.Sub8, true)
	baseOps[0x39] = mwOp(transform.Sub16, true)

	for i, r := range []cpu.Reg16{cpu.AX, cpu.CX, cpu.DX, cpu.BX} {
		baseOps[0x40+i] = incDecReg(r, transform.Add16)
		baseOps[0x48+i] = incDecReg(r, transform.Sub16)
	}
	baseOps[0x47] = incDecReg(cpu.DI, transform.Add16)
	baseOps[0x4C] = incDecReg(cpu.DI, transform.Sub16)

	pushPopRegs := []cpu.Reg16{cpu.AX, cpu.CX, cpu.DX, cpu.BX, cpu.SP, cpu.BP, cpu.SI, cpu.DI}
	for i, r := range pushPopRegs {
		if r == cpu.BP {
			continue
		}
		reg := r
		baseOps[0x50+i] = func(s *cpu.State) error { return ops.Push(s, reg) }
		baseOps[0x58+i] = func(s *cpu.State) error { return ops.Pop(s, reg) }
	}

	baseOps[0x72] = condJump8(ops.CF, false)
	baseOps[0x74] = condJump8(ops.ZF, false)
	baseOps[0x75] = condJump8(ops.ZF, true)
	baseOps[0x76] = condJumpEither(ops.CF, ops.ZF, false)
	baseOps[0x77] = condJumpEither(ops.CF, ops.ZF, true)
	baseOps[0x79] = condJump8(ops.SF, true)

	baseOps[0x80] = group80
	baseOps[0x81] = group81

	baseOps[0x86] = xchg8Op
	baseOps[0x88] = movMb(true)
	baseOps[0x89] = movMw(true)
	baseOps[0x8A] = movMb(false)
	baseOps[0x8B] = movMw(false)

	baseOps[0x90] = func(s *cpu.State) error { return nil }
	baseOps[0x92] = func(s *cpu.State) error {
		return ops.Xchg16(s, operand.NewReg16(cpu.AX), operand.NewReg16(cpu.DX))
	}

	byteRegs := []cpu.Reg8{cpu.AL, cpu.CL, cpu.DL, cpu.BL, cpu.AH, cpu.CH, cpu.DH, cpu.BH}
	for i, r := range byteRegs {
		reg := r
		baseOps[0xB0+i] = func(s *cpu.State) error {
			imm, err := s.FetchByte()
			if err != nil {
				return err
			}
			return exec.Op8(s, operand.NewReg8(reg), operand.NewRawByte(imm), transform.Noop8)
		}
	}
	for i, r := range pushPopRegs {
		if r == cpu.BP {
			continue
		}
		reg := r
		baseOps[0xB8+i] = func(s *cpu.State) error {
			imm, err := s.FetchWord()
			if err != nil {
				return err
			}
			return exec.Op16(s, operand.NewReg16(reg), operand.NewRawWord(imm), transform.Noop16)
		}
	}

	baseOps[0xC3] = func(s *cpu.State) error { return ops.Ret(s) }
	baseOps[0xC6] = movImmMb
	baseOps[0xC7] = movImmMw
	baseOps[0xE8] = func(s *cpu.State) error {
		imm, err := s.FetchWord()
		if err != nil {
			return err
		}
		return ops.Call(s, imm)
	}
	baseOps[0xE9] = func(s *cpu.State) error {
		imm, err := s.FetchWord()
		if err != nil {
			return err
		}
		ops.Jmp16(s, imm)
		return nil
	}
	baseOps[0xEB] = func(s *cpu.State) error {
		imm, err := s.FetchByte()
		if err != nil {
			return err
		}
		ops.Jmp8(s, imm)
		return nil
	}
	baseOps[0xF9] = func(s *cpu.State) error {
		ops.Stc(s)
		return nil
	}
	baseOps[0xFE] = group0xFE
}

func i8Op(reg cpu.Reg8, fn transform.Func8, dry bool) handler {
	return func(s *cpu.State) error {
		imm, err := s.FetchByte()
		if err != nil {
			return err
		}
		dst, src := operand.NewReg8(reg), operand.NewRawByte(imm)
		if dry {
			return exec.Op8Dry(s, dst, src, fn)
		}
		return exec.Op8(s, dst, src, fn)
	}
}

func i16Op(reg cpu.Reg16, fn transform.Func16, dry bool) handler {
	return func(s *cpu.State) error {
		imm, err := s.FetchWord()
		if err != nil {
			return err
		}
		dst, src := operand.NewReg16(reg), operand.NewRawWord(imm)
		if dry {
			return exec.Op16Dry(s, dst, src, fn)
		}
		return exec.Op16(s, dst, src, fn)
	}
}

func mwOp(fn transform.Func16, dry bool) handler {
	return func(s *cpu.State) error {
		res, err := modrm.Decode(s, true)
		if err != nil {
			return err
		}
		if dry {
			return exec.Op16Dry(s, res.Effective, res.Register, fn)
		}
		return exec.Op16(s, res.Effective, res.Register, fn)
	}
}

func mbOp(fn transform.Func8, dry bool) handler {
	return func(s *cpu.State) error {
		res, err := modrm.Decode(s, false)
		if err != nil {
			return err
		}
		if dry {
			return exec.Op8Dry(s, res.Effective, res.Register, fn)
		}
		return exec.Op8(s, res.Effective, res.Register, fn)
	}
}

func movMb(effFromReg bool) handler {
	return func(s *cpu.State) error {
		res, err := modrm.Decode(s, false)
		if err != nil {
			return err
		}
		if effFromReg {
			return exec.Op8(s, res.Effective, res.Register, transform.Noop8)
		}
		return exec.Op8(s, res.Register, res.Effective, transform.Noop8)
	}
}

func movMw(effFromReg bool) handler {
	return func(s *cpu.State) error {
		res, err := modrm.Decode(s, true)
		if err != nil {
			return err
		}
		if effFromReg {
			return exec.Op16(s, res.Effective, res.Register, transform.Noop16)
		}
		return exec.Op16(s, res.Register, res.Effective, transform.Noop16)
	}
}

func xchg8Op(s *cpu.State) error {
	res, err := modrm.Decode(s, false)
	if err != nil {
		return err
	}
	return ops.Xchg8(s, res.Effective, res.Register)
}

func movImmMb(s *cpu.State) error {
	res, err := modrm.Decode(s, false)
	if err != nil {
		return err
	}
	imm, err := s.FetchByte()
	if err != nil {
		return err
	}
	return exec.Op8(s, res.Effective, operand.NewRawByte(imm), transform.Noop8)
}

func movImmMw(s *cpu.State) error {
	res, err := modrm.Decode(s, true)
	if err != nil {
		return err
	}
	imm, err := s.FetchWord()
	if err != nil {
		return err
	}
	return exec.Op16(s, res.Effective, operand.NewRawWord(imm), transform.Noop16)
}

func incDecReg(reg cpu.Reg16, fn transform.Func16) handler {
	return func(s *cpu.State) error {
		return exec.Op16(s, operand.NewReg16(reg), operand.NewRawWord(1), fn)
	}
}

func condJump8(sel ops.FlagSelector, invert bool) handler {
	return func(s *cpu.State) error {
		offset, err := s.FetchByte()
		if err != nil {
			return err
		}
		ops.JmpFlag(s, sel, invert, offset)
		return nil
	}
}

func condJumpEither(sel1, sel2 ops.FlagSelector, invert bool) handler {
	return func(s *cpu.State) error {
		offset, err := s.FetchByte()
		if err != nil {
			return err
		}
		ops.JmpFlags(s, sel1, sel2, invert, offset)
		return nil
	}
}

func group80(s *cpu.State) error {
	res, err := modrm.Decode(s, false)
	if err != nil {
		return err
	}
	imm, err := s.FetchByte()
	if err != nil {
		return err
	}
	src := operand.NewRawByte(imm)
	switch res.RegField {
	case 1:
		return exec.Op8(s, res.Effective, src, transform.Or8)
	case 7:
		return exec.Op8Dry(s, res.Effective, src, transform.Sub8)
	default:
		return &cpu.Fault{Kind: cpu.InvalidGroupSubOp, Opcode: 0x80, Detail: groupDetail(res.RegField)}
	}
}

func group81(s *cpu.State) error {
	res, err := modrm.Decode(s, true)
	if err != nil {
		return err
	}
	imm, err := s.FetchWord()
	if err != nil {
		return err
	}
	src := operand.NewRawWord(imm)
	switch res.RegField {
	case 0:
		return exec.Op16(s, res.Effective, src, transform.Add16)
	case 2:
		return exec.Op16(s, res.Effective, src, transform.Adc16)
	case 5:
		return exec.Op16(s, res.Effective, src, transform.Sub16)
	case 7:
		return exec.Op16Dry(s, res.Effective, src, transform.Sub16)
	default:
		return &cpu.Fault{Kind: cpu.InvalidGroupSubOp, Opcode: 0x81, Detail: groupDetail(res.RegField)}
	}
}

func group0xFE(s *cpu.State) error {
	res, err := modrm.Decode(s, false)
	if err != nil {
		return err
	}
	one := operand.NewRawByte(1)
	switch res.RegField {
	case 0:
		return exec.Op8(s, res.Effective, one, transform.Add8)
	case 1:
		return exec.Op8(s, res.Effective, one, transform.Sub8)
	default:
		return &cpu.Fault{Kind: cpu.InvalidGroupSubOp, Opcode: 0xFE, Detail: groupDetail(res.RegField)}
	}
}

func groupDetail(regField byte) string {
	return fmt.Sprintf("reg field %d not handled by this group", regField)
}
