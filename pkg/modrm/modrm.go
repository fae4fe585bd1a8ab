// modrm.go - ModR/M byte and effective-address decoding

// Package modrm decodes the single ModR/M addressing byte used by the
// register/memory opcode shapes, resolving it to an effective operand
// (memory or register) and a register operand.
package modrm

import (
	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/operand"
)

// Result is a decoded ModR/M byte: the raw reg field (exposed so group
// opcodes can reuse it as a sub-opcode selector), the effective operand
// (memory or register, per the mod/rm fields), and the register operand
// (per the reg field).
type Result struct {
	RegField  byte
	Effective operand.Operand
	Register  operand.Operand
}

// Decode fetches one ModR/M byte (and any trailing displacement it implies)
// and resolves it. wide selects the word or byte register-naming table for
// the reg field and for mod=11 register-direct addressing.
func Decode(s *cpu.State, wide bool) (Result, error) {
	b, err := s.FetchByte()
	if err != nil {
		return Result{}, err
	}

	mod := (b >> 6) & 3
	reg := (b >> 3) & 7
	rm := b & 7

	regOperand := registerOperand(reg, wide)

	if mod == 3 {
		return Result{RegField: reg, Effective: registerOperand(rm, wide), Register: regOperand}, nil
	}

	addr, err := effectiveAddress(s, mod, rm)
	if err != nil {
		return Result{}, err
	}
	return Result{RegField: reg, Effective: operand.NewMem(addr), Register: regOperand}, nil
}

func registerOperand(idx byte, wide bool) operand.Operand {
	if wide {
		return operand.NewReg16(cpu.Reg16ByIndex(idx))
	}
	return operand.NewReg8(cpu.Reg8ByIndex(idx))
}

func effectiveAddress(s *cpu.State, mod, rm byte) (uint16, error) {
	switch mod {
	case 0:
		switch rm {
		case 0b000:
			return s.GetReg16(cpu.BX) + s.GetReg16(cpu.SI), nil
		case 0b001:
			return s.GetReg16(cpu.BX) + s.GetReg16(cpu.DI), nil
		case 0b010:
			return s.GetReg16(cpu.BP) + s.GetReg16(cpu.SI), nil
		case 0b011:
			return s.GetReg16(cpu.BP) + s.GetReg16(cpu.DI), nil
		case 0b100:
			return s.GetReg16(cpu.SI), nil
		case 0b101:
			return s.GetReg16(cpu.DI), nil
		case 0b110:
			return s.FetchWord()
		case 0b111:
			return s.GetReg16(cpu.BX), nil
		}
	case 2:
		switch rm {
		case 0b101:
			disp, err := s.FetchWord()
			if err != nil {
				return 0, err
			}
			return s.GetReg16(cpu.DI) + disp, nil
		case 0b111:
			disp, err := s.FetchWord()
			if err != nil {
				return 0, err
			}
			return s.GetReg16(cpu.BX) + disp, nil
		}
	}
	return 0, &cpu.Fault{
		Kind:   cpu.UnimplementedAddressingMode,
		Detail: modeDetail(mod, rm),
	}
}

func modeDetail(mod, rm byte) string {
	names := [4]string{"00", "01", "10", "11"}
	return "mod=" + names[mod] + " rm not supported for this mod"
}
