// registers.go - word register file and 8-bit aliasing

package cpu

import "github.com/jaredr/x86emu/pkg/bits"

// Reg16 names one of the nine word registers.
type Reg16 int

const (
	AX Reg16 = iota
	BX
	CX
	DX
	SI
	DI
	BP
	SP
	IP
)

// Reg8 names one of the eight half-register aliases over AX/BX/CX/DX.
// AL is the low byte of its parent, AH the high byte.
type Reg8 int

const (
	AL Reg8 = iota
	AH
	BL
	BH
	CL
	CH
	DL
	DH
)

// regIndex16 maps a ModR/M-style register index (0-7) to a Reg16, per the
// word addressing table: AX, CX, DX, BX, SP, BP, SI, DI.
var regIndex16 = [8]Reg16{AX, CX, DX, BX, SP, BP, SI, DI}

// regIndex8 maps a ModR/M-style register index (0-7) to a Reg8, per the
// byte addressing table: AL, CL, DL, BL, AH, CH, DH, BH.
var regIndex8 = [8]Reg8{AL, CL, DL, BL, AH, CH, DH, BH}

// Reg16ByIndex returns the 16-bit register named by a raw 3-bit ModR/M field.
func Reg16ByIndex(idx byte) Reg16 { return regIndex16[idx&7] }

// Reg8ByIndex returns the 8-bit register named by a raw 3-bit ModR/M field.
func Reg8ByIndex(idx byte) Reg8 { return regIndex8[idx&7] }

// GetReg16 returns the current value of a word register.
func (s *State) GetReg16(r Reg16) uint16 {
	switch r {
	case AX:
		return s.ax
	case BX:
		return s.bx
	case CX:
		return s.cx
	case DX:
		return s.dx
	case SI:
		return s.si
	case DI:
		return s.di
	case BP:
		return s.bp
	case SP:
		return s.sp
	case IP:
		return s.ip
	}
	return 0
}

// SetReg16 overwrites a word register.
func (s *State) SetReg16(r Reg16, v uint16) {
	switch r {
	case AX:
		s.ax = v
	case BX:
		s.bx = v
	case CX:
		s.cx = v
	case DX:
		s.dx = v
	case SI:
		s.si = v
	case DI:
		s.di = v
	case BP:
		s.bp = v
	case SP:
		s.sp = v
	case IP:
		s.ip = v
	}
}

// parent returns a pointer to the 16-bit field backing an 8-bit register.
func (s *State) parent(r Reg8) *uint16 {
	switch r {
	case AL, AH:
		return &s.ax
	case BL, BH:
		return &s.bx
	case CL, CH:
		return &s.cx
	case DL, DH:
		return &s.dx
	}
	return nil
}

// GetReg8 returns the low or high byte of the register's 16-bit parent,
// leaving the parent untouched.
func (s *State) GetReg8(r Reg8) byte {
	w := *s.parent(r)
	if r == AL || r == BL || r == CL || r == DL {
		return bits.Low8(w)
	}
	return bits.High8(w)
}

// SetReg8 overwrites the low or high byte of the register's 16-bit parent,
// leaving the opposite half unchanged.
func (s *State) SetReg8(r Reg8, v byte) {
	p := s.parent(r)
	if r == AL || r == BL || r == CL || r == DL {
		*p = bits.ReplaceLow(*p, v)
	} else {
		*p = bits.ReplaceHigh(*p, v)
	}
}
