// disasm.go - linear disassembler

// Package disasm renders the opcode subset pkg/machine executes as text,
// mirroring the table-driven mnemonic style of a machine-monitor
// disassembler: read one opcode, print its mnemonic and operands, report how
// many bytes it consumed.
package disasm

import "fmt"

var reg16Names = [8]string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"}
var reg8Names = [8]string{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"}

// Line is one disassembled instruction.
type Line struct {
	Address  uint16
	HexBytes string
	Mnemonic string
	Size     int
}

type cursor struct {
	mem []byte
	pos uint16
}

func (c *cursor) byte_() (byte, bool) {
	if int(c.pos) >= len(c.mem) {
		return 0, false
	}
	b := c.mem[c.pos]
	c.pos++
	return b, true
}

func (c *cursor) word() (uint16, bool) {
	lo, ok := c.byte_()
	if !ok {
		return 0, false
	}
	hi, ok := c.byte_()
	if !ok {
		return 0, false
	}
	return uint16(lo) | uint16(hi)<<8, true
}

// modrm consumes a ModR/M byte (and any displacement) and renders both
// operands: the effective (memory or rm register) and the reg-field register.
func (c *cursor) modrm(wide bool) (eff, reg string, ok bool) {
	b, ok := c.byte_()
	if !ok {
		return "???", "???", false
	}
	mod := (b >> 6) & 3
	regBits := (b >> 3) & 7
	rm := b & 7

	reg = regStr(regBits, wide)

	if mod == 3 {
		return regStr(rm, wide), reg, true
	}

	switch mod {
	case 0:
		switch rm {
		case 0b000:
			return "[BX+SI]", reg, true
		case 0b001:
			return "[BX+DI]", reg, true
		case 0b010:
			return "[BP+SI]", reg, true
		case 0b011:
			return "[BP+DI]", reg, true
		case 0b100:
			return "[SI]", reg, true
		case 0b101:
			return "[DI]", reg, true
		case 0b110:
			disp, ok := c.word()
			if !ok {
				return "[???]", reg, false
			}
			return fmt.Sprintf("[0x%04X]", disp), reg, true
		case 0b111:
			return "[BX]", reg, true
		}
	case 2:
		switch rm {
		case 0b101:
			disp, ok := c.word()
			if !ok {
				return "[DI+?]", reg, false
			}
			return fmt.Sprintf("[DI+0x%04X]", disp), reg, true
		case 0b111:
			disp, ok := c.word()
			if !ok {
				return "[BX+?]", reg, false
			}
			return fmt.Sprintf("[BX+0x%04X]", disp), reg, true
		}
	}
	return "???", reg, false
}

func regStr(idx byte, wide bool) string {
	if wide {
		return reg16Names[idx&7]
	}
	return reg8Names[idx&7]
}

// regField returns the raw reg bits of a ModR/M byte without consuming any
// trailing displacement, for callers that need it alongside modrm's text.
func regField(b byte) byte { return (b >> 3) & 7 }

// One decodes a single instruction starting at addr, returning its rendered
// line. ok is false when the opcode is not one this disassembler recognizes
// (mirroring pkg/machine's dispatch table one-for-one).
func One(mem []byte, addr uint16) (Line, bool) {
	c := &cursor{mem: mem, pos: addr}
	op, ok := c.byte_()
	if !ok {
		return Line{}, false
	}
	mnemonic, ok := decode(c, op)
	if !ok {
		return Line{}, false
	}
	size := int(c.pos - addr)
	hex := ""
	for i := 0; i < size; i++ {
		if i > 0 {
			hex += " "
		}
		hex += fmt.Sprintf("%02X", mem[int(addr)+i])
	}
	return Line{Address: addr, HexBytes: hex, Mnemonic: mnemonic, Size: size}, true
}

func decode(c *cursor, op byte) (string, bool) {
	switch {
	case op == 0x04:
		imm, ok := c.byte_()
		return fmt.Sprintf("ADD AL, 0x%02X", imm), ok
	case op == 0x05:
		imm, ok := c.word()
		return fmt.Sprintf("ADD AX, 0x%04X", imm), ok
	case op == 0x2D:
		imm, ok := c.word()
		return fmt.Sprintf("SUB AX, 0x%04X", imm), ok
	case op == 0x3C:
		imm, ok := c.byte_()
		return fmt.Sprintf("CMP AL, 0x%02X", imm), ok
	case op == 0x3D:
		imm, ok := c.word()
		return fmt.Sprintf("CMP AX, 0x%04X", imm), ok
	case op == 0x01 || op == 0x09 || op == 0x19 || op == 0x20 || op == 0x29 || op == 0x31 || op == 0x39:
		mnemonic := map[byte]string{0x01: "ADD", 0x09: "OR", 0x19: "SBB", 0x20: "AND", 0x29: "SUB", 0x31: "XOR", 0x39: "CMP"}[op]
		eff, reg, ok := c.modrm(true)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s %s, %s", mnemonic, eff, reg), true
	case op == 0x38:
		eff, reg, ok := c.modrm(false)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("CMP %s, %s", eff, reg), true
	case op >= 0x40 && op <= 0x43, op == 0x47:
		return fmt.Sprintf("INC %s", incDecRegName(op, 0x40, 0x47)), true
	case op >= 0x48 && op <= 0x4B, op == 0x4C:
		return fmt.Sprintf("DEC %s", incDecRegName(op, 0x48, 0x4C)), true
	case op >= 0x50 && op <= 0x57 && op != 0x55:
		return fmt.Sprintf("PUSH %s", reg16Names[op-0x50]), true
	case op >= 0x58 && op <= 0x5F && op != 0x5D:
		return fmt.Sprintf("POP %s", reg16Names[op-0x58]), true
	case op == 0x72:
		off, ok := c.byte_()
		return fmt.Sprintf("JC 0x%02X", off), ok
	case op == 0x74:
		off, ok := c.byte_()
		return fmt.Sprintf("JZ 0x%02X", off), ok
	case op == 0x75:
		off, ok := c.byte_()
		return fmt.Sprintf("JNZ 0x%02X", off), ok
	case op == 0x76:
		off, ok := c.byte_()
		return fmt.Sprintf("JBE 0x%02X", off), ok
	case op == 0x77:
		off, ok := c.byte_()
		return fmt.Sprintf("JA 0x%02X", off), ok
	case op == 0x79:
		off, ok := c.byte_()
		return fmt.Sprintf("JNS 0x%02X", off), ok
	case op == 0x80:
		return decodeGroup80(c)
	case op == 0x81:
		return decodeGroup81(c)
	case op == 0x86:
		eff, reg, ok := c.modrm(false)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("XCHG %s, %s", eff, reg), true
	case op == 0x88 || op == 0x8A:
		eff, reg, ok := c.modrm(false)
		if !ok {
			return "", false
		}
		if op == 0x88 {
			return fmt.Sprintf("MOV %s, %s", eff, reg), true
		}
		return fmt.Sprintf("MOV %s, %s", reg, eff), true
	case op == 0x89 || op == 0x8B:
		eff, reg, ok := c.modrm(true)
		if !ok {
			return "", false
		}
		if op == 0x89 {
			return fmt.Sprintf("MOV %s, %s", eff, reg), true
		}
		return fmt.Sprintf("MOV %s, %s", reg, eff), true
	case op == 0x90:
		return "NOP", true
	case op == 0x92:
		return "XCHG AX, DX", true
	case op >= 0xB0 && op <= 0xB7:
		imm, ok := c.byte_()
		return fmt.Sprintf("MOV %s, 0x%02X", reg8Names[op-0xB0], imm), ok
	case op >= 0xB8 && op <= 0xBF && op != 0xBD:
		imm, ok := c.word()
		return fmt.Sprintf("MOV %s, 0x%04X", reg16Names[op-0xB8], imm), ok
	case op == 0xC3:
		return "RET", true
	case op == 0xC6:
		eff, _, ok := c.modrm(false)
		if !ok {
			return "", false
		}
		imm, ok := c.byte_()
		if !ok {
			return "", false
		}
		return fmt.Sprintf("MOV %s, 0x%02X", eff, imm), true
	case op == 0xC7:
		eff, _, ok := c.modrm(true)
		if !ok {
			return "", false
		}
		imm, ok := c.word()
		if !ok {
			return "", false
		}
		return fmt.Sprintf("MOV %s, 0x%04X", eff, imm), true
	case op == 0xE8:
		imm, ok := c.word()
		return fmt.Sprintf("CALL 0x%04X", imm), ok
	case op == 0xE9:
		imm, ok := c.word()
		return fmt.Sprintf("JMP 0x%04X", imm), ok
	case op == 0xEB:
		off, ok := c.byte_()
		return fmt.Sprintf("JMP SHORT 0x%02X", off), ok
	case op == 0xF4:
		return "HLT", true
	case op == 0xF9:
		return "STC", true
	case op == 0xFE:
		return decodeGroupFE(c)
	}
	return "", false
}

// incDecRegName maps an INC/DEC opcode to its register name. base..base+3
// are AX/CX/DX/BX in table order; diOp is the non-contiguous fifth opcode
// that names DI (0x47 for INC, 0x4C for DEC).
func incDecRegName(op, base, diOp byte) string {
	if op == diOp {
		return "DI"
	}
	return reg16Names[op-base]
}

func decodeGroup80(c *cursor) (string, bool) {
	b, ok := c.byte_()
	if !ok {
		return "", false
	}
	c.pos--
	eff, _, ok := c.modrm(false)
	if !ok {
		return "", false
	}
	imm, ok := c.byte_()
	if !ok {
		return "", false
	}
	switch regField(b) {
	case 1:
		return fmt.Sprintf("OR %s, 0x%02X", eff, imm), true
	case 7:
		return fmt.Sprintf("CMP %s, 0x%02X", eff, imm), true
	}
	return "", false
}

func decodeGroup81(c *cursor) (string, bool) {
	b, ok := c.byte_()
	if !ok {
		return "", false
	}
	c.pos--
	eff, _, ok := c.modrm(true)
	if !ok {
		return "", false
	}
	imm, ok := c.word()
	if !ok {
		return "", false
	}
	switch regField(b) {
	case 0:
		return fmt.Sprintf("ADD %s, 0x%04X", eff, imm), true
	case 2:
		return fmt.Sprintf("ADC %s, 0x%04X", eff, imm), true
	case 5:
		return fmt.Sprintf("SUB %s, 0x%04X", eff, imm), true
	case 7:
		return fmt.Sprintf("CMP %s, 0x%04X", eff, imm), true
	}
	return "", false
}

func decodeGroupFE(c *cursor) (string, bool) {
	b, ok := c.byte_()
	if !ok {
		return "", false
	}
	c.pos--
	eff, _, ok := c.modrm(false)
	if !ok {
		return "", false
	}
	switch regField(b) {
	case 0:
		return fmt.Sprintf("INC %s", eff), true
	case 1:
		return fmt.Sprintf("DEC %s", eff), true
	}
	return "", false
}
