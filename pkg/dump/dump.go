// dump.go - register/memory/VRAM state dump formatting

// Package dump formats the human-readable state report printed on halt: the
// four general-purpose registers, six fixed memory rows, and an optional
// VRAM text dump. It is deliberately thin — an external collaborator to the
// core, not part of the fetch/decode/execute path.
package dump

import (
	"fmt"
	"strings"

	"github.com/jaredr/x86emu/pkg/bits"
	"github.com/jaredr/x86emu/pkg/cpu"
)

const memRowBase = 0x8000
const memRowCount = 6
const memRowWidth = 16

// Registers renders AX/BX/CX/DX, each as its 16-bit value followed by its
// low/high 8-bit halves.
func Registers(s *cpu.State) string {
	var b strings.Builder
	rows := []struct {
		name   string
		word   uint16
		lo, hi string
	}{
		{"AX", s.GetReg16(cpu.AX), "AL", "AH"},
		{"BX", s.GetReg16(cpu.BX), "BL", "BH"},
		{"CX", s.GetReg16(cpu.CX), "CL", "CH"},
		{"DX", s.GetReg16(cpu.DX), "DL", "DH"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s=0x%04X  %s=0x%02X %s=0x%02X\n", r.name, r.word, r.lo, bits.Low8(r.word), r.hi, bits.High8(r.word))
	}
	return b.String()
}

// MemoryRows renders six fixed 16-byte rows starting at 0x8000, each as hex
// bytes followed by their ASCII rendering (non-printable bytes shown as '.').
func MemoryRows(s *cpu.State) string {
	var b strings.Builder
	for row := 0; row < memRowCount; row++ {
		addr := uint16(memRowBase + row*memRowWidth)
		var hex, ascii strings.Builder
		for i := 0; i < memRowWidth; i++ {
			v, err := s.ReadMem(addr + uint16(i))
			if err != nil {
				v = 0
			}
			fmt.Fprintf(&hex, "%02X ", v)
			if v >= 0x20 && v < 0x7F {
				ascii.WriteByte(v)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Fprintf(&b, "%04X: %s %s\n", addr, hex.String(), ascii.String())
	}
	return b.String()
}

// VRAM renders an 80x25 text-mode dump starting at 0x8000, rendering 0x00 as
// a space. Only called when the caller has opted into a VRAM view.
func VRAM(s *cpu.State) string {
	const cols, rows = 80, 25
	var b strings.Builder
	addr := uint16(memRowBase)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v, err := s.ReadMem(addr)
			addr++
			if err != nil || v == 0x00 {
				b.WriteByte(' ')
				continue
			}
			b.WriteByte(v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// State renders the full halt report: registers, memory rows, and — when
// showVRAM is true — the VRAM view.
func State(s *cpu.State, showVRAM bool) string {
	var b strings.Builder
	b.WriteString(Registers(s))
	b.WriteString(MemoryRows(s))
	if showVRAM {
		b.WriteString(VRAM(s))
	}
	return b.String()
}
