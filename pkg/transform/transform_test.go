package transform

import (
	"testing"

	"github.com/jaredr/x86emu/pkg/cpu"
)

func TestAddMatchesBitsSemantics(t *testing.T) {
	result, flags := Add8(0xFF, 0x01, cpu.Flags{})
	if result != 0x00 || !flags.Carry || flags.Overflow || !flags.Zero {
		t.Errorf("Add8(0xFF,0x01) = %#02x %+v, want 0x00 carry,zero", result, flags)
	}
}

func TestNoopPassesThroughAndIgnoresLHS(t *testing.T) {
	in := cpu.Flags{Carry: true, Zero: true}
	result, out := Noop8(0x11, 0x22, in)
	if result != 0x22 {
		t.Errorf("Noop8 returns rhs unchanged per MOV semantics; got %#02x, want 0x22", result)
	}
	if out != in {
		t.Errorf("Noop8 must pass flags through unmodified: got %+v, want %+v", out, in)
	}
}

func TestAdcAccountsForCarryIn(t *testing.T) {
	result, flags := Adc8(0xFE, 0x01, cpu.Flags{Carry: true})
	if result != 0x00 || !flags.Carry || !flags.Zero {
		t.Errorf("Adc8(0xFE,0x01,carry=true) = %#02x %+v, want 0x00 carry,zero", result, flags)
	}
}

func TestSbbAccountsForBorrowIn(t *testing.T) {
	result, flags := Sbb8(0x00, 0x00, cpu.Flags{Carry: true})
	if result != 0xFF || !flags.Carry || !flags.Sign {
		t.Errorf("Sbb8(0x00,0x00,borrow=true) = %#02x %+v, want 0xFF carry,sign", result, flags)
	}
}

func TestAdc16Sbb16Wraparound(t *testing.T) {
	result, flags := Adc16(0xFFFE, 0x0001, cpu.Flags{Carry: true})
	if result != 0x0000 || !flags.Carry || !flags.Zero {
		t.Errorf("Adc16(0xFFFE,0x0001,carry=true) = %#04x %+v, want 0x0000 carry,zero", result, flags)
	}
}

func TestBitwiseTransformsClearCarryOverflow(t *testing.T) {
	_, flags := Or8(0xFF, 0x00, cpu.Flags{Carry: true, Overflow: true})
	if flags.Carry || flags.Overflow {
		t.Errorf("Or8 must clear carry/overflow, got %+v", flags)
	}
	_, flags = Xor16(0xFFFF, 0x0000, cpu.Flags{Carry: true})
	if flags.Carry {
		t.Errorf("Xor16 must clear carry, got %+v", flags)
	}
}
