package bits

import "testing"

func TestSplitJoinRoundTrip(t *testing.T) {
	words := []uint16{0x0000, 0xFFFF, 0xBEEF, 0x1234, 0x00FF, 0xFF00}
	for _, w := range words {
		if got := Join8(Low8(w), High8(w)); got != w {
			t.Errorf("Join8(Low8(%#04x), High8(%#04x)) = %#04x, want %#04x", w, w, got, w)
		}
	}

	pairs := [][2]byte{{0x00, 0x00}, {0xEF, 0xBE}, {0x34, 0x12}, {0xFF, 0xFF}}
	for _, p := range pairs {
		lo, hi := p[0], p[1]
		w := Join8(lo, hi)
		if Low8(w) != lo {
			t.Errorf("Low8(Join8(%#02x,%#02x)) = %#02x, want %#02x", lo, hi, Low8(w), lo)
		}
		if High8(w) != hi {
			t.Errorf("High8(Join8(%#02x,%#02x)) = %#02x, want %#02x", lo, hi, High8(w), hi)
		}
	}
}

func TestReplaceLowHigh(t *testing.T) {
	w := uint16(0xBEEF)
	if got := ReplaceLow(w, 0x42); got != 0xBE42 {
		t.Errorf("ReplaceLow(0xBEEF, 0x42) = %#04x, want 0xBE42", got)
	}
	if got := ReplaceHigh(w, 0x42); got != 0x42EF {
		t.Errorf("ReplaceHigh(0xBEEF, 0x42) = %#04x, want 0x42EF", got)
	}
}

func TestAdd8Flags(t *testing.T) {
	result, carry, overflow, sign, zero := Add8(0xFF, 0x01)
	if result != 0x00 || !carry || overflow || sign || !zero {
		t.Errorf("Add8(0xFF,0x01) = (%#02x, c=%v, o=%v, s=%v, z=%v), want (0x00, true, false, false, true)",
			result, carry, overflow, sign, zero)
	}

	result, carry, overflow, sign, zero = Add8(0x7F, 0x01)
	if result != 0x80 || carry || !overflow || !sign || zero {
		t.Errorf("Add8(0x7F,0x01) = (%#02x, c=%v, o=%v, s=%v, z=%v), want (0x80, false, true, true, false)",
			result, carry, overflow, sign, zero)
	}
}

func TestSub8Flags(t *testing.T) {
	result, carry, overflow, sign, zero := Sub8(0x00, 0x01)
	if result != 0xFF || !carry || overflow || !sign || zero {
		t.Errorf("Sub8(0x00,0x01) = (%#02x, c=%v, o=%v, s=%v, z=%v), want (0xFF, true, false, true, false)",
			result, carry, overflow, sign, zero)
	}
}

func TestBitwiseFlagsAlwaysClearCarryOverflow(t *testing.T) {
	cases := []struct {
		lhs, rhs byte
	}{{0xFF, 0x0F}, {0x00, 0x00}, {0xAA, 0x55}}
	for _, c := range cases {
		if _, carry, overflow, _, _ := Or8(c.lhs, c.rhs); carry || overflow {
			t.Errorf("Or8(%#02x,%#02x) carry/overflow should be false", c.lhs, c.rhs)
		}
		if _, carry, overflow, _, _ := Xor8(c.lhs, c.rhs); carry || overflow {
			t.Errorf("Xor8(%#02x,%#02x) carry/overflow should be false", c.lhs, c.rhs)
		}
		if _, carry, overflow, _, _ := And8(c.lhs, c.rhs); carry || overflow {
			t.Errorf("And8(%#02x,%#02x) carry/overflow should be false", c.lhs, c.rhs)
		}
	}
}

func TestAdd16Sub16Wraparound(t *testing.T) {
	result, carry, _, _, zero := Add16(0xFFFF, 0x0001)
	if result != 0x0000 || !carry || !zero {
		t.Errorf("Add16(0xFFFF,0x0001) = (%#04x, c=%v, z=%v), want (0x0000, true, true)", result, carry, zero)
	}
	result, carry, _, _, _ = Sub16(0x0000, 0x0001)
	if result != 0xFFFF || !carry {
		t.Errorf("Sub16(0x0000,0x0001) = (%#04x, c=%v), want (0xFFFF, true)", result, carry)
	}
}
