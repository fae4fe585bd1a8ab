package cpu

import "testing"

func TestRegisterAliasing(t *testing.T) {
	s := New()
	s.SetReg16(AX, 0xBEEF)
	if got := s.GetReg8(AL); got != 0xEF {
		t.Errorf("AL = %#02x, want 0xEF", got)
	}
	if got := s.GetReg8(AH); got != 0xBE {
		t.Errorf("AH = %#02x, want 0xBE", got)
	}

	s.SetReg8(AL, 0x42)
	if got := s.GetReg8(AH); got != 0xBE {
		t.Errorf("AH after setting AL = %#02x, want unchanged 0xBE", got)
	}
	if got := s.GetReg16(AX); got != 0xBE42 {
		t.Errorf("AX after setting AL = %#04x, want 0xBE42", got)
	}
}

func TestRegisterAliasingSymmetric(t *testing.T) {
	for _, tc := range []struct {
		parent  Reg16
		lo, hi  Reg8
	}{
		{BX, BL, BH},
		{CX, CL, CH},
		{DX, DL, DH},
	} {
		s := New()
		s.SetReg16(tc.parent, 0xBEEF)
		if s.GetReg8(tc.lo) != 0xEF || s.GetReg8(tc.hi) != 0xBE {
			t.Fatalf("register %v aliasing incorrect", tc.parent)
		}
		s.SetReg8(tc.hi, 0x99)
		if s.GetReg8(tc.lo) != 0xEF {
			t.Fatalf("writing high half of %v disturbed low half", tc.parent)
		}
	}
}

func TestInitialState(t *testing.T) {
	s := New()
	if got := s.GetReg16(SP); got != 0x0100 {
		t.Errorf("initial SP = %#04x, want 0x0100", got)
	}
	if got := s.GetReg16(AX); got != 0 {
		t.Errorf("initial AX = %#04x, want 0", got)
	}
}

func TestStackLIFO(t *testing.T) {
	s := New()
	startSP := s.GetReg16(SP)
	words := []uint16{0x1111, 0x2222, 0x3333}
	for _, w := range words {
		if err := s.Push(w); err != nil {
			t.Fatalf("Push(%#04x): %v", w, err)
		}
	}
	for i := len(words) - 1; i >= 0; i-- {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if got != words[i] {
			t.Errorf("Pop() = %#04x, want %#04x", got, words[i])
		}
	}
	if got := s.GetReg16(SP); got != startSP {
		t.Errorf("SP after balanced push/pop = %#04x, want %#04x", got, startSP)
	}
}

func TestPushMemoryEndianness(t *testing.T) {
	s := New()
	s.SetReg16(SP, 0x0100)
	if err := s.Push(0xBEEF); err != nil {
		t.Fatal(err)
	}
	lo, err := s.ReadMem(0x00FE)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := s.ReadMem(0x00FF)
	if err != nil {
		t.Fatal(err)
	}
	if lo != 0xEF || hi != 0xBE {
		t.Errorf("mem[0x00FE..FF] = %#02x %#02x, want 0xEF 0xBE", lo, hi)
	}
}

func TestFetchByteAtMemoryLimit(t *testing.T) {
	s := New()
	s.SetReg16(IP, 0xFFFE)
	s.mem[0xFFFE] = 0xAA
	b, err := s.FetchByte()
	if err != nil || b != 0xAA {
		t.Fatalf("FetchByte at 0xFFFE = %#02x, err=%v, want 0xAA", b, err)
	}
	if s.GetReg16(IP) != 0xFFFF {
		t.Errorf("IP after fetch = %#04x, want 0xFFFF", s.GetReg16(IP))
	}
	// 0xFFFF is one past the last memory cell, so the next fetch faults
	// rather than wrapping into cell zero.
	if _, err := s.FetchByte(); err == nil {
		t.Error("FetchByte at 0xFFFF should fail with InvalidAddress")
	}
}

func TestReadWriteMemBounds(t *testing.T) {
	s := New()
	if err := s.WriteMem(MemorySize, 1); err == nil {
		t.Error("WriteMem at MemorySize should fail")
	}
	if _, err := s.ReadMem(MemorySize); err == nil {
		t.Error("ReadMem at MemorySize should fail")
	}
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	s := New()
	big := make([]byte, MemorySize+1)
	if err := s.Load(big); err == nil {
		t.Error("Load with oversized program should fail")
	}
}

func TestSetCarryOnlyTouchesCarry(t *testing.T) {
	s := New()
	s.SetFlags(false, true, true, true)
	s.SetCarry()
	f := s.GetFlags()
	if !f.Carry || !f.Overflow || !f.Sign || !f.Zero {
		t.Errorf("SetCarry must only raise CF, got %+v", f)
	}
}
