package modrm

import (
	"testing"

	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/operand"
)

func TestDecodeRegisterDirect(t *testing.T) {
	s := cpu.New()
	// mod=11, reg=000 (AX/AL), rm=011 (BX/BL)
	s.Load([]byte{0b11_000_011})
	res, err := Decode(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Effective.Kind != operand.Reg16 || res.Register.Kind != operand.Reg16 {
		t.Fatalf("expected register-direct operands, got %+v", res)
	}
}

func TestDecodeEffectiveAddressBaseIndex(t *testing.T) {
	s := cpu.New()
	s.SetReg16(cpu.BX, 0x0100)
	s.SetReg16(cpu.SI, 0x0010)
	// mod=00, reg=000, rm=000 -> [BX+SI]
	s.Load([]byte{0b00_000_000})
	res, err := Decode(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := operand.Write16(s, res.Effective, 0xAAAA); err != nil {
		t.Fatal(err)
	}
	v, _ := s.ReadMem(0x0110)
	if v != 0xAA {
		t.Errorf("[BX+SI] should resolve to 0x0110, wrote low byte %#02x", v)
	}
}

func TestDecodeDisp16Direct(t *testing.T) {
	s := cpu.New()
	// mod=00, rm=110 -> [disp16], little-endian trailing word 0x1234
	s.Load([]byte{0b00_000_110, 0x34, 0x12})
	res, err := Decode(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Effective.Kind != operand.Mem {
		t.Fatalf("expected memory operand for [disp16], got %+v", res.Effective)
	}
	if s.GetReg16(cpu.IP) != 3 {
		t.Errorf("IP after decoding [disp16] = %d, want 3", s.GetReg16(cpu.IP))
	}
}

func TestDecodeMod10SupportedCases(t *testing.T) {
	s := cpu.New()
	s.SetReg16(cpu.DI, 0x0010)
	// mod=10, rm=101 -> [DI+disp16]
	s.Load([]byte{0b10_000_101, 0x05, 0x00})
	res, err := Decode(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := operand.Write8(s, res.Effective, 0x42); err != nil {
		t.Fatal(err)
	}
	v, _ := s.ReadMem(0x0015)
	if v != 0x42 {
		t.Errorf("[DI+disp16] should resolve to 0x0015, got write elsewhere (value there=%#02x)", v)
	}

	s = cpu.New()
	s.SetReg16(cpu.BX, 0x0020)
	// mod=10, rm=111 -> [BX+disp16]
	s.Load([]byte{0b10_000_111, 0x05, 0x00})
	res, err = Decode(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := operand.Write8(s, res.Effective, 0x42); err != nil {
		t.Fatal(err)
	}
	v, _ = s.ReadMem(0x0025)
	if v != 0x42 {
		t.Errorf("[BX+disp16] should resolve to 0x0025, got write elsewhere (value there=%#02x)", v)
	}
}

func TestDecodeMod01IsFatal(t *testing.T) {
	s := cpu.New()
	// mod=01, rm=000
	s.Load([]byte{0b01_000_000, 0x05})
	if _, err := Decode(s, true); err == nil {
		t.Error("mod=01 should be a fatal UnimplementedAddressingMode")
	}
}

func TestDecodeUnsupportedMod10IsFatal(t *testing.T) {
	s := cpu.New()
	// mod=10, rm=000 is not one of the two supported mod=10 cases
	s.Load([]byte{0b10_000_000, 0x00, 0x00})
	if _, err := Decode(s, true); err == nil {
		t.Error("mod=10 rm=000 should be a fatal UnimplementedAddressingMode")
	}
}

func TestRegFieldExposedForGroupDispatch(t *testing.T) {
	s := cpu.New()
	// mod=11, reg=111, rm=000
	s.Load([]byte{0b11_111_000})
	res, err := Decode(s, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.RegField != 7 {
		t.Errorf("RegField = %d, want 7", res.RegField)
	}
}
