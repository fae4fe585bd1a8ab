// memory.go - flat 65,535-byte memory access

package cpu

import "github.com/jaredr/x86emu/pkg/bits"

// ReadMem reads a single byte. addr == MemorySize (65,535) is out of range —
// the flat space is 65,535 cells, not a full 64 KiB.
func (s *State) ReadMem(addr uint16) (byte, error) {
	if int(addr) >= MemorySize {
		return 0, &Fault{Kind: InvalidAddress, IP: s.ip, Addr: addr}
	}
	return s.mem[addr], nil
}

// WriteMem writes a single byte.
func (s *State) WriteMem(addr uint16, v byte) error {
	if int(addr) >= MemorySize {
		return &Fault{Kind: InvalidAddress, IP: s.ip, Addr: addr}
	}
	s.mem[addr] = v
	return nil
}

// ReadMem16 reads a little-endian word: low byte at addr, high byte at addr+1.
func (s *State) ReadMem16(addr uint16) (uint16, error) {
	lo, err := s.ReadMem(addr)
	if err != nil {
		return 0, err
	}
	hi, err := s.ReadMem(addr + 1)
	if err != nil {
		return 0, err
	}
	return bits.Join8(lo, hi), nil
}

// WriteMem16 writes a little-endian word: low byte at addr, high byte at addr+1.
func (s *State) WriteMem16(addr uint16, v uint16) error {
	if err := s.WriteMem(addr, bits.Low8(v)); err != nil {
		return err
	}
	return s.WriteMem(addr+1, bits.High8(v))
}

// FetchByte reads the byte at IP and advances IP by one. A fetch at 0xFFFF,
// one past the last memory cell, fails with InvalidAddress, so IP does not
// wrap back to zero here.
func (s *State) FetchByte() (byte, error) {
	b, err := s.ReadMem(s.ip)
	if err != nil {
		return 0, err
	}
	s.ip++
	return b, nil
}

// FetchWord reads two successive bytes as a little-endian word and advances
// IP by two.
func (s *State) FetchWord() (uint16, error) {
	lo, err := s.FetchByte()
	if err != nil {
		return 0, err
	}
	hi, err := s.FetchByte()
	if err != nil {
		return 0, err
	}
	return bits.Join8(lo, hi), nil
}
