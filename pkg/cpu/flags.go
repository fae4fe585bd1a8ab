package cpu

// Flags holds the four condition bits this emulator models. There is no
// parity, auxiliary-carry, direction, or interrupt flag.
type Flags struct {
	Carry    bool
	Overflow bool
	Sign     bool
	Zero     bool
}

// SetFlags atomically overwrites all four flags.
func (s *State) SetFlags(cf, of, sf, zf bool) {
	s.cf, s.of, s.sf, s.zf = cf, of, sf, zf
}

// GetFlags returns a snapshot of the current flags.
func (s *State) GetFlags() Flags {
	return Flags{Carry: s.cf, Overflow: s.of, Sign: s.sf, Zero: s.zf}
}

func (s *State) Zero() bool  { return s.zf }
func (s *State) Sign() bool  { return s.sf }
func (s *State) Carry() bool { return s.cf }

// SetCarry raises CF without touching the other three flags.
func (s *State) SetCarry() { s.cf = true }
