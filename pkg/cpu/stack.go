package cpu

// Push decrements SP by two and stores v little-endian at the new SP: low
// byte at SP, high byte at SP+1. SP always ends up pointing at the byte just
// written — the stack grows downward.
func (s *State) Push(v uint16) error {
	s.sp -= 2
	return s.WriteMem16(s.sp, v)
}

// Pop reads the little-endian word at SP and advances SP by two. Whether the
// popped cells are zeroed afterward is unspecified; this implementation
// leaves them as-is.
func (s *State) Pop() (uint16, error) {
	v, err := s.ReadMem16(s.sp)
	if err != nil {
		return 0, err
	}
	s.sp += 2
	return v, nil
}
