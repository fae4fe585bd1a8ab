package search

// Candidate is one synthetic instruction used to build peephole replacement
// sequences.
type Candidate struct {
	Name  string
	Bytes []byte
}

// catalog is the small instruction set candidate sequences are built from.
// It draws only on the immediate-byte, immediate-word and no-operand shapes
// of pkg/machine's dispatch table (no ModR/M or group opcodes) rather than
// every opcode, the same way a
// mutator restricts itself to a tractable instruction alphabet instead of
// enumerating the full opcode space.
var catalog = []Candidate{
	{"NOP", []byte{0x90}},
	{"STC", []byte{0xF9}},
	{"INC_AX", []byte{0x40}},
	{"DEC_AX", []byte{0x48}},
	{"ADD_AL_1", []byte{0x04, 0x01}},
	{"SUB_AX_1", []byte{0x2D, 0x01, 0x00}},
	{"MOV_AL_0", []byte{0xB0, 0x00}},
	{"MOV_AX_0", []byte{0xB8, 0x00, 0x00}},
	{"XCHG_AX_DX", []byte{0x92}},
}

// Sequences generates every candidate instruction sequence of exactly n
// instructions from the catalog, calling yield with each one. Enumeration
// stops early if yield returns false.
func Sequences(n int, yield func([]Candidate) bool) {
	if n <= 0 {
		return
	}
	seq := make([]Candidate, n)
	var rec func(depth int) bool
	rec = func(depth int) bool {
		if depth == n {
			return yield(seq)
		}
		for _, c := range catalog {
			seq[depth] = c
			if !rec(depth + 1) {
				return false
			}
		}
		return true
	}
	rec(0)
}

// Bytes concatenates a candidate sequence's raw bytes, the program a
// replacement actually runs as.
func Bytes(seq []Candidate) []byte {
	var out []byte
	for _, c := range seq {
		out = append(out, c.Bytes...)
	}
	return out
}
