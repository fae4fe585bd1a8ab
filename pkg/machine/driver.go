// driver.go - fetch-decode-execute step/run loop

package machine

import "github.com/jaredr/x86emu/pkg/cpu"

// haltOpcode is the sentinel that ends the driver loop. Whether it should be
// read as the real 8086 HLT opcode or a program-specific convention is an
// open question upstream; here it is simply the core's halt signal.
const haltOpcode = 0xF4

// Step fetches and executes a single instruction. halted is true when the
// fetched opcode was the halt sentinel, in which case IP is left pointing at
// the halt byte and err is always nil.
func Step(s *cpu.State) (halted bool, err error) {
	ip := s.GetReg16(cpu.IP)
	opcode, err := s.FetchByte()
	if err != nil {
		return false, err
	}
	if opcode == haltOpcode {
		s.SetReg16(cpu.IP, ip)
		return true, nil
	}
	fn := baseOps[opcode]
	if fn == nil {
		return false, &cpu.Fault{Kind: cpu.UnknownOpcode, IP: ip, Opcode: opcode}
	}
	if err := fn(s); err != nil {
		return false, err
	}
	return false, nil
}

// Run steps the machine until halt or a fatal fault.
func Run(s *cpu.State) error {
	for {
		halted, err := Step(s)
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}
