package cpu

import (
	"strings"
	"testing"
)

func TestFaultErrorIncludesDetail(t *testing.T) {
	f := &Fault{Kind: UnknownOpcode, IP: 0x10, Opcode: 0xFF}
	if got := f.Error(); got == "" {
		t.Fatal("Error() should not be empty")
	}
	f.Detail = "opcode 0xFF not in dispatch table"
	if got := f.Error(); !strings.Contains(got, f.Detail) {
		t.Errorf("Error() = %q, want it to contain the detail", got)
	}
}
