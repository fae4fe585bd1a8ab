// search.go - peephole equivalence search and worker pool

// Package search implements a peephole equivalence search: given a target
// instruction sequence, look for a shorter sequence from a small candidate
// catalog that produces the same observable register/flag state across a
// sample of seed states. Modeled on a STOKE-style mutate-and-verify search —
// enumerate candidates, quick-reject on size, verify exactly, collect
// rewrite rules — but built around this module's own CPU instead of a
// generic instruction abstraction.
package search

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jaredr/x86emu/pkg/cpu"
	"github.com/jaredr/x86emu/pkg/machine"
)

// Seed is one sampled starting register/flag state a candidate must
// reproduce the target's behavior under.
type Seed struct {
	AX, BX, CX, DX uint16
	Flags          cpu.Flags
}

// DefaultSeeds is a small, fixed set of seeds covering the zero state, a
// carry/overflow-adjacent boundary, and a state with flags already set —
// enough to catch a candidate that only coincidentally matches on zero input.
var DefaultSeeds = []Seed{
	{},
	{AX: 0x00FF, BX: 0x1234, CX: 0xFFFF, DX: 0x0001},
	{AX: 0x7FFF, Flags: cpu.Flags{Carry: true, Zero: true}},
}

// Rule is a confirmed replacement: the searched target can be swapped for
// Replacement without changing observable behavior across every seed tried.
type Rule struct {
	Replacement []Candidate
	BytesSaved  int
}

func runOn(seed Seed, program []byte) (cpu.Flags, uint16, uint16, uint16, uint16, error) {
	s := cpu.New()
	s.SetReg16(cpu.AX, seed.AX)
	s.SetReg16(cpu.BX, seed.BX)
	s.SetReg16(cpu.CX, seed.CX)
	s.SetReg16(cpu.DX, seed.DX)
	s.SetFlags(seed.Flags.Carry, seed.Flags.Overflow, seed.Flags.Sign, seed.Flags.Zero)

	full := append(append([]byte{}, program...), 0xF4)
	if err := s.Load(full); err != nil {
		return cpu.Flags{}, 0, 0, 0, 0, err
	}
	if err := machine.Run(s); err != nil {
		return cpu.Flags{}, 0, 0, 0, 0, err
	}
	return s.GetFlags(), s.GetReg16(cpu.AX), s.GetReg16(cpu.BX), s.GetReg16(cpu.CX), s.GetReg16(cpu.DX), nil
}

// Equivalent reports whether target and candidate produce identical
// AX/BX/CX/DX and flags across every seed, each run from a fresh machine.
func Equivalent(target, candidate []byte, seeds []Seed) bool {
	for _, seed := range seeds {
		tf, tax, tbx, tcx, tdx, terr := runOn(seed, target)
		cf, cax, cbx, ccx, cdx, cerr := runOn(seed, candidate)
		if (terr == nil) != (cerr == nil) {
			return false
		}
		if terr != nil {
			continue // both faulted (fault kinds are not compared); treat as equivalent on this seed
		}
		if tf != cf || tax != cax || tbx != cbx || tcx != ccx || tdx != cdx {
			return false
		}
	}
	return true
}

// WorkerPool runs a peephole search for one target across a bounded number
// of goroutines, one candidate-length sweep at a time, with
// every candidate run against an independent *cpu.State — there is no shared
// mutable machine between workers.
type WorkerPool struct {
	NumWorkers int
	checked    atomic.Int64
	found      atomic.Int64
}

// NewWorkerPool returns a pool sized to the host unless numWorkers is positive.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{NumWorkers: numWorkers}
}

// Stats reports how many candidates were checked and how many rules were found.
func (wp *WorkerPool) Stats() (checked, found int64) {
	return wp.checked.Load(), wp.found.Load()
}

// Search tries candidate lengths 1..maxCandLen (in instructions) in order and
// returns the first equivalent, byte-shorter sequence found at the smallest
// length that has one, or nil if none exists within maxCandLen. Which match
// is returned when several exist at that length is not defined.
func (wp *WorkerPool) Search(target []byte, maxCandLen int, seeds []Seed) *Rule {
	for n := 1; n <= maxCandLen; n++ {
		if rule := wp.searchLength(target, n, seeds); rule != nil {
			return rule
		}
	}
	return nil
}

func (wp *WorkerPool) searchLength(target []byte, n int, seeds []Seed) *Rule {
	var all [][]Candidate
	Sequences(n, func(seq []Candidate) bool {
		cp := make([]Candidate, len(seq))
		copy(cp, seq)
		all = append(all, cp)
		return true
	})

	work := make(chan []Candidate, len(all))
	for _, seq := range all {
		work <- seq
	}
	close(work)

	resultCh := make(chan *Rule, wp.NumWorkers)
	var wg sync.WaitGroup
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seq := range work {
				wp.checked.Add(1)
				candBytes := Bytes(seq)
				if len(candBytes) >= len(target) {
					continue
				}
				if Equivalent(target, candBytes, seeds) {
					wp.found.Add(1)
					select {
					case resultCh <- &Rule{Replacement: seq, BytesSaved: len(target) - len(candBytes)}:
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	for r := range resultCh {
		return r
	}
	return nil
}
