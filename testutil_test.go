package m68k

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
)

// testBus is a flat 16MB byte-array bus for testing. The space tag is
// accepted and ignored; every access lands in the same array, like a
// system with no function-code decoding.
type testBus struct {
	mem [16 * 1024 * 1024]byte
}

func (b *testBus) Read(_ Space, sz Size, addr uint32) uint32 {
	addr &= 0xFFFFFF
	switch sz {
	case Byte:
		return uint32(b.mem[addr])
	case Word:
		return uint32(b.mem[addr])<<8 | uint32(b.mem[addr+1])
	case Long:
		return uint32(b.mem[addr])<<24 | uint32(b.mem[addr+1])<<16 |
			uint32(b.mem[addr+2])<<8 | uint32(b.mem[addr+3])
	}
	return 0
}

func (b *testBus) Write(_ Space, sz Size, addr uint32, val uint32) {
	addr &= 0xFFFFFF
	switch sz {
	case Byte:
		b.mem[addr] = byte(val)
	case Word:
		b.mem[addr] = byte(val >> 8)
		b.mem[addr+1] = byte(val)
	case Long:
		b.mem[addr] = byte(val >> 24)
		b.mem[addr+1] = byte(val >> 16)
		b.mem[addr+2] = byte(val >> 8)
		b.mem[addr+3] = byte(val)
	}
}

func (b *testBus) Reset() {}

// spyBus wraps testBus and records the cycle stamp of each access,
// exercising the CycleBus path.
type spyBus struct {
	testBus
	stamps []uint64
}

func (b *spyBus) ReadCycle(cycle uint64, space Space, sz Size, addr uint32) uint32 {
	b.stamps = append(b.stamps, cycle)
	return b.testBus.Read(space, sz, addr)
}

func (b *spyBus) WriteCycle(cycle uint64, space Space, sz Size, addr uint32, val uint32) {
	b.stamps = append(b.stamps, cycle)
	b.testBus.Write(space, sz, addr, val)
}

// cpuState captures the full programmer-visible state for a test case.
// RAM entries are [address, byte_value] pairs.
// A[7] is unused; the active stack pointer is derived from USP/SSP/SR.
type cpuState struct {
	D      [8]uint32
	A      [7]uint32
	PC     uint32
	SR     uint16
	USP    uint32
	SSP    uint32
	RAM    [][2]uint32
	Cycles int // Expected cycle count (0 = don't check)
}

// newTestCPU builds a CPU over a fresh testBus, loads the given RAM
// image, and establishes the initial register state.
func newTestCPU(init cpuState) (*CPU, *testBus) {
	bus := &testBus{}
	for _, entry := range init.RAM {
		bus.mem[entry[0]&0xFFFFFF] = byte(entry[1])
	}

	var a8 [8]uint32
	copy(a8[:7], init.A[:])
	cpu := &CPU{bus: bus}
	cpu.SetState(Registers{D: init.D, A: a8, PC: init.PC, SR: init.SR, USP: init.USP, SSP: init.SSP})
	return cpu, bus
}

// compareState diffs the CPU's register file and RAM against want.
// The register diff goes through deep.Equal so a failure reports every
// divergent field at once; spew renders the full got-state for context.
func compareState(t *testing.T, cpu *CPU, bus *testBus, want cpuState, gotCycles int) {
	t.Helper()

	got := cpu.Registers()

	wantReg := Registers{
		D:   want.D,
		PC:  want.PC,
		SR:  want.SR,
		USP: want.USP,
		SSP: want.SSP,
		IR:  got.IR, // not part of the expected state
	}
	copy(wantReg.A[:7], want.A[:])
	// A7 mirrors the active stack pointer for the expected mode.
	if want.SR&flagS != 0 {
		wantReg.A[7] = want.SSP
	} else {
		wantReg.A[7] = want.USP
	}

	if diff := deep.Equal(got, wantReg); diff != nil {
		t.Errorf("register state mismatch:\n  %s\ngot state: %s",
			strings.Join(diff, "\n  "), spew.Sdump(got))
	}

	for _, entry := range want.RAM {
		addr := entry[0] & 0xFFFFFF
		wantVal := byte(entry[1])
		if gotVal := bus.mem[addr]; gotVal != wantVal {
			t.Errorf("RAM[0x%06X] = 0x%02X, want 0x%02X", addr, gotVal, wantVal)
		}
	}

	if want.Cycles > 0 && gotCycles != want.Cycles {
		t.Errorf("cycles = %d, want %d", gotCycles, want.Cycles)
	}
}

// runTest loads initial state, executes one Step, and compares against
// the expected state. Fails if the instruction faults.
func runTest(t *testing.T, init, want cpuState) {
	t.Helper()

	cpu, bus := newTestCPU(init)
	gotCycles, fault := cpu.Step()

	if fault != nil {
		t.Fatalf("unexpected fault: %v", fault)
	}
	if cpu.Halted() {
		t.Fatal("CPU unexpectedly halted")
	}

	compareState(t, cpu, bus, want, gotCycles)
}

// writeWord stores a big-endian 16-bit word into the test bus memory.
func writeWord(bus *testBus, addr uint32, val uint16) {
	bus.mem[addr] = byte(val >> 8)
	bus.mem[addr+1] = byte(val)
}

// writeLong stores a big-endian 32-bit long into the test bus memory.
func writeLong(bus *testBus, addr uint32, val uint32) {
	bus.mem[addr] = byte(val >> 24)
	bus.mem[addr+1] = byte(val >> 16)
	bus.mem[addr+2] = byte(val >> 8)
	bus.mem[addr+3] = byte(val)
}

// fillNOPs writes NOP instructions (0x4E71, 4 cycles each) starting at addr.
func fillNOPs(bus *testBus, addr uint32, count int) {
	for i := 0; i < count; i++ {
		writeWord(bus, addr+uint32(i*2), 0x4E71)
	}
}

// newNOPCPU creates a CPU with NOPs at PC 0x1000 and returns it ready to run.
func newNOPCPU(nopCount int) (*CPU, *testBus) {
	bus := &testBus{}
	pc := uint32(0x1000)
	fillNOPs(bus, pc, nopCount)
	cpu := &CPU{bus: bus}
	cpu.SetState(Registers{PC: pc, SR: 0x2700, SSP: 0x10000})
	return cpu, bus
}

// setVector writes a handler address into the exception vector table.
func setVector(bus *testBus, vector int, handler uint32) {
	writeLong(bus, uint32(vector)*4, handler)
}
