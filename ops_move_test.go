package m68k

import "testing"

func TestMOVEQ(t *testing.T) {
	runTest(t, cpuState{
		PC: 0x1000, SR: 0x2700, SSP: 0x10000,
		RAM: [][2]uint32{{0x1000, 0x70}, {0x1001, 0xFF}}, // MOVEQ #-1,D0
	}, cpuState{
		D:  [8]uint32{0xFFFFFFFF},
		PC: 0x1002, SR: 0x2700 | flagN, SSP: 0x10000,
		Cycles: 4,
	})
}

func TestSWAP(t *testing.T) {
	runTest(t, cpuState{
		D:  [8]uint32{0, 0x1234ABCD},
		PC: 0x1000, SR: 0x2700, SSP: 0x10000,
		RAM: [][2]uint32{{0x1000, 0x48}, {0x1001, 0x41}}, // SWAP D1
	}, cpuState{
		D:  [8]uint32{0, 0xABCD1234},
		PC: 0x1002, SR: 0x2700 | flagN, SSP: 0x10000,
		Cycles: 4,
	})
}

func TestEXT(t *testing.T) {
	t.Run("byte to word", func(t *testing.T) {
		runTest(t, cpuState{
			D:  [8]uint32{0x11110080},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{{0x1000, 0x48}, {0x1001, 0x80}}, // EXT.W D0
		}, cpuState{
			D:  [8]uint32{0x1111FF80},
			PC: 0x1002, SR: 0x2700 | flagN, SSP: 0x10000,
		})
	})

	t.Run("word to long", func(t *testing.T) {
		runTest(t, cpuState{
			D:  [8]uint32{0x11118000},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{{0x1000, 0x48}, {0x1001, 0xC0}}, // EXT.L D0
		}, cpuState{
			D:  [8]uint32{0xFFFF8000},
			PC: 0x1002, SR: 0x2700 | flagN, SSP: 0x10000,
		})
	})
}

func TestEXG(t *testing.T) {
	t.Run("data with data", func(t *testing.T) {
		runTest(t, cpuState{
			D:  [8]uint32{0xAAAA, 0xBBBB},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{{0x1000, 0xC1}, {0x1001, 0x41}}, // EXG D0,D1
		}, cpuState{
			D:  [8]uint32{0xBBBB, 0xAAAA},
			PC: 0x1002, SR: 0x2700, SSP: 0x10000,
			Cycles: 6,
		})
	})

	t.Run("data with address", func(t *testing.T) {
		runTest(t, cpuState{
			D:  [8]uint32{0xAAAA},
			A:  [7]uint32{0, 0, 0xCCCC},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{{0x1000, 0xC1}, {0x1001, 0x8A}}, // EXG D0,A2
		}, cpuState{
			D:  [8]uint32{0xCCCC},
			A:  [7]uint32{0, 0, 0xAAAA},
			PC: 0x1002, SR: 0x2700, SSP: 0x10000,
		})
	})
}

func TestCLR(t *testing.T) {
	runTest(t, cpuState{
		D:  [8]uint32{0xDEADBEEF},
		PC: 0x1000, SR: 0x2700 | flagN | flagV | flagC | flagX, SSP: 0x10000,
		RAM: [][2]uint32{{0x1000, 0x42}, {0x1001, 0x80}}, // CLR.L D0
	}, cpuState{
		PC: 0x1002, SR: 0x2700 | flagZ | flagX, SSP: 0x10000,
		Cycles: 6,
	})
}

func TestNEGRegister(t *testing.T) {
	runTest(t, cpuState{
		D:  [8]uint32{0x00000001},
		PC: 0x1000, SR: 0x2700, SSP: 0x10000,
		RAM: [][2]uint32{{0x1000, 0x44}, {0x1001, 0x80}}, // NEG.L D0
	}, cpuState{
		D:  [8]uint32{0xFFFFFFFF},
		PC: 0x1002, SR: 0x2700 | flagN | flagC | flagX, SSP: 0x10000,
		Cycles: 6,
	})
}

func TestTASMemory(t *testing.T) {
	runTest(t, cpuState{
		A:  [7]uint32{0x2000},
		PC: 0x1000, SR: 0x2700, SSP: 0x10000,
		RAM: [][2]uint32{
			{0x1000, 0x4A}, {0x1001, 0xD0}, // TAS (A0)
			{0x2000, 0x00},
		},
	}, cpuState{
		A:  [7]uint32{0x2000},
		PC: 0x1002, SR: 0x2700 | flagZ, SSP: 0x10000,
		RAM: [][2]uint32{{0x2000, 0x80}},
	})
}

func TestLINKandUNLK(t *testing.T) {
	// LINK A2,#-8 then UNLK A2 restores the frame exactly.
	bus := &testBus{}
	writeWord(bus, 0x1000, 0x4E52) // LINK A2
	writeWord(bus, 0x1002, 0xFFF8) // #-8
	writeWord(bus, 0x1004, 0x4E5A) // UNLK A2

	cpu := &CPU{bus: bus}
	var a [8]uint32
	a[2] = 0xCAFE
	cpu.SetState(Registers{A: a, PC: 0x1000, SR: 0x2700, SSP: 0x10000})

	if _, fault := cpu.Step(); fault != nil {
		t.Fatalf("LINK faulted: %v", fault)
	}
	reg := cpu.Registers()
	if reg.A[2] != 0xFFFC {
		t.Errorf("A2 = %08X, want 0000FFFC (old SP after the push)", reg.A[2])
	}
	if reg.A[7] != 0xFFF4 {
		t.Errorf("A7 = %08X, want 0000FFF4 (frame pointer minus 8)", reg.A[7])
	}

	if _, fault := cpu.Step(); fault != nil {
		t.Fatalf("UNLK faulted: %v", fault)
	}
	reg = cpu.Registers()
	if reg.A[2] != 0xCAFE {
		t.Errorf("A2 = %08X, want 0000CAFE (restored)", reg.A[2])
	}
	if reg.A[7] != 0x10000 {
		t.Errorf("A7 = %08X, want 00010000 (restored)", reg.A[7])
	}
}

func TestMOVEM(t *testing.T) {
	t.Run("memory to registers sign-extends words", func(t *testing.T) {
		runTest(t, cpuState{
			A:  [7]uint32{0x2000},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{
				{0x1000, 0x4C}, {0x1001, 0x90}, // MOVEM.W (A0),<list>
				{0x1002, 0x00}, {0x1003, 0x03}, // list = D0,D1
				{0x2000, 0x80}, {0x2001, 0x00},
				{0x2002, 0x00}, {0x2003, 0x42},
			},
		}, cpuState{
			D:  [8]uint32{0xFFFF8000, 0x42},
			A:  [7]uint32{0x2000},
			PC: 0x1004, SR: 0x2700, SSP: 0x10000,
		})
	})

	t.Run("predecrement stores in reverse order", func(t *testing.T) {
		runTest(t, cpuState{
			D:  [8]uint32{0x1111, 0x2222},
			A:  [7]uint32{0, 0, 0, 0, 0, 0, 0x2008},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{
				{0x1000, 0x48}, {0x1001, 0xA6}, // MOVEM.W <list>,-(A6)
				{0x1002, 0xC0}, {0x1003, 0x00}, // reversed list = D0,D1
			},
		}, cpuState{
			D:  [8]uint32{0x1111, 0x2222},
			A:  [7]uint32{0, 0, 0, 0, 0, 0, 0x2004},
			PC: 0x1004, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{
				{0x2004, 0x11}, {0x2005, 0x11},
				{0x2006, 0x22}, {0x2007, 0x22},
			},
		})
	})

	t.Run("postincrement loads and bumps An", func(t *testing.T) {
		runTest(t, cpuState{
			A:  [7]uint32{0, 0x2000},
			PC: 0x1000, SR: 0x2700, SSP: 0x10000,
			RAM: [][2]uint32{
				{0x1000, 0x4C}, {0x1001, 0x99}, // MOVEM.W (A1)+,<list>
				{0x1002, 0x00}, {0x1003, 0x01}, // list = D0
				{0x2000, 0x12}, {0x2001, 0x34},
			},
		}, cpuState{
			D:  [8]uint32{0x1234},
			A:  [7]uint32{0, 0x2002},
			PC: 0x1004, SR: 0x2700, SSP: 0x10000,
		})
	})
}
