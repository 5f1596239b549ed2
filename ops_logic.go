package m68k

// Bitwise logic group: AND/OR and their immediate forms, EOR/EORI,
// NOT, TST, TAS, and the shift/rotate family.

// --- AND / OR ---

// Encoding: 1100/1000 DDD O SS eee eee. Direction 0 is <ea>,Dn over
// the data addressing modes; direction 1 is Dn,<ea> over the
// memory-alterable modes.

func registerAND() {
	registerLogicPair(0xC000, opANDtoReg, opANDtoEA)
}

func registerOR() {
	registerLogicPair(0x8000, opORtoReg, opORtoEA)
}

func registerLogicPair(base uint16, toReg, toEA opFunc) {
	for dn := uint16(0); dn < 8; dn++ {
		for szBits := uint16(0); szBits < 3; szBits++ {
			for mode := uint16(0); mode < 8; mode++ {
				if mode == 1 {
					continue
				}
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 4 {
						continue
					}
					install(base|dn<<9|szBits<<6|mode<<3|reg, toReg)
				}
			}
			for mode := uint16(2); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 1 {
						continue
					}
					install(base|dn<<9|(szBits+4)<<6|mode<<3|reg, toEA)
				}
			}
		}
	}
}

// chargeLogic is the register/memory-destination timing shared by the
// AND/OR pairs: 4 into Dn, 8 into memory, long adds 4.
func (c *CPU) chargeLogic(toMemory bool, sz Size) {
	if toMemory {
		c.cycles += 8
	} else {
		c.cycles += 4
	}
	if sz == Long {
		c.cycles += 4
	}
}

func opANDtoReg(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, sz).read(c, sz)
	c.setD(dn, sz, c.aluAnd(sz, c.reg.D[dn], src))

	c.chargeLogic(false, sz)
}

func opANDtoEA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluAnd(sz, dst.read(c, sz), c.reg.D[dn]))

	c.chargeLogic(true, sz)
}

func opORtoReg(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, sz).read(c, sz)
	c.setD(dn, sz, c.aluOr(sz, c.reg.D[dn], src))

	c.chargeLogic(false, sz)
}

func opORtoEA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluOr(sz, dst.read(c, sz), c.reg.D[dn]))

	c.chargeLogic(true, sz)
}

// --- ANDI / ORI / EORI ---

func registerANDI() {
	registerImmOp(0x0200, opANDI)
}

func registerORI() {
	registerImmOp(0x0000, opORI)
}

func registerEORI() {
	registerImmOp(0x0A00, opEORI)
}

// chargeLogicImm is the immediate-form timing: a flat 8 clocks,
// doubled for long operands.
func (c *CPU) chargeLogicImm(sz Size) {
	c.cycles += 8
	if sz == Long {
		c.cycles += 8
	}
}

func opANDI(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	imm := c.fetchImm(sz)
	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluAnd(sz, dst.read(c, sz), imm))

	c.chargeLogicImm(sz)
}

func opORI(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	imm := c.fetchImm(sz)
	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluOr(sz, dst.read(c, sz), imm))

	c.chargeLogicImm(sz)
}

func opEORI(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	imm := c.fetchImm(sz)
	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluEor(sz, dst.read(c, sz), imm))

	c.chargeLogicImm(sz)
}

// --- EOR ---

// Encoding: 1011 DDD 1SS eee eee. EOR only ships Dn-source,
// <ea>-destination: opmodes 000-010 are CMP, 011/111 are CMPA, and the
// An-direct slots of EOR's own opmodes are CMPM.
func registerEOR() {
	for dn := uint16(0); dn < 8; dn++ {
		for szBits := uint16(0); szBits < 3; szBits++ {
			for mode := uint16(0); mode < 8; mode++ {
				if mode == 1 {
					continue
				}
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 1 {
						continue
					}
					install(0xB000|dn<<9|(szBits+4)<<6|mode<<3|reg, opEOR)
				}
			}
		}
	}
}

func opEOR(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluEor(sz, dst.read(c, sz), c.reg.D[dn]))

	c.cycles += 4
	if mode >= 2 {
		c.cycles += 4
	}
	if sz == Long && mode == 0 {
		c.cycles += 4
	}
}

// --- NOT ---

func registerNOT() {
	registerMonadic(0x4600, opNOT)
}

func opNOT(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluNot(sz, dst.read(c, sz)))

	c.cycles += 4
	if mode >= 2 {
		c.cycles += 4
	}
	if sz == Long && mode == 0 {
		c.cycles += 2
	}
}

// --- TST ---

func registerTST() {
	registerMonadic(0x4A00, opTST)
}

func opTST(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	c.aluTest(sz, c.resolveEA(mode, reg, sz).read(c, sz))

	c.cycles += 4
}

// --- TAS ---

// registerTAS expands TAS <ea>.
// Encoding: 0100 1010 11 eee eee
func registerTAS() {
	for mode := uint16(0); mode < 8; mode++ {
		if mode == 1 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 1 {
				continue
			}
			install(0x4AC0|mode<<3|reg, opTAS)
		}
	}
}

func opTAS(c *CPU) {
	mode, reg := c.irEA()

	dst := c.resolveEA(mode, reg, Byte)
	val := dst.read(c, Byte)

	// Test like TST.B, then set the lock bit. On real hardware the
	// read and write are one indivisible bus cycle; at this layer they
	// are two accesses back to back.
	c.aluTest(Byte, val)
	dst.write(c, Byte, val|0x80)

	c.cycles += 4
	if mode >= 2 {
		c.cycles += 10
	}
}

// --- Shifts and rotates ---

// Register form: 1110 CCC D SS i TT RRR
//
//	CCC = count or count register, D = direction (0=right, 1=left)
//	SS = size, i = 0:immediate count 1:register count
//	TT = type (00=AS, 01=LS, 10=ROX, 11=RO)
//
// Memory form: 1110 0TT D 11 eee eee — always word, always by one.

func registerShifts() {
	for cnt := uint16(0); cnt < 8; cnt++ {
		for dir := uint16(0); dir < 2; dir++ {
			for szBits := uint16(0); szBits < 3; szBits++ {
				for ir := uint16(0); ir < 2; ir++ {
					for typ := uint16(0); typ < 4; typ++ {
						for dreg := uint16(0); dreg < 8; dreg++ {
							install(0xE000|cnt<<9|dir<<8|szBits<<6|ir<<5|typ<<3|dreg, opShiftReg)
						}
					}
				}
			}
		}
	}

	for dir := uint16(0); dir < 2; dir++ {
		for typ := uint16(0); typ < 4; typ++ {
			for mode := uint16(2); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 1 {
						continue
					}
					install(0xE0C0|typ<<9|dir<<8|mode<<3|reg, opShiftMem)
				}
			}
		}
	}
}

// applyShift routes one shift/rotate to its ALU primitive by type and
// direction bits.
func (c *CPU) applyShift(typ, dir uint16, sz Size, val, count uint32) uint32 {
	switch {
	case typ == 0 && dir == 1:
		return c.aluAsl(sz, val, count)
	case typ == 0:
		return c.aluAsr(sz, val, count)
	case typ == 1 && dir == 1:
		return c.aluLsl(sz, val, count)
	case typ == 1:
		return c.aluLsr(sz, val, count)
	case typ == 2 && dir == 1:
		return c.aluRoxl(sz, val, count)
	case typ == 2:
		return c.aluRoxr(sz, val, count)
	case dir == 1:
		return c.aluRol(sz, val, count)
	default:
		return c.aluRor(sz, val, count)
	}
}

func opShiftReg(c *CPU) {
	sz := c.irSize()
	dir := (c.ir >> 8) & 1
	typ := (c.ir >> 3) & 3
	dreg := c.irReg0()

	// Count field: an immediate 1..8 (0 encodes 8), or a register
	// whose value is taken modulo 64.
	count := uint32(c.ir>>9) & 7
	if c.ir&0x20 != 0 {
		count = c.reg.D[count] & 63
	} else if count == 0 {
		count = 8
	}

	c.setD(dreg, sz, c.applyShift(typ, dir, sz, c.reg.D[dreg], count))

	c.cycles += 6 + 2*uint64(count)
	if sz == Long {
		c.cycles += 2
	}
}

func opShiftMem(c *CPU) {
	mode, reg := c.irEA()
	dir := (c.ir >> 8) & 1
	typ := (c.ir >> 9) & 3

	dst := c.resolveEA(mode, reg, Word)
	dst.write(c, Word, c.applyShift(typ, dir, Word, dst.read(c, Word), 1))

	c.cycles += 8
}
