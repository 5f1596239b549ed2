package m68k

// Integer arithmetic group: ADD/SUB families, compares, multiply,
// divide, negate, clear, sign-extend, and CHK. Handlers decode operand
// locations, call the ALU primitives for results and flags, and charge
// PRM timings.

// charge adds the register-vs-memory timing split shared by the
// single-operand and immediate ALU forms: a flat cost on Dn, a base
// plus the EA fetch on memory.
func (c *CPU) charge(mode, reg uint8, sz Size, dnShort, dnLong, memShort, memLong uint64) {
	if mode == 0 {
		if sz == Long {
			c.cycles += dnLong
		} else {
			c.cycles += dnShort
		}
		return
	}
	base := memShort
	if sz == Long {
		base = memLong
	}
	c.cycles += base + eaFetchCycles(mode, reg, sz)
}

// --- ADD / SUB ---

// registerADD expands ADD <ea>,Dn and ADD Dn,<ea>.
// Encoding: 1101 DDD O SS eee eee
//
//	O=0: <ea>+Dn->Dn  O=1: Dn+<ea>-><ea>
func registerADD() {
	registerDyadic(0xD000, opADDtoReg, opADDtoEA)
}

// registerSUB expands SUB <ea>,Dn and SUB Dn,<ea>.
// Encoding: 1001 DDD O SS eee eee
func registerSUB() {
	registerDyadic(0x9000, opSUBtoReg, opSUBtoEA)
}

// registerDyadic expands the shared ADD/SUB encoding shape: direction 0
// accepts every source EA (An only at word/long width), direction 1 is
// restricted to memory-alterable destinations.
func registerDyadic(base uint16, toReg, toEA opFunc) {
	for dn := uint16(0); dn < 8; dn++ {
		for szBits := uint16(0); szBits < 3; szBits++ {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 4 {
						continue
					}
					if mode == 1 && szBits == 0 {
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

// chargeDyadicToReg is the <ea>,Dn timing: 4 for byte/word, 6 for long
// when the operand comes from memory (8 from a register or immediate).
func (c *CPU) chargeDyadicToReg(mode, reg uint8, sz Size) {
	fetch := eaFetchCycles(mode, reg, sz)
	switch {
	case sz != Long:
		c.cycles += 4 + fetch
	case mode >= 2 && !(mode == 7 && reg == 4):
		c.cycles += 6 + fetch
	default:
		c.cycles += 8 + fetch
	}
}

func opADDtoReg(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, sz).read(c, sz)
	c.setD(dn, sz, c.aluAdd(sz, c.reg.D[dn], src))

	c.chargeDyadicToReg(mode, reg, sz)
}

func opADDtoEA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluAdd(sz, dst.read(c, sz), c.reg.D[dn]))

	if sz == Long {
		c.cycles += 12 + eaFetchCycles(mode, reg, sz)
	} else {
		c.cycles += 8 + eaFetchCycles(mode, reg, sz)
	}
}

func opSUBtoReg(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, sz).read(c, sz)
	c.setD(dn, sz, c.aluSub(sz, c.reg.D[dn], src))

	c.chargeDyadicToReg(mode, reg, sz)
}

func opSUBtoEA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluSub(sz, dst.read(c, sz), c.reg.D[dn]))

	if sz == Long {
		c.cycles += 12 + eaFetchCycles(mode, reg, sz)
	} else {
		c.cycles += 8 + eaFetchCycles(mode, reg, sz)
	}
}

// --- ADDA / SUBA ---

// Encoding: 1101/1001 AAA S11 eee eee, S=0 word, S=1 long. The source
// is sign-extended at word width and condition codes are untouched.

func registerADDA() {
	registerAddrOp(0xD000, opADDA)
}

func registerSUBA() {
	registerAddrOp(0x9000, opSUBA)
}

func registerAddrOp(base uint16, fn opFunc) {
	for an := uint16(0); an < 8; an++ {
		for _, opmode := range []uint16{3, 7} {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 4 {
						continue
					}
					install(base|an<<9|opmode<<6|mode<<3|reg, fn)
				}
			}
		}
	}
}

// addaSize decodes the word/long opmode bit of the address-destination
// arithmetic forms.
func (c *CPU) addaSize() Size {
	if (c.ir>>6)&7 == 7 {
		return Long
	}
	return Word
}

func opADDA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.addaSize()
	an := c.irReg9()

	c.reg.A[an] += sz.ext(c.resolveEA(mode, reg, sz).read(c, sz))

	fetch := eaFetchCycles(mode, reg, sz)
	if sz == Long && mode >= 2 && !(mode == 7 && reg == 4) {
		c.cycles += 6 + fetch
	} else {
		c.cycles += 8 + fetch
	}
}

func opSUBA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.addaSize()
	an := c.irReg9()

	c.reg.A[an] -= sz.ext(c.resolveEA(mode, reg, sz).read(c, sz))

	fetch := eaFetchCycles(mode, reg, sz)
	if sz == Long && mode >= 2 && !(mode == 7 && reg == 4) {
		c.cycles += 6 + fetch
	} else {
		c.cycles += 8 + fetch
	}
}

// --- ADDI / SUBI ---

func registerADDI() {
	registerImmOp(0x0600, opADDI)
}

func registerSUBI() {
	registerImmOp(0x0400, opSUBI)
}

// registerImmOp expands an immediate-to-<ea> form over the data
// alterable modes.
func registerImmOp(base uint16, fn opFunc) {
	for szBits := uint16(0); szBits < 3; szBits++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == 1 {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == 7 && reg > 1 {
					continue
				}
				install(base|szBits<<6|mode<<3|reg, fn)
			}
		}
	}
}

func opADDI(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	imm := c.fetchImm(sz)
	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluAdd(sz, dst.read(c, sz), imm))

	c.charge(mode, reg, sz, 8, 16, 12, 20)
}

func opSUBI(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	imm := c.fetchImm(sz)
	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluSub(sz, dst.read(c, sz), imm))

	c.charge(mode, reg, sz, 8, 16, 12, 20)
}

// --- ADDQ / SUBQ ---

// Encoding: 0101 QQQ D SS eee eee, Q=quick data (0 means 8), D=0 add,
// D=1 subtract. An destinations are full-width and leave the flags
// alone.

func registerADDQ() {
	registerQuickOp(0x5000, opADDQ)
}

func registerSUBQ() {
	registerQuickOp(0x5100, opSUBQ)
}

func registerQuickOp(base uint16, fn opFunc) {
	for data := uint16(0); data < 8; data++ {
		for szBits := uint16(0); szBits < 3; szBits++ {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 1 {
						continue
					}
					if mode == 1 && szBits == 0 {
						continue
					}
					install(base|data<<9|szBits<<6|mode<<3|reg, fn)
				}
			}
		}
	}
}

// quickData decodes the 3-bit quick immediate, with 0 encoding 8.
func (c *CPU) quickData() uint32 {
	if q := uint32(c.ir>>9) & 7; q != 0 {
		return q
	}
	return 8
}

func opADDQ(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	data := c.quickData()

	if mode == 1 {
		c.reg.A[reg] += data
		c.cycles += 8
		return
	}

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluAdd(sz, dst.read(c, sz), data))

	c.charge(mode, reg, sz, 4, 8, 8, 12)
}

func opSUBQ(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	data := c.quickData()

	if mode == 1 {
		c.reg.A[reg] -= data
		c.cycles += 8
		return
	}

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluSub(sz, dst.read(c, sz), data))

	c.charge(mode, reg, sz, 4, 8, 8, 12)
}

// --- ADDX / SUBX ---

// Encoding: 1101/1001 XXX 1 SS 00 M YYY, M=0 register pair, M=1 the
// memory form -(Ay),-(Ax).

func registerADDX() {
	registerExtendedOp(0xD100, opADDXreg, opADDXmem)
}

func registerSUBX() {
	registerExtendedOp(0x9100, opSUBXreg, opSUBXmem)
}

func registerExtendedOp(base uint16, regForm, memForm opFunc) {
	for rx := uint16(0); rx < 8; rx++ {
		for ry := uint16(0); ry < 8; ry++ {
			for szBits := uint16(0); szBits < 3; szBits++ {
				install(base|rx<<9|szBits<<6|ry, regForm)
				install(base|rx<<9|szBits<<6|8|ry, memForm)
			}
		}
	}
}

func opADDXreg(c *CPU) {
	sz := c.irSize()
	rx, ry := c.irReg9(), c.irReg0()

	c.setD(rx, sz, c.aluAddx(sz, c.reg.D[rx], c.reg.D[ry]))

	c.cycles += 4
	if sz == Long {
		c.cycles += 4
	}
}

func opADDXmem(c *CPU) {
	sz := c.irSize()
	rx, ry := c.irReg9(), c.irReg0()

	src := c.resolveEA(4, uint8(ry), sz).read(c, sz)
	dst := c.resolveEA(4, uint8(rx), sz)
	dst.write(c, sz, c.aluAddx(sz, dst.read(c, sz), src))

	if sz == Long {
		c.cycles += 30
	} else {
		c.cycles += 18
	}
}

func opSUBXreg(c *CPU) {
	sz := c.irSize()
	rx, ry := c.irReg9(), c.irReg0()

	c.setD(rx, sz, c.aluSubx(sz, c.reg.D[rx], c.reg.D[ry]))

	c.cycles += 4
	if sz == Long {
		c.cycles += 4
	}
}

func opSUBXmem(c *CPU) {
	sz := c.irSize()
	rx, ry := c.irReg9(), c.irReg0()

	src := c.resolveEA(4, uint8(ry), sz).read(c, sz)
	dst := c.resolveEA(4, uint8(rx), sz)
	dst.write(c, sz, c.aluSubx(sz, dst.read(c, sz), src))

	if sz == Long {
		c.cycles += 30
	} else {
		c.cycles += 18
	}
}

// --- CMP / CMPA / CMPI / CMPM ---

func registerCMP() {
	for dn := uint16(0); dn < 8; dn++ {
		for szBits := uint16(0); szBits < 3; szBits++ {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 && reg > 4 {
						continue
					}
					if mode == 1 && szBits == 0 {
						continue
					}
					install(0xB000|dn<<9|szBits<<6|mode<<3|reg, opCMP)
				}
			}
		}
	}
}

func opCMP(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, sz).read(c, sz)
	c.aluCmp(sz, c.reg.D[dn], src)

	if sz == Long {
		c.cycles += 6 + eaFetchCycles(mode, reg, sz)
	} else {
		c.cycles += 4 + eaFetchCycles(mode, reg, sz)
	}
}

func registerCMPA() {
	registerAddrOp(0xB000, opCMPA)
}

func opCMPA(c *CPU) {
	mode, reg := c.irEA()
	sz := c.addaSize()
	an := c.irReg9()

	// The comparison itself is always 32-bit against the full An.
	src := sz.ext(c.resolveEA(mode, reg, sz).read(c, sz))
	c.aluCmp(Long, c.reg.A[an], src)

	c.cycles += 6 + eaFetchCycles(mode, reg, sz)
}

func registerCMPI() {
	registerImmOp(0x0C00, opCMPI)
}

func opCMPI(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	imm := c.fetchImm(sz)
	dst := c.resolveEA(mode, reg, sz)
	c.aluCmp(sz, dst.read(c, sz), imm)

	c.charge(mode, reg, sz, 8, 14, 8, 12)
}

func registerCMPM() {
	for ax := uint16(0); ax < 8; ax++ {
		for ay := uint16(0); ay < 8; ay++ {
			for szBits := uint16(0); szBits < 3; szBits++ {
				install(0xB108|ax<<9|szBits<<6|ay, opCMPM)
			}
		}
	}
}

func opCMPM(c *CPU) {
	sz := c.irSize()
	ax, ay := c.irReg9(), c.irReg0()

	src := c.resolveEA(3, uint8(ay), sz).read(c, sz) // (Ay)+
	dst := c.resolveEA(3, uint8(ax), sz).read(c, sz) // (Ax)+
	c.aluCmp(sz, dst, src)

	if sz == Long {
		c.cycles += 20
	} else {
		c.cycles += 12
	}
}

// --- MULU / MULS ---

func registerMULU() {
	registerWordOp(0xC0C0, opMULU)
}

func registerMULS() {
	registerWordOp(0xC1C0, opMULS)
}

// registerWordOp expands the word-source Dn-destination shape shared
// by multiply, divide, and CHK.
func registerWordOp(base uint16, fn opFunc) {
	for dn := uint16(0); dn < 8; dn++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == 1 {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == 7 && reg > 4 {
					continue
				}
				install(base|dn<<9|mode<<3|reg, fn)
			}
		}
	}
}

func opMULU(c *CPU) {
	mode, reg := c.irEA()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, Word).read(c, Word)
	c.reg.D[dn] = c.aluMulu(c.reg.D[dn], src)

	c.cycles += 70 + eaFetchCycles(mode, reg, Word) // base varies 38-70, using worst-case
}

func opMULS(c *CPU) {
	mode, reg := c.irEA()
	dn := c.irReg9()

	src := c.resolveEA(mode, reg, Word).read(c, Word)
	c.reg.D[dn] = c.aluMuls(c.reg.D[dn], src)

	c.cycles += 70 + eaFetchCycles(mode, reg, Word) // base varies 38-70, using worst-case
}

// --- DIVU / DIVS ---

func registerDIVU() {
	registerWordOp(0x80C0, opDIVU)
}

func registerDIVS() {
	registerWordOp(0x81C0, opDIVS)
}

func opDIVU(c *CPU) {
	mode, reg := c.irEA()
	dn := c.irReg9()

	divisor := c.resolveEA(mode, reg, Word).read(c, Word)
	if divisor == 0 {
		// The trap is charged the EA-fetch supplement so the exception
		// machinery doesn't need addressing-mode knowledge.
		c.cycles += eaFetchCycles(mode, reg, Word)
		c.raiseTrap(vecDivideByZero)
		return
	}

	if packed, ok := c.aluDivu(c.reg.D[dn], divisor); ok {
		c.reg.D[dn] = packed
	}

	c.cycles += 140 + eaFetchCycles(mode, reg, Word) // base varies 76-140, using worst-case
}

func opDIVS(c *CPU) {
	mode, reg := c.irEA()
	dn := c.irReg9()

	divisor := int32(int16(c.resolveEA(mode, reg, Word).read(c, Word)))
	if divisor == 0 {
		c.cycles += eaFetchCycles(mode, reg, Word)
		c.raiseTrap(vecDivideByZero)
		return
	}

	if packed, ok := c.aluDivs(c.reg.D[dn], divisor); ok {
		c.reg.D[dn] = packed
	}

	c.cycles += 158 + eaFetchCycles(mode, reg, Word) // base varies 120-158, using worst-case
}

// --- NEG / NEGX / CLR ---

func registerNEG() {
	registerMonadic(0x4400, opNEG)
}

func registerNEGX() {
	registerMonadic(0x4000, opNEGX)
}

func registerCLR() {
	registerMonadic(0x4200, opCLR)
}

// registerMonadic expands a single-operand form over the data
// alterable modes at all three widths.
func registerMonadic(base uint16, fn opFunc) {
	for szBits := uint16(0); szBits < 3; szBits++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == 1 {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == 7 && reg > 1 {
					continue
				}
				install(base|szBits<<6|mode<<3|reg, fn)
			}
		}
	}
}

func opNEG(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluNeg(sz, dst.read(c, sz)))

	c.charge(mode, reg, sz, 4, 6, 8, 12)
}

func opNEGX(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, c.aluNegx(sz, dst.read(c, sz)))

	c.charge(mode, reg, sz, 4, 6, 8, 12)
}

func opCLR(c *CPU) {
	mode, reg := c.irEA()
	sz := c.irSize()

	c.resolveEA(mode, reg, sz).write(c, sz, 0)

	// CLR always sets Z and clears NVC; X survives.
	c.reg.SR &^= flagN | flagV | flagC
	c.reg.SR |= flagZ

	c.charge(mode, reg, sz, 4, 6, 8, 12)
}

// --- EXT ---

func registerEXT() {
	for dn := uint16(0); dn < 8; dn++ {
		install(0x4880|dn, opEXTW) // byte → word, opmode 010
		install(0x48C0|dn, opEXTL) // word → long, opmode 011
	}
}

func opEXTW(c *CPU) {
	dn := c.irReg0()
	val := Byte.ext(c.reg.D[dn]) & 0xFFFF
	c.setD(dn, Word, val)
	c.aluTest(Word, val)
	c.cycles += 4
}

func opEXTL(c *CPU) {
	dn := c.irReg0()
	val := Word.ext(c.reg.D[dn])
	c.reg.D[dn] = val
	c.aluTest(Long, val)
	c.cycles += 4
}

// --- CHK ---

// registerCHK expands CHK <ea>,Dn (word only on the 68000).
// Encoding: 0100 DDD 110 eee eee
func registerCHK() {
	registerWordOp(0x4180, opCHK)
}

func opCHK(c *CPU) {
	mode, reg := c.irEA()
	dn := c.irReg9()

	bound := int16(c.resolveEA(mode, reg, Word).read(c, Word))
	val := int16(c.reg.D[dn] & 0xFFFF)

	if val >= 0 && val <= bound {
		c.cycles += 10 + eaFetchCycles(mode, reg, Word)
		return
	}

	// Out of bounds: N records which side was violated, Z/V/C are
	// cleared, and the bound-check trap fires with the EA supplement
	// already charged.
	c.reg.SR &^= flagN | flagZ | flagV | flagC
	c.setFlag(flagN, val < 0)
	c.cycles += eaFetchCycles(mode, reg, Word)
	c.raiseTrap(vecCHK)
}
