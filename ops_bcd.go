package m68k

// Packed-BCD group. ABCD and SBCD share one encoding shape: register
// pair or the memory form -(Ay),-(Ax), byte only, X as carry/borrow in.
// Encoding: 1100/1000 XXX 10000 M YYY

func registerABCD() {
	registerBCDPair(0xC100, opABCDreg, opABCDmem)
}

func registerSBCD() {
	registerBCDPair(0x8100, opSBCDreg, opSBCDmem)
}

func registerBCDPair(base uint16, regForm, memForm opFunc) {
	for rx := uint16(0); rx < 8; rx++ {
		for ry := uint16(0); ry < 8; ry++ {
			install(base|rx<<9|ry, regForm)
			install(base|rx<<9|8|ry, memForm)
		}
	}
}

func opABCDreg(c *CPU) {
	rx, ry := c.irReg9(), c.irReg0()
	c.setD(rx, Byte, c.aluAbcd(c.reg.D[rx], c.reg.D[ry]))
	c.cycles += 6
}

func opABCDmem(c *CPU) {
	rx, ry := c.irReg9(), c.irReg0()

	src := c.resolveEA(4, uint8(ry), Byte).read(c, Byte)
	dst := c.resolveEA(4, uint8(rx), Byte)
	dst.write(c, Byte, c.aluAbcd(dst.read(c, Byte), src))

	c.cycles += 18
}

func opSBCDreg(c *CPU) {
	rx, ry := c.irReg9(), c.irReg0()
	c.setD(rx, Byte, c.aluSbcd(c.reg.D[rx], c.reg.D[ry]))
	c.cycles += 6
}

func opSBCDmem(c *CPU) {
	rx, ry := c.irReg9(), c.irReg0()

	src := c.resolveEA(4, uint8(ry), Byte).read(c, Byte)
	dst := c.resolveEA(4, uint8(rx), Byte)
	dst.write(c, Byte, c.aluSbcd(dst.read(c, Byte), src))

	c.cycles += 18
}

// --- NBCD ---

// Encoding: 0100 1000 00 eee eee
func registerNBCD() {
	for mode := uint16(0); mode < 8; mode++ {
		if mode == 1 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 1 {
				continue
			}
			install(0x4800|mode<<3|reg, opNBCD)
		}
	}
}

func opNBCD(c *CPU) {
	mode, reg := c.irEA()

	dst := c.resolveEA(mode, reg, Byte)
	// A result of decimal zero means no change; the destination is not
	// written back in that case.
	if res, changed := c.aluNbcd(dst.read(c, Byte)); changed {
		dst.write(c, Byte, res)
	}

	if mode == 0 {
		c.cycles += 6
	} else {
		c.cycles += 8 + eaFetchCycles(mode, reg, Byte)
	}
}
