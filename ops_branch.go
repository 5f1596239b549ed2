package m68k

// Flow-control group: conditional and unconditional branches, the DBcc
// loop primitive, jumps, subroutine calls, returns, and Scc.

// branchDisp reads the branch displacement: the signed low byte of the
// opcode, or a signed extension word when that byte is zero. The
// returned target is relative to the PC after the opcode word; wide
// reports whether the extension-word form was used.
func (c *CPU) branchDisp() (target uint32, wide bool) {
	base := c.reg.PC
	disp := Byte.ext(uint32(c.ir))
	if disp == 0 {
		disp = Word.ext(uint32(c.fetchPC()))
		wide = true
	}
	return base + disp, wide
}

// --- Bcc ---

// Encoding: 0110 CCCC dddddddd. Conditions 0 and 1 encode BRA and BSR.
func registerBcc() {
	for cond := uint16(2); cond < 16; cond++ {
		for disp := uint16(0); disp < 256; disp++ {
			install(0x6000|cond<<8|disp, opBcc)
		}
	}
}

func opBcc(c *CPU) {
	cond := (c.ir >> 8) & 0xF
	target, wide := c.branchDisp()

	if c.testCondition(cond) {
		c.reg.PC = target
		c.cycles += 10
		return
	}
	// Not taken: the byte form is cheaper than the word form.
	if wide {
		c.cycles += 12
	} else {
		c.cycles += 8
	}
}

// --- BRA / BSR ---

func registerBRA() {
	for disp := uint16(0); disp < 256; disp++ {
		install(0x6000|disp, opBRA)
	}
}

func opBRA(c *CPU) {
	target, _ := c.branchDisp()
	c.reg.PC = target
	c.cycles += 10
}

func registerBSR() {
	for disp := uint16(0); disp < 256; disp++ {
		install(0x6100|disp, opBSR)
	}
}

func opBSR(c *CPU) {
	target, _ := c.branchDisp()
	c.pushLong(c.reg.PC) // return address: past any extension word
	c.reg.PC = target
	c.cycles += 18
}

// --- DBcc ---

// Encoding: 0101 CCCC 11001 DDD. While the condition is false, the low
// word of Dn counts down and the loop branches until the count expires
// at -1.
func registerDBcc() {
	for cond := uint16(0); cond < 16; cond++ {
		for dn := uint16(0); dn < 8; dn++ {
			install(0x50C8|cond<<8|dn, opDBcc)
		}
	}
}

func opDBcc(c *CPU) {
	cond := (c.ir >> 8) & 0xF
	dn := c.irReg0()

	base := c.reg.PC // displacement is relative to the extension word
	disp := Word.ext(uint32(c.fetchPC()))

	if c.testCondition(cond) {
		// Loop terminated by the condition: no decrement.
		c.cycles += 12
		return
	}

	count := uint16(c.reg.D[dn]) - 1
	c.setD(dn, Word, uint32(count))

	if count == 0xFFFF {
		// Count expired: fall through.
		c.cycles += 14
		return
	}
	c.reg.PC = base + disp
	c.cycles += 10
}

// --- JMP / JSR ---

// Both take only the control addressing modes: (An), d16(An),
// d8(An,Xn), abs.W, abs.L, d16(PC), d8(PC,Xn).

func registerJMP() {
	registerControlEA(0x4EC0, opJMP)
}

func registerJSR() {
	registerControlEA(0x4E80, opJSR)
}

func registerControlEA(base uint16, fn opFunc) {
	for mode := uint16(2); mode < 8; mode++ {
		if mode == 3 || mode == 4 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 3 {
				continue
			}
			install(base|mode<<3|reg, fn)
		}
	}
}

func opJMP(c *CPU) {
	mode, reg := c.irEA()
	c.reg.PC = c.resolveEA(mode, reg, Word).address()
	c.cycles += 8
}

func opJSR(c *CPU) {
	mode, reg := c.irEA()
	target := c.resolveEA(mode, reg, Word).address()
	c.pushLong(c.reg.PC) // PC is already past the EA extension words
	c.reg.PC = target
	c.cycles += 16
}

// --- RTS / RTE / RTR ---

func registerRTS() {
	install(0x4E75, opRTS)
}

func opRTS(c *CPU) {
	c.reg.PC = c.popLong()
	c.cycles += 16
}

func registerRTE() {
	install(0x4E73, opRTE)
}

func opRTE(c *CPU) {
	if !c.supervisor() {
		c.raisePrivilegeViolation()
		return
	}

	sr := c.popWord()
	c.reg.PC = c.popLong()
	c.setSR(sr)

	c.cycles += 20
}

func registerRTR() {
	install(0x4E77, opRTR)
}

func opRTR(c *CPU) {
	c.setCCR(uint8(c.popWord()))
	c.reg.PC = c.popLong()
	c.cycles += 20
}

// --- Scc ---

// Encoding: 0101 CCCC 11 eee eee. Writes 0xFF or 0x00 by condition.
func registerScc() {
	for cond := uint16(0); cond < 16; cond++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == 1 {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == 7 && reg > 1 {
					continue
				}
				install(0x50C0|cond<<8|mode<<3|reg, opScc)
			}
		}
	}
}

func opScc(c *CPU) {
	cond := (c.ir >> 8) & 0xF
	mode, reg := c.irEA()

	dst := c.resolveEA(mode, reg, Byte)
	if c.testCondition(cond) {
		dst.write(c, Byte, 0xFF)
		c.cycles += 6
	} else {
		dst.write(c, Byte, 0x00)
		c.cycles += 4
	}
	if mode >= 2 {
		c.cycles += 4
	}
}
