package m68k

// System-control group: NOP, STOP, RESET, the trap instructions, stack
// frame link/unlink, and the status-register move/logic forms.

// requireSupervisor raises a privilege violation and returns false when
// the CPU is in user mode.
func (c *CPU) requireSupervisor() bool {
	if c.supervisor() {
		return true
	}
	c.raisePrivilegeViolation()
	return false
}

// --- NOP ---

func registerNOP() {
	install(0x4E71, opNOP)
}

func opNOP(c *CPU) {
	c.cycles += 4
}

// --- STOP ---

func registerSTOP() {
	install(0x4E72, opSTOP)
}

func opSTOP(c *CPU) {
	if !c.requireSupervisor() {
		return
	}

	c.setSR(c.fetchPC())
	c.stopped = true
	// A stopped core does not advance its instruction stream. Rewind
	// PC to the instruction start so the frame pushed by the waking
	// interrupt carries the correct resume address.
	c.reg.PC = c.prevPC
	c.cycles += 4
}

// --- RESET ---

func registerRESET() {
	install(0x4E70, opRESET)
}

func opRESET(c *CPU) {
	if !c.requireSupervisor() {
		return
	}

	// Pulses the reset line to external devices; the CPU itself is
	// unaffected.
	c.bus.Reset()
	c.cycles += 132
}

// --- TRAP ---

// Encoding: 0100 1110 0100 VVVV, vectors 32-47.
func registerTRAP() {
	for v := uint16(0); v < 16; v++ {
		install(0x4E40|v, opTRAP)
	}
}

func opTRAP(c *CPU) {
	c.raiseTrap(vecTrap0 + int(c.ir&0xF))
}

// --- TRAPV ---

func registerTRAPV() {
	install(0x4E76, opTRAPV)
}

func opTRAPV(c *CPU) {
	if c.flag(flagV) {
		c.raiseTrap(vecTRAPV)
		return
	}
	c.cycles += 4
}

// --- LINK / UNLK ---

func registerLINK() {
	for an := uint16(0); an < 8; an++ {
		install(0x4E50|an, opLINK) // 0100 1110 0101 0AAA
	}
}

func opLINK(c *CPU) {
	an := c.irReg0()
	disp := Word.ext(uint32(c.fetchPC()))

	c.pushLong(c.reg.A[an])
	c.reg.A[an] = c.reg.A[7]
	c.reg.A[7] += disp

	c.cycles += 16
}

func registerUNLK() {
	for an := uint16(0); an < 8; an++ {
		install(0x4E58|an, opUNLK) // 0100 1110 0101 1AAA
	}
}

func opUNLK(c *CPU) {
	an := c.irReg0()
	c.reg.A[7] = c.reg.A[an]
	c.reg.A[an] = c.popLong()

	c.cycles += 12
}

// --- MOVE to/from SR, MOVE to CCR, MOVE USP ---

func registerMoveToFromSR() {
	// MOVE SR,<ea>: 0100 0000 11 eee eee. Unprivileged on the 68000
	// (the 68010 made it privileged).
	for mode := uint16(0); mode < 8; mode++ {
		if mode == 1 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 1 {
				continue
			}
			install(0x40C0|mode<<3|reg, opMOVEfromSR)
		}
	}

	// MOVE <ea>,CCR: 0100 0100 11 eee eee
	// MOVE <ea>,SR:  0100 0110 11 eee eee (privileged)
	for mode := uint16(0); mode < 8; mode++ {
		if mode == 1 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 4 {
				continue
			}
			install(0x44C0|mode<<3|reg, opMOVEtoCCR)
			install(0x46C0|mode<<3|reg, opMOVEtoSR)
		}
	}

	// MOVE An,USP / MOVE USP,An: 0100 1110 0110 DAAA (privileged)
	for an := uint16(0); an < 8; an++ {
		install(0x4E60|an, opMOVEtoUSP)
		install(0x4E68|an, opMOVEfromUSP)
	}
}

func opMOVEfromSR(c *CPU) {
	mode, reg := c.irEA()

	c.resolveEA(mode, reg, Word).write(c, Word, uint32(c.reg.SR))

	if mode == 0 {
		c.cycles += 6
	} else {
		c.cycles += 8 + eaFetchCycles(mode, reg, Word)
	}
}

func opMOVEtoCCR(c *CPU) {
	mode, reg := c.irEA()

	c.setCCR(uint8(c.resolveEA(mode, reg, Word).read(c, Word)))

	c.cycles += 12 + eaFetchCycles(mode, reg, Word)
}

func opMOVEtoSR(c *CPU) {
	if !c.requireSupervisor() {
		return
	}

	mode, reg := c.irEA()
	c.setSR(uint16(c.resolveEA(mode, reg, Word).read(c, Word)))

	c.cycles += 12 + eaFetchCycles(mode, reg, Word)
}

func opMOVEtoUSP(c *CPU) {
	if !c.requireSupervisor() {
		return
	}
	c.reg.USP = c.reg.A[c.irReg0()]
	c.cycles += 4
}

func opMOVEfromUSP(c *CPU) {
	if !c.requireSupervisor() {
		return
	}
	c.reg.A[c.irReg0()] = c.reg.USP
	c.cycles += 4
}

// --- ANDI/ORI/EORI to CCR and SR ---

// The to-CCR forms are unprivileged and touch only the low five bits;
// the to-SR forms are privileged full-width updates. All six live at
// the #imm destination slot their immediate families leave unclaimed.

func registerAndiOriEoriSRCCR() {
	install(0x023C, opANDItoCCR)
	install(0x027C, opANDItoSR)
	install(0x003C, opORItoCCR)
	install(0x007C, opORItoSR)
	install(0x0A3C, opEORItoCCR)
	install(0x0A7C, opEORItoSR)
}

func opANDItoCCR(c *CPU) {
	c.setCCR(uint8(c.reg.SR) & uint8(c.fetchPC()))
	c.cycles += 20
}

func opANDItoSR(c *CPU) {
	if !c.requireSupervisor() {
		return
	}
	c.setSR(c.reg.SR & c.fetchPC())
	c.cycles += 20
}

func opORItoCCR(c *CPU) {
	c.setCCR(uint8(c.reg.SR) | uint8(c.fetchPC()))
	c.cycles += 20
}

func opORItoSR(c *CPU) {
	if !c.requireSupervisor() {
		return
	}
	c.setSR(c.reg.SR | c.fetchPC())
	c.cycles += 20
}

func opEORItoCCR(c *CPU) {
	c.setCCR(uint8(c.reg.SR) ^ uint8(c.fetchPC()))
	c.cycles += 20
}

func opEORItoSR(c *CPU) {
	if !c.requireSupervisor() {
		return
	}
	c.setSR(c.reg.SR ^ c.fetchPC())
	c.cycles += 20
}
