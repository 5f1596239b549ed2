package m68k

// Operand location classes for a resolved effective address.
const (
	eaDataReg   = iota // Data register direct (Dn)
	eaAddrReg          // Address register direct (An)
	eaMemory           // All memory addressing modes
	eaImmediate        // Immediate (#imm)
)

// ea is a resolved operand: where it lives and, for memory operands,
// the address to read or write it at. Resolving an EA consumes any
// extension words and applies post-increment/pre-decrement side
// effects; reading and writing through it afterwards is side-effect
// free, which is what read-modify-write handlers rely on.
type ea struct {
	kind int
	reg  uint8  // register number, for the register-direct kinds
	addr uint32 // operand address, for eaMemory
	imm  uint32 // operand value, for eaImmediate
}

// read returns the operand value at this location.
func (e ea) read(c *CPU, sz Size) uint32 {
	switch e.kind {
	case eaDataReg:
		return c.reg.D[e.reg] & sz.Mask()
	case eaAddrReg:
		return c.reg.A[e.reg] & sz.Mask()
	case eaMemory:
		return c.readBus(sz, e.addr)
	default:
		return e.imm & sz.Mask()
	}
}

// write stores an operand value at this location. Data registers keep
// their bytes above the operand width; address registers always take
// the full 32 bits.
func (e ea) write(c *CPU, sz Size, val uint32) {
	switch e.kind {
	case eaDataReg:
		mask := sz.Mask()
		c.reg.D[e.reg] = c.reg.D[e.reg]&^mask | val&mask
	case eaAddrReg:
		c.reg.A[e.reg] = val
	case eaMemory:
		c.writeBus(sz, e.addr, val)
	}
}

// address returns the memory address (only meaningful for eaMemory;
// LEA/PEA/JMP/JSR only ever resolve control modes, which are all
// memory).
func (e ea) address() uint32 {
	return e.addr
}

// addrStep returns how far (An)+ and -(An) move the register: the
// operand size, except that byte accesses through A7 step by 2 so the
// stack pointer never goes odd.
func addrStep(reg uint8, sz Size) uint32 {
	if sz == Byte && reg == 7 {
		return 2
	}
	return uint32(sz)
}

// resolveEA decodes one effective-address field (mode bits 5-3,
// register bits 2-0) into an operand location, fetching extension
// words and applying address-register side effects as it goes.
func (c *CPU) resolveEA(mode, reg uint8, sz Size) ea {
	switch mode {
	case 0: // Dn
		return ea{kind: eaDataReg, reg: reg}

	case 1: // An
		return ea{kind: eaAddrReg, reg: reg}

	case 2: // (An)
		return ea{kind: eaMemory, addr: c.reg.A[reg]}

	case 3: // (An)+
		addr := c.reg.A[reg]
		c.reg.A[reg] += addrStep(reg, sz)
		return ea{kind: eaMemory, addr: addr}

	case 4: // -(An)
		c.reg.A[reg] -= addrStep(reg, sz)
		return ea{kind: eaMemory, addr: c.reg.A[reg]}

	case 5: // d16(An)
		disp := Word.ext(uint32(c.fetchPC()))
		return ea{kind: eaMemory, addr: c.reg.A[reg] + disp}

	case 6: // d8(An,Xn)
		return ea{kind: eaMemory, addr: c.indexedAddr(c.reg.A[reg])}

	case 7:
		switch reg {
		case 0: // abs.W
			return ea{kind: eaMemory, addr: Word.ext(uint32(c.fetchPC()))}

		case 1: // abs.L
			return ea{kind: eaMemory, addr: c.fetchPCLong()}

		case 2: // d16(PC)
			base := c.reg.PC // address of the extension word
			disp := Word.ext(uint32(c.fetchPC()))
			return ea{kind: eaMemory, addr: base + disp}

		case 3: // d8(PC,Xn)
			return ea{kind: eaMemory, addr: c.indexedAddr(c.reg.PC)}

		case 4: // #imm
			return ea{kind: eaImmediate, imm: c.fetchImm(sz)}
		}
	}

	// Remaining mode-7 register values are unassigned encodings.
	c.raiseIllegalInstruction()
	return ea{}
}

// indexedAddr fetches a brief extension word and computes
// base + index + d8. Word format: D/A, index register, W/L, three
// zero bits, signed 8-bit displacement. A word-sized index uses the
// sign-extended low half of the index register.
func (c *CPU) indexedAddr(base uint32) uint32 {
	ext := uint32(c.fetchPC())

	idx := c.reg.D[(ext>>12)&7]
	if ext&0x8000 != 0 {
		idx = c.reg.A[(ext>>12)&7]
	}
	if ext&0x0800 == 0 {
		idx = Word.ext(idx)
	}

	return base + idx + Byte.ext(ext)
}
