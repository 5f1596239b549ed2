package m68k

import "math/bits"

// Data-movement group: the MOVE family, address loads, multi-register
// transfers, register exchange, and the peripheral byte-lane MOVEP.

// moveSize decodes MOVE's nonstandard size field in bits 13-12:
// 01=byte, 11=word, 10=long.
var moveSize = [4]Size{0, Byte, Long, Word}

// --- MOVE ---

// registerMOVE expands all MOVE.B/W/L opcodes.
// Encoding: 00SS DDDd ddss ssss — destination register/mode in bits
// 11-6 (reversed order), source mode/register in bits 5-0.
func registerMOVE() {
	for _, szBits := range []uint16{0x1000, 0x2000, 0x3000} {
		for dstMode := uint16(0); dstMode < 8; dstMode++ {
			// An destinations are MOVEA; PC-relative and immediate
			// destinations don't exist.
			if dstMode == 1 {
				continue
			}
			for dstReg := uint16(0); dstReg < 8; dstReg++ {
				if dstMode == 7 && dstReg > 1 {
					continue
				}
				for srcMode := uint16(0); srcMode < 8; srcMode++ {
					// An direct source only valid for Word/Long
					if srcMode == 1 && szBits == 0x1000 {
						continue
					}
					for srcReg := uint16(0); srcReg < 8; srcReg++ {
						if srcMode == 7 && srcReg > 4 {
							continue
						}
						install(szBits|dstReg<<9|dstMode<<6|srcMode<<3|srcReg, opMOVE)
					}
				}
			}
		}
	}
}

func opMOVE(c *CPU) {
	sz := moveSize[(c.ir>>12)&3]
	srcMode, srcReg := c.irEA()
	dstMode := uint8(c.ir>>6) & 7
	dstReg := uint8(c.ir>>9) & 7

	val := c.resolveEA(srcMode, srcReg, sz).read(c, sz)
	c.resolveEA(dstMode, dstReg, sz).write(c, sz, val)
	c.aluTest(sz, val)

	c.cycles += 4 + eaFetchCycles(srcMode, srcReg, sz) + eaWriteCycles(dstMode, dstReg, sz)
}

// --- MOVEA ---

// registerMOVEA expands MOVEA.W/L (destination mode 001 = An).
// A word source sign-extends; condition codes are untouched.
func registerMOVEA() {
	for _, szBits := range []uint16{0x2000, 0x3000} {
		for an := uint16(0); an < 8; an++ {
			for srcMode := uint16(0); srcMode < 8; srcMode++ {
				for srcReg := uint16(0); srcReg < 8; srcReg++ {
					if srcMode == 7 && srcReg > 4 {
						continue
					}
					install(szBits|an<<9|1<<6|srcMode<<3|srcReg, opMOVEA)
				}
			}
		}
	}
}

func opMOVEA(c *CPU) {
	sz := moveSize[(c.ir>>12)&3]
	srcMode, srcReg := c.irEA()
	an := c.irReg9()

	c.reg.A[an] = sz.ext(c.resolveEA(srcMode, srcReg, sz).read(c, sz))

	c.cycles += 4 + eaFetchCycles(srcMode, srcReg, sz)
}

// --- MOVEQ ---

// Encoding: 0111 DDD0 dddddddd, an 8-bit signed immediate into the
// full 32 bits of Dn.
func registerMOVEQ() {
	for dn := uint16(0); dn < 8; dn++ {
		for data := uint16(0); data < 256; data++ {
			install(0x7000|dn<<9|data, opMOVEQ)
		}
	}
}

func opMOVEQ(c *CPU) {
	dn := c.irReg9()
	c.reg.D[dn] = Byte.ext(uint32(c.ir))
	c.aluTest(Long, c.reg.D[dn])
	c.cycles += 4
}

// --- LEA / PEA ---

// Both resolve a control-mode EA; LEA drops the address into An, PEA
// pushes it.

func registerLEA() {
	for an := uint16(0); an < 8; an++ {
		for mode := uint16(2); mode < 8; mode++ {
			if mode == 3 || mode == 4 {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == 7 && reg > 3 {
					continue
				}
				install(0x41C0|an<<9|mode<<3|reg, opLEA)
			}
		}
	}
}

// controlEACycles is the LEA address-calculation timing (PRM Table
// 8-2); PEA charges 8 more.
func controlEACycles(mode, reg uint8) uint64 {
	switch mode {
	case 2:
		return 4
	case 5:
		return 8
	case 6:
		return 12
	case 7:
		switch reg {
		case 0, 2: // abs.W, d16(PC)
			return 8
		case 1, 3: // abs.L, d8(PC,Xn)
			return 12
		}
	}
	return 0
}

func opLEA(c *CPU) {
	mode, reg := c.irEA()
	an := c.irReg9()

	c.reg.A[an] = c.resolveEA(mode, reg, Long).address()

	c.cycles += controlEACycles(mode, reg)
}

func registerPEA() {
	for mode := uint16(2); mode < 8; mode++ {
		if mode == 3 || mode == 4 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 3 {
				continue
			}
			install(0x4840|mode<<3|reg, opPEA)
		}
	}
}

func opPEA(c *CPU) {
	mode, reg := c.irEA()

	c.pushLong(c.resolveEA(mode, reg, Long).address())

	c.cycles += 8 + controlEACycles(mode, reg)
}

// --- MOVEM ---

// Encoding: 0100 1D00 1S eee eee, D=direction (0 reg→mem, 1 mem→reg),
// S=size (0 word, 1 long). The extension word is the register list;
// for -(An) the list is bit-reversed, and stores walk A7 down to D0.
func registerMOVEM() {
	for dir := uint16(0); dir < 2; dir++ {
		for szBit := uint16(0); szBit < 2; szBit++ {
			for mode := uint16(2); mode < 8; mode++ {
				if dir == 0 && mode == 3 {
					continue // (An)+ store would chase its own update
				}
				if dir == 1 && mode == 4 {
					continue // -(An) load likewise
				}
				for reg := uint16(0); reg < 8; reg++ {
					if mode == 7 {
						if dir == 0 && reg > 1 {
							continue
						}
						if dir == 1 && reg > 3 {
							continue
						}
					}
					install(0x4880|dir<<10|szBit<<6|mode<<3|reg, opMOVEM)
				}
			}
		}
	}
}

// movemReg reads register i of the D0..D7,A0..A7 transfer order.
func (c *CPU) movemReg(i int) uint32 {
	if i < 8 {
		return c.reg.D[i]
	}
	return c.reg.A[i-8]
}

// setMovemReg writes register i of the transfer order.
func (c *CPU) setMovemReg(i int, val uint32) {
	if i < 8 {
		c.reg.D[i] = val
	} else {
		c.reg.A[i-8] = val
	}
}

func opMOVEM(c *CPU) {
	mode, reg := c.irEA()
	toRegs := c.ir&0x0400 != 0
	sz := Word
	if c.ir&0x0040 != 0 {
		sz = Long
	}

	list := c.fetchPC()

	switch {
	case !toRegs && mode == 4:
		// Store with pre-decrement: bit 0 of the list is A7, and the
		// registers land in descending order below An.
		addr := c.reg.A[reg]
		for i := 0; i < 16; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			addr -= uint32(sz)
			c.writeBus(sz, addr, c.movemReg(15-i))
		}
		c.reg.A[reg] = addr

	case !toRegs:
		addr := c.resolveEA(mode, reg, sz).address()
		for i := 0; i < 16; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			c.writeBus(sz, addr, c.movemReg(i))
			addr += uint32(sz)
		}

	default:
		// Loads run D0 up to A7; words sign-extend into the full
		// register. For (An)+ the final address updates An.
		var addr uint32
		if mode == 3 {
			addr = c.reg.A[reg]
		} else {
			addr = c.resolveEA(mode, reg, sz).address()
		}
		for i := 0; i < 16; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			c.setMovemReg(i, sz.ext(c.readBus(sz, addr)))
			addr += uint32(sz)
		}
		if mode == 3 {
			c.reg.A[reg] = addr
		}
	}

	c.chargeMOVEM(toRegs, mode, reg, sz, bits.OnesCount16(list))
}

// movemStoreBase/movemLoadBase: MOVEM base times per mode (PRM Table
// 8-7); each transferred register adds one word or long access.
var movemStoreBase = [8]uint64{0, 0, 8, 0, 8, 12, 14, 0}
var movemLoadBase = [8]uint64{0, 0, 12, 12, 0, 16, 18, 0}
var movemStoreBase7 = [2]uint64{12, 16}
var movemLoadBase7 = [4]uint64{16, 20, 16, 18}

func (c *CPU) chargeMOVEM(toRegs bool, mode, reg uint8, sz Size, count int) {
	var base uint64
	switch {
	case toRegs && mode == 7:
		base = movemLoadBase7[reg]
	case toRegs:
		base = movemLoadBase[mode]
	case mode == 7:
		base = movemStoreBase7[reg]
	default:
		base = movemStoreBase[mode]
	}

	perReg := uint64(4)
	if sz == Long {
		perReg = 8
	}
	c.cycles += base + uint64(count)*perReg
}

// --- EXG ---

// Encoding: 1100 XXX1 opmode YYY with opmodes 01000 (data pair),
// 01001 (address pair), 10001 (data/address).
func registerEXG() {
	for rx := uint16(0); rx < 8; rx++ {
		for ry := uint16(0); ry < 8; ry++ {
			install(0xC140|rx<<9|ry, opEXG)
			install(0xC148|rx<<9|ry, opEXG)
			install(0xC188|rx<<9|ry, opEXG)
		}
	}
}

func opEXG(c *CPU) {
	rx, ry := c.irReg9(), c.irReg0()

	switch (c.ir >> 3) & 0x1F {
	case 0x08:
		c.reg.D[rx], c.reg.D[ry] = c.reg.D[ry], c.reg.D[rx]
	case 0x09:
		c.reg.A[rx], c.reg.A[ry] = c.reg.A[ry], c.reg.A[rx]
	case 0x11:
		c.reg.D[rx], c.reg.A[ry] = c.reg.A[ry], c.reg.D[rx]
	}

	c.cycles += 6
}

// --- SWAP ---

func registerSWAP() {
	for dn := uint16(0); dn < 8; dn++ {
		install(0x4840|dn, opSWAP)
	}
}

func opSWAP(c *CPU) {
	dn := c.irReg0()
	c.reg.D[dn] = c.reg.D[dn]>>16 | c.reg.D[dn]<<16
	c.aluTest(Long, c.reg.D[dn])
	c.cycles += 4
}

// --- MOVEP ---

// Encoding: 0000 DDD 1cc 001 AAA. Transfers alternate bytes between Dn
// and d16(An), for 8-bit peripherals on a 16-bit bus. Condition codes
// are untouched.
func registerMOVEP() {
	for dn := uint16(0); dn < 8; dn++ {
		for an := uint16(0); an < 8; an++ {
			install(0x0108|dn<<9|an, opMOVEP) // word, mem→reg
			install(0x0148|dn<<9|an, opMOVEP) // long, mem→reg
			install(0x0188|dn<<9|an, opMOVEP) // word, reg→mem
			install(0x01C8|dn<<9|an, opMOVEP) // long, reg→mem
		}
	}
}

func opMOVEP(c *CPU) {
	dn := c.irReg9()
	an := c.irReg0()
	toMem := c.ir&0x0080 != 0
	nbytes := 2
	if c.ir&0x0040 != 0 {
		nbytes = 4
	}

	addr := c.reg.A[an] + Word.ext(uint32(c.fetchPC()))

	if toMem {
		val := c.reg.D[dn]
		for i := 0; i < nbytes; i++ {
			shift := uint32(nbytes-1-i) * 8
			c.writeBus(Byte, addr+uint32(2*i), val>>shift&0xFF)
		}
	} else {
		var val uint32
		for i := 0; i < nbytes; i++ {
			val = val<<8 | c.readBus(Byte, addr+uint32(2*i))
		}
		if nbytes == 2 {
			c.setD(dn, Word, val)
		} else {
			c.reg.D[dn] = val
		}
	}

	c.cycles += uint64(8 + nbytes*4) // 16 for a word, 24 for a long
}
