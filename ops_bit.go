package m68k

// Single-bit test/modify group.
// Dynamic: 0000 DDD1 TT eee eee (bit number in Dn)
// Static:  0000 1000 TT eee eee (bit number in an extension word)
// TT: 00=BTST, 01=BCHG, 10=BCLR, 11=BSET.
//
// On a data register the full 32 bits are addressable (bit number mod
// 32); on memory the operand is one byte (bit number mod 8). Z is set
// from the bit's value before any modification; no other flag changes.

const (
	bitTest = iota
	bitChange
	bitClear
	bitSet
)

func registerBTST() {
	registerBitOp(0, opBTSTdyn, opBTSTstatic)
}

func registerBCHG() {
	registerBitOp(1, opBCHGdyn, opBCHGstatic)
}

func registerBCLR() {
	registerBitOp(2, opBCLRdyn, opBCLRstatic)
}

func registerBSET() {
	registerBitOp(3, opBSETdyn, opBSETstatic)
}

func registerBitOp(tt uint16, dyn, static opFunc) {
	// BTST alone accepts PC-relative and immediate sources in its
	// dynamic form; the modifying three stop at the alterable modes.
	maxReg7 := uint16(1)
	if tt == 0 {
		maxReg7 = 4
	}

	for dn := uint16(0); dn < 8; dn++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == 1 {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == 7 && reg > maxReg7 {
					continue
				}
				install(0x0100|dn<<9|tt<<6|mode<<3|reg, dyn)
			}
		}
	}

	maxReg7 = 1
	if tt == 0 {
		maxReg7 = 3 // static BTST additionally reaches the PC-relative modes
	}
	for mode := uint16(0); mode < 8; mode++ {
		if mode == 1 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > maxReg7 {
				continue
			}
			install(0x0800|tt<<6|mode<<3|reg, static)
		}
	}
}

// bitOpCycles[action] holds the {dynamic Dn, dynamic mem, static Dn,
// static mem} costs for each bit operation.
var bitOpCycles = [4][4]uint64{
	bitTest:   {6, 4, 10, 8},
	bitChange: {8, 8, 12, 12},
	bitClear:  {10, 8, 14, 12},
	bitSet:    {8, 8, 12, 12},
}

// bitOp performs one bit test/modify. Z gets the inverse of the
// addressed bit as it was before the action.
func (c *CPU) bitOp(action int, static bool, bitNum uint32) {
	mode, reg := c.irEA()
	col := 0
	if mode != 0 {
		col = 1
	}
	if static {
		col += 2
	}
	c.cycles += bitOpCycles[action][col]

	var val uint32
	var dst ea
	if mode == 0 {
		bitNum &= 31
		val = c.reg.D[reg]
	} else {
		bitNum &= 7
		dst = c.resolveEA(mode, reg, Byte)
		val = dst.read(c, Byte)
	}

	mask := uint32(1) << bitNum
	c.setFlag(flagZ, val&mask == 0)

	switch action {
	case bitTest:
		return
	case bitChange:
		val ^= mask
	case bitClear:
		val &^= mask
	case bitSet:
		val |= mask
	}

	if mode == 0 {
		c.reg.D[reg] = val
	} else {
		dst.write(c, Byte, val)
	}
}

func opBTSTdyn(c *CPU)    { c.bitOp(bitTest, false, c.reg.D[c.irReg9()]) }
func opBCHGdyn(c *CPU)    { c.bitOp(bitChange, false, c.reg.D[c.irReg9()]) }
func opBCLRdyn(c *CPU)    { c.bitOp(bitClear, false, c.reg.D[c.irReg9()]) }
func opBSETdyn(c *CPU)    { c.bitOp(bitSet, false, c.reg.D[c.irReg9()]) }
func opBTSTstatic(c *CPU) { c.bitOp(bitTest, true, uint32(c.fetchPC()&0xFF)) }
func opBCHGstatic(c *CPU) { c.bitOp(bitChange, true, uint32(c.fetchPC()&0xFF)) }
func opBCLRstatic(c *CPU) { c.bitOp(bitClear, true, uint32(c.fetchPC()&0xFF)) }
func opBSETstatic(c *CPU) { c.bitOp(bitSet, true, uint32(c.fetchPC()&0xFF)) }
