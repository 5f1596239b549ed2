package m68k

// ALU primitives. Each computes one integer, decimal, or shift operation
// at a given operand width, updates the condition codes, and returns the
// masked result. Handlers compose these with effective-address resolution
// and write-back; nothing here touches memory or the PC.
//
// Flag conventions, shared across the family:
//   - N is the sign bit of the masked result.
//   - Z is set iff the masked result is zero, EXCEPT in the extended
//     forms (addx/subx/negx and the decimal ops), where Z can only be
//     cleared. A multi-precision chain seeded with Z=1 reports zero iff
//     every partial was zero.
//   - C and X are the carry/borrow out of the operand width; compares
//     leave X alone, pure-logic ops leave X alone and clear C.

// aluAdd computes dst + src.
func (c *CPU) aluAdd(sz Size, dst, src uint32) uint32 {
	mask := sz.Mask()
	d, s := dst&mask, src&mask

	sum := uint64(d) + uint64(s)
	res := uint32(sum) & mask

	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.setFlag(flagV, (s^res)&(d^res)&sz.MSB() != 0)
	carry := sum > uint64(mask)
	c.setFlag(flagC, carry)
	c.setFlag(flagX, carry)
	return res
}

// aluAddx computes dst + src + X. Z is sticky: cleared by a nonzero
// partial, never set.
func (c *CPU) aluAddx(sz Size, dst, src uint32) uint32 {
	mask := sz.Mask()
	d, s := dst&mask, src&mask

	sum := uint64(d) + uint64(s) + uint64(c.xBit())
	res := uint32(sum) & mask

	c.setFlag(flagN, res&sz.MSB() != 0)
	if res != 0 {
		c.reg.SR &^= flagZ
	}
	c.setFlag(flagV, (s^res)&(d^res)&sz.MSB() != 0)
	carry := sum > uint64(mask)
	c.setFlag(flagC, carry)
	c.setFlag(flagX, carry)
	return res
}

// aluSub computes dst - src.
func (c *CPU) aluSub(sz Size, dst, src uint32) uint32 {
	mask := sz.Mask()
	d, s := dst&mask, src&mask

	res := (d - s) & mask

	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.setFlag(flagV, (s^d)&(res^d)&sz.MSB() != 0)
	c.setFlag(flagC, s > d)
	c.setFlag(flagX, s > d)
	return res
}

// aluSubx computes dst - src - X. Z is sticky, as in aluAddx.
func (c *CPU) aluSubx(sz Size, dst, src uint32) uint32 {
	mask := sz.Mask()
	d, s := dst&mask, src&mask
	x := c.xBit()

	res := (d - s - x) & mask

	c.setFlag(flagN, res&sz.MSB() != 0)
	if res != 0 {
		c.reg.SR &^= flagZ
	}
	c.setFlag(flagV, (s^d)&(res^d)&sz.MSB() != 0)
	borrow := uint64(s)+uint64(x) > uint64(d)
	c.setFlag(flagC, borrow)
	c.setFlag(flagX, borrow)
	return res
}

// aluCmp computes dst - src for its flags only: N, Z, V, C. X is not
// touched and no result is produced.
func (c *CPU) aluCmp(sz Size, dst, src uint32) {
	mask := sz.Mask()
	d, s := dst&mask, src&mask

	res := (d - s) & mask

	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.setFlag(flagV, (s^d)&(res^d)&sz.MSB() != 0)
	c.setFlag(flagC, s > d)
}

// aluNeg computes 0 - dst.
func (c *CPU) aluNeg(sz Size, dst uint32) uint32 {
	return c.aluSub(sz, 0, dst)
}

// aluNegx computes 0 - dst - X with sticky Z.
func (c *CPU) aluNegx(sz Size, dst uint32) uint32 {
	return c.aluSubx(sz, 0, dst)
}

// aluTest sets N and Z from a value and clears V and C: the flag
// behavior shared by MOVE, TST, and the pure-logic results. X is not
// touched.
func (c *CPU) aluTest(sz Size, val uint32) {
	res := val & sz.Mask()
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV | flagC
}

// aluAnd computes dst & src.
func (c *CPU) aluAnd(sz Size, dst, src uint32) uint32 {
	res := dst & src & sz.Mask()
	c.aluTest(sz, res)
	return res
}

// aluOr computes dst | src.
func (c *CPU) aluOr(sz Size, dst, src uint32) uint32 {
	res := (dst | src) & sz.Mask()
	c.aluTest(sz, res)
	return res
}

// aluEor computes dst ^ src.
func (c *CPU) aluEor(sz Size, dst, src uint32) uint32 {
	res := (dst ^ src) & sz.Mask()
	c.aluTest(sz, res)
	return res
}

// aluNot computes ^dst.
func (c *CPU) aluNot(sz Size, dst uint32) uint32 {
	res := ^dst & sz.Mask()
	c.aluTest(sz, res)
	return res
}

// aluMulu computes the unsigned 16x16→32 product.
func (c *CPU) aluMulu(dst, src uint32) uint32 {
	res := (dst & 0xFFFF) * (src & 0xFFFF)
	c.aluTest(Long, res)
	return res
}

// aluMuls computes the signed 16x16→32 product.
func (c *CPU) aluMuls(dst, src uint32) uint32 {
	res := uint32(int32(int16(dst)) * int32(int16(src)))
	c.aluTest(Long, res)
	return res
}

// aluDivu divides the 32-bit dividend by a nonzero 16-bit divisor. On
// success it returns the remainder:quotient pair packed for Dn and true.
// When the quotient does not fit in 16 bits it sets V, leaves every
// other flag and the operands untouched, and returns false.
func (c *CPU) aluDivu(dividend, divisor uint32) (uint32, bool) {
	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient > 0xFFFF {
		c.reg.SR |= flagV
		return 0, false
	}

	c.aluTest(Word, quotient)
	return remainder<<16 | quotient, true
}

// aluDivs is the signed counterpart of aluDivu. The one dividend whose
// quotient overflows int32 itself, 0x80000000 / -1, writes zero with
// N/Z/V/C cleared instead of taking the overflow path.
func (c *CPU) aluDivs(dividend uint32, divisor int32) (uint32, bool) {
	if dividend == 0x80000000 && divisor == -1 {
		c.reg.SR &^= flagN | flagZ | flagV | flagC
		return 0, true
	}

	quotient := int32(dividend) / divisor
	remainder := int32(dividend) % divisor

	if quotient != int32(int16(quotient)) {
		c.reg.SR |= flagV
		return 0, false
	}

	c.aluTest(Word, uint32(quotient)&0xFFFF)
	return uint32(remainder)<<16 | uint32(quotient)&0xFFFF, true
}

// Packed-BCD arithmetic. The correction sequence and the V flag follow
// the Musashi lineage: V is the intersection of the bits the binary step
// left undefined (the complement of the uncorrected result) with the
// corrected result, observed at the sign position. Z is sticky in all
// three, for chained multi-digit arithmetic.

// aluAbcd computes the decimal sum dst + src + X.
func (c *CPU) aluAbcd(dst, src uint32) uint32 {
	res := (src & 0x0F) + (dst & 0x0F) + c.xBit()
	undef := ^res

	if res > 9 {
		res += 6
	}
	res += (src & 0xF0) + (dst & 0xF0)

	carry := res > 0x99
	if carry {
		res -= 0xA0
	}
	c.setFlag(flagC, carry)
	c.setFlag(flagX, carry)

	c.setFlag(flagV, undef&res&0x80 != 0)
	c.setFlag(flagN, res&0x80 != 0)

	res &= 0xFF
	if res != 0 {
		c.reg.SR &^= flagZ
	}
	return res
}

// aluSbcd computes the decimal difference dst - src - X.
func (c *CPU) aluSbcd(dst, src uint32) uint32 {
	res := (dst & 0x0F) - (src & 0x0F) - c.xBit()
	undef := ^res

	if res > 9 { // wrapped negative counts as > 9
		res -= 6
	}
	res += (dst & 0xF0) - (src & 0xF0)

	borrow := res > 0x99
	if borrow {
		res += 0xA0
	}
	c.setFlag(flagC, borrow)
	c.setFlag(flagX, borrow)

	c.setFlag(flagV, undef&res&0x80 != 0)
	c.setFlag(flagN, res&0x80 != 0)

	res &= 0xFF
	if res != 0 {
		c.reg.SR &^= flagZ
	}
	return res
}

// aluNbcd computes the decimal negation 0 - dst - X (as 0x9A - dst - X
// with nibble correction). A result of 0x9A means "no change": the
// caller must skip the write-back, and C/X/V are cleared. N is set from
// the raw result either way.
func (c *CPU) aluNbcd(dst uint32) (uint32, bool) {
	res := (0x9A - dst - c.xBit()) & 0xFF

	if res == 0x9A {
		c.reg.SR &^= flagV | flagC | flagX
		c.setFlag(flagN, true) // 0x9A has the sign bit set
		return 0, false
	}

	undef := ^res
	if res&0x0F == 0x0A {
		res = (res & 0xF0) + 0x10
	}
	res &= 0xFF

	c.setFlag(flagV, undef&res&0x80 != 0)
	c.setFlag(flagN, res&0x80 != 0)
	c.setFlag(flagC, true)
	c.setFlag(flagX, true)
	if res != 0 {
		c.reg.SR &^= flagZ
	}
	return res, true
}

// Shift and rotate primitives. The count has already been reduced to
// 0..63 (register counts) or 1..8 (immediate counts) by the handler.
// Shared rules: a count of zero sets N/Z from the unchanged source,
// clears V and C (ROXL/ROXR instead copy X into C), and leaves X alone.
// Only ASL can overflow; every other variant clears V.

// aluAsl shifts left arithmetically. V is set when any bit passing
// through the sign position differed from the final sign, i.e. when the
// top count+1 bits of the source are neither all zero nor all one.
func (c *CPU) aluAsl(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		return src
	}

	var res, lastOut uint32
	if count <= bits {
		res = (src << count) & mask
		lastOut = (src >> (bits - count)) & 1
	}
	c.setFlag(flagC, lastOut != 0)
	c.setFlag(flagX, lastOut != 0)

	if count < bits {
		// Sign region: the bits consumed by the shift plus the final
		// sign position.
		region := src >> (bits - count - 1)
		allOnes := uint32(1)<<(count+1) - 1
		c.setFlag(flagV, region != 0 && region != allOnes)
	} else {
		c.setFlag(flagV, src != 0)
	}

	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	return res
}

// aluAsr shifts right arithmetically, replicating the sign bit.
func (c *CPU) aluAsr(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask
	neg := src&sz.MSB() != 0

	if count == 0 {
		c.aluTest(sz, src)
		return src
	}

	if count >= bits {
		// Fully shifted out: the sign fills the result and is the last
		// bit through C.
		res := uint32(0)
		if neg {
			res = mask
		}
		c.setFlag(flagC, neg)
		c.setFlag(flagX, neg)
		c.setFlag(flagN, neg)
		c.setFlag(flagZ, !neg)
		c.reg.SR &^= flagV
		return res
	}

	res := src >> count
	if neg {
		res |= mask &^ (mask >> count)
	}
	lastOut := (src >> (count - 1)) & 1
	c.setFlag(flagC, lastOut != 0)
	c.setFlag(flagX, lastOut != 0)
	c.setFlag(flagN, neg)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}

// aluLsl shifts left logically.
func (c *CPU) aluLsl(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		return src
	}

	var res, lastOut uint32
	if count <= bits {
		res = (src << count) & mask
		lastOut = (src >> (bits - count)) & 1
	}
	c.setFlag(flagC, lastOut != 0)
	c.setFlag(flagX, lastOut != 0)
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}

// aluLsr shifts right logically.
func (c *CPU) aluLsr(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		return src
	}

	var res, lastOut uint32
	if count <= bits {
		res = src >> count
		lastOut = (src >> (count - 1)) & 1
	}
	c.setFlag(flagC, lastOut != 0)
	c.setFlag(flagX, lastOut != 0)
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}

// aluRol rotates left by count modulo the width. X is untouched; C is
// the last bit carried around (the new LSB), or the old LSB when the
// count is a nonzero multiple of the width.
func (c *CPU) aluRol(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		return src
	}

	shift := count % bits
	res := src
	if shift != 0 {
		res = (src<<shift | src>>(bits-shift)) & mask
	}
	c.setFlag(flagC, res&1 != 0)
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}

// aluRor rotates right by count modulo the width.
func (c *CPU) aluRor(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		return src
	}

	shift := count % bits
	res := src
	if shift != 0 {
		res = (src>>shift | src<<(bits-shift)) & mask
	}
	c.setFlag(flagC, res&sz.MSB() != 0)
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}

// aluRoxl rotates left through X: a width+1-bit rotation of value and
// X together. C tracks X. A zero count copies X into C.
func (c *CPU) aluRoxl(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		c.setFlag(flagC, c.flag(flagX))
		return src
	}

	res := src
	for n := count % (bits + 1); n > 0; n-- {
		out := res & sz.MSB()
		res = (res<<1 | c.xBit()) & mask
		c.setFlag(flagX, out != 0)
	}
	c.setFlag(flagC, c.flag(flagX))
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}

// aluRoxr rotates right through X.
func (c *CPU) aluRoxr(sz Size, val, count uint32) uint32 {
	bits := sz.Bits()
	mask := sz.Mask()
	src := val & mask

	if count == 0 {
		c.aluTest(sz, src)
		c.setFlag(flagC, c.flag(flagX))
		return src
	}

	res := src
	for n := count % (bits + 1); n > 0; n-- {
		out := res & 1
		res = res>>1 | c.xBit()<<(bits-1)
		c.setFlag(flagX, out != 0)
	}
	c.setFlag(flagC, c.flag(flagX))
	c.setFlag(flagN, res&sz.MSB() != 0)
	c.setFlag(flagZ, res == 0)
	c.reg.SR &^= flagV
	return res
}
