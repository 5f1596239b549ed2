package m68k

// Effective-address calculation times from PRM Table 8-1, indexed by
// addressing mode; mode 7 breaks out by register field. Long operands
// pay 4 extra clocks on every non-register mode.

var eaFetchBase = [8]uint64{0, 0, 4, 4, 6, 8, 10, 0}
var eaFetchBase7 = [5]uint64{8, 12, 8, 10, 4} // abs.W, abs.L, d16(PC), d8(PC,Xn), #imm

// eaFetchCycles returns the cost of fetching a source operand through
// the given addressing mode.
func eaFetchCycles(mode, reg uint8, sz Size) uint64 {
	base := eaFetchBase[mode]
	if mode == 7 {
		base = eaFetchBase7[reg]
	}
	if sz == Long && base > 0 {
		base += 4
	}
	return base
}

var eaWriteBase = [8]uint64{0, 0, 4, 4, 4, 8, 10, 0} // -(An) writes cost 4, not 6
var eaWriteBase7 = [2]uint64{8, 12}                  // abs.W, abs.L

// eaWriteCycles returns the cost of writing a destination operand
// through the given addressing mode.
func eaWriteCycles(mode, reg uint8, sz Size) uint64 {
	base := eaWriteBase[mode]
	if mode == 7 {
		base = 0
		if reg < 2 {
			base = eaWriteBase7[reg]
		}
	}
	if sz == Long && base > 0 {
		base += 4
	}
	return base
}
