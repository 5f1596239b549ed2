package m68k

import (
	"fmt"
	"log"
)

// MC68000 exception vector numbers.
const (
	vecResetSSP           = 0
	vecResetPC            = 1
	vecBusError           = 2
	vecAddressError       = 3
	vecIllegalInstruction = 4
	vecDivideByZero       = 5
	vecCHK                = 6
	vecTRAPV              = 7
	vecPrivilegeViolation = 8
	vecTrace              = 9
	vecLineA              = 10
	vecLineF              = 11
	vecUninitialized      = 15
	vecSpuriousInterrupt  = 24
	vecAutoVector1        = 25
	vecTrap0              = 32 // TRAP #0 through TRAP #15 = vectors 32-47
)

// FaultKind discriminates the tagged exception variants a handler can raise.
type FaultKind uint8

const (
	FaultIllegalInstruction FaultKind = iota
	FaultAddressError
	FaultPrivilegeViolation
	FaultTrap
	FaultInterrupt
)

func (k FaultKind) String() string {
	switch k {
	case FaultIllegalInstruction:
		return "illegal instruction"
	case FaultAddressError:
		return "address error"
	case FaultPrivilegeViolation:
		return "privilege violation"
	case FaultTrap:
		return "trap"
	case FaultInterrupt:
		return "interrupt"
	default:
		return "unknown fault"
	}
}

// Fault is the tagged variant surfaced by Step when an instruction raises
// an exception instead of completing normally. The exception frame has
// already been pushed and PC already redirected to the vector's handler
// by the time Step returns it; Fault exists so a caller (or a test) can
// observe which exception occurred and why. Nothing is retried: the
// machine always continues through the vector.
type Fault struct {
	Kind    FaultKind
	Vector  int
	IR      uint16 // opcode word that faulted (illegal instruction / privilege violation)
	FaultPC uint32 // address of the faulting instruction
	Addr    uint32 // faulting address (address error only)
	Write   bool   // true if the address error occurred on a write
	Level   uint8  // interrupt priority level (interrupt only)
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultIllegalInstruction:
		return fmt.Sprintf("illegal instruction %04x at %06x", f.IR, f.FaultPC)
	case FaultAddressError:
		return fmt.Sprintf("address error: %06x (fault pc %06x)", f.Addr, f.FaultPC)
	case FaultPrivilegeViolation:
		return fmt.Sprintf("privilege violation: %04x at %06x", f.IR, f.FaultPC)
	case FaultTrap:
		return fmt.Sprintf("trap: vector %d at %06x", f.Vector, f.FaultPC)
	case FaultInterrupt:
		return fmt.Sprintf("interrupt: level %d", f.Level)
	default:
		return "unknown fault"
	}
}

// raise runs the standard exception processing for f (enter supervisor
// mode, push the return frame, fetch the vector, jump) and records f as
// the current instruction's fault. A second fault raised while the frame
// push or vector fetch of the first is still in progress is a double
// fault: the processor halts, as the hardware does.
func (c *CPU) raise(f *Fault) {
	if c.inException {
		log.Printf("[m68k] double fault: %s while processing vector %d", f, c.fault.Vector)
		c.fault = f
		c.halted = true
		return
	}

	c.inException = true
	c.fault = f
	c.exception(f)
	c.inException = false
}

func (c *CPU) raiseIllegalInstruction() {
	c.raise(&Fault{Kind: FaultIllegalInstruction, Vector: vecIllegalInstruction, IR: c.ir, FaultPC: c.prevPC})
}

func (c *CPU) raiseLineA() {
	c.raise(&Fault{Kind: FaultIllegalInstruction, Vector: vecLineA, IR: c.ir, FaultPC: c.prevPC})
}

func (c *CPU) raiseLineF() {
	c.raise(&Fault{Kind: FaultIllegalInstruction, Vector: vecLineF, IR: c.ir, FaultPC: c.prevPC})
}

func (c *CPU) raisePrivilegeViolation() {
	c.raise(&Fault{Kind: FaultPrivilegeViolation, Vector: vecPrivilegeViolation, IR: c.ir, FaultPC: c.prevPC})
}

func (c *CPU) raiseTrap(vector int) {
	c.raise(&Fault{Kind: FaultTrap, Vector: vector, IR: c.ir, FaultPC: c.prevPC})
}

// raiseAddressError raises an address error for a misaligned word/long
// access or an odd-PC instruction fetch. addr is the offending address.
func (c *CPU) raiseAddressError(addr uint32, write bool) {
	c.raise(&Fault{Kind: FaultAddressError, Vector: vecAddressError, Addr: addr, Write: write, IR: c.ir, FaultPC: c.prevPC})
}

// exceptionCycles returns the processing cost charged when the given
// vector is taken. Traps raised from EA-bearing instructions (CHK,
// divide-by-zero) have the EA supplement charged by the handler before
// raising, so these bases stay addressing-mode-free.
func exceptionCycles(vector int) uint64 {
	switch vector {
	case vecBusError, vecAddressError:
		return 50
	case vecDivideByZero:
		return 38
	case vecCHK:
		return 40
	default:
		return 34
	}
}

// exception processes an exception: enters supervisor mode, pushes the
// return frame (PC + SR, with extra diagnostic words for address errors),
// reads the vector, and jumps to the handler.
func (c *CPU) exception(f *Fault) {
	vector := f.Vector

	// Determine the PC to push. For group 1 fault exceptions (illegal
	// instruction, privilege violation, Line-A, Line-F), the 68000 pushes
	// the address of the faulting instruction. For all other exceptions
	// (group 2: TRAP, TRAPV, CHK, divide-by-zero; and interrupts/trace),
	// the 68000 pushes the next instruction address (current PC).
	pushPC := c.reg.PC
	switch vector {
	case vecIllegalInstruction, vecPrivilegeViolation, vecLineA, vecLineF:
		pushPC = c.prevPC
	case vecAddressError:
		pushPC = f.FaultPC
	}

	oldSR := c.reg.SR
	fc := c.functionCode() // mode of the faulting access, before the switch below

	// Enter supervisor mode, clear trace
	if c.reg.SR&flagS == 0 {
		c.reg.USP = c.reg.A[7]
		c.reg.A[7] = c.reg.SSP
	}
	c.reg.SR = (c.reg.SR | flagS) & ^flagT

	if f.Kind == FaultAddressError {
		// Group-0 address-error frame: in addition to PC/SR, the 68000
		// pushes the instruction register, the faulting address, and a
		// status word encoding read/write and function-code bits. Order
		// is chosen so the extra words end up below PC/SR on the stack:
		// RTE's plain pop of SR then PC still works, and a fault handler
		// that knows the layout can dig the diagnostic words out.
		status := uint16(0)
		if !f.Write {
			status |= 1 << 4
		}
		status |= uint16(fc)
		c.pushWord(status)
		c.pushLong(f.Addr)
		c.pushWord(f.IR)
	}

	c.pushLong(pushPC)
	c.pushWord(oldSR)
	if c.halted {
		// Frame push itself faulted (odd or unmapped SSP).
		return
	}

	// Read handler address from vector table
	addr := c.readBusSpace(SpaceSupervisorData, Long, uint32(vector)*4)
	if addr == 0 {
		// Uninitialized vector: fall back to the uninitialized-interrupt
		// vector, and halt when that one is empty too.
		addr = c.readBusSpace(SpaceSupervisorData, Long, vecUninitialized*4)
		if addr == 0 {
			log.Printf("[m68k] double fault: uninitialized vector %d and uninitialized-interrupt vector", vector)
			c.halted = true
			return
		}
	}
	c.reg.PC = addr
	c.prefetchValid = false

	c.cycles += exceptionCycles(vector)
}

// functionCode returns the 3-bit function code recorded in the
// address-error status word, honoring current supervisor/user mode.
func (c *CPU) functionCode() uint8 {
	if c.supervisor() {
		return 5 // supervisor data
	}
	return 1 // user data
}
