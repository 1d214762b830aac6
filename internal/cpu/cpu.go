// Package cpu implements the fetch-decode-execute loop of the machine's
// 16-bit register-register CPU: eight general-purpose registers, a
// program counter, four condition flags, and the instruction set
// described by internal/isa.
package cpu

import (
	"fmt"

	"tilemach/internal/isa"
)

// Flag bits within the Flags register.
const (
	FlagZ = 0 // Zero
	FlagN = 1 // Negative
	FlagC = 2 // Carry
	FlagV = 3 // Overflow
)

// State is the complete architectural state of the CPU.
type State struct {
	R [8]uint16

	PC    uint16
	Flags uint8

	// Halted is set true once a halt instruction executes. halt also
	// publishes it to the Memory's shared halt flag when the Memory
	// implements Haltable; that shared flag, not this field, is what
	// the rasterizer observes to decide whether to close a
	// non-interactive window.
	Halted bool
}

// Memory is the interface the CPU uses to fetch instructions and
// service load/store instructions. internal/memfab.Bus implements it.
type Memory interface {
	Read(addr uint16) uint16
	Write(addr uint16, value uint16)
}

// Logger is the interface used to trace executed instructions. It is
// optional: a nil Logger disables tracing entirely.
type Logger interface {
	LogCPU(pc uint16, instr uint16, state State)
}

// CPU couples architectural state to a Memory fabric and an optional
// trace Logger.
type CPU struct {
	State State
	Mem   Memory
	Log   Logger
}

// New creates a CPU with PC at 0 and all registers/flags zeroed.
func New(mem Memory, log Logger) *CPU {
	return &CPU{Mem: mem, Log: log}
}

// Reset returns the CPU to its initial state without touching Mem.
func (c *CPU) Reset() {
	c.State = State{}
}

func (c *CPU) GetFlag(bit uint8) bool {
	return c.State.Flags&(1<<bit) != 0
}

func (c *CPU) setFlag(bit uint8, v bool) {
	if v {
		c.State.Flags |= 1 << bit
	} else {
		c.State.Flags &^= 1 << bit
	}
}

// setZN sets the Z and N flags from a 16-bit result; every
// flag-setting instruction routes through this first.
func (c *CPU) setZN(result uint16) {
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, result&0x8000 != 0)
}

// setArith sets Z, N, C and V from the 33-bit unsigned and 17-bit
// signed views of an arithmetic result. unsigned33 and signed33 must
// already include the value that would have carried into bit 16 (i.e.
// callers compute with uint32/int32 arithmetic before truncating to
// uint16).
func (c *CPU) setArith(unsigned33 uint32, signed33 int32) uint16 {
	result := uint16(unsigned33)
	c.setZN(result)
	c.setFlag(FlagC, unsigned33 > 0xFFFF)
	c.setFlag(FlagV, signed33 < -32768 || signed33 > 32767)
	return result
}

// setSubtractArith sets flags for a-b(-borrowIn) using the convention
// that C stores the inverse of the borrow-out (C=true means no borrow
// occurred).
func (c *CPU) setSubtractArith(a, b uint16, borrowIn int) uint16 {
	diff := int32(a) - int32(b) - int32(borrowIn)
	result := uint16(uint32(diff))
	c.setZN(result)
	c.setFlag(FlagC, diff >= 0)

	sa, sb := int16(a), int16(b)
	signedDiff := int32(sa) - int32(sb) - int32(borrowIn)
	c.setFlag(FlagV, signedDiff < -32768 || signedDiff > 32767)
	return result
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Run executes instructions until the CPU halts, returning the final
// contents of r0. If verbose is true, every fetched instruction is
// traced through Log (when set).
func (c *CPU) Run(verbose bool) uint16 {
	for !c.State.Halted {
		c.Step(verbose)
	}
	return c.State.R[0]
}

// Step fetches, decodes and executes exactly one instruction.
func (c *CPU) Step(verbose bool) {
	pc := c.State.PC
	instr := c.Mem.Read(pc)
	c.State.PC = pc + 1 // wraps naturally: uint16 arithmetic

	if verbose && c.Log != nil {
		c.Log.LogCPU(pc, instr, c.State)
	}

	c.execute(instr)
}

// fetchImmediate reads the word trailing the current instruction and
// advances PC past it, mirroring how every immediate-form instruction
// in internal/isa is encoded.
func (c *CPU) fetchImmediate() uint16 {
	imm := c.Mem.Read(c.State.PC)
	c.State.PC++
	return imm
}

func (c *CPU) reg(i uint8) uint16 {
	return c.State.R[i&0x7]
}

func (c *CPU) setReg(i uint8, v uint16) {
	c.State.R[i&0x7] = v
}

func (c *CPU) execute(instr uint16) {
	opcode, mode, rd, rs := isa.Decode(instr)

	switch opcode {
	case isa.OpSys:
		c.execSys(mode)
	case isa.OpAluReg:
		c.execAluReg(mode, rd, rs)
	case isa.OpAluImm:
		c.execAluImm(mode, rd)
	case isa.OpShift:
		c.execShift(mode, rd, rs)
	case isa.OpMem:
		c.execMem(mode, rd, rs)
	case isa.OpFlow:
		c.execFlow(mode, rd, rs)
	case isa.OpBranch:
		c.execBranch(mode)
	default:
		// Unknown opcode: implementation-defined and untested. Halt
		// rather than run away into whatever the next word means.
		c.halt()
	}
}

// Haltable is implemented by a Memory that also exposes a shared
// halt flag (internal/memfab.Bus does). A CPU running against a
// Memory that doesn't implement it (e.g. the flat test memories in
// cpu_test.go) still halts locally via State.Halted.
type Haltable interface {
	SetHalted(v bool)
}

func (c *CPU) execSys(mode uint8) {
	switch mode {
	case isa.SysNOP:
		// no operation
	case isa.SysHALT:
		c.halt()
	default:
		c.halt()
	}
}

func (c *CPU) halt() {
	c.State.Halted = true
	if h, ok := c.Mem.(Haltable); ok {
		h.SetHalted(true)
	}
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04X R=%v Flags=%04b Halted=%v", c.State.PC, c.State.R, c.State.Flags, c.State.Halted)
}
