// Package isa defines the machine's instruction encoding: the nibble
// layout every CPU instruction word uses, the opcode/mode constants,
// and an encoder function per mnemonic (Add, Addi, Branch, ...).
// internal/cpu decodes against
// these constants; the program builder in internal/isa/builder.go
// assembles them into a flat binary image.
//
// Every instruction occupies one 16-bit word laid out as
// [opcode:4][mode:4][rd:4][rs:4]. Instructions that need a literal
// value or an absolute target address carry it in the word
// immediately following the instruction word (see NeedsImmediate).
package isa

// Top-level opcodes (bits 15-12).
const (
	OpSys     uint8 = 0x0 // NOP / HALT
	OpAluReg  uint8 = 0x1 // register-register ALU: add, sub, addc, subc, and, or, xor, nand, not
	OpAluImm  uint8 = 0x2 // immediate ALU: addi, movi, lui
	OpShift   uint8 = 0x3 // shift/rotate: shl, shr, sshr, rotl, rotr, shlc, shrc
	OpMem     uint8 = 0x4 // lw, sw, swi
	OpFlow    uint8 = 0x5 // jmp, jalr
	OpBranch  uint8 = 0x6 // beq, bne, bp, bn, bc, bnc, bo, bg, bge, bl, ble, ba, bae, bb, bbe
)

// Sys modes.
const (
	SysNOP  uint8 = 0x0
	SysHALT uint8 = 0xF
)

// AluReg modes.
const (
	AluAdd  uint8 = 0x0
	AluSub  uint8 = 0x1
	AluAddc uint8 = 0x2
	AluSubc uint8 = 0x3
	AluAnd  uint8 = 0x4
	AluOr   uint8 = 0x5
	AluXor  uint8 = 0x6
	AluNand uint8 = 0x7
	AluNot  uint8 = 0x8
)

// AluImm modes.
const (
	ImmAddi uint8 = 0x0
	ImmMovi uint8 = 0x1
	ImmLui  uint8 = 0x2
)

// Shift modes.
const (
	ShiftShl  uint8 = 0x0
	ShiftShr  uint8 = 0x1
	ShiftSshr uint8 = 0x2
	ShiftRotl uint8 = 0x3
	ShiftRotr uint8 = 0x4
	ShiftShlc uint8 = 0x5
	ShiftShrc uint8 = 0x6
)

// Mem modes.
const (
	MemLW  uint8 = 0x0
	MemSW  uint8 = 0x1
	MemSWI uint8 = 0x2
)

// Flow modes.
const (
	FlowJMP  uint8 = 0x0
	FlowJALR uint8 = 0x1
)

// Branch modes (condition codes), also OpBranch's mode field.
const (
	BEQ  uint8 = 0x0
	BNE  uint8 = 0x1
	BP   uint8 = 0x2
	BN   uint8 = 0x3
	BC   uint8 = 0x4
	BNC  uint8 = 0x5
	BO   uint8 = 0x6
	BG   uint8 = 0x7
	BGE  uint8 = 0x8
	BL   uint8 = 0x9
	BLE  uint8 = 0xA
	BA   uint8 = 0xB
	BAE  uint8 = 0xC
	BB   uint8 = 0xD
	BBE  uint8 = 0xE
)

// Encode packs an opcode/mode/rd/rs quadruple into one instruction
// word. rd and rs are truncated to their low 4 bits; the CPU further
// masks register indices to 0-7.
func Encode(opcode, mode, rd, rs uint8) uint16 {
	return uint16(opcode&0xF)<<12 | uint16(mode&0xF)<<8 | uint16(rd&0xF)<<4 | uint16(rs&0xF)
}

// Decode splits an instruction word back into its fields.
func Decode(instr uint16) (opcode, mode, rd, rs uint8) {
	opcode = uint8(instr>>12) & 0xF
	mode = uint8(instr>>8) & 0xF
	rd = uint8(instr>>4) & 0xF
	rs = uint8(instr) & 0xF
	return
}

// NeedsImmediate reports whether the given instruction word is
// followed by a trailing 16-bit immediate/address word.
func NeedsImmediate(instr uint16) bool {
	opcode, mode, _, _ := Decode(instr)
	switch opcode {
	case OpAluImm:
		return true
	case OpMem:
		return mode == MemLW || mode == MemSW || mode == MemSWI
	case OpFlow:
		return mode == FlowJMP
	case OpBranch:
		return true
	}
	return false
}

// --- mnemonic encoders, one per instruction class ---

func Add(rd, rs uint8) uint16  { return Encode(OpAluReg, AluAdd, rd, rs) }
func Sub(rd, rs uint8) uint16  { return Encode(OpAluReg, AluSub, rd, rs) }
func Addc(rd, rs uint8) uint16 { return Encode(OpAluReg, AluAddc, rd, rs) }
func Subc(rd, rs uint8) uint16 { return Encode(OpAluReg, AluSubc, rd, rs) }
func And(rd, rs uint8) uint16  { return Encode(OpAluReg, AluAnd, rd, rs) }
func Or(rd, rs uint8) uint16   { return Encode(OpAluReg, AluOr, rd, rs) }
func Xor(rd, rs uint8) uint16  { return Encode(OpAluReg, AluXor, rd, rs) }
func Nand(rd, rs uint8) uint16 { return Encode(OpAluReg, AluNand, rd, rs) }
func Not(rd uint8) uint16      { return Encode(OpAluReg, AluNot, rd, 0) }

// Addi, Movi and Lui each consume a trailing immediate word (append
// via Builder.Immediate).
func Addi(rd uint8) uint16 { return Encode(OpAluImm, ImmAddi, rd, 0) }
func Movi(rd uint8) uint16 { return Encode(OpAluImm, ImmMovi, rd, 0) }
func Lui(rd uint8) uint16  { return Encode(OpAluImm, ImmLui, rd, 0) }

func Shl(rd, rs uint8) uint16  { return Encode(OpShift, ShiftShl, rd, rs) }
func Shr(rd, rs uint8) uint16  { return Encode(OpShift, ShiftShr, rd, rs) }
func Sshr(rd, rs uint8) uint16 { return Encode(OpShift, ShiftSshr, rd, rs) }
func Rotl(rd, rs uint8) uint16 { return Encode(OpShift, ShiftRotl, rd, rs) }
func Rotr(rd, rs uint8) uint16 { return Encode(OpShift, ShiftRotr, rd, rs) }
func Shlc(rd, rs uint8) uint16 { return Encode(OpShift, ShiftShlc, rd, rs) }
func Shrc(rd, rs uint8) uint16 { return Encode(OpShift, ShiftShrc, rd, rs) }

// LW/SW/SWI each consume a trailing displacement/immediate word.
func LW(rd, rs uint8) uint16  { return Encode(OpMem, MemLW, rd, rs) }
func SW(rd, rs uint8) uint16  { return Encode(OpMem, MemSW, rd, rs) }
func SWI(rd uint8) uint16     { return Encode(OpMem, MemSWI, rd, 0) }

// JMP consumes a trailing absolute target word; JALR does not (the
// target lives in Rs, the return address is written to Rd).
func JMP() uint16          { return Encode(OpFlow, FlowJMP, 0, 0) }
func JALR(rd, rs uint8) uint16 { return Encode(OpFlow, FlowJALR, rd, rs) }

// Branch encodes a conditional branch; cond is one of the B*
// constants above. Every branch consumes a trailing absolute target
// word.
func Branch(cond uint8) uint16 { return Encode(OpBranch, cond, 0, 0) }

func NOP() uint16  { return Encode(OpSys, SysNOP, 0, 0) }
func HALT() uint16 { return Encode(OpSys, SysHALT, 0, 0) }
