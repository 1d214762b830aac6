package cpu

import "tilemach/internal/isa"

// execAluReg handles the register-register ALU class: add, sub, addc,
// subc, and, or, xor, nand, not. Every form except not computes
// Rd := Rd OP Rs (not computes Rd := ^Rd). The arithmetic forms update
// flags via setArith/setSubtractArith; the logical forms set only Z/N
// via setZNResult.
func (c *CPU) execAluReg(mode, rd, rs uint8) {
	a := c.reg(rd)
	b := c.reg(rs)

	switch mode {
	case isa.AluAdd:
		c.setReg(rd, c.setArith(uint32(a)+uint32(b), int32(int16(a))+int32(int16(b))))
	case isa.AluSub:
		c.setReg(rd, c.setSubtractArith(a, b, 0))
	case isa.AluAddc:
		cin := boolToInt(c.GetFlag(FlagC))
		c.setReg(rd, c.setArith(uint32(a)+uint32(b)+uint32(cin), int32(int16(a))+int32(int16(b))+int32(cin)))
	case isa.AluSubc:
		// C stores the inverse of the borrow, so a clear carry from the
		// previous op means a borrow propagates in here.
		borrowIn := 1 - boolToInt(c.GetFlag(FlagC))
		c.setReg(rd, c.setSubtractArith(a, b, borrowIn))
	case isa.AluAnd:
		c.setReg(rd, c.setZNResult(a&b))
	case isa.AluOr:
		c.setReg(rd, c.setZNResult(a|b))
	case isa.AluXor:
		c.setReg(rd, c.setZNResult(a^b))
	case isa.AluNand:
		c.setReg(rd, c.setZNResult(^(a & b)))
	case isa.AluNot:
		c.setReg(rd, c.setZNResult(^a))
	}
}

// setZNResult sets Z/N from result and returns it unchanged, for the
// purely-logical ops that never carry or overflow.
func (c *CPU) setZNResult(result uint16) uint16 {
	c.setZN(result)
	return result
}

// execAluImm handles the immediate-carrying ALU class: addi, movi,
// lui. Each fetches its trailing immediate word before executing.
func (c *CPU) execAluImm(mode, rd uint8) {
	imm := c.fetchImmediate()
	a := c.reg(rd)

	switch mode {
	case isa.ImmAddi:
		c.setReg(rd, c.setArith(uint32(a)+uint32(imm), int32(int16(a))+int32(int16(imm))))
	case isa.ImmMovi:
		c.setReg(rd, c.setZNResult(imm))
	case isa.ImmLui:
		// Pinned per DESIGN.md to satisfy lui_test: the immediate's low
		// byte becomes Rd's high byte, low byte is zeroed.
		c.setReg(rd, c.setZNResult((imm&0xFF)<<8))
	}
}

// execShift handles the shift/rotate class. The shift amount is the
// low 4 bits of Rs (a register-register form; shifts have no
// immediate form, unlike most other categories).
func (c *CPU) execShift(mode, rd, rs uint8) {
	a := c.reg(rd)
	n := c.reg(rs) & 0xF

	var result uint16
	var carry bool

	switch mode {
	case isa.ShiftShl:
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			carry = (a>>(16-n))&1 != 0
			result = a << n
		}
	case isa.ShiftShr:
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			carry = (a>>(n-1))&1 != 0
			result = a >> n
		}
	case isa.ShiftSshr:
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			carry = (a>>(n-1))&1 != 0
			result = uint16(int16(a) >> n)
		}
	case isa.ShiftRotl:
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			n %= 16
			result = a<<n | a>>(16-n)
			carry = result&1 != 0
		}
	case isa.ShiftRotr:
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			n %= 16
			result = a>>n | a<<(16-n)
			carry = result&0x8000 != 0
		}
	case isa.ShiftShlc:
		cin := uint16(boolToInt(c.GetFlag(FlagC)))
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			carry = (a>>(16-n))&1 != 0
			result = (a << n) | (cin << (n - 1))
		}
	case isa.ShiftShrc:
		cin := uint16(boolToInt(c.GetFlag(FlagC)))
		if n == 0 {
			result, carry = a, c.GetFlag(FlagC)
		} else {
			carry = (a>>(n-1))&1 != 0
			result = (a >> n) | (cin << (16 - n))
		}
	}

	c.setZN(result)
	c.setFlag(FlagC, carry)
	c.setReg(rd, result)
}

// execMem handles lw, sw, swi. lw loads from Rs+imm and sw stores Rs
// to Rd+imm (displacement fetched as a trailing word); swi stores a
// trailing immediate
// directly at the address held in Rd (DESIGN.md's pinned addressing
// mode).
func (c *CPU) execMem(mode, rd, rs uint8) {
	switch mode {
	case isa.MemLW:
		disp := c.fetchImmediate()
		addr := c.reg(rs) + disp
		c.setReg(rd, c.Mem.Read(addr))
	case isa.MemSW:
		disp := c.fetchImmediate()
		addr := c.reg(rd) + disp
		c.Mem.Write(addr, c.reg(rs))
	case isa.MemSWI:
		imm := c.fetchImmediate()
		addr := c.reg(rd)
		c.Mem.Write(addr, imm)
	}
}

// execFlow handles jmp (absolute target, trailing word) and jalr
// (Rd := PC after jalr's own fetch, jump to address in Rs).
func (c *CPU) execFlow(mode, rd, rs uint8) {
	switch mode {
	case isa.FlowJMP:
		target := c.fetchImmediate()
		c.State.PC = target
	case isa.FlowJALR:
		ret := c.State.PC
		target := c.reg(rs)
		c.setReg(rd, ret)
		c.State.PC = target
	}
}

// execBranch handles the fifteen conditional branches. Every form
// fetches a trailing absolute target word regardless of whether the
// branch is taken, so PC past the instruction is always consistent.
func (c *CPU) execBranch(cond uint8) {
	target := c.fetchImmediate()

	z := c.GetFlag(FlagZ)
	n := c.GetFlag(FlagN)
	cf := c.GetFlag(FlagC)
	v := c.GetFlag(FlagV)

	var taken bool
	switch cond {
	case isa.BEQ:
		taken = z
	case isa.BNE:
		taken = !z
	case isa.BP:
		taken = !n && !z
	case isa.BN:
		taken = n
	case isa.BC:
		taken = cf
	case isa.BNC:
		taken = !cf
	case isa.BO:
		taken = v
	case isa.BG: // signed greater: !Z && N==V
		taken = !z && n == v
	case isa.BGE: // signed greater-or-equal: N==V
		taken = n == v
	case isa.BL: // signed less: N!=V
		taken = n != v
	case isa.BLE: // signed less-or-equal: Z || N!=V
		taken = z || n != v
	case isa.BA: // unsigned above: C && !Z (C stores "no borrow"/"carry out" here as plain carry)
		taken = cf && !z
	case isa.BAE: // unsigned above-or-equal
		taken = cf
	case isa.BB: // unsigned below
		taken = !cf
	case isa.BBE: // unsigned below-or-equal
		taken = !cf || z
	}

	if taken {
		c.State.PC = target
	}
}
