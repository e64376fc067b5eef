package cpu

// This file builds the 256-entry opcode table, including the documented
// 6502 instruction set and the undocumented two-operation fusions that
// commercial NES software occasionally depends on (MMC carts' copy
// protection, a handful of demos, and some compression tricks).
//
// Every entry resolves its operand through operandAddress for the
// instruction's addressing mode, then calls a shared operation helper.
// Addressing modes never add the "+1 extra cycle on page cross" penalty;
// that refinement is out of scope for this emulator's accuracy class.

type entry struct {
	name   string
	mode   addrMode
	cycles uint8
	exec   func(c *CPU, m addrMode)
}

func (c *CPU) buildTable() {
	set := func(op uint8, e entry) {
		c.table[op] = opInfo{name: e.name, mode: e.mode, cycles: e.cycles, exec: e.exec}
	}

	// --- Load/store ---
	set(0xA9, entry{"LDA", modeImmediate, 2, opLDA})
	set(0xA5, entry{"LDA", modeZeroPage, 3, opLDA})
	set(0xB5, entry{"LDA", modeZeroPageX, 4, opLDA})
	set(0xAD, entry{"LDA", modeAbsolute, 4, opLDA})
	set(0xBD, entry{"LDA", modeAbsoluteX, 4, opLDA})
	set(0xB9, entry{"LDA", modeAbsoluteY, 4, opLDA})
	set(0xA1, entry{"LDA", modeIndexedIndirect, 6, opLDA})
	set(0xB1, entry{"LDA", modeIndirectIndexed, 5, opLDA})

	set(0xA2, entry{"LDX", modeImmediate, 2, opLDX})
	set(0xA6, entry{"LDX", modeZeroPage, 3, opLDX})
	set(0xB6, entry{"LDX", modeZeroPageY, 4, opLDX})
	set(0xAE, entry{"LDX", modeAbsolute, 4, opLDX})
	set(0xBE, entry{"LDX", modeAbsoluteY, 4, opLDX})

	set(0xA0, entry{"LDY", modeImmediate, 2, opLDY})
	set(0xA4, entry{"LDY", modeZeroPage, 3, opLDY})
	set(0xB4, entry{"LDY", modeZeroPageX, 4, opLDY})
	set(0xAC, entry{"LDY", modeAbsolute, 4, opLDY})
	set(0xBC, entry{"LDY", modeAbsoluteX, 4, opLDY})

	set(0x85, entry{"STA", modeZeroPage, 3, opSTA})
	set(0x95, entry{"STA", modeZeroPageX, 4, opSTA})
	set(0x8D, entry{"STA", modeAbsolute, 4, opSTA})
	set(0x9D, entry{"STA", modeAbsoluteX, 5, opSTA})
	set(0x99, entry{"STA", modeAbsoluteY, 5, opSTA})
	set(0x81, entry{"STA", modeIndexedIndirect, 6, opSTA})
	set(0x91, entry{"STA", modeIndirectIndexed, 6, opSTA})

	set(0x86, entry{"STX", modeZeroPage, 3, opSTX})
	set(0x96, entry{"STX", modeZeroPageY, 4, opSTX})
	set(0x8E, entry{"STX", modeAbsolute, 4, opSTX})

	set(0x84, entry{"STY", modeZeroPage, 3, opSTY})
	set(0x94, entry{"STY", modeZeroPageX, 4, opSTY})
	set(0x8C, entry{"STY", modeAbsolute, 4, opSTY})

	// --- Transfers / stack ---
	set(0xAA, entry{"TAX", modeImplied, 2, opTAX})
	set(0xA8, entry{"TAY", modeImplied, 2, opTAY})
	set(0x8A, entry{"TXA", modeImplied, 2, opTXA})
	set(0x98, entry{"TYA", modeImplied, 2, opTYA})
	set(0xBA, entry{"TSX", modeImplied, 2, opTSX})
	set(0x9A, entry{"TXS", modeImplied, 2, opTXS})
	set(0x48, entry{"PHA", modeImplied, 3, opPHA})
	set(0x08, entry{"PHP", modeImplied, 3, opPHP})
	set(0x68, entry{"PLA", modeImplied, 4, opPLA})
	set(0x28, entry{"PLP", modeImplied, 4, opPLP})

	// --- Logic ---
	set(0x29, entry{"AND", modeImmediate, 2, opAND})
	set(0x25, entry{"AND", modeZeroPage, 3, opAND})
	set(0x35, entry{"AND", modeZeroPageX, 4, opAND})
	set(0x2D, entry{"AND", modeAbsolute, 4, opAND})
	set(0x3D, entry{"AND", modeAbsoluteX, 4, opAND})
	set(0x39, entry{"AND", modeAbsoluteY, 4, opAND})
	set(0x21, entry{"AND", modeIndexedIndirect, 6, opAND})
	set(0x31, entry{"AND", modeIndirectIndexed, 5, opAND})

	set(0x09, entry{"ORA", modeImmediate, 2, opORA})
	set(0x05, entry{"ORA", modeZeroPage, 3, opORA})
	set(0x15, entry{"ORA", modeZeroPageX, 4, opORA})
	set(0x0D, entry{"ORA", modeAbsolute, 4, opORA})
	set(0x1D, entry{"ORA", modeAbsoluteX, 4, opORA})
	set(0x19, entry{"ORA", modeAbsoluteY, 4, opORA})
	set(0x01, entry{"ORA", modeIndexedIndirect, 6, opORA})
	set(0x11, entry{"ORA", modeIndirectIndexed, 5, opORA})

	set(0x49, entry{"EOR", modeImmediate, 2, opEOR})
	set(0x45, entry{"EOR", modeZeroPage, 3, opEOR})
	set(0x55, entry{"EOR", modeZeroPageX, 4, opEOR})
	set(0x4D, entry{"EOR", modeAbsolute, 4, opEOR})
	set(0x5D, entry{"EOR", modeAbsoluteX, 4, opEOR})
	set(0x59, entry{"EOR", modeAbsoluteY, 4, opEOR})
	set(0x41, entry{"EOR", modeIndexedIndirect, 6, opEOR})
	set(0x51, entry{"EOR", modeIndirectIndexed, 5, opEOR})

	set(0x24, entry{"BIT", modeZeroPage, 3, opBIT})
	set(0x2C, entry{"BIT", modeAbsolute, 4, opBIT})

	// --- Arithmetic ---
	set(0x69, entry{"ADC", modeImmediate, 2, opADC})
	set(0x65, entry{"ADC", modeZeroPage, 3, opADC})
	set(0x75, entry{"ADC", modeZeroPageX, 4, opADC})
	set(0x6D, entry{"ADC", modeAbsolute, 4, opADC})
	set(0x7D, entry{"ADC", modeAbsoluteX, 4, opADC})
	set(0x79, entry{"ADC", modeAbsoluteY, 4, opADC})
	set(0x61, entry{"ADC", modeIndexedIndirect, 6, opADC})
	set(0x71, entry{"ADC", modeIndirectIndexed, 5, opADC})

	set(0xE9, entry{"SBC", modeImmediate, 2, opSBC})
	set(0xEB, entry{"SBC", modeImmediate, 2, opSBC}) // illegal dup of 0xE9
	set(0xE5, entry{"SBC", modeZeroPage, 3, opSBC})
	set(0xF5, entry{"SBC", modeZeroPageX, 4, opSBC})
	set(0xED, entry{"SBC", modeAbsolute, 4, opSBC})
	set(0xFD, entry{"SBC", modeAbsoluteX, 4, opSBC})
	set(0xF9, entry{"SBC", modeAbsoluteY, 4, opSBC})
	set(0xE1, entry{"SBC", modeIndexedIndirect, 6, opSBC})
	set(0xF1, entry{"SBC", modeIndirectIndexed, 5, opSBC})

	set(0xC9, entry{"CMP", modeImmediate, 2, opCMP})
	set(0xC5, entry{"CMP", modeZeroPage, 3, opCMP})
	set(0xD5, entry{"CMP", modeZeroPageX, 4, opCMP})
	set(0xCD, entry{"CMP", modeAbsolute, 4, opCMP})
	set(0xDD, entry{"CMP", modeAbsoluteX, 4, opCMP})
	set(0xD9, entry{"CMP", modeAbsoluteY, 4, opCMP})
	set(0xC1, entry{"CMP", modeIndexedIndirect, 6, opCMP})
	set(0xD1, entry{"CMP", modeIndirectIndexed, 5, opCMP})

	set(0xE0, entry{"CPX", modeImmediate, 2, opCPX})
	set(0xE4, entry{"CPX", modeZeroPage, 3, opCPX})
	set(0xEC, entry{"CPX", modeAbsolute, 4, opCPX})

	set(0xC0, entry{"CPY", modeImmediate, 2, opCPY})
	set(0xC4, entry{"CPY", modeZeroPage, 3, opCPY})
	set(0xCC, entry{"CPY", modeAbsolute, 4, opCPY})

	// --- Increment/decrement ---
	set(0xE6, entry{"INC", modeZeroPage, 5, opINC})
	set(0xF6, entry{"INC", modeZeroPageX, 6, opINC})
	set(0xEE, entry{"INC", modeAbsolute, 6, opINC})
	set(0xFE, entry{"INC", modeAbsoluteX, 7, opINC})
	set(0xE8, entry{"INX", modeImplied, 2, opINX})
	set(0xC8, entry{"INY", modeImplied, 2, opINY})

	set(0xC6, entry{"DEC", modeZeroPage, 5, opDEC})
	set(0xD6, entry{"DEC", modeZeroPageX, 6, opDEC})
	set(0xCE, entry{"DEC", modeAbsolute, 6, opDEC})
	set(0xDE, entry{"DEC", modeAbsoluteX, 7, opDEC})
	set(0xCA, entry{"DEX", modeImplied, 2, opDEX})
	set(0x88, entry{"DEY", modeImplied, 2, opDEY})

	// --- Shifts/rotates ---
	set(0x0A, entry{"ASL", modeAccumulator, 2, opASL})
	set(0x06, entry{"ASL", modeZeroPage, 5, opASL})
	set(0x16, entry{"ASL", modeZeroPageX, 6, opASL})
	set(0x0E, entry{"ASL", modeAbsolute, 6, opASL})
	set(0x1E, entry{"ASL", modeAbsoluteX, 7, opASL})

	set(0x4A, entry{"LSR", modeAccumulator, 2, opLSR})
	set(0x46, entry{"LSR", modeZeroPage, 5, opLSR})
	set(0x56, entry{"LSR", modeZeroPageX, 6, opLSR})
	set(0x4E, entry{"LSR", modeAbsolute, 6, opLSR})
	set(0x5E, entry{"LSR", modeAbsoluteX, 7, opLSR})

	set(0x2A, entry{"ROL", modeAccumulator, 2, opROL})
	set(0x26, entry{"ROL", modeZeroPage, 5, opROL})
	set(0x36, entry{"ROL", modeZeroPageX, 6, opROL})
	set(0x2E, entry{"ROL", modeAbsolute, 6, opROL})
	set(0x3E, entry{"ROL", modeAbsoluteX, 7, opROL})

	set(0x6A, entry{"ROR", modeAccumulator, 2, opROR})
	set(0x66, entry{"ROR", modeZeroPage, 5, opROR})
	set(0x76, entry{"ROR", modeZeroPageX, 6, opROR})
	set(0x6E, entry{"ROR", modeAbsolute, 6, opROR})
	set(0x7E, entry{"ROR", modeAbsoluteX, 7, opROR})

	// --- Control flow ---
	set(0x4C, entry{"JMP", modeAbsolute, 3, opJMP})
	set(0x6C, entry{"JMP", modeIndirect, 5, opJMP})
	set(0x20, entry{"JSR", modeAbsolute, 6, opJSR})
	set(0x60, entry{"RTS", modeImplied, 6, opRTS})
	set(0x40, entry{"RTI", modeImplied, 6, opRTI})
	set(0x00, entry{"BRK", modeImplied, 7, opBRK})

	set(0x90, entry{"BCC", modeRelative, 2, branchIf(func(c *CPU) bool { return !c.getFlag(flagC) })})
	set(0xB0, entry{"BCS", modeRelative, 2, branchIf(func(c *CPU) bool { return c.getFlag(flagC) })})
	set(0xF0, entry{"BEQ", modeRelative, 2, branchIf(func(c *CPU) bool { return c.getFlag(flagZ) })})
	set(0xD0, entry{"BNE", modeRelative, 2, branchIf(func(c *CPU) bool { return !c.getFlag(flagZ) })})
	set(0x30, entry{"BMI", modeRelative, 2, branchIf(func(c *CPU) bool { return c.getFlag(flagN) })})
	set(0x10, entry{"BPL", modeRelative, 2, branchIf(func(c *CPU) bool { return !c.getFlag(flagN) })})
	set(0x50, entry{"BVC", modeRelative, 2, branchIf(func(c *CPU) bool { return !c.getFlag(flagV) })})
	set(0x70, entry{"BVS", modeRelative, 2, branchIf(func(c *CPU) bool { return c.getFlag(flagV) })})

	// --- Flags ---
	set(0x18, entry{"CLC", modeImplied, 2, flagSetter(flagC, false)})
	set(0x38, entry{"SEC", modeImplied, 2, flagSetter(flagC, true)})
	set(0x58, entry{"CLI", modeImplied, 2, flagSetter(flagI, false)})
	set(0x78, entry{"SEI", modeImplied, 2, flagSetter(flagI, true)})
	set(0xD8, entry{"CLD", modeImplied, 2, flagSetter(flagD, false)})
	set(0xF8, entry{"SED", modeImplied, 2, flagSetter(flagD, true)})
	set(0xB8, entry{"CLV", modeImplied, 2, flagSetter(flagV, false)})

	// --- Documented NOP ---
	set(0xEA, entry{"NOP", modeImplied, 2, opNOP})

	c.fillIllegalAndNOPs(set)
}

func flagSetter(mask uint8, v bool) func(c *CPU, m addrMode) {
	return func(c *CPU, m addrMode) { c.setFlag(mask, v) }
}

func branchIf(pred func(c *CPU) bool) func(c *CPU, m addrMode) {
	return func(c *CPU, m addrMode) {
		target := c.operandAddress(m)
		if pred(c) {
			if (target & 0xFF00) != (c.PC & 0xFF00) {
				c.cycles++
			}
			c.PC = target
			c.cycles++
		}
	}
}

func opLDA(c *CPU, m addrMode) { c.A = c.bus.Read(c.operandAddress(m)); c.setZN(c.A) }
func opLDX(c *CPU, m addrMode) { c.X = c.bus.Read(c.operandAddress(m)); c.setZN(c.X) }
func opLDY(c *CPU, m addrMode) { c.Y = c.bus.Read(c.operandAddress(m)); c.setZN(c.Y) }
func opSTA(c *CPU, m addrMode) { c.bus.Write(c.operandAddress(m), c.A) }
func opSTX(c *CPU, m addrMode) { c.bus.Write(c.operandAddress(m), c.X) }
func opSTY(c *CPU, m addrMode) { c.bus.Write(c.operandAddress(m), c.Y) }

func opTAX(c *CPU, m addrMode) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, m addrMode) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU, m addrMode) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU, m addrMode) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, m addrMode) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *CPU, m addrMode) { c.SP = c.X }
func opPHA(c *CPU, m addrMode) { c.push(c.A) }
func opPHP(c *CPU, m addrMode) { c.push(c.P | flagB | flagU) }
func opPLA(c *CPU, m addrMode) { c.A = c.pop(); c.setZN(c.A) }
func opPLP(c *CPU, m addrMode) { c.P = (c.pop() &^ flagB) | flagU }

func opAND(c *CPU, m addrMode) { c.A &= c.bus.Read(c.operandAddress(m)); c.setZN(c.A) }
func opORA(c *CPU, m addrMode) { c.A |= c.bus.Read(c.operandAddress(m)); c.setZN(c.A) }
func opEOR(c *CPU, m addrMode) { c.A ^= c.bus.Read(c.operandAddress(m)); c.setZN(c.A) }

func opBIT(c *CPU, m addrMode) {
	v := c.bus.Read(c.operandAddress(m))
	c.setFlag(flagZ, (c.A&v) == 0)
	c.setFlag(flagV, v&0x40 != 0)
	c.setFlag(flagN, v&0x80 != 0)
}

// adc implements addition with carry; the overflow flag follows the
// canonical two's-complement sign-mismatch rule.
func (c *CPU) adc(v uint8) {
	carryIn := uint16(0)
	if c.getFlag(flagC) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(v) + carryIn
	result := uint8(sum)
	c.setFlag(flagC, sum > 0xFF)
	c.setFlag(flagV, (c.A^result)&(v^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func opADC(c *CPU, m addrMode) { c.adc(c.bus.Read(c.operandAddress(m))) }
func opSBC(c *CPU, m addrMode) { c.adc(^c.bus.Read(c.operandAddress(m))) }

func (c *CPU) compare(reg, v uint8) {
	c.setFlag(flagC, reg >= v)
	c.setZN(reg - v)
}

func opCMP(c *CPU, m addrMode) { c.compare(c.A, c.bus.Read(c.operandAddress(m))) }
func opCPX(c *CPU, m addrMode) { c.compare(c.X, c.bus.Read(c.operandAddress(m))) }
func opCPY(c *CPU, m addrMode) { c.compare(c.Y, c.bus.Read(c.operandAddress(m))) }

func opINC(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.setZN(v)
}
func opINX(c *CPU, m addrMode) { c.X++; c.setZN(c.X) }
func opINY(c *CPU, m addrMode) { c.Y++; c.setZN(c.Y) }

func opDEC(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.setZN(v)
}
func opDEX(c *CPU, m addrMode) { c.X--; c.setZN(c.X) }
func opDEY(c *CPU, m addrMode) { c.Y--; c.setZN(c.Y) }

func (c *CPU) asl(v uint8) uint8 {
	c.setFlag(flagC, v&0x80 != 0)
	r := v << 1
	c.setZN(r)
	return r
}
func (c *CPU) lsr(v uint8) uint8 {
	c.setFlag(flagC, v&0x01 != 0)
	r := v >> 1
	c.setZN(r)
	return r
}
func (c *CPU) rol(v uint8) uint8 {
	carryIn := uint8(0)
	if c.getFlag(flagC) {
		carryIn = 1
	}
	c.setFlag(flagC, v&0x80 != 0)
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}
func (c *CPU) ror(v uint8) uint8 {
	carryIn := uint8(0)
	if c.getFlag(flagC) {
		carryIn = 0x80
	}
	c.setFlag(flagC, v&0x01 != 0)
	r := (v >> 1) | carryIn
	c.setZN(r)
	return r
}

func rmwOrAcc(c *CPU, m addrMode, f func(*CPU, uint8) uint8) {
	if m == modeAccumulator {
		c.A = f(c, c.A)
		return
	}
	addr := c.operandAddress(m)
	v := c.bus.Read(addr)
	c.bus.Write(addr, v) // dummy write, matches real 6502 RMW bus behavior
	r := f(c, v)
	c.bus.Write(addr, r)
}

func opASL(c *CPU, m addrMode) { rmwOrAcc(c, m, (*CPU).asl) }
func opLSR(c *CPU, m addrMode) { rmwOrAcc(c, m, (*CPU).lsr) }
func opROL(c *CPU, m addrMode) { rmwOrAcc(c, m, (*CPU).rol) }
func opROR(c *CPU, m addrMode) { rmwOrAcc(c, m, (*CPU).ror) }

func opJMP(c *CPU, m addrMode) { c.PC = c.operandAddress(m) }
func opJSR(c *CPU, m addrMode) {
	target := c.operandAddress(m)
	c.push16(c.PC - 1)
	c.PC = target
}
func opRTS(c *CPU, m addrMode) { c.PC = c.pop16() + 1 }
func opRTI(c *CPU, m addrMode) {
	c.P = (c.pop() &^ flagB) | flagU
	c.PC = c.pop16()
}
func opBRK(c *CPU, m addrMode) {
	c.PC++
	c.push16(c.PC)
	c.push(c.P | flagB | flagU)
	c.setFlag(flagI, true)
	c.PC = c.read16(irqVector)
}

func opNOP(c *CPU, m addrMode) {}
