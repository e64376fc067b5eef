package cpu

// fillIllegalAndNOPs populates the undocumented two-operation fusions and
// the assorted multi-byte NOP encodings that real 6502 silicon decodes from
// otherwise-unused opcode bytes. KIL/JAM opcodes are mapped to a harmless
// two-cycle no-op instead of halting the processor, since a handful of
// commercial ROMs execute them incidentally in dead code paths.
func (c *CPU) fillIllegalAndNOPs(set func(op uint8, e entry)) {
	// LAX: load A and X simultaneously.
	set(0xA7, entry{"LAX", modeZeroPage, 3, opLAX})
	set(0xB7, entry{"LAX", modeZeroPageY, 4, opLAX})
	set(0xAF, entry{"LAX", modeAbsolute, 4, opLAX})
	set(0xBF, entry{"LAX", modeAbsoluteY, 4, opLAX})
	set(0xA3, entry{"LAX", modeIndexedIndirect, 6, opLAX})
	set(0xB3, entry{"LAX", modeIndirectIndexed, 5, opLAX})

	// SAX: store A&X, flags untouched.
	set(0x87, entry{"SAX", modeZeroPage, 3, opSAX})
	set(0x97, entry{"SAX", modeZeroPageY, 4, opSAX})
	set(0x8F, entry{"SAX", modeAbsolute, 4, opSAX})
	set(0x83, entry{"SAX", modeIndexedIndirect, 6, opSAX})

	// DCP: DEC then CMP.
	set(0xC7, entry{"DCP", modeZeroPage, 5, opDCP})
	set(0xD7, entry{"DCP", modeZeroPageX, 6, opDCP})
	set(0xCF, entry{"DCP", modeAbsolute, 6, opDCP})
	set(0xDF, entry{"DCP", modeAbsoluteX, 7, opDCP})
	set(0xDB, entry{"DCP", modeAbsoluteY, 7, opDCP})
	set(0xC3, entry{"DCP", modeIndexedIndirect, 8, opDCP})
	set(0xD3, entry{"DCP", modeIndirectIndexed, 8, opDCP})

	// ISC/ISB: INC then SBC.
	set(0xE7, entry{"ISC", modeZeroPage, 5, opISC})
	set(0xF7, entry{"ISC", modeZeroPageX, 6, opISC})
	set(0xEF, entry{"ISC", modeAbsolute, 6, opISC})
	set(0xFF, entry{"ISC", modeAbsoluteX, 7, opISC})
	set(0xFB, entry{"ISC", modeAbsoluteY, 7, opISC})
	set(0xE3, entry{"ISC", modeIndexedIndirect, 8, opISC})
	set(0xF3, entry{"ISC", modeIndirectIndexed, 8, opISC})

	// SLO: ASL then ORA.
	set(0x07, entry{"SLO", modeZeroPage, 5, opSLO})
	set(0x17, entry{"SLO", modeZeroPageX, 6, opSLO})
	set(0x0F, entry{"SLO", modeAbsolute, 6, opSLO})
	set(0x1F, entry{"SLO", modeAbsoluteX, 7, opSLO})
	set(0x1B, entry{"SLO", modeAbsoluteY, 7, opSLO})
	set(0x03, entry{"SLO", modeIndexedIndirect, 8, opSLO})
	set(0x13, entry{"SLO", modeIndirectIndexed, 8, opSLO})

	// RLA: ROL then AND.
	set(0x27, entry{"RLA", modeZeroPage, 5, opRLA})
	set(0x37, entry{"RLA", modeZeroPageX, 6, opRLA})
	set(0x2F, entry{"RLA", modeAbsolute, 6, opRLA})
	set(0x3F, entry{"RLA", modeAbsoluteX, 7, opRLA})
	set(0x3B, entry{"RLA", modeAbsoluteY, 7, opRLA})
	set(0x23, entry{"RLA", modeIndexedIndirect, 8, opRLA})
	set(0x33, entry{"RLA", modeIndirectIndexed, 8, opRLA})

	// SRE: LSR then EOR.
	set(0x47, entry{"SRE", modeZeroPage, 5, opSRE})
	set(0x57, entry{"SRE", modeZeroPageX, 6, opSRE})
	set(0x4F, entry{"SRE", modeAbsolute, 6, opSRE})
	set(0x5F, entry{"SRE", modeAbsoluteX, 7, opSRE})
	set(0x5B, entry{"SRE", modeAbsoluteY, 7, opSRE})
	set(0x43, entry{"SRE", modeIndexedIndirect, 8, opSRE})
	set(0x53, entry{"SRE", modeIndirectIndexed, 8, opSRE})

	// RRA: ROR then ADC.
	set(0x67, entry{"RRA", modeZeroPage, 5, opRRA})
	set(0x77, entry{"RRA", modeZeroPageX, 6, opRRA})
	set(0x6F, entry{"RRA", modeAbsolute, 6, opRRA})
	set(0x7F, entry{"RRA", modeAbsoluteX, 7, opRRA})
	set(0x7B, entry{"RRA", modeAbsoluteY, 7, opRRA})
	set(0x63, entry{"RRA", modeIndexedIndirect, 8, opRRA})
	set(0x73, entry{"RRA", modeIndirectIndexed, 8, opRRA})

	// Single-byte immediate combo ops.
	set(0x0B, entry{"ANC", modeImmediate, 2, opANC})
	set(0x2B, entry{"ANC", modeImmediate, 2, opANC})
	set(0x4B, entry{"ALR", modeImmediate, 2, opALR})
	set(0x6B, entry{"ARR", modeImmediate, 2, opARR})
	set(0x8B, entry{"XAA", modeImmediate, 2, opXAA})
	set(0xAB, entry{"LAX", modeImmediate, 2, opLAXImm})
	set(0xCB, entry{"AXS", modeImmediate, 2, opAXS})

	// Unstable high-byte-dependent store/load ops. Behavior here follows the
	// commonly-documented "stable" subset: AND the high byte of the target
	// address plus one into the stored value.
	set(0x9F, entry{"SHA", modeAbsoluteY, 5, opSHA})
	set(0x93, entry{"SHA", modeIndirectIndexed, 6, opSHA})
	set(0x9E, entry{"SHX", modeAbsoluteY, 5, opSHX})
	set(0x9C, entry{"SHY", modeAbsoluteX, 5, opSHY})
	set(0x9B, entry{"TAS", modeAbsoluteY, 5, opTAS})
	set(0xBB, entry{"LAS", modeAbsoluteY, 4, opLAS})

	// KIL/JAM: treated as harmless two-cycle no-ops for compatibility.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, entry{"KIL", modeImplied, 2, opNOP})
	}

	// Multi-byte/multi-cycle NOPs that only burn bus cycles.
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, entry{"NOP", modeImplied, 2, opNOP})
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, entry{"NOP", modeImmediate, 2, opNOPRead})
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, entry{"NOP", modeZeroPage, 3, opNOPRead})
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, entry{"NOP", modeZeroPageX, 4, opNOPRead})
	}
	set(0x0C, entry{"NOP", modeAbsolute, 4, opNOPRead})
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, entry{"NOP", modeAbsoluteX, 4, opNOPRead})
	}
}

func opNOPRead(c *CPU, m addrMode) { c.bus.Read(c.operandAddress(m)) }

func opLAX(c *CPU, m addrMode) {
	v := c.bus.Read(c.operandAddress(m))
	c.A, c.X = v, v
	c.setZN(v)
}

func opLAXImm(c *CPU, m addrMode) {
	// Unstable on real silicon; the common stable behavior ANDs the operand
	// with the existing accumulator before loading A and X.
	v := c.bus.Read(c.operandAddress(m)) & c.A
	c.A, c.X = v, v
	c.setZN(v)
}

func opSAX(c *CPU, m addrMode) { c.bus.Write(c.operandAddress(m), c.A&c.X) }

func opDCP(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.compare(c.A, v)
}

func opISC(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.adc(^v)
}

func opSLO(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.asl(c.bus.Read(addr))
	c.bus.Write(addr, v)
	c.A |= v
	c.setZN(c.A)
}

func opRLA(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.rol(c.bus.Read(addr))
	c.bus.Write(addr, v)
	c.A &= v
	c.setZN(c.A)
}

func opSRE(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.lsr(c.bus.Read(addr))
	c.bus.Write(addr, v)
	c.A ^= v
	c.setZN(c.A)
}

func opRRA(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	v := c.ror(c.bus.Read(addr))
	c.bus.Write(addr, v)
	c.adc(v)
}

func opANC(c *CPU, m addrMode) {
	c.A &= c.bus.Read(c.operandAddress(m))
	c.setZN(c.A)
	c.setFlag(flagC, c.A&0x80 != 0)
}

func opALR(c *CPU, m addrMode) {
	c.A &= c.bus.Read(c.operandAddress(m))
	c.A = c.lsr(c.A)
}

func opARR(c *CPU, m addrMode) {
	c.A &= c.bus.Read(c.operandAddress(m))
	c.A = c.ror(c.A)
	bit6 := c.A&0x40 != 0
	bit5 := c.A&0x20 != 0
	c.setFlag(flagC, bit6)
	c.setFlag(flagV, bit6 != bit5)
}

func opXAA(c *CPU, m addrMode) {
	// Unstable; common stable approximation used by test ROMs.
	c.A = c.X & c.bus.Read(c.operandAddress(m))
	c.setZN(c.A)
}

func opAXS(c *CPU, m addrMode) {
	v := c.bus.Read(c.operandAddress(m))
	x := c.A & c.X
	c.setFlag(flagC, x >= v)
	c.X = x - v
	c.setZN(c.X)
}

func opLAS(c *CPU, m addrMode) {
	v := c.bus.Read(c.operandAddress(m)) & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setZN(v)
}

func opTAS(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	c.SP = c.A & c.X
	c.bus.Write(addr, c.SP&(uint8(addr>>8)+1))
}

func opSHA(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	c.bus.Write(addr, c.A&c.X&(uint8(addr>>8)+1))
}

func opSHX(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	c.bus.Write(addr, c.X&(uint8(addr>>8)+1))
}

func opSHY(c *CPU, m addrMode) {
	addr := c.operandAddress(m)
	c.bus.Write(addr, c.Y&(uint8(addr>>8)+1))
}
