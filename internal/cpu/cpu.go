// Package cpu implements a cycle-counting interpreter for the MOS 6502
// derivative used by the NES, including the documented instruction set and
// the undocumented opcode fusions relied on by some commercial ROMs.
package cpu

// Bus is the memory interface the CPU executes against. The CPU never talks
// to RAM, the PPU, or the cartridge directly; everything goes through here.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Status flag bit positions within P.
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5 // always reads as 1, never affected by ALU ops
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

const (
	stackBase   uint16 = 0x0100
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
)

// CPU holds the full register file and interrupt latches of a single 6502.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8 // N V 1 B D I Z C

	bus    Bus
	cycles uint64

	nmiEdge bool // set by PPU, cleared once serviced
	nmiLast bool // previous NMI line level, for edge detection
	irqLine bool // level-triggered, OR of cartridge/APU sources

	// opcode table, built once
	table [256]opInfo
}

type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
)

type opInfo struct {
	name   string
	mode   addrMode
	cycles uint8
	exec   func(c *CPU, m addrMode)
}

// New builds a CPU wired to bus. Call Reset before stepping it.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.buildTable()
	return c
}

// Cycles returns the running total of CPU cycles consumed since creation.
func (c *CPU) Cycles() uint64 { return c.cycles }

// RestoreCycles overwrites the running cycle total, used by snapshot load
// to make the counter resume exactly where it was saved.
func (c *CPU) RestoreCycles(v uint64) { c.cycles = v }

// Reset drives the documented power-on/reset sequence: I is set, the stack
// pointer settles at 0xFD, and PC loads from the reset vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagU | flagI
	c.PC = c.read16(resetVector)
	c.nmiEdge = false
	c.nmiLast = false
	c.irqLine = false
	c.cycles += 7
}

// RaiseNMI latches a non-maskable-interrupt edge. It is observed at the next
// instruction boundary, never mid-instruction.
func (c *CPU) RaiseNMI() { c.nmiEdge = true }

// SetIRQLine sets the level-triggered IRQ line state, as driven by the
// cartridge mapper or the APU frame counter.
func (c *CPU) SetIRQLine(asserted bool) { c.irqLine = asserted }

// getFlag/setFlag are tiny helpers kept for readability at call sites.
func (c *CPU) getFlag(mask uint8) bool { return c.P&mask != 0 }
func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

// read16bug reproduces the indirect-JMP page-wrap bug: when the pointer's
// low byte is 0xFF, the high byte is fetched from the start of the same
// page instead of crossing into the next one.
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := uint16(c.bus.Read(hiAddr))
	return hi<<8 | lo
}

// serviceInterrupts runs at an instruction boundary, highest priority first.
// NMI is edge-triggered and always wins over a pending level IRQ.
func (c *CPU) serviceInterrupts() {
	nmi := c.nmiEdge && !c.nmiLast
	c.nmiLast = c.nmiEdge
	if c.nmiEdge {
		c.nmiEdge = false
	}
	if nmi {
		c.push16(c.PC)
		c.push((c.P | flagU) &^ flagB)
		c.setFlag(flagI, true)
		c.PC = c.read16(nmiVector)
		c.cycles += 7
		return
	}
	if c.irqLine && !c.getFlag(flagI) {
		c.push16(c.PC)
		c.push((c.P | flagU) &^ flagB)
		c.setFlag(flagI, true)
		c.PC = c.read16(irqVector)
		c.cycles += 7
	}
}

// Step executes exactly one instruction (after servicing any pending
// interrupt) and returns the number of CPU cycles it consumed.
func (c *CPU) Step() uint8 {
	c.serviceInterrupts()
	before := c.cycles

	opcode := c.bus.Read(c.PC)
	c.PC++
	info := c.table[opcode]
	info.exec(c, info.mode)
	c.cycles += uint64(info.cycles)

	used := c.cycles - before
	if used > 255 {
		used = 255
	}
	return uint8(used)
}

// operandAddress resolves the effective address for the given mode,
// advancing PC past the operand bytes. modeImplied/modeAccumulator have no
// operand and return 0 (callers must not dereference it).
func (c *CPU) operandAddress(m addrMode) uint16 {
	switch m {
	case modeImmediate:
		addr := c.PC
		c.PC++
		return addr
	case modeZeroPage:
		addr := uint16(c.bus.Read(c.PC))
		c.PC++
		return addr
	case modeZeroPageX:
		addr := uint16(uint8(c.bus.Read(c.PC) + c.X))
		c.PC++
		return addr
	case modeZeroPageY:
		addr := uint16(uint8(c.bus.Read(c.PC) + c.Y))
		c.PC++
		return addr
	case modeRelative:
		offset := int8(c.bus.Read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset))
	case modeAbsolute:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr
	case modeAbsoluteX:
		addr := c.read16(c.PC) + uint16(c.X)
		c.PC += 2
		return addr
	case modeAbsoluteY:
		addr := c.read16(c.PC) + uint16(c.Y)
		c.PC += 2
		return addr
	case modeIndirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16bug(ptr)
	case modeIndexedIndirect:
		zp := uint8(c.bus.Read(c.PC) + c.X)
		c.PC++
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(uint8(zp + 1))))
		return hi<<8 | lo
	case modeIndirectIndexed:
		zp := c.bus.Read(c.PC)
		c.PC++
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(uint8(zp + 1))))
		return (hi<<8 | lo) + uint16(c.Y)
	default:
		return 0
	}
}
