// Package bus implements the NES CPU address decoder: 2KB of mirrored
// work RAM, the PPU's eight registers, APU/IO space, the two controller
// ports, and the cartridge's PRG window, all behind one Read/Write pair
// the CPU interpreter consumes.
package bus

import (
	"github.com/claude/nescore/internal/apu"
	"github.com/claude/nescore/internal/cartridge"
	"github.com/claude/nescore/internal/input"
	"github.com/claude/nescore/internal/ppu"
)

// Bus wires RAM, the PPU, the APU, the controller pair, and the loaded
// cartridge into the CPU's flat 16-bit address space.
type Bus struct {
	RAM [2048]uint8

	PPU  *ppu.PPU
	APU  *apu.APU
	Pad  *input.Pair
	Cart *cartridge.Cartridge

	dmaPending bool
	dmaCycles  int
	oddCycle   bool
}

// New creates a bus with a PPU, APU, and controller pair already attached;
// a cartridge must be loaded separately via SetCartridge.
func New() *Bus {
	b := &Bus{
		PPU: ppu.New(),
		APU: apu.New(),
		Pad: input.NewPair(),
	}
	return b
}

// SetCartridge attaches a loaded cartridge, wiring the PPU's CHR/mirroring
// capability to it.
func (b *Bus) SetCartridge(cart *cartridge.Cartridge) {
	b.Cart = cart
	b.PPU.SetCartridge(cart)
}

// Reset returns RAM, the PPU, the APU, and the controllers to power-on
// state without touching the loaded cartridge.
func (b *Bus) Reset() {
	for i := range b.RAM {
		b.RAM[i] = 0
	}
	b.PPU.Reset()
	b.APU.Reset()
	b.Pad.Reset()
	b.dmaPending = false
	b.dmaCycles = 0
}

// Read services a CPU byte read per the address decode table.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.ReadRegister(0x2000 + addr&7)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.Pad.Read(0x4016)
	case addr == 0x4017:
		return b.Pad.Read(0x4017)
	case addr < 0x4018:
		return 0 // open bus: remaining APU/IO registers are write-only
	case addr < 0x4020:
		return 0 // unused APU/IO test range, open bus
	case addr < 0x6000:
		return 0 // expansion ROM, unmapped for the enumerated mapper set
	case addr < 0x8000:
		if b.Cart == nil {
			return 0
		}
		return b.Cart.ReadPRG(addr)
	default:
		if b.Cart == nil {
			return 0
		}
		return b.Cart.ReadPRG(addr)
	}
}

// Write services a CPU byte write per the address decode table.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = value
	case addr < 0x4000:
		b.PPU.WriteRegister(0x2000+addr&7, value)
	case addr == 0x4014:
		b.startOAMDMA(value)
	case addr == 0x4016:
		b.Pad.Write(0x4016, value)
	case addr < 0x4018:
		b.APU.WriteRegister(addr, value)
	case addr < 0x6000:
		// unused APU/IO test range and expansion ROM: no effect
	case addr < 0x8000:
		if b.Cart != nil {
			b.Cart.WritePRG(addr, value)
		}
	default:
		if b.Cart != nil {
			b.Cart.WritePRG(addr, value)
		}
	}
}

// startOAMDMA copies 256 bytes from page (value<<8) into OAM and arms the
// CPU-cycle stall the scheduler must honor: 513 cycles, or 514 if the
// transfer starts on an odd CPU cycle.
func (b *Bus) startOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAM(uint8(i), b.Read(base+uint16(i)))
	}
	b.dmaCycles = 513
	if b.oddCycle {
		b.dmaCycles = 514
	}
	b.dmaPending = true
}

// TakeDMAStall returns and clears any CPU-cycle stall armed by a prior OAM
// DMA write, for the scheduler to charge against CPU time.
func (b *Bus) TakeDMAStall() int {
	n := b.dmaCycles
	b.dmaCycles = 0
	b.dmaPending = false
	return n
}

// MarkCPUCycleParity lets the scheduler tell the bus which CPU-cycle
// parity is current, since OAM DMA's extra stall cycle depends on it.
func (b *Bus) MarkCPUCycleParity(odd bool) {
	b.oddCycle = odd
}

// Read16 composes two bus reads little-endian.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return lo | hi<<8
}
