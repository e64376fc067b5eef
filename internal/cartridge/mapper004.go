package cartridge

// mmc3 implements mapper 4. Eight bank-data registers R0..R7 are selected by
// even/odd writes to 0x8000/0x8001; R0/R1 bank 2KB CHR windows, R2..R5 bank
// 1KB CHR windows, R6/R7 bank 8KB PRG windows. 0x8000 bit 6 swaps which 8KB
// PRG window is switchable (0x8000 or 0xC000); bit 7 swaps which CHR range
// is 2KB-banked vs 1KB-banked. The IRQ counter is clocked once per
// rendered scanline (a scanline-count approximation of the real A12
// rising-edge counter, adequate for scanline-granularity timing).
type mmc3 struct {
	cart   *Cartridge
	mirror MirrorMode

	bankSelect uint8
	bankData   [8]uint8

	prgRAMProtect uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnable  bool
	irqPending bool
}

func newMMC3(cart *Cartridge, mirror MirrorMode) *mmc3 {
	return &mmc3{cart: cart, mirror: mirror}
}

func (m *mmc3) Mirror() MirrorMode { return m.mirror }

func (m *mmc3) setMirroring(v uint8) {
	if m.mirror == MirrorFourScreen {
		return
	}
	if v&1 != 0 {
		m.mirror = MirrorHorizontal
	} else {
		m.mirror = MirrorVertical
	}
}

func (m *mmc3) prgBank(slot int) int {
	banks := m.cart.prgBankCount(0x2000)
	swap := m.bankSelect&0x40 != 0
	switch {
	case !swap && slot == 0, swap && slot == 2:
		return int(m.bankData[6]) % banks
	case !swap && slot == 1, swap && slot == 1:
		return int(m.bankData[7]) % banks
	case !swap && slot == 2, swap && slot == 0:
		return (banks - 2 + banks) % banks
	default: // slot == 3, fixed last bank always
		return (banks - 1 + banks) % banks
	}
}

func (m *mmc3) ReadPRG(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.cart.SRAM[addr-0x6000]
		}
		return 0
	}
	slot := int((addr - 0x8000) / 0x2000)
	bank := m.prgBank(slot)
	offset := bank*0x2000 + int(addr&0x1FFF)
	if offset >= len(m.cart.PRG) {
		return 0
	}
	return m.cart.PRG[offset]
}

func (m *mmc3) WritePRG(addr uint16, value uint8) {
	if addr < 0x6000 {
		return
	}
	if addr < 0x8000 {
		m.cart.SRAM[addr-0x6000] = value
		return
	}
	even := addr&1 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = value
		} else {
			m.bankData[m.bankSelect&7] = value
		}
	case addr < 0xC000:
		if even {
			m.setMirroring(value)
		} else {
			m.prgRAMProtect = value
		}
	case addr < 0xE000:
		if even {
			m.irqLatch = value
		} else {
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnable = false
			m.irqPending = false
		} else {
			m.irqEnable = true
		}
	}
}

// chrBank1k resolves which of the eight 1KB CHR windows covers addr,
// honoring the CHR-inversion bit (bankSelect bit 7).
func (m *mmc3) chrBank1k(windowIndex int) int {
	banks := m.cart.chrBankCount(0x0400)
	invert := m.bankSelect&0x80 != 0
	idx := windowIndex
	if invert {
		idx = (windowIndex + 4) % 8
	}
	switch idx {
	case 0:
		return int(m.bankData[0]&0xFE) % banks
	case 1:
		return int(m.bankData[0]|1) % banks
	case 2:
		return int(m.bankData[1]&0xFE) % banks
	case 3:
		return int(m.bankData[1]|1) % banks
	case 4:
		return int(m.bankData[2]) % banks
	case 5:
		return int(m.bankData[3]) % banks
	case 6:
		return int(m.bankData[4]) % banks
	default:
		return int(m.bankData[5]) % banks
	}
}

func (m *mmc3) ReadCHR(addr uint16) uint8 {
	window := int(addr / 0x0400)
	bank := m.chrBank1k(window)
	offset := bank*0x0400 + int(addr&0x03FF)
	if m.cart.HasCHRRAM {
		if int(addr) < len(m.cart.CHR) {
			return m.cart.CHR[addr]
		}
		return 0
	}
	if offset >= len(m.cart.CHR) {
		return 0
	}
	return m.cart.CHR[offset]
}

func (m *mmc3) WriteCHR(addr uint16, value uint8) {
	if m.cart.HasCHRRAM && int(addr) < len(m.cart.CHR) {
		m.cart.CHR[addr] = value
	}
}

func (m *mmc3) NotifyCHRAccess(addr uint16) {}
func (m *mmc3) IRQPending() bool            { return m.irqPending }

// ClockScanline advances the IRQ counter once per scanline the scheduler
// considers "rendered" (visible or pre-render, with rendering enabled).
func (m *mmc3) ClockScanline() {
	if m.irqReload || m.irqCounter == 0 {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnable {
		m.irqPending = true
	}
}
