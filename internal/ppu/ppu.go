// Package ppu implements the NES Picture Processing Unit (2C02): register
// side effects, scanline/dot timing, background and sprite rendering, and
// sprite-0 hit detection.
package ppu

import "github.com/claude/nescore/internal/cartridge"

const (
	framebufferW = 256
	framebufferH = 240
)

// CartridgeAccess is the capability handed to the PPU once via SetCartridge
// so it can resolve CHR reads/writes and nametable mirroring through the
// active mapper without the PPU holding a reference back into the owning
// emulator.
type CartridgeAccess interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	NotifyCHRAccess(addr uint16)
	Mirror() cartridge.MirrorMode
}

// PPU is the 2C02 picture processing unit.
type PPU struct {
	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	scrollX, scrollY uint8
	writeToggle      bool
	addrLatchHi      bool
	vramAddr         uint16
	readBuffer       uint8

	nametables [2048]uint8
	palette    [32]uint8
	oam        [256]uint8

	scanline int
	dot      int
	oddFrame bool

	scanlineScrollX [240]uint8
	scanlineScrollY [240]uint8
	scanlineCtrl    [240]uint8

	framebuffer  [framebufferW * framebufferH]uint16
	bgOpaque     [framebufferW * framebufferH]bool
	sprWritten   [framebufferW * framebufferH]bool
	sprite0Hit   bool

	cart CartridgeAccess

	nmiCallback func()
}

// New creates a PPU with no cartridge attached yet.
func New() *PPU {
	return &PPU{}
}

// SetCartridge attaches the capability used for CHR access and mirroring.
func (p *PPU) SetCartridge(cart CartridgeAccess) {
	p.cart = cart
}

// SetNMICallback registers the function invoked when the PPU edge-triggers
// NMI (VBlank start with NMI enabled, or a 0->1 NMI-enable write during
// VBlank).
func (p *PPU) SetNMICallback(fn func()) {
	p.nmiCallback = fn
}

// Reset returns the PPU to its power-on register state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.scrollX, p.scrollY = 0, 0
	p.writeToggle = false
	p.vramAddr = 0
	p.readBuffer = 0
	p.scanline, p.dot = 0, 0
	p.oddFrame = false
	p.sprite0Hit = false
	for i := range p.oam {
		p.oam[i] = 0
	}
}

func (p *PPU) renderingEnabled() bool { return p.mask&0x18 != 0 }

// RenderingEnabled reports whether background or sprite rendering is on,
// the condition the scheduler needs to decide the MMC3 scanline clock and
// the pre-render odd-frame cycle skip.
func (p *PPU) RenderingEnabled() bool { return p.renderingEnabled() }

// nametableOffset maps one of the four logical 1KB nametables onto one of
// the two physical 1KB pages according to the cartridge's mirroring mode.
func (p *PPU) nametableOffset(addr uint16) uint16 {
	logical := (addr - 0x2000) / 0x400 % 4
	within := addr & 0x3FF
	var physical uint16
	switch p.cart.Mirror() {
	case cartridge.MirrorVertical:
		physical = logical % 2
	case cartridge.MirrorSingleScreen0:
		physical = 0
	case cartridge.MirrorSingleScreen1:
		physical = 1
	case cartridge.MirrorFourScreen:
		return addr & 0x7FF // direct 2KB index, so $2800/$2C00 fold onto $2000/$2400 (4-screen boards carry extra RAM outside this model's scope)
	default: // horizontal
		physical = logical / 2
	}
	return physical*0x400 + within
}

func (p *PPU) paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	if idx&0x13 == 0x10 {
		idx &^= 0x10
	}
	return idx
}

func (p *PPU) vramRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.ReadCHR(addr)
	case addr < 0x3F00:
		return p.nametables[p.nametableOffset(addr)]
	default:
		return p.palette[p.paletteIndex(addr)]
	}
}

func (p *PPU) vramWrite(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.WriteCHR(addr, value)
	case addr < 0x3F00:
		p.nametables[p.nametableOffset(addr)] = value
	default:
		p.palette[p.paletteIndex(addr)] = value
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

// ReadRegister services a CPU read of one of $2000-$2007. Only the low
// three bits of reg select the register.
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg & 7 {
	case 2:
		v := p.status
		p.status &^= 0x80
		p.writeToggle = false
		return v
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		var result uint8
		if p.vramAddr&0x3FFF >= 0x3F00 {
			result = p.vramRead(p.vramAddr)
			p.readBuffer = p.nametables[p.nametableOffset(0x2000|(p.vramAddr&0x0FFF))]
		} else {
			result = p.readBuffer
			p.readBuffer = p.vramRead(p.vramAddr)
		}
		p.vramAddr += p.vramIncrement()
		return result
	default:
		return 0
	}
}

// WriteRegister services a CPU write to one of $2000-$2007.
func (p *PPU) WriteRegister(reg uint16, value uint8) {
	switch reg & 7 {
	case 0:
		prevNMI := p.ctrl & 0x80
		p.ctrl = value
		if prevNMI == 0 && p.ctrl&0x80 != 0 && p.status&0x80 != 0 {
			p.raiseNMI()
		}
	case 1:
		p.mask = value
	case 3:
		p.oamAddr = value
	case 4:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5:
		if !p.writeToggle {
			p.scrollX = value
		} else {
			p.scrollY = value
		}
		p.writeToggle = !p.writeToggle
	case 6:
		if !p.writeToggle {
			p.vramAddr = (p.vramAddr & 0x00FF) | (uint16(value&0x3F) << 8)
		} else {
			p.vramAddr = (p.vramAddr & 0xFF00) | uint16(value)
		}
		p.writeToggle = !p.writeToggle
	case 7:
		p.vramWrite(p.vramAddr, value)
		p.vramAddr += p.vramIncrement()
	}
}

// WriteOAM is the OAM-DMA entry point: the bus copies 256 bytes here
// starting at the current OAMADDR.
func (p *PPU) WriteOAM(index uint8, value uint8) {
	p.oam[p.oamAddr+index] = value
}

func (p *PPU) raiseNMI() {
	if p.nmiCallback != nil {
		p.nmiCallback()
	}
}

// VBlank reports the current VBlank flag (PPUSTATUS bit 7), without the
// read side effects of ReadRegister.
func (p *PPU) VBlank() bool { return p.status&0x80 != 0 }

// Sprite0Hit reports the latched sprite-0-hit flag.
func (p *PPU) Sprite0Hit() bool { return p.status&0x40 != 0 }

// FrameBuffer returns the last-rendered 256x240 16-bit framebuffer.
func (p *PPU) FrameBuffer() *[framebufferW * framebufferH]uint16 { return &p.framebuffer }

// DotsThisScanline returns how many dots the current scanline runs for,
// honoring the pre-render odd-frame cycle skip.
func (p *PPU) DotsThisScanline() int {
	if p.scanline == 261 && p.oddFrame && p.renderingEnabled() {
		return 340
	}
	return 341
}

// StepCycle advances the PPU by one dot at the given (scanline, dot)
// coordinate, as driven by the frame scheduler.
func (p *PPU) StepCycle(scanline, dot int) {
	p.scanline, p.dot = scanline, dot

	if scanline == 241 && dot == 1 {
		p.status |= 0x80
		if p.ctrl&0x80 != 0 {
			p.raiseNMI()
		}
	}
	if scanline == 261 && dot == 1 {
		p.status &^= 0xE0
		p.sprite0Hit = false
	}
	if scanline == 261 && dot == 340 && p.renderingEnabled() {
		p.oddFrame = !p.oddFrame
	}

	if scanline < 240 && dot == 256 {
		p.scanlineScrollX[scanline] = p.scrollX
		p.scanlineScrollY[scanline] = p.scrollY
		p.scanlineCtrl[scanline] = p.ctrl
		p.renderScanline(scanline)
	}
}

func (p *PPU) patternTableBase(bit uint8) uint16 {
	if p.ctrl&bit != 0 {
		return 0x1000
	}
	return 0x0000
}

// renderScanline draws one row of the framebuffer: background first, then
// sprites in OAM order with correct priority and sprite-0 hit detection.
func (p *PPU) renderScanline(scanline int) {
	ctrl := p.scanlineCtrl[scanline]
	scrollX := int(p.scanlineScrollX[scanline])
	scrollY := int(p.scanlineScrollY[scanline])
	bgEnabled := p.mask&0x08 != 0
	sprEnabled := p.mask&0x10 != 0
	bgPattern := p.patternTableBase(0x10)
	_ = ctrl

	row := scanline * framebufferW
	for x := 0; x < framebufferW; x++ {
		p.bgOpaque[row+x] = false
		p.sprWritten[row+x] = false
		color := p.palette[0]
		if bgEnabled {
			opaque, idx := p.backgroundPixel(scanline, x, scrollX, scrollY, bgPattern, ctrl)
			p.bgOpaque[row+x] = opaque
			if opaque {
				color = idx
			}
		}
		p.framebuffer[row+x] = packRGB565(masterPalette[color&0x3F])
	}

	if !sprEnabled {
		return
	}
	p.renderSprites(scanline, bgEnabled)
}

func (p *PPU) backgroundPixel(scanline, x, scrollX, scrollY int, patternBase uint16, ctrl uint8) (bool, uint8) {
	fullX := x + scrollX
	fullY := scanline + scrollY
	ntX := int(ctrl & 0x01)
	ntY := int((ctrl >> 1) & 0x01)
	for fullX >= 256 {
		fullX -= 256
		ntX ^= 1
	}
	for fullY >= 240 {
		fullY -= 240
		ntY ^= 1
	}
	nt := ntY*2 + ntX
	tileX, tileY := fullX/8, fullY/8
	fineX, fineY := fullX%8, fullY%8

	ntBase := uint16(0x2000 + nt*0x400)
	tileAddr := ntBase + uint16(tileY*32+tileX)
	tileIndex := p.vramRead(tileAddr)

	attrAddr := ntBase + 0x3C0 + uint16((tileY/4)*8+(tileX/4))
	attrByte := p.vramRead(attrAddr)
	shift := uint(((tileY%4)/2)*4 + ((tileX%4)/2)*2)
	paletteSel := (attrByte >> shift) & 0x03

	patternAddr := patternBase + uint16(tileIndex)*16 + uint16(fineY)
	lo := p.vramRead(patternAddr)
	hi := p.vramRead(patternAddr + 8)
	p.cart.NotifyCHRAccess(patternAddr)
	p.cart.NotifyCHRAccess(patternAddr + 8)
	bit := uint(7 - fineX)
	pixel := ((hi>>bit)&1)<<1 | (lo>>bit)&1
	if pixel == 0 {
		return false, p.palette[0]
	}
	return true, p.palette[uint16(paletteSel)*4+uint16(pixel)]
}

type spriteSlot struct {
	index           int
	x, y, tile, attr uint8
}

func (p *PPU) evaluateSprites(scanline int) []spriteSlot {
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	var slots []spriteSlot
	for i := 0; i < 64 && len(slots) < 8; i++ {
		y := int(p.oam[i*4])
		if scanline < y || scanline >= y+height {
			continue
		}
		slots = append(slots, spriteSlot{
			index: i,
			y:     p.oam[i*4],
			tile:  p.oam[i*4+1],
			attr:  p.oam[i*4+2],
			x:     p.oam[i*4+3],
		})
	}
	return slots
}

func (p *PPU) renderSprites(scanline int, bgEnabled bool) {
	row := scanline * framebufferW
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	patternBase := p.patternTableBase(0x08)

	for _, s := range p.evaluateSprites(scanline) {
		rowInSprite := scanline - int(s.y)
		flipV := s.attr&0x80 != 0
		flipH := s.attr&0x40 != 0
		behind := s.attr&0x20 != 0
		paletteSel := s.attr & 0x03

		tile := uint16(s.tile)
		fineY := rowInSprite
		base := patternBase
		if height == 16 {
			base = uint16(s.tile&1) * 0x1000
			tile = uint16(s.tile &^ 1)
			if flipV {
				fineY = 15 - rowInSprite
			}
			if fineY >= 8 {
				tile++
				fineY -= 8
			}
		} else if flipV {
			fineY = 7 - rowInSprite
		}

		patternAddr := base + tile*16 + uint16(fineY)
		lo := p.vramRead(patternAddr)
		hi := p.vramRead(patternAddr + 8)
		p.cart.NotifyCHRAccess(patternAddr)
		p.cart.NotifyCHRAccess(patternAddr + 8)

		for col := 0; col < 8; col++ {
			screenX := int(s.x) + col
			if screenX >= framebufferW {
				continue
			}
			bit := col
			if !flipH {
				bit = 7 - col
			}
			pixel := ((hi>>uint(bit))&1)<<1 | (lo>>uint(bit))&1
			if pixel == 0 {
				continue
			}
			if s.index == 0 && p.bgOpaque[row+screenX] && bgEnabled && screenX != 255 {
				p.status |= 0x40
			}
			if p.sprWritten[row+screenX] {
				continue
			}
			if behind && p.bgOpaque[row+screenX] {
				p.sprWritten[row+screenX] = true
				continue
			}
			color := p.palette[16+uint16(paletteSel)*4+uint16(pixel)]
			p.framebuffer[row+screenX] = packRGB565(masterPalette[color&0x3F])
			p.sprWritten[row+screenX] = true
		}
	}
}
