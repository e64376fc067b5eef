// Package nes is the Emulator Facade: it owns the CPU, PPU, APU,
// controllers, and loaded cartridge, and is the only surface a host shell
// needs to drive the console.
package nes

import (
	"io"

	"github.com/claude/nescore/internal/bus"
	"github.com/claude/nescore/internal/cartridge"
	"github.com/claude/nescore/internal/cpu"
	"github.com/claude/nescore/internal/input"
)

// Emulator is the top-level aggregate the host shell drives: load a ROM,
// call RunFrame once per video frame, then pull out the framebuffer and
// audio samples it produced.
type Emulator struct {
	bus *bus.Bus
	cpu *cpu.CPU

	cpuCycleParity bool
}

// New creates an emulator with no cartridge loaded. LoadROM must be called
// before RunFrame.
func New() *Emulator {
	b := bus.New()
	e := &Emulator{
		bus: b,
		cpu: cpu.New(b),
	}
	e.bus.PPU.SetNMICallback(e.cpu.RaiseNMI)
	return e
}

// LoadROM parses an iNES image, replacing any previously loaded cartridge,
// and resets every component to power-on state.
func (e *Emulator) LoadROM(r io.Reader) error {
	cart, err := cartridge.Load(r)
	if err != nil {
		return err
	}
	e.bus.SetCartridge(cart)
	e.Reset()
	return nil
}

// Reset returns RAM, the CPU, PPU, APU and controllers to their power-on
// state; the CPU's PC loads from the cartridge's reset vector. The loaded
// cartridge's mapper registers and SRAM are left as they are.
func (e *Emulator) Reset() {
	e.bus.Reset()
	e.cpu.Reset()
	e.cpuCycleParity = false
}

// RenderInto copies the last-rendered 256x240 framebuffer into dst, which
// must have room for 256*240 entries.
func (e *Emulator) RenderInto(dst []uint16) {
	fb := e.bus.PPU.FrameBuffer()
	copy(dst, fb[:])
}

// AudioInto drains up to len(dst) queued audio samples into dst and
// returns how many it wrote.
func (e *Emulator) AudioInto(dst []uint8) int {
	return e.bus.APU.DrainInto(dst)
}

// SetButton updates one button on controller 1 (player 0) or controller 2
// (player 1).
func (e *Emulator) SetButton(player int, button input.Button, pressed bool) {
	switch player {
	case 0:
		e.bus.Pad.Controller1.SetButton(button, pressed)
	case 1:
		e.bus.Pad.Controller2.SetButton(button, pressed)
	}
}

// SRAMSave writes the cartridge's 8192-byte battery-backed region. It
// returns ErrNoBattery if the loaded cartridge has no battery.
func (e *Emulator) SRAMSave(w io.Writer) error {
	if e.bus.Cart == nil {
		return ErrNoCartridge
	}
	if !e.bus.Cart.HasBattery {
		return ErrNoBattery
	}
	_, err := w.Write(e.bus.Cart.SRAM[:])
	return err
}

// SRAMLoad restores the cartridge's battery-backed region from a raw
// 8192-byte dump.
func (e *Emulator) SRAMLoad(r io.Reader) error {
	if e.bus.Cart == nil {
		return ErrNoCartridge
	}
	if !e.bus.Cart.HasBattery {
		return ErrNoBattery
	}
	_, err := io.ReadFull(r, e.bus.Cart.SRAM[:])
	return err
}
