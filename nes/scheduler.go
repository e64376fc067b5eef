package nes

// RunFrame advances the emulator by exactly one video frame: 262
// scanlines of PPU dots, with the CPU stepped once per three PPU cycles
// and interrupts delivered only at CPU instruction boundaries.
func (e *Emulator) RunFrame() {
	var cpuDebtCycles int

	for scanline := 0; scanline < 262; scanline++ {
		dots := e.bus.PPU.DotsThisScanline()
		for dot := 0; dot < dots; dot++ {
			e.bus.PPU.StepCycle(scanline, dot)

			if dot == 260 && (scanline < 240 || scanline == 261) && e.bus.PPU.RenderingEnabled() && e.bus.Cart != nil {
				e.bus.Cart.StepScanline()
			}

			cpuDebtCycles--
			if cpuDebtCycles <= 0 {
				e.syncIRQLine()
				used := e.stepCPUOneInstruction()
				cpuDebtCycles += used * 3
			}
		}
	}
}

// stepCPUOneInstruction steps the CPU by one instruction, charging any
// pending OAM-DMA stall first, and clocks the APU once per CPU cycle
// consumed so its frame sequencer and channel timers stay in lockstep
// with the CPU clock.
func (e *Emulator) stepCPUOneInstruction() int {
	stall := e.bus.TakeDMAStall()
	for i := 0; i < stall; i++ {
		e.bus.APU.Step()
		e.cpuCycleParity = !e.cpuCycleParity
		e.bus.MarkCPUCycleParity(e.cpuCycleParity)
	}

	used := e.cpu.Step()
	for i := uint8(0); i < used; i++ {
		e.bus.APU.Step()
		e.cpuCycleParity = !e.cpuCycleParity
		e.bus.MarkCPUCycleParity(e.cpuCycleParity)
	}
	return stall + int(used)
}

// syncIRQLine ORs every level-triggered IRQ source into the CPU's IRQ
// line immediately before the CPU checks it at its next instruction
// boundary.
func (e *Emulator) syncIRQLine() {
	asserted := e.bus.APU.FrameIRQAsserted()
	if e.bus.Cart != nil {
		asserted = asserted || e.bus.Cart.IRQPending()
	}
	e.cpu.SetIRQLine(asserted)
}
