package nes

import (
	"bytes"
	"testing"

	"github.com/claude/nescore/internal/input"
	"github.com/stretchr/testify/require"
)

func buildNROM(prg []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("NES\x1a")
	buf.WriteByte(1) // 1 PRG page (16KB)
	buf.WriteByte(1) // 1 CHR page
	buf.Write([]byte{0, 0})
	buf.Write(make([]byte, 8))
	page := make([]byte, 16384)
	copy(page, prg)
	buf.Write(page)
	buf.Write(make([]byte, 8192))
	return buf.Bytes()
}

// TestProgramWritesRAMWithinOneFrame is scenario S1: LDA #$42; STA $0200;
// JMP $8000 (tight loop), reset vector pointed at the program start.
func TestProgramWritesRAMWithinOneFrame(t *testing.T) {
	prg := []byte{0xA9, 0x42, 0x8D, 0x00, 0x02, 0x4C, 0x00, 0x80}
	rom := buildNROM(prg)
	rom[16+0x3FFC] = 0x00
	rom[16+0x3FFD] = 0x80

	e := New()
	require.NoError(t, e.LoadROM(bytes.NewReader(rom)))
	e.RunFrame()

	require.EqualValues(t, 0x42, e.bus.Read(0x0200))
}

// TestNMIDeliveredOncePerFrameWhenEnabled is scenario S2: a program that
// enables NMI generation and otherwise spins; across one frame the vector
// must be taken exactly once. The NMI handler increments a RAM counter
// before returning, so the assertion only passes if control actually
// reached the handler — unlike checking PC against the spin loop's own
// addresses, which the CPU sits at whether or not NMI ever fired.
func TestNMIDeliveredOncePerFrameWhenEnabled(t *testing.T) {
	prg := []byte{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000 (enable NMI generation)
		0x4C, 0x05, 0x80, // loop: JMP $8005
	}
	rom := buildNROM(prg)
	rom[16+0x3FFC] = 0x00
	rom[16+0x3FFD] = 0x80
	// NMI vector points at a handler that bumps RAM[0x0300] then returns.
	rom[16+0x3FFA] = 0x20
	rom[16+0x3FFB] = 0x80
	handler := []byte{
		0xEE, 0x00, 0x03, // INC $0300
		0x40, // RTI
	}
	copy(rom[16+0x0020:], handler)

	e := New()
	require.NoError(t, e.LoadROM(bytes.NewReader(rom)))
	e.RunFrame()

	require.EqualValues(t, 1, e.bus.Read(0x0300), "NMI handler must run exactly once per frame")
}

// TestSnapshotLoadResumesAtSavedPC is scenario S6.
func TestSnapshotLoadResumesAtSavedPC(t *testing.T) {
	rom := buildNROM([]byte{0xEA})
	rom[16+0x3FFC] = 0x00
	rom[16+0x3FFD] = 0x80

	e := New()
	require.NoError(t, e.LoadROM(bytes.NewReader(rom)))
	e.cpu.PC = 0xC123
	e.cpu.A = 0x7E

	buf := &bytes.Buffer{}
	require.NoError(t, e.SnapshotSave(buf))

	e2 := New()
	require.NoError(t, e2.LoadROM(bytes.NewReader(rom)))
	require.NoError(t, e2.SnapshotLoad(bytes.NewReader(buf.Bytes())))

	require.EqualValues(t, 0xC123, e2.cpu.PC)
	require.EqualValues(t, 0x7E, e2.cpu.A)
}

func TestSnapshotRoundTripIsByteIdentical(t *testing.T) {
	rom := buildNROM([]byte{0xEA})
	rom[16+0x3FFC] = 0x00
	rom[16+0x3FFD] = 0x80

	e := New()
	require.NoError(t, e.LoadROM(bytes.NewReader(rom)))
	e.RunFrame()

	first := &bytes.Buffer{}
	require.NoError(t, e.SnapshotSave(first))

	require.NoError(t, e.SnapshotLoad(bytes.NewReader(first.Bytes())))

	second := &bytes.Buffer{}
	require.NoError(t, e.SnapshotSave(second))

	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestSetButtonRoutesToCorrectController(t *testing.T) {
	rom := buildNROM([]byte{0xEA})
	rom[16+0x3FFC] = 0x00
	rom[16+0x3FFD] = 0x80

	e := New()
	require.NoError(t, e.LoadROM(bytes.NewReader(rom)))
	e.SetButton(0, input.ButtonA, true)
	e.SetButton(1, input.ButtonStart, true)

	require.True(t, e.bus.Pad.Controller1.IsPressed(input.ButtonA))
	require.True(t, e.bus.Pad.Controller2.IsPressed(input.ButtonStart))
	require.False(t, e.bus.Pad.Controller1.IsPressed(input.ButtonStart))
}
