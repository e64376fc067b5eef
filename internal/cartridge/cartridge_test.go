package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildINES(mapperID uint8, prgPages, chrPages uint8, mirrorVertical bool) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("NES\x1a")
	buf.WriteByte(prgPages)
	buf.WriteByte(chrPages)
	flags6 := (mapperID & 0x0F) << 4
	if mirrorVertical {
		flags6 |= 0x01
	}
	buf.WriteByte(flags6)
	buf.WriteByte((mapperID & 0xF0))
	buf.Write(make([]uint8, 8))
	prg := make([]uint8, int(prgPages)*prgPageSize)
	for i := range prg {
		prg[i] = uint8(i)
	}
	buf.Write(prg)
	if chrPages > 0 {
		buf.Write(make([]uint8, int(chrPages)*chrPageSize))
	}
	return buf.Bytes()
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("garbage data that is too short")))
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	rom := buildINES(255, 1, 1, false)
	_, err := Load(bytes.NewReader(rom))
	require.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestLoadNROMMirrorsSingleBank(t *testing.T) {
	rom := buildINES(0, 1, 1, false)
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)
	require.Equal(t, cart.ReadPRG(0x8000), cart.ReadPRG(0xC000))
}

func TestLoadZeroCHRPagesAllocatesCHRRAM(t *testing.T) {
	rom := buildINES(2, 1, 0, false)
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)
	require.True(t, cart.HasCHRRAM)
	cart.WriteCHR(0x0010, 0x42)
	require.EqualValues(t, 0x42, cart.ReadCHR(0x0010))
}

func TestMMC1ResetForcesLastBankFixedRegardlessOfPriorState(t *testing.T) {
	rom := buildINES(1, 4, 1, false) // 4 * 16KB = 64KB PRG, 4 banks
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)

	writeMMC1 := func(addr uint16, value uint8) {
		for i := 0; i < 5; i++ {
			cart.WritePRG(addr, (value>>uint(i))&1)
		}
	}
	// Mark the last bank so it can be told apart from the others (the fill
	// pattern gives every bank the same first byte).
	cart.PRG[3*0x4000] = 0xA5

	// Select PRG mode 0 (32KB) and PRG register 0, so 0xC000 maps to 16KB
	// bank 1, away from the cartridge's last physical bank.
	writeMMC1(0x9FFF, 0x00)
	writeMMC1(0xE000, 0x00)

	lastBankFirstByte := cart.PRG[3*0x4000]
	before := cart.ReadPRG(0xC000)
	require.NotEqual(t, lastBankFirstByte, before)

	// A reset write (bit 7 set) must force mode 3, fixing 0xC000 to the
	// cartridge's last bank no matter what PRG bank register held before.
	cart.WritePRG(0x8000, 0x80)
	require.Equal(t, lastBankFirstByte, cart.ReadPRG(0xC000))
}

func TestMMC3IRQFiresAfterLatchPlusOneScanlines(t *testing.T) {
	rom := buildINES(4, 4, 2, false)
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)

	cart.WritePRG(0xC000, 4) // latch = 4
	cart.WritePRG(0xC001, 0) // reload flag set
	cart.WritePRG(0xE001, 0) // enable IRQ

	require.False(t, cart.IRQPending())
	for i := 0; i < 4; i++ {
		cart.StepScanline()
		require.False(t, cart.IRQPending(), "should not fire before counter reaches 0")
	}
	cart.StepScanline()
	require.True(t, cart.IRQPending())
}

func TestMMC3IRQDisableClearsPending(t *testing.T) {
	rom := buildINES(4, 4, 2, false)
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)

	cart.WritePRG(0xC000, 0)
	cart.WritePRG(0xC001, 0)
	cart.WritePRG(0xE001, 0)
	cart.StepScanline()
	cart.StepScanline()
	require.True(t, cart.IRQPending())

	cart.WritePRG(0xE000, 0)
	require.False(t, cart.IRQPending())
}
