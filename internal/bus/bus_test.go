package bus

import (
	"bytes"
	"testing"

	"github.com/claude/nescore/internal/cartridge"
	"github.com/stretchr/testify/require"
)

func testCartridge(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	buf := &bytes.Buffer{}
	buf.WriteString("NES\x1a")
	buf.WriteByte(1) // 1 PRG page
	buf.WriteByte(1) // 1 CHR page
	buf.Write([]byte{0, 0})
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, 16384))
	buf.Write(make([]byte, 8192))
	cart, err := cartridge.Load(buf)
	require.NoError(t, err)
	return cart
}

func TestRAMIsMirroredAcrossFourPages(t *testing.T) {
	b := New()
	b.Write(0x0042, 0x7A)
	require.EqualValues(t, 0x7A, b.Read(0x0842))
	require.EqualValues(t, 0x7A, b.Read(0x1042))
	require.EqualValues(t, 0x7A, b.Read(0x1842))
}

func TestPPURegisterMirrorEveryEightBytes(t *testing.T) {
	b := New()
	b.SetCartridge(testCartridge(t))
	b.Write(0x2003, 0x00) // OAMADDR = 0
	b.Write(0x200C, 0x77) // mirror of $2004 (OAMDATA): 0x200C&7 == 4
	b.Write(0x2003, 0x00) // rewind OAMADDR so the read observes slot 0
	require.EqualValues(t, 0x77, b.Read(0x2004))
}

func TestControllerReadWritePassthrough(t *testing.T) {
	b := New()
	b.SetCartridge(testCartridge(t))
	b.Pad.Controller1.SetButton(1, true) // ButtonA = 1
	b.Write(0x4016, 1)
	b.Write(0x4016, 0)
	require.EqualValues(t, 1, b.Read(0x4016)&1)
}

func TestOAMDMAConsumes513Or514Cycles(t *testing.T) {
	b := New()
	b.SetCartridge(testCartridge(t))
	b.RAM[0x0200] = 0xAB

	b.MarkCPUCycleParity(false)
	b.Write(0x4014, 0x02)
	require.Equal(t, 513, b.TakeDMAStall())

	b.MarkCPUCycleParity(true)
	b.Write(0x4014, 0x02)
	require.Equal(t, 514, b.TakeDMAStall())
}

func TestOAMDMACopiesPageIntoOAM(t *testing.T) {
	b := New()
	b.SetCartridge(testCartridge(t))
	b.RAM[0x0300] = 0x99
	b.Write(0x4014, 0x03)
	b.TakeDMAStall()
	require.EqualValues(t, 0x99, b.PPU.ReadRegister(0x2004))
}

func TestCartridgePRGWindowReadsThroughMapper(t *testing.T) {
	b := New()
	cart := testCartridge(t)
	cart.PRG[0] = 0x42
	b.SetCartridge(cart)
	require.EqualValues(t, 0x42, b.Read(0x8000))
}
