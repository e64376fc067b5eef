package input

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonB, true)
	c.Write(1) // strobe high

	require.EqualValues(t, 1, c.Read()&1)
	require.EqualValues(t, 1, c.Read()&1)
	require.EqualValues(t, 1, c.Read()&1)
}

func TestStrobeFallingEdgeLatchesAndShiftsInOrder(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonSelect, true)
	c.SetButton(ButtonRight, true)

	c.Write(1)
	c.Write(0) // latch on falling edge

	var bits [8]uint8
	for i := range bits {
		bits[i] = c.Read() & 1
	}
	require.Equal(t, [8]uint8{1, 0, 1, 0, 0, 0, 0, 1}, bits)
}

func TestReadsPastEighthBitReturnOne(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	require.EqualValues(t, 1, c.Read()&1)
	require.EqualValues(t, 1, c.Read()&1)
}

func TestButtonChangeDuringStrobeIsLiveNotLatched(t *testing.T) {
	c := New()
	c.Write(1)
	require.EqualValues(t, 0, c.Read()&1)
	c.SetButton(ButtonA, true)
	require.EqualValues(t, 1, c.Read()&1)
}

func TestPairSecondControllerReadsHighBitSet(t *testing.T) {
	p := NewPair()
	v := p.Read(0x4017)
	require.EqualValues(t, 0x40, v&0x40)
}

func TestPairWriteStrobesBothControllers(t *testing.T) {
	p := NewPair()
	p.Controller1.SetButton(ButtonA, true)
	p.Controller2.SetButton(ButtonA, true)
	p.Write(0x4016, 1)
	p.Write(0x4016, 0)

	require.EqualValues(t, 1, p.Read(0x4016)&1)
	require.EqualValues(t, 1, p.Read(0x4017)&1)
}
