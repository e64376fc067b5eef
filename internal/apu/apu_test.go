package apu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMixerSilenceIsMidRail(t *testing.T) {
	a := New()
	require.EqualValues(t, 128, a.Mix(0, 0, 0, 0))
}

func TestMixerMonotonicWithPulseLevel(t *testing.T) {
	a := New()
	prev := a.Mix(0, 0, 0, 0)
	for level := uint8(1); level <= 15; level++ {
		cur := a.Mix(level, 0, 0, 0)
		require.Greaterf(t, cur, prev, "level %d should raise output above %d", level, prev)
		prev = cur
	}
}

func TestMixerMonotonicWithTriangleAndNoise(t *testing.T) {
	a := New()
	prev := a.Mix(0, 0, 0, 0)
	for level := uint8(1); level <= 15; level++ {
		cur := a.Mix(0, 0, level, 0)
		require.Greater(t, cur, prev)
		prev = cur
	}
}

func TestLengthCounterSilencesPulseChannel(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01) // enable pulse 1
	a.WriteRegister(0x4000, 0x3F) // constant volume 15, length halt set
	a.WriteRegister(0x4002, 0xFF) // low timer bits (period high enough to not mute)
	a.WriteRegister(0x4003, 0x08) // high timer bits + length counter load

	require.NotZero(t, a.pulse1.lengthCtr)

	a.WriteRegister(0x4015, 0x00) // disable: must clear length counter
	require.Zero(t, a.pulse1.lengthCtr)
}

func TestFrameSequencerClocksEnvelopeOverTime(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x0F) // envelope volume param 15, not constant
	a.WriteRegister(0x4003, 0x00)

	for i := 0; i < 7457; i++ {
		a.Step()
	}
	require.EqualValues(t, 15, a.pulse1.env.decay, "first quarter-frame clock should start the envelope at 15")
}
