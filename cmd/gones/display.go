package main

import (
	"github.com/claude/nescore/internal/input"
	"github.com/claude/nescore/nes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	screenWidth  = 256
	screenHeight = 240
	sampleRate   = 44100
)

// keyMap pairs each standard-controller button with the ebiten key a
// keyboard player presses for it.
var keyMap = [...]struct {
	button input.Button
	key    ebiten.Key
}{
	{input.ButtonA, ebiten.KeyX},
	{input.ButtonB, ebiten.KeyZ},
	{input.ButtonSelect, ebiten.KeyShiftRight},
	{input.ButtonStart, ebiten.KeyEnter},
	{input.ButtonUp, ebiten.KeyUp},
	{input.ButtonDown, ebiten.KeyDown},
	{input.ButtonLeft, ebiten.KeyLeft},
	{input.ButtonRight, ebiten.KeyRight},
}

// game adapts the Emulator Facade to ebiten's update/draw loop; all NES
// semantics live in nes.Emulator, this is wiring only.
type game struct {
	emu     *nes.Emulator
	frame   []uint16
	pixels  []byte
	image   *ebiten.Image
	player  *audio.Player
	audioSrc *audioStream
}

func newGame(emu *nes.Emulator) *game {
	g := &game{
		emu:    emu,
		frame:  make([]uint16, screenWidth*screenHeight),
		pixels: make([]byte, screenWidth*screenHeight*4),
		image:  ebiten.NewImage(screenWidth, screenHeight),
	}
	ctx := audio.NewContext(sampleRate)
	g.audioSrc = &audioStream{emu: emu}
	player, err := ctx.NewPlayer(g.audioSrc)
	if err == nil {
		g.player = player
		g.player.Play()
	}
	return g
}

func (g *game) Update() error {
	for _, k := range keyMap {
		g.emu.SetButton(0, k.button, ebiten.IsKeyPressed(k.key))
	}
	g.emu.RunFrame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.emu.RenderInto(g.frame)
	for i, px := range g.frame {
		r := uint8((px>>11)&0x1F) << 3
		gr := uint8((px>>5)&0x3F) << 2
		b := uint8(px&0x1F) << 3
		o := i * 4
		g.pixels[o] = r
		g.pixels[o+1] = gr
		g.pixels[o+2] = b
		g.pixels[o+3] = 0xFF
	}
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// audioStream adapts the Emulator's unsigned 8-bit mono sample stream to
// the signed 16-bit stereo PCM ebiten's audio player expects.
type audioStream struct {
	emu *nes.Emulator
	buf [512]uint8
}

func (a *audioStream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames > len(a.buf) {
		frames = len(a.buf)
	}
	n := a.emu.AudioInto(a.buf[:frames])
	for i := 0; i < n; i++ {
		sample := int16(int(a.buf[i])-128) << 8
		lo := byte(sample)
		hi := byte(sample >> 8)
		p[i*4] = lo
		p[i*4+1] = hi
		p[i*4+2] = lo
		p[i*4+3] = hi
	}
	return n * 4, nil
}
