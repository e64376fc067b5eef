// Package input implements the NES standard controller's strobe/shift
// register protocol on ports $4016/$4017.
package input

// Button identifies one of the eight standard-controller buttons. Bit order
// matches the hardware shift-out order: A, B, Select, Start, Up, Down,
// Left, Right.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller models one standard NES pad: an 8-bit shift register that
// latches the live button state while strobe is high, and shifts one bit
// out per read once strobe goes low.
type Controller struct {
	buttons  uint8
	shift    uint8
	strobing bool
}

// New creates a controller with no buttons held.
func New() *Controller {
	return &Controller{}
}

// SetButton updates one button's held state.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
	if c.strobing {
		c.shift = c.buttons
	}
}

// IsPressed reports whether button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to the controller's strobe bit. While strobe stays
// high the shift register continuously reloads from live button state;
// the falling edge latches whatever the buttons read at that instant for
// the following eight Read calls.
func (c *Controller) Write(value uint8) {
	strobing := value&1 != 0
	c.strobing = strobing
	if strobing {
		c.shift = c.buttons
	}
}

// Read shifts the next button bit out of bit 0, padded with 1s past the
// eighth read, matching real controller open-bus behavior.
func (c *Controller) Read() uint8 {
	if c.strobing {
		return c.buttons & 1
	}
	bit := c.shift & 1
	c.shift = (c.shift >> 1) | 0x80
	return bit
}

// Reset clears button state and the shift register.
func (c *Controller) Reset() {
	c.buttons = 0
	c.shift = 0
	c.strobing = false
}

// Pair bundles the two standard controller ports the bus exposes at
// $4016/$4017.
type Pair struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewPair creates a disconnected pair of controllers.
func NewPair() *Pair {
	return &Pair{Controller1: New(), Controller2: New()}
}

// Reset resets both controllers.
func (p *Pair) Reset() {
	p.Controller1.Reset()
	p.Controller2.Reset()
}

// Read dispatches a CPU read of $4016 or $4017. Bit 6 reads back as 1
// (open bus pulled high on real hardware); the other unused high bits read
// as 0.
func (p *Pair) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return p.Controller1.Read() | 0x40
	case 0x4017:
		return p.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write broadcasts a strobe write to $4016 to both controllers; real
// hardware wires OUT0 to every pad on the bus.
func (p *Pair) Write(address uint16, value uint8) {
	if address == 0x4016 {
		p.Controller1.Write(value)
		p.Controller2.Write(value)
	}
}
