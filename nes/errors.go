package nes

import "errors"

// Sentinel errors the facade surfaces to callers. Internal invariant
// violations (an opcode outside the documented-plus-illegal table, a bank
// index past allocated memory) never reach here: they are clamped at the
// source and the core keeps running.
var (
	// ErrSnapshotCorrupt is returned by SnapshotLoad when the magic or
	// version byte doesn't match.
	ErrSnapshotCorrupt = errors.New("nes: snapshot corrupt")

	// ErrNoCartridge is returned by operations that require a loaded ROM
	// before one has been loaded.
	ErrNoCartridge = errors.New("nes: no cartridge loaded")

	// ErrNoBattery is returned by SRAMSave/SRAMLoad when the loaded
	// cartridge has no battery-backed SRAM to persist.
	ErrNoBattery = errors.New("nes: cartridge has no battery-backed SRAM")
)
