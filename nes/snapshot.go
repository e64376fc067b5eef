package nes

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"
)

const (
	snapshotMagic   = "NESSAVE\x00"
	snapshotVersion = 1
)

// cpuSnapshot is the packed little-endian CPU record inside a snapshot.
type cpuSnapshot struct {
	A, X, Y, SP uint8
	P           uint8
	PC          uint16
	Cycles      uint64
}

// SnapshotSave serializes the magic, version, CPU state, 2KB of RAM, and a
// reserved extension block (currently empty; future PPU/APU state would
// land there without breaking older loaders, which tolerate a short or
// absent extension), then zstd-compresses the whole record before writing
// it out: most of a snapshot is zeroed or sparsely-used RAM, which
// compresses well.
func (e *Emulator) SnapshotSave(w io.Writer) error {
	buf := &bytes.Buffer{}
	buf.WriteString(snapshotMagic)
	buf.WriteByte(snapshotVersion)

	snap := e.cpuSnapshot()
	if err := binary.Write(buf, binary.LittleEndian, &snap); err != nil {
		return err
	}
	if _, err := buf.Write(e.bus.RAM[:]); err != nil {
		return err
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// SnapshotLoad restores CPU and RAM state from a previously saved
// snapshot. Nothing after the RAM block is read, so a reserved extension
// block, if present, is ignored; its absence is not an error.
func (e *Emulator) SnapshotLoad(r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return ErrSnapshotCorrupt
	}
	defer zr.Close()

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(zr, magic); err != nil {
		return ErrSnapshotCorrupt
	}
	if string(magic) != snapshotMagic {
		return ErrSnapshotCorrupt
	}

	var version uint8
	if err := binary.Read(zr, binary.LittleEndian, &version); err != nil {
		return ErrSnapshotCorrupt
	}
	if version != snapshotVersion {
		return ErrSnapshotCorrupt
	}

	var snap cpuSnapshot
	if err := binary.Read(zr, binary.LittleEndian, &snap); err != nil {
		return ErrSnapshotCorrupt
	}
	if _, err := io.ReadFull(zr, e.bus.RAM[:]); err != nil {
		return ErrSnapshotCorrupt
	}

	e.applyCPUSnapshot(snap)
	return nil
}

func (e *Emulator) cpuSnapshot() cpuSnapshot {
	return cpuSnapshot{
		A: e.cpu.A, X: e.cpu.X, Y: e.cpu.Y, SP: e.cpu.SP,
		P: e.cpu.P, PC: e.cpu.PC, Cycles: e.cpu.Cycles(),
	}
}

func (e *Emulator) applyCPUSnapshot(s cpuSnapshot) {
	e.cpu.A, e.cpu.X, e.cpu.Y, e.cpu.SP = s.A, s.X, s.Y, s.SP
	e.cpu.P, e.cpu.PC = s.P, s.PC
	e.cpu.RestoreCycles(s.Cycles)
}
