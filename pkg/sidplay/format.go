// Package sidplay plays SID register-dump files: per-frame snapshots of
// the oscillator registers and envelope levels of all three voices,
// replayed through the cycle-accurate chip core in pkg/sid.
package sidplay

import "github.com/olivierh59500/sid-player/pkg/sid"

// File ID of the SDR register-dump format, big-endian 'SDR1'.
const idSDR1 = uint32(0x53445231)

// Check string following the file ID, same role as a format signature.
const sdrSignature = "SIDDUMP!"

// Attribute bits from the dump header.
const (
	attrInterleaved = 1 << 0 // stream stored register-major
	attrLoop        = 1 << 1 // dump carries a loop frame
)

// One frame of the register stream: the fifteen oscillator registers of
// the three voices, one envelope byte per voice, two reserved bytes.
const (
	frameSize      = 20
	frameRegs      = 15
	frameEnvOffset = 15
)

// Model codes as stored in the header.
const (
	modelCode6581 = 0
	modelCode8580 = 1
)

// Info describes a loaded dump.
type Info struct {
	Title   string
	Author  string
	Comment string

	Model      sid.Model
	ChipClock  uint32
	PlayerRate int // frames per second
	Frames     int

	// MusicTimeInMs is the play time of one pass through the dump.
	MusicTimeInMs uint32
}
