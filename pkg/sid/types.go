package sid

// Register-width integer types matching the chip's internal buses.
type (
	reg4  uint8
	reg8  uint8
	reg12 uint16
	reg16 uint16
	reg24 uint32
)

// Model selects the chip revision being emulated. The two revisions
// differ in DAC linearity, DC offsets, noise register hold time and a
// one-cycle saw/triangle latch offset.
type Model uint8

const (
	MOS6581 Model = iota
	MOS8580
)

func (m Model) String() string {
	if m == MOS8580 {
		return "MOS 8580"
	}
	return "MOS 6581"
}

// Accumulator masks and bit positions.
const (
	accMask  reg24 = 0xffffff // 24-bit phase accumulator
	accMSB   reg24 = 0x800000 // accumulator bit 23, drives sync and ring mod
	accBit19 reg24 = 0x080000 // accumulator bit 19, clocks the noise register
)

// Waveform selector bits, as laid out in the control register.
const (
	WaveTriangle reg4 = 0x1
	WaveSawtooth reg4 = 0x2
	WavePulse    reg4 = 0x4
	WaveNoise    reg4 = 0x8
)

// Control holds the per-cycle register fields for one voice. The caller
// owns it; it must not change within a cycle.
type Control struct {
	Test bool
	Sync bool
	Ring bool

	Waveform reg4
	Freq     reg16
	PW       reg12
}

// SyncBus carries the per-cycle signals between neighbors in the
// hard-sync ring.
type SyncBus struct {
	// MSB is the neighbor's about-to-be-latched accumulator MSB,
	// sampled before the neighbor's own reset decision.
	MSB bool

	// Synced reports that the neighbor itself is being reset this
	// cycle (hard sync or test). A synced neighbor does not sync its
	// destination.
	Synced bool
}
