package sid

// Oscillator is the 24-bit phase-accumulating oscillator of one voice.
// Each cycle it adds the 16-bit frequency value to the accumulator and
// latches three waveform samples: a 12-bit saw/triangle value (with
// ring modulation folded in), a 12-bit pulse value and, indirectly, the
// bit-19 clock for the noise register.
//
// Hard sync and the test bit reset the accumulator. The reset decision
// depends on the neighbor oscillator having its MSB rise while not
// itself being reset; the chip resolves those signals across the ring
// before any oscillator commits, and hands the result in here as a
// SyncBus.
type Oscillator struct {
	model Model

	acc       reg24
	msbPrevIn bool // sync input MSB, latched from the previous cycle

	sawtri reg12 // latched saw/triangle sample
	pulse  reg12 // latched pulse sample
}

func NewOscillator(model Model) *Oscillator {
	return &Oscillator{model: model}
}

func (o *Oscillator) Reset() {
	o.acc = 0
	o.msbPrevIn = false
	o.sawtri = 0
	o.pulse = 0
}

// NextMSB returns the MSB the accumulator is about to latch this cycle,
// before any reset decision. The sync ring observes this pre-reset
// value, so a wrapping oscillator still syncs its destination on the
// cycle it is itself reset.
func (o *Oscillator) NextMSB(c Control) bool {
	return (o.acc+reg24(c.Freq))&accMSB != 0
}

// MSBRising reports a 0-to-1 transition on the sync input relative to
// the value latched last cycle.
func (o *Oscillator) MSBRising(inMSB bool) bool {
	return !o.msbPrevIn && inMSB
}

// Clock advances the oscillator one cycle. in must already be resolved
// for the current cycle across the whole ring. It reports whether the
// accumulator was reset (test or hard sync).
func (o *Oscillator) Clock(c Control, in SyncBus) bool {
	prev := o.acc
	next := (o.acc + reg24(c.Freq)) & accMask

	rising := !o.msbPrevIn && in.MSB
	reset := c.Test || (c.Sync && rising && !in.Synced)
	if reset {
		o.acc = 0
	} else {
		o.acc = next
	}
	o.msbPrevIn = in.MSB

	// The pulse comparator works on the accumulator value from before
	// this cycle's commit, so pulse trails saw/triangle by one cycle.
	// Test forces the output high.
	if c.Test || reg12(prev>>12) >= c.PW {
		o.pulse = 0xfff
	} else {
		o.pulse = 0
	}

	// Saw/triangle latch. The 8580 captures the pre-commit value, one
	// cycle behind the 6581.
	capture := o.acc
	if o.model == MOS8580 {
		capture = prev
	}
	sample := reg12(capture >> 12)

	// Ring modulation inverts the lower 11 bits. The XOR source is the
	// accumulator MSB, optionally flipped by the ring neighbor's MSB;
	// a selected sawtooth disables the inversion path entirely.
	invert := (c.Ring && !in.MSB) != (capture&accMSB != 0)
	if c.Waveform&WaveSawtooth == 0 && invert {
		sample ^= 0x7ff
	}
	o.sawtri = sample

	return reset
}

// SawTri returns the latched 12-bit saw/triangle sample.
func (o *Oscillator) SawTri() reg12 { return o.sawtri }

// Pulse returns the latched 12-bit pulse sample, 0x000 or 0xfff.
func (o *Oscillator) Pulse() reg12 { return o.pulse }

// Bit19 reports accumulator bit 19, the noise register clock source.
func (o *Oscillator) Bit19() bool { return o.acc&accBit19 != 0 }

// Accumulator returns the raw 24-bit phase accumulator.
func (o *Oscillator) Accumulator() uint32 { return uint32(o.acc) }
