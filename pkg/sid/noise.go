package sid

// Noise output taps, MSB first: shift register bits 20, 18, 14, 11, 9,
// 5, 2 and 0 form the 8-bit noise sample.
const noiseTapMask reg24 = 0x144a25

// 23-bit register width and the value the dynamic latches fade to when
// left unclocked.
const (
	lfsrMask reg24 = 0x7fffff
	lfsrFill reg24 = 0x7fffff
)

// Hold time, in cycles, before an unclocked shift register has faded
// to all ones. The 8580 latches leak far more slowly.
const (
	noiseFade6581 = 32768
	noiseFade8580 = 9764864
)

// NoiseGenerator is the 23-bit Fibonacci shift register producing the
// noise waveform. It is clocked from a rising edge on accumulator
// bit 19, observed through a one-cycle delay, and a started shift takes
// a further cycle to complete.
type NoiseGenerator struct {
	lfsr reg24

	bit19Prev bool  // clock source, delayed one cycle
	holdPrev  bool  // test state, delayed one cycle
	pipeline  uint8 // cycles until a pending shift completes

	age  uint32 // cycles since the last completed shift
	fade uint32 // model fade threshold
}

func NewNoiseGenerator(model Model) *NoiseGenerator {
	fade := uint32(noiseFade6581)
	if model == MOS8580 {
		fade = noiseFade8580
	}
	n := &NoiseGenerator{fade: fade}
	n.Reset()
	return n
}

func (n *NoiseGenerator) Reset() {
	n.lfsr = lfsrFill
	n.bit19Prev = false
	n.holdPrev = false
	n.pipeline = 0
	n.age = 0
}

// Clock advances the generator one cycle. bit19 is the oscillator's
// freshly committed accumulator bit 19; hold reports that the voice
// was held in test this cycle. A hard sync is not a hold: it resets
// the accumulator without touching the feedback path.
func (n *NoiseGenerator) Clock(bit19, hold bool) {
	shifted := false
	if n.pipeline > 0 {
		n.pipeline--
		if n.pipeline == 0 {
			n.shift()
			shifted = true
		}
	}

	if bit19 && !n.bit19Prev {
		n.pipeline = 2
	}
	n.bit19Prev = bit19

	if shifted {
		n.age = 0
	} else {
		if n.age < n.fade {
			n.age++
		}
		// The register is built from dynamic latches; without clocking
		// it fades to all ones and stays there until shifted again.
		if n.age >= n.fade {
			n.lfsr = lfsrFill
		}
	}

	n.holdPrev = hold
}

// shift moves the register one position. The feedback into bit 0 ORs
// the delayed test state into bit 22 before the XOR with bit 17,
// which is what lets a held register refill with ones bit by bit.
func (n *NoiseGenerator) shift() {
	bit22 := reg24(0)
	if n.holdPrev || n.lfsr&(1<<22) != 0 {
		bit22 = 1
	}
	bit17 := (n.lfsr >> 17) & 1
	n.lfsr = (n.lfsr<<1 | (bit22 ^ bit17)) & lfsrMask
}

// Output assembles the 8-bit noise sample from the tapped bits.
func (n *NoiseGenerator) Output() reg8 {
	l := n.lfsr
	return reg8(l>>13&0x80 |
		l>>12&0x40 |
		l>>9&0x20 |
		l>>7&0x10 |
		l>>6&0x08 |
		l>>3&0x04 |
		l>>1&0x02 |
		l&0x01)
}

// CorruptTaps clears the tapped register bits, modeling the write-back
// that happens when noise is selected together with another waveform.
// The real chip feeds the combined output bits back into the register;
// clearing approximates that the combined value pulls them low.
func (n *NoiseGenerator) CorruptTaps() {
	n.lfsr &^= noiseTapMask
}

// Register returns the raw 23-bit shift register.
func (n *NoiseGenerator) Register() uint32 { return uint32(n.lfsr) }
