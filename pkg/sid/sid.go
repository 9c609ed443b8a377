package sid

// Chip clock rates of the host machines.
const (
	ClockPAL  = 985248
	ClockNTSC = 1022730
)

// Register indices, per voice: freq lo/hi, pulse width lo/hi, control.
const (
	regFreqLo = iota
	regFreqHi
	regPWLo
	regPWHi
	regControl
	regsPerVoice
)

// Control register bits.
const (
	ctrlSync = 0x02
	ctrlRing = 0x04
	ctrlTest = 0x08
)

// SID models the oscillator, waveform and mixer section of the sound
// chip: three voices wired into the hard-sync ring, clocked cycle by
// cycle in two phases. Envelope values are supplied externally per
// voice; the filter stage is out of scope and consumers sum the voice
// outputs themselves or use Output.
type SID struct {
	model Model
	voice [3]*Voice
	ctrl  [3]Control
	env   [3]reg8
}

func New(model Model) (*SID, error) {
	s := &SID{model: model}
	for i := range s.voice {
		v, err := NewVoice(model)
		if err != nil {
			return nil, err
		}
		s.voice[i] = v
	}
	return s, nil
}

func (s *SID) Model() Model { return s.model }

func (s *SID) Reset() {
	for i := range s.voice {
		s.voice[i].Reset()
		s.ctrl[i] = Control{}
		s.env[i] = 0
	}
}

// syncSource returns the ring neighbor that hard-syncs voice i:
// voice 0 is synced by voice 2, 1 by 0, 2 by 1.
func syncSource(i int) int { return (i + 2) % 3 }

// WriteRegister applies a write to one of the fifteen per-voice
// oscillator registers, laid out as on the chip: voice*5 + {freq lo,
// freq hi, pw lo, pw hi, control}. Writes outside that range are
// ignored.
func (s *SID) WriteRegister(reg int, data uint8) {
	if reg < 0 || reg >= 3*regsPerVoice {
		return
	}
	c := &s.ctrl[reg/regsPerVoice]
	switch reg % regsPerVoice {
	case regFreqLo:
		c.Freq = c.Freq&0xff00 | reg16(data)
	case regFreqHi:
		c.Freq = reg16(data)<<8 | c.Freq&0x00ff
	case regPWLo:
		c.PW = c.PW&0xf00 | reg12(data)
	case regPWHi:
		c.PW = reg12(data&0x0f)<<8 | c.PW&0x0ff
	case regControl:
		c.Waveform = reg4(data >> 4)
		c.Test = data&ctrlTest != 0
		c.Ring = data&ctrlRing != 0
		c.Sync = data&ctrlSync != 0
	}
}

// SetEnvelope supplies the envelope value for one voice. The envelope
// generators live outside this core; the value is consumed by the DCA
// multiplier on the next phase-2 clock.
func (s *SID) SetEnvelope(voice int, level uint8) {
	s.env[voice] = reg8(level)
}

// Clock advances the chip one cycle.
//
// Phase 1 commits the oscillator and noise registers. The sync network
// is resolved first, across the whole ring and before any commit: every
// oscillator's pre-reset MSB is computed, then each voice's own
// reset-this-cycle flag, so that an oscillator being hard-synced does
// not in turn sync its destination. With all three voices wrapping on
// the same cycle none of them resets.
//
// Phase 2 moves the selector and mix pipeline registers.
func (s *SID) Clock() {
	var msb, synced [3]bool
	for i := range s.voice {
		msb[i] = s.voice[i].Osc.NextMSB(s.ctrl[i])
	}
	for i := range s.voice {
		rising := s.voice[i].Osc.MSBRising(msb[syncSource(i)])
		synced[i] = s.ctrl[i].Test || (s.ctrl[i].Sync && rising)
	}
	for i := range s.voice {
		src := syncSource(i)
		s.voice[i].ClockPhase1(s.ctrl[i], SyncBus{MSB: msb[src], Synced: synced[src]})
	}

	for i := range s.voice {
		s.voice[i].ClockPhase2(s.ctrl[i], s.env[i])
	}
}

// ClockN advances the chip n cycles.
func (s *SID) ClockN(n int) {
	for ; n > 0; n-- {
		s.Clock()
	}
}

// VoiceOutput returns the current sample of one voice.
func (s *SID) VoiceOutput(i int) int32 { return s.voice[i].Output() }

// ReadOSC returns the oscillator readback byte of one voice. On the
// real chip only voice 2 is exposed, through register 0x1b.
func (s *SID) ReadOSC(i int) uint8 { return s.voice[i].ReadOSC() }

// Output sums the three voice samples, for consumers without their own
// mixing stage.
func (s *SID) Output() int32 {
	return s.voice[0].Output() + s.voice[1].Output() + s.voice[2].Output()
}
