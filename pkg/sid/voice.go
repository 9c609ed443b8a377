package sid

// Model-dependent mix constants. The 6581 waveform DAC idles below mid
// scale and its voice output rides on a DC pedestal; the 8580 is
// centered and clean.
const (
	waveZero6581 int32 = 0x380
	waveZero8580 int32 = 0x800
	voiceDC6581  int32 = 0x800 * 0xff
	voiceDC8580  int32 = 0
)

// pipelineStage holds the values latched between the waveform selection
// cycle and the mix cycle. The selector and multiplier path is two
// cycles deep, so the voice carries two of these.
type pipelineStage struct {
	waveform reg4

	// digital waveform values
	tri   reg12
	saw   reg12
	pulse reg12
	noise reg12

	// the same values after the waveform DAC (identical on the 8580,
	// whose DACs are linear enough to skip)
	triDAC   reg12
	sawDAC   reg12
	pulseDAC reg12
	noiseDAC reg12

	env int32 // envelope value after its DAC pass
}

// Voice combines one oscillator, one noise generator, the waveform
// selector and the DCA multiplier into a complete voice. The envelope
// value is supplied from outside each cycle.
type Voice struct {
	Osc   *Oscillator
	Noise *NoiseGenerator

	model    Model
	waves    *WaveTables
	dac12    []uint16 // waveform DAC, nil when bypassed
	dac8     []uint16 // envelope DAC, nil when bypassed
	waveZero int32
	voiceDC  int32

	s1, s2 pipelineStage

	sample   int32
	readback reg8
}

func NewVoice(model Model) (*Voice, error) {
	waves, err := LoadWaveTables(model)
	if err != nil {
		return nil, err
	}

	v := &Voice{
		Osc:      NewOscillator(model),
		Noise:    NewNoiseGenerator(model),
		model:    model,
		waves:    waves,
		waveZero: waveZero8580,
		voiceDC:  voiceDC8580,
	}
	if model == MOS6581 {
		v.waveZero = waveZero6581
		v.voiceDC = voiceDC6581
		if v.dac12, err = DACTable(dacConfigFor(model, 12)); err != nil {
			return nil, err
		}
		if v.dac8, err = DACTable(dacConfigFor(model, 8)); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *Voice) Reset() {
	v.Osc.Reset()
	v.Noise.Reset()
	v.s1 = pipelineStage{}
	v.s2 = pipelineStage{}
	v.sample = 0
	v.readback = 0
}

// ClockPhase1 commits the oscillator and noise registers for one cycle.
// in must be the resolved sync bus from the voice's ring neighbor.
// Only the test bit holds the noise feedback high; a hard sync resets
// the accumulator but leaves the shift register feedback alone.
func (v *Voice) ClockPhase1(c Control, in SyncBus) {
	v.Osc.Clock(c, in)
	v.Noise.Clock(v.Osc.Bit19(), c.Test)

	// Selecting noise together with another waveform couples the
	// combined output back into the shift register.
	if c.Waveform&WaveNoise != 0 && c.Waveform&(WavePulse|WaveSawtooth|WaveTriangle) != 0 {
		v.Noise.CorruptTaps()
	}
}

// ClockPhase2 moves the mix pipeline one cycle: the selection captured
// two cycles ago reaches the output, and the current oscillator state
// is latched behind it.
func (v *Voice) ClockPhase2(c Control, env reg8) {
	v.mix(v.s2)
	v.s2 = v.s1
	v.s1 = v.capture(c, env)
}

func (v *Voice) capture(c Control, env reg8) pipelineStage {
	s := pipelineStage{
		waveform: c.Waveform,
		saw:      v.Osc.SawTri(),
		pulse:    v.Osc.Pulse(),
		noise:    reg12(v.Noise.Output()) << 4,
	}
	s.tri = (s.saw & 0x7ff) << 1

	if v.dac12 != nil {
		s.triDAC = reg12(v.dac12[s.tri])
		s.sawDAC = reg12(v.dac12[s.saw])
		s.pulseDAC = reg12(v.dac12[s.pulse])
		s.noiseDAC = reg12(v.dac12[s.noise])
		s.env = int32(v.dac8[env])
	} else {
		s.triDAC = s.tri
		s.sawDAC = s.saw
		s.pulseDAC = s.pulse
		s.noiseDAC = s.noise
		s.env = int32(env)
	}
	return s
}

// selectWaveform runs the waveform selector on a pipeline stage. With
// dac set the single waveforms go through their DAC pass; the combined
// tables already hold analog-domain measurements and are used as-is on
// both paths.
func (v *Voice) selectWaveform(s pipelineStage, dac bool) reg12 {
	tri, saw, pulse, noise := s.tri, s.saw, s.pulse, s.noise
	if dac {
		tri, saw, pulse, noise = s.triDAC, s.sawDAC, s.pulseDAC, s.noiseDAC
	}

	switch s.waveform {
	case 0:
		return 0
	case WaveTriangle:
		return tri
	case WaveSawtooth:
		return saw
	case WaveSawtooth | WaveTriangle:
		return reg12(v.waves.SawTri[s.saw]) << 4
	case WavePulse:
		return pulse
	case WavePulse | WaveTriangle:
		return reg12(v.waves.PulseTri[s.tri>>1]) << 4 & s.pulse
	case WavePulse | WaveSawtooth:
		return reg12(v.waves.PulseSaw[s.saw]) << 4 & s.pulse
	case WavePulse | WaveSawtooth | WaveTriangle:
		return reg12(v.waves.PulseSawTri[s.saw]) << 4 & s.pulse
	case WaveNoise:
		return noise
	default:
		// Noise combined with any other waveform drags the output
		// to (near) zero while corrupting the shift register.
		return 0
	}
}

func (v *Voice) mix(s pipelineStage) {
	digital := v.selectWaveform(s, false)
	analog := v.selectWaveform(s, true)

	v.sample = v.voiceDC + (int32(analog)-v.waveZero)*s.env
	v.readback = reg8(digital >> 4)
}

// Output returns the current voice sample. The value fits a signed
// 24-bit range by construction.
func (v *Voice) Output() int32 { return v.sample }

// ReadOSC returns the oscillator readback byte: the top 8 bits of the
// selected digital waveform, delayed by the mix pipeline.
func (v *Voice) ReadOSC() uint8 { return uint8(v.readback) }
