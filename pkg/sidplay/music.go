package sidplay

import "github.com/olivierh59500/sid-player/pkg/sid"

// Fixed-point precision of the cycle accumulator used to downsample the
// chip clock to the replay rate.
const cycleShift = 16

// Scale from the summed 24-bit voice outputs down to 16-bit samples.
const outputShift = 6

// Music replays one register dump. Each player tick (playerRate times a
// second) writes a frame of register values into the chip; between
// ticks the chip is clocked at its native rate and averaged down to the
// output sample rate.
type Music struct {
	chip *sid.SID

	stream    []byte
	nbFrames  int
	loopFrame int
	attrib    uint32

	title   string
	author  string
	comment string

	model      sid.Model
	chipClock  uint32
	playerRate int
	replayRate int

	currentFrame   int
	innerSamplePos int
	cycleAcc       uint32
	cycleStep      uint32 // chip cycles per output sample, 16.16
	lastLevel      int16

	dcAdjust dcAdjuster
	lowPass  [2]int32
	filter   bool

	musicOK   bool
	pause     bool
	musicOver bool
	loop      bool
}

// NewMusic creates a player producing samples at replayRate Hz.
func NewMusic(replayRate int) *Music {
	if replayRate <= 0 {
		replayRate = 44100
	}
	return &Music{replayRate: replayRate, filter: true}
}

// SetLowpassFilter enables or disables the output smoothing filter.
func (m *Music) SetLowpassFilter(active bool) { m.filter = active }

func (m *Music) Load(fileName string) error   { return m.load(fileName) }
func (m *Music) LoadMemory(data []byte) error { return m.loadMemory(data) }
func (m *Music) SetLoopMode(loop bool)        { m.loop = loop }
func (m *Music) MusicOver() bool              { return m.musicOver }

func (m *Music) recalcStep() {
	m.cycleStep = uint32(uint64(m.chipClock) << cycleShift / uint64(m.replayRate))
	if m.cycleStep < 1<<cycleShift {
		m.cycleStep = 1 << cycleShift
	}
}

// Update renders nbSamples mono samples into buffer. It returns false
// once the music is over and the buffer has been zero-filled.
func (m *Music) Update(buffer []int16, nbSamples int) bool {
	if !m.musicOK || m.pause || m.musicOver {
		for i := 0; i < nbSamples; i++ {
			buffer[i] = 0
		}
		return !m.musicOver
	}

	out := buffer
	nbs := nbSamples
	tickSamples := m.replayRate / m.playerRate
	if tickSamples < 1 {
		tickSamples = 1
	}

	for nbs > 0 {
		todo := tickSamples - m.innerSamplePos
		if todo > nbs {
			todo = nbs
		}

		m.innerSamplePos += todo
		if m.innerSamplePos >= tickSamples {
			m.player()
			m.innerSamplePos -= tickSamples
		}

		if todo > 0 {
			m.render(out[:todo])
			out = out[todo:]
		}
		nbs -= todo
	}
	return true
}

// player applies the current frame's register writes and advances the
// frame counter, handling loop and end of music.
func (m *Music) player() {
	if m.currentFrame < 0 {
		m.currentFrame = 0
	}
	if m.currentFrame >= m.nbFrames {
		if m.loop || m.attrib&attrLoop != 0 {
			m.currentFrame = m.loopFrame
		} else {
			m.musicOver = true
			m.chip.Reset()
			return
		}
	}

	frame := m.stream[m.currentFrame*frameSize : m.currentFrame*frameSize+frameSize]
	for reg := 0; reg < frameRegs; reg++ {
		m.chip.WriteRegister(reg, frame[reg])
	}
	for v := 0; v < 3; v++ {
		m.chip.SetEnvelope(v, frame[frameEnvOffset+v])
	}
	m.currentFrame++
}

// render clocks the chip at its native rate, averages the cycles
// belonging to each output sample and normalizes the result: the
// moving-average DC tracker strips the model's output pedestal and an
// optional low-pass takes the edge off the downsampling.
func (m *Music) render(out []int16) {
	for i := range out {
		m.cycleAcc += m.cycleStep
		cycles := int(m.cycleAcc >> cycleShift)
		m.cycleAcc &= 1<<cycleShift - 1

		if cycles > 0 {
			var sum int64
			for c := 0; c < cycles; c++ {
				m.chip.Clock()
				sum += int64(m.chip.Output())
			}
			level := int32(sum / int64(cycles))

			m.dcAdjust.addSample(level)
			v := (level - m.dcAdjust.dcLevel()) >> outputShift
			if m.filter {
				v = m.lowPassFilter(v)
			}
			m.lastLevel = clamp16(int64(v))
		}
		out[i] = m.lastLevel
	}
}

func (m *Music) lowPassFilter(in int32) int32 {
	out := m.lowPass[0]>>2 + m.lowPass[1]>>1 + in>>2
	m.lowPass[0] = m.lowPass[1]
	m.lowPass[1] = in
	return out
}

func clamp16(v int64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func (m *Music) Play()  { m.pause = false }
func (m *Music) Pause() { m.pause = true }

func (m *Music) Stop() {
	m.stop()
	if m.chip != nil {
		m.chip.Reset()
	}
}

func (m *Music) Restart() {
	m.SetMusicTime(0)
	m.musicOver = false
}

// GetPos returns the playback position in milliseconds.
func (m *Music) GetPos() uint32 {
	if m.nbFrames > 0 && m.playerRate > 0 {
		return uint32(m.currentFrame) * 1000 / uint32(m.playerRate)
	}
	return 0
}

// GetMusicTime returns the length of one pass in milliseconds.
func (m *Music) GetMusicTime() uint32 {
	if m.nbFrames > 0 && m.playerRate > 0 {
		return uint32(m.nbFrames) * 1000 / uint32(m.playerRate)
	}
	return 0
}

// SetMusicTime seeks to a position in milliseconds and returns the
// clamped position actually set.
func (m *Music) SetMusicTime(timeInMs uint32) uint32 {
	if !m.musicOK {
		return 0
	}
	if timeInMs >= m.GetMusicTime() {
		timeInMs = 0
	}
	m.currentFrame = int(timeInMs * uint32(m.playerRate) / 1000)
	m.innerSamplePos = 0
	return timeInMs
}

// ReadOSC exposes a voice's oscillator readback byte, mostly for
// visualizers.
func (m *Music) ReadOSC(voice int) uint8 {
	if m.chip == nil {
		return 0
	}
	return m.chip.ReadOSC(voice)
}

func (m *Music) GetMusicInfo() *Info {
	return &Info{
		Title:         m.title,
		Author:        m.author,
		Comment:       m.comment,
		Model:         m.model,
		ChipClock:     m.chipClock,
		PlayerRate:    m.playerRate,
		Frames:        m.nbFrames,
		MusicTimeInMs: m.GetMusicTime(),
	}
}

func (m *Music) stop() {
	m.pause = true
	m.currentFrame = 0
	m.innerSamplePos = 0
	m.cycleAcc = 0
	m.lastLevel = 0
	m.dcAdjust.reset()
	m.lowPass = [2]int32{}
}

func (m *Music) unload() {
	m.musicOK = false
	m.pause = true
	m.musicOver = false
	m.stream = nil
	m.chip = nil
	m.title = ""
	m.author = ""
	m.comment = ""
	m.nbFrames = 0
	m.loopFrame = 0
	m.attrib = 0
}
