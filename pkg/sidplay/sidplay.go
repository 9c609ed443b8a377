package sidplay

// Player is the top-level playback API wrapping a Music instance.
type Player struct {
	music *Music
}

// Create returns a player rendering at 44.1 kHz.
func Create() *Player {
	return &Player{music: NewMusic(44100)}
}

// CreateWithRate returns a player rendering at a specific sample rate.
func CreateWithRate(replayRate int) *Player {
	return &Player{music: NewMusic(replayRate)}
}

// Destroy releases the player.
func (p *Player) Destroy() {
	if p.music != nil {
		p.music.unload()
		p.music = nil
	}
}

// Load loads a dump file from disk.
func (p *Player) Load(fileName string) error {
	return p.music.Load(fileName)
}

// LoadMemory loads a dump from memory.
func (p *Player) LoadMemory(data []byte) error {
	return p.music.LoadMemory(data)
}

// Compute renders audio samples. It returns false once playback is
// over.
func (p *Player) Compute(buffer []int16, nbSamples int) bool {
	return p.music.Update(buffer, nbSamples)
}

// SetLoopMode enables or disables looping.
func (p *Player) SetLoopMode(loop bool) {
	p.music.SetLoopMode(loop)
}

// GetInfo returns the loaded dump's metadata.
func (p *Player) GetInfo() *Info {
	return p.music.GetMusicInfo()
}

// ReadOSC returns a voice's oscillator readback byte.
func (p *Player) ReadOSC(voice int) uint8 {
	return p.music.ReadOSC(voice)
}

// Play starts or resumes playback.
func (p *Player) Play() { p.music.Play() }

// Pause pauses playback.
func (p *Player) Pause() { p.music.Pause() }

// Stop stops playback and rewinds.
func (p *Player) Stop() { p.music.Stop() }

// Restart rewinds to the beginning and clears the over flag.
func (p *Player) Restart() { p.music.Restart() }

// IsOver reports whether playback has finished.
func (p *Player) IsOver() bool { return p.music.MusicOver() }

// GetPos returns the playback position in milliseconds.
func (p *Player) GetPos() uint32 { return p.music.GetPos() }

// GetMusicTime returns the music length in milliseconds.
func (p *Player) GetMusicTime() uint32 { return p.music.GetMusicTime() }

// Seek jumps to a position in milliseconds.
func (p *Player) Seek(timeInMs uint32) { p.music.SetMusicTime(timeInMs) }

// SetLowpassFilter enables or disables the output smoothing filter.
func (p *Player) SetLowpassFilter(active bool) { p.music.SetLowpassFilter(active) }
