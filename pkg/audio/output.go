// Package audio provides sample output backends and a pull-model player
// loop shared by the command line and GUI front ends.
package audio

import (
	"errors"
	"sync"
	"time"
)

// Output is a sink for 16-bit PCM samples.
type Output interface {
	Open(sampleRate, channels, bufferSize int) error
	Close() error
	Write(samples []int16) error
	IsPlaying() bool
}

// Source produces samples on demand. Compute fills buffer with
// nbSamples samples and returns false once the stream is over.
type Source interface {
	Compute(buffer []int16, nbSamples int) bool
}

// Player pulls samples from a Source and pushes them to an Output on a
// background goroutine.
type Player struct {
	source     Source
	output     Output
	bufferSize int

	mu      sync.Mutex
	playing bool
	paused  bool
	done    chan struct{}
}

func NewPlayer(source Source, output Output) *Player {
	return &Player{
		source: source,
		output: output,
	}
}

// Start opens the output and launches the playback loop.
func (p *Player) Start(sampleRate, bufferSize int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return errors.New("already playing")
	}
	if err := p.output.Open(sampleRate, 1, bufferSize); err != nil {
		return err
	}

	p.bufferSize = bufferSize
	p.playing = true
	p.done = make(chan struct{})
	go p.loop()
	return nil
}

// Stop ends playback and waits for the loop to shut the output down.
// Safe to call after the source has already run out: the loop owns the
// output close, so it happens exactly once either way.
func (p *Player) Stop() {
	p.mu.Lock()
	p.playing = false
	done := p.done
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

func (p *Player) Resume() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()
}

func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// IsPlaying reports whether the playback loop is running.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) loop() {
	// The output closes on every exit path, including the source
	// running out on its own. done closes after so that Stop only
	// returns once the output is down.
	defer func() {
		p.output.Close()
		close(p.done)
	}()

	buffer := make([]int16, p.bufferSize)
	for {
		p.mu.Lock()
		if !p.playing {
			p.mu.Unlock()
			return
		}
		paused := p.paused
		p.mu.Unlock()

		if paused {
			for i := range buffer {
				buffer[i] = 0
			}
		} else if !p.source.Compute(buffer, len(buffer)) {
			p.mu.Lock()
			p.playing = false
			p.mu.Unlock()
			return
		}

		if err := p.output.Write(buffer); err != nil {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// BufferOutput accumulates samples in memory, for tests and offline
// rendering.
type BufferOutput struct {
	mu         sync.Mutex
	buffer     []int16
	closed     bool
	sampleRate int
	channels   int
}

func NewBufferOutput() *BufferOutput {
	return &BufferOutput{}
}

func (b *BufferOutput) Open(sampleRate, channels, bufferSize int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sampleRate = sampleRate
	b.channels = channels
	b.buffer = make([]int16, 0, sampleRate*channels)
	b.closed = false
	return nil
}

// Close stops accepting samples. The accumulated buffer stays readable
// so an offline render can be collected after playback ends.
func (b *BufferOutput) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	return nil
}

func (b *BufferOutput) Write(samples []int16) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer == nil || b.closed {
		return errors.New("buffer not open")
	}
	b.buffer = append(b.buffer, samples...)
	return nil
}

func (b *BufferOutput) IsPlaying() bool { return true }

// GetBuffer returns a copy of the accumulated samples.
func (b *BufferOutput) GetBuffer() []int16 {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]int16, len(b.buffer))
	copy(out, b.buffer)
	return out
}

func (b *BufferOutput) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer != nil {
		b.buffer = b.buffer[:0]
	}
}
