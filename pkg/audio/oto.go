package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Oto allows one context per process; outputs share it and it stays
// alive for reuse after the last player closes.
var (
	otoMu      sync.Mutex
	otoContext *oto.Context
	otoPlayers int
)

// OtoOutput plays samples through oto v3, feeding the device from an
// in-process pipe.
type OtoOutput struct {
	mu         sync.Mutex
	player     *oto.Player
	writer     *io.PipeWriter
	reader     *io.PipeReader
	sampleRate int
	channels   int
	closed     bool
	wg         sync.WaitGroup
}

func NewOtoOutput() (*OtoOutput, error) {
	return &OtoOutput{}, nil
}

func (o *OtoOutput) Open(sampleRate, channels, bufferSize int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return fmt.Errorf("stream already open")
	}
	o.sampleRate = sampleRate
	o.channels = channels
	o.reader, o.writer = io.Pipe()

	otoMu.Lock()
	if otoContext == nil {
		bufferBytes := bufferSize * channels * 2
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   time.Duration(bufferBytes) * time.Second / time.Duration(sampleRate*channels*2),
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoMu.Unlock()
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-ready
		otoContext = ctx
	}
	otoPlayers++
	ctx := otoContext
	otoMu.Unlock()

	o.player = ctx.NewPlayer(o.reader)
	o.closed = false

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.player.Play()
	}()
	return nil
}

func (o *OtoOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	// Close the writer first so the player sees EOF, then give the
	// device a moment to drain.
	if o.writer != nil {
		o.writer.Close()
		o.writer = nil
	}
	time.Sleep(100 * time.Millisecond)

	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.reader != nil {
		o.reader.Close()
		o.reader = nil
	}

	otoMu.Lock()
	otoPlayers--
	otoMu.Unlock()

	o.wg.Wait()
	return nil
}

func (o *OtoOutput) Write(samples []int16) error {
	o.mu.Lock()
	if o.closed || o.writer == nil {
		o.mu.Unlock()
		return fmt.Errorf("stream not open")
	}
	writer := o.writer
	o.mu.Unlock()

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	_, err := writer.Write(buf)
	return err
}

func (o *OtoOutput) IsPlaying() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.closed && o.player != nil
}

// FallbackOutput paces a silent render with time.Sleep on systems
// without a working audio device.
type FallbackOutput struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	closed     bool
}

func NewFallbackOutput() (*FallbackOutput, error) {
	return &FallbackOutput{}, nil
}

func (f *FallbackOutput) Open(sampleRate, channels, bufferSize int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sampleRate = sampleRate
	f.channels = channels
	f.closed = false
	return nil
}

func (f *FallbackOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

func (f *FallbackOutput) Write(samples []int16) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return fmt.Errorf("output closed")
	}
	sampleRate := f.sampleRate
	f.mu.Unlock()

	time.Sleep(time.Duration(len(samples)) * time.Second / time.Duration(sampleRate))
	return nil
}

func (f *FallbackOutput) IsPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed
}
