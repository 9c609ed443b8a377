package audio

import (
	"testing"
	"time"
)

// rampSource produces an incrementing ramp for a fixed number of
// samples, then reports the stream over.
type rampSource struct {
	next      int16
	remaining int
}

func (r *rampSource) Compute(buffer []int16, nbSamples int) bool {
	if r.remaining <= 0 {
		for i := 0; i < nbSamples; i++ {
			buffer[i] = 0
		}
		return false
	}
	for i := 0; i < nbSamples; i++ {
		buffer[i] = r.next
		r.next++
	}
	r.remaining -= nbSamples
	return true
}

func TestBufferOutput(t *testing.T) {
	b := NewBufferOutput()
	if err := b.Write([]int16{1}); err == nil {
		t.Error("write before open succeeded")
	}

	if err := b.Open(44100, 1, 512); err != nil {
		t.Fatal(err)
	}
	if err := b.Write([]int16{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := b.Write([]int16{4}); err != nil {
		t.Fatal(err)
	}
	got := b.GetBuffer()
	if len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Errorf("buffer %v, want [1 2 3 4]", got)
	}

	b.Clear()
	if len(b.GetBuffer()) != 0 {
		t.Error("buffer not cleared")
	}
}

func TestPlayerDrainsSource(t *testing.T) {
	out := NewBufferOutput()
	p := NewPlayer(&rampSource{remaining: 2048}, out)

	if err := p.Start(44100, 512); err != nil {
		t.Fatal(err)
	}
	if err := p.Start(44100, 512); err == nil {
		t.Error("second Start succeeded while playing")
	}

	deadline := time.After(5 * time.Second)
	for p.IsPlaying() {
		select {
		case <-deadline:
			t.Fatal("player did not finish")
		case <-time.After(time.Millisecond):
		}
	}

	got := out.GetBuffer()
	if len(got) < 2048 {
		t.Fatalf("rendered %d samples, want at least 2048", len(got))
	}
	for i := 0; i < 2048; i++ {
		if got[i] != int16(i) {
			t.Fatalf("sample %d = %d, want %d", i, got[i], i)
		}
	}
}

// The loop owns the output close. When the source runs out on its own,
// the output must still be closed, and a Stop arriving afterwards must
// return promptly without reopening anything.
func TestPlayerClosesOutputWhenSourceEnds(t *testing.T) {
	out := NewBufferOutput()
	p := NewPlayer(&rampSource{remaining: 512}, out)
	if err := p.Start(44100, 256); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for p.IsPlaying() {
		select {
		case <-deadline:
			t.Fatal("player did not finish")
		case <-time.After(time.Millisecond):
		}
	}

	p.Stop() // waits for the loop, so the close has happened by now
	if err := out.Write([]int16{0}); err == nil {
		t.Error("output still open after the source ended")
	}
	if got := out.GetBuffer(); len(got) < 512 {
		t.Errorf("rendered %d samples, want at least 512", len(got))
	}
}

func TestPlayerPause(t *testing.T) {
	p := NewPlayer(&rampSource{remaining: 1 << 20}, NewBufferOutput())
	if err := p.Start(44100, 256); err != nil {
		t.Fatal(err)
	}
	p.Pause()
	if !p.IsPaused() {
		t.Error("not paused after Pause")
	}
	p.Resume()
	if p.IsPaused() {
		t.Error("still paused after Resume")
	}
	p.Stop()
	if p.IsPlaying() {
		t.Error("still playing after Stop")
	}
}
