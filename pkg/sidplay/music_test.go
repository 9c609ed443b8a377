package sidplay

import "testing"

func TestUpdateRendersAudio(t *testing.T) {
	frames := make([][]byte, 25)
	for i := range frames {
		frames[i] = sawFrame()
	}
	m := NewMusic(44100)
	if err := m.LoadMemory(buildDump(t, dumpOpts{frames: frames, model: modelCode8580})); err != nil {
		t.Fatal(err)
	}

	buf := make([]int16, 4410) // 100 ms
	if !m.Update(buf, len(buf)) {
		t.Fatal("playback over immediately")
	}
	nonZero := 0
	for _, s := range buf {
		if s != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("sawtooth rendered as silence")
	}
}

func TestUpdateEndsWithoutLoop(t *testing.T) {
	m := NewMusic(44100)
	if err := m.LoadMemory(buildDump(t, dumpOpts{frames: [][]byte{sawFrame(), sawFrame()}})); err != nil {
		t.Fatal(err)
	}

	buf := make([]int16, 882) // one 50 Hz tick at 44.1 kHz
	over := false
	for i := 0; i < 10; i++ {
		if !m.Update(buf, len(buf)) {
			over = true
			break
		}
	}
	if !over {
		t.Fatal("two-frame dump never ended")
	}
	if !m.MusicOver() {
		t.Error("MusicOver false after playback ended")
	}
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d = %d after end, want silence", i, s)
		}
	}
}

func TestUpdateLoops(t *testing.T) {
	m := NewMusic(44100)
	if err := m.LoadMemory(buildDump(t, dumpOpts{frames: [][]byte{sawFrame(), sawFrame(), sawFrame()}, loopFrame: 1})); err != nil {
		t.Fatal(err)
	}
	m.SetLoopMode(true)

	buf := make([]int16, 882)
	for i := 0; i < 50; i++ {
		if !m.Update(buf, len(buf)) {
			t.Fatalf("looped playback ended at update %d", i)
		}
	}
	if m.MusicOver() {
		t.Error("looped playback reported over")
	}
}

func TestPauseSilences(t *testing.T) {
	m := NewMusic(44100)
	if err := m.LoadMemory(buildDump(t, dumpOpts{frames: [][]byte{sawFrame(), sawFrame()}})); err != nil {
		t.Fatal(err)
	}

	buf := make([]int16, 441)
	m.Pause()
	if !m.Update(buf, len(buf)) {
		t.Fatal("paused playback reported over")
	}
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d = %d while paused, want 0", i, s)
		}
	}
	m.Play()
	if m.pause {
		t.Error("still paused after Play")
	}
}

func TestSeek(t *testing.T) {
	frames := make([][]byte, 100)
	for i := range frames {
		frames[i] = sawFrame()
	}
	m := NewMusic(44100)
	if err := m.LoadMemory(buildDump(t, dumpOpts{frames: frames})); err != nil {
		t.Fatal(err)
	}

	if got := m.GetMusicTime(); got != 2000 {
		t.Fatalf("music time %d ms, want 2000", got)
	}
	if got := m.SetMusicTime(1000); got != 1000 {
		t.Errorf("seek returned %d, want 1000", got)
	}
	if got := m.GetPos(); got != 1000 {
		t.Errorf("position %d ms after seek, want 1000", got)
	}

	// Seeking past the end rewinds.
	if got := m.SetMusicTime(5000); got != 0 {
		t.Errorf("overlong seek returned %d, want 0", got)
	}
}
