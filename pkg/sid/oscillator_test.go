package sid

import "testing"

var noSync = SyncBus{}

func TestOscillatorPhaseAccumulation(t *testing.T) {
	for _, tc := range []struct {
		freq   reg16
		cycles int
	}{
		{0x0001, 100},
		{0x1234, 5000},
		{0xffff, 300},
		{0x8000, 513}, // wraps the 24-bit accumulator
	} {
		o := NewOscillator(MOS6581)
		c := Control{Freq: tc.freq}
		for i := 0; i < tc.cycles; i++ {
			o.Clock(c, noSync)
		}
		want := uint32(tc.cycles) * uint32(tc.freq) & 0xffffff
		if got := o.Accumulator(); got != want {
			t.Errorf("freq %#04x after %d cycles: accumulator %#06x, want %#06x",
				tc.freq, tc.cycles, got, want)
		}
	}
}

func TestOscillatorTestBit(t *testing.T) {
	o := NewOscillator(MOS6581)
	c := Control{Freq: 0x1000}
	for i := 0; i < 16; i++ {
		o.Clock(c, noSync)
	}
	if o.Accumulator() == 0 {
		t.Fatal("accumulator did not run")
	}

	c.Test = true
	c.Waveform = WavePulse
	o.Clock(c, noSync)
	if got := o.Accumulator(); got != 0 {
		t.Errorf("accumulator %#06x under test, want 0", got)
	}
	if got := o.Pulse(); got != 0xfff {
		t.Errorf("pulse %#03x under test, want 0xfff", got)
	}

	// Released: counting resumes from zero.
	c.Test = false
	o.Clock(c, noSync)
	if got := o.Accumulator(); got != 0x1000 {
		t.Errorf("accumulator %#06x after release, want 0x1000", got)
	}
}

func TestOscillatorPulseComparatorDelay(t *testing.T) {
	// The comparator sees the accumulator value from before the
	// current cycle's commit, so the pulse edge lands one cycle after
	// the accumulator crosses the pulse width.
	o := NewOscillator(MOS6581)
	c := Control{Freq: 0x1000, PW: 0x002, Waveform: WavePulse}

	o.Clock(c, noSync) // acc 0x1000, comparator saw 0x0000
	if got := o.Pulse(); got != 0 {
		t.Fatalf("cycle 1: pulse %#03x, want 0", got)
	}
	o.Clock(c, noSync) // acc 0x2000, comparator saw 0x1000 -> acc>>12 == 1 < 2
	if got := o.Pulse(); got != 0 {
		t.Fatalf("cycle 2: pulse %#03x, want 0", got)
	}
	o.Clock(c, noSync) // comparator saw 0x2000 -> 2 >= 2
	if got := o.Pulse(); got != 0xfff {
		t.Fatalf("cycle 3: pulse %#03x, want 0xfff", got)
	}
}

func TestOscillatorCaptureOffset(t *testing.T) {
	// The 6581 latches the saw sample from the freshly committed
	// accumulator, the 8580 from the value one cycle older.
	c := Control{Freq: 0x1000, Waveform: WaveSawtooth}

	o65 := NewOscillator(MOS6581)
	o85 := NewOscillator(MOS8580)
	for i := 1; i <= 20; i++ {
		o65.Clock(c, noSync)
		o85.Clock(c, noSync)
		if got, want := o65.SawTri(), reg12(i); got != want {
			t.Fatalf("6581 cycle %d: saw %#03x, want %#03x", i, got, want)
		}
		if got, want := o85.SawTri(), reg12(i-1); got != want {
			t.Fatalf("8580 cycle %d: saw %#03x, want %#03x", i, got, want)
		}
	}
}

func TestOscillatorRingModulation(t *testing.T) {
	c := Control{Freq: 0x1000, Ring: true, Waveform: WaveTriangle}

	// Ring neighbor MSB low: the ring input inverts the fold, so the
	// sample is inverted while the own MSB is clear.
	o := NewOscillator(MOS6581)
	o.Clock(c, SyncBus{MSB: false})
	if got, want := o.SawTri(), reg12(0x001^0x7ff); got != want {
		t.Errorf("ring, ext MSB low: saw/tri %#03x, want %#03x", got, want)
	}

	// Ring neighbor MSB high: plain triangle fold.
	o = NewOscillator(MOS6581)
	o.Clock(c, SyncBus{MSB: true})
	if got, want := o.SawTri(), reg12(0x001); got != want {
		t.Errorf("ring, ext MSB high: saw/tri %#03x, want %#03x", got, want)
	}

	// A selected sawtooth disables the inversion entirely.
	c.Waveform = WaveSawtooth | WaveTriangle
	o = NewOscillator(MOS6581)
	o.Clock(c, SyncBus{MSB: false})
	if got, want := o.SawTri(), reg12(0x001); got != want {
		t.Errorf("ring with sawtooth: saw/tri %#03x, want %#03x", got, want)
	}
}

func TestOscillatorHardSync(t *testing.T) {
	o := NewOscillator(MOS6581)
	c := Control{Freq: 0x1000, Sync: true}
	o.Clock(c, SyncBus{MSB: false})
	o.Clock(c, SyncBus{MSB: true}) // rising edge, neighbor not synced
	if got := o.Accumulator(); got != 0 {
		t.Errorf("accumulator %#06x after sync, want 0", got)
	}

	// A neighbor that is itself being reset does not sync.
	o = NewOscillator(MOS6581)
	o.Clock(c, SyncBus{MSB: false})
	o.Clock(c, SyncBus{MSB: true, Synced: true})
	if got := o.Accumulator(); got != 0x2000 {
		t.Errorf("accumulator %#06x, want 0x2000 (no reset)", got)
	}

	// No edge, no reset: MSB held high.
	o = NewOscillator(MOS6581)
	o.Clock(c, SyncBus{MSB: true})
	o.Clock(c, SyncBus{MSB: true})
	if got := o.Accumulator(); got != 0x1000 {
		t.Errorf("accumulator %#06x, want 0x1000 (reset on first edge only)", got)
	}
}
