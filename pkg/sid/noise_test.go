package sid

import "testing"

func TestNoiseShiftDelay(t *testing.T) {
	n := NewNoiseGenerator(MOS6581)
	n.lfsr = 0x400000 // bit 22 set, bit 17 clear
	before := n.Register()

	n.Clock(true, false) // rising edge on bit 19
	if got := n.Register(); got != before {
		t.Fatalf("register shifted on the edge cycle: %#06x", got)
	}
	n.Clock(true, false) // bit 19 still high, no new edge
	if got := n.Register(); got != before {
		t.Fatalf("register shifted one cycle early: %#06x", got)
	}
	n.Clock(false, false)
	if got := n.Register(); got != 0x000001 {
		t.Fatalf("register %#06x two cycles after edge, want 0x000001", got)
	}
}

func TestNoiseFeedback(t *testing.T) {
	for _, tc := range []struct {
		lfsr reg24
		want uint32
	}{
		{0x400000, 0x000001},            // bit22=1, bit17=0 -> feed 1
		{0x420000, 0x040000 | 0x000000}, // bit22=1, bit17=1 -> feed 0
		{0x020000, 0x040001},            // bit22=0, bit17=1 -> feed 1
		{0x000001, 0x000002},            // bit22=0, bit17=0 -> feed 0
	} {
		n := NewNoiseGenerator(MOS6581)
		n.lfsr = tc.lfsr
		n.pipeline = 1
		n.Clock(false, false)
		if got := n.Register(); got != tc.want {
			t.Errorf("lfsr %#06x: shifted to %#06x, want %#06x", tc.lfsr, got, tc.want)
		}
	}
}

func TestNoiseHeldShiftFeedsOnes(t *testing.T) {
	// With reset/test held, each shift pulls a one into bit 0
	// regardless of bit 22.
	n := NewNoiseGenerator(MOS6581)
	n.lfsr = 0
	n.Clock(false, true) // latch the hold state
	n.pipeline = 1
	n.Clock(false, true)
	if got := n.Register(); got != 0x000001 {
		t.Errorf("register %#06x, want 0x000001", got)
	}
}

func TestNoiseFadeToOnes(t *testing.T) {
	for _, tc := range []struct {
		model Model
		fade  int
	}{
		{MOS6581, noiseFade6581},
		{MOS8580, noiseFade8580},
	} {
		n := NewNoiseGenerator(tc.model)
		n.lfsr = 0x123455
		for i := 0; i < tc.fade-1; i++ {
			n.Clock(false, true)
		}
		if got := n.Register(); got != 0x123455 {
			t.Fatalf("%v: register %#06x before the fade threshold, want unchanged", tc.model, got)
		}
		n.Clock(false, true)
		if got := n.Register(); got != 0x7fffff {
			t.Errorf("%v: register %#06x at the fade threshold, want 0x7fffff", tc.model, got)
		}
	}
}

func TestNoiseOutputTaps(t *testing.T) {
	for _, tc := range []struct {
		lfsr reg24
		want reg8
	}{
		{0x7fffff, 0xff},
		{0x000000, 0x00},
		{1 << 20, 0x80},
		{1 << 18, 0x40},
		{1 << 14, 0x20},
		{1 << 11, 0x10},
		{1 << 9, 0x08},
		{1 << 5, 0x04},
		{1 << 2, 0x02},
		{1 << 0, 0x01},
		{1<<21 | 1<<19 | 1<<3, 0x00}, // untapped bits
	} {
		n := NewNoiseGenerator(MOS6581)
		n.lfsr = tc.lfsr
		if got := n.Output(); got != tc.want {
			t.Errorf("lfsr %#06x: output %#02x, want %#02x", tc.lfsr, got, tc.want)
		}
	}
}

func TestNoiseCorruptTaps(t *testing.T) {
	n := NewNoiseGenerator(MOS6581)
	n.CorruptTaps()
	if got := n.Output(); got != 0 {
		t.Errorf("output %#02x after tap writeback, want 0", got)
	}
	if got := n.Register(); got != uint32(lfsrMask&^noiseTapMask) {
		t.Errorf("register %#06x, want %#06x", got, uint32(lfsrMask&^noiseTapMask))
	}
}
