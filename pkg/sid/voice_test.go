package sid

import "testing"

// A hard sync lands while a noise shift is one cycle from completing.
// The feedback OR is driven by the test bit only, so the synced cycle
// must shift in bit22 xor bit17 instead of a forced one.
func TestVoiceHardSyncLeavesNoiseFeedbackAlone(t *testing.T) {
	v, err := NewVoice(MOS6581)
	if err != nil {
		t.Fatal(err)
	}
	c := Control{Freq: 0x1000, Sync: true, Waveform: WaveNoise}

	v.Noise.lfsr = 0                     // bit 22 and bit 17 clear, natural feedback is 0
	v.ClockPhase1(c, SyncBus{MSB: true}) // rising edge, accumulator resets
	v.Noise.pipeline = 1
	v.ClockPhase1(c, SyncBus{MSB: true}) // shift completes
	if got := v.Noise.Register(); got != 0 {
		t.Errorf("noise register %#06x after a hard sync, want 0", got)
	}

	// The test bit still feeds a one through the same path.
	v.Noise.Reset()
	v.Noise.lfsr = 0
	c = Control{Test: true, Waveform: WaveNoise}
	v.ClockPhase1(c, SyncBus{})
	v.Noise.pipeline = 1
	v.ClockPhase1(c, SyncBus{})
	if got := v.Noise.Register(); got != 1 {
		t.Errorf("noise register %#06x with test held, want 0x000001", got)
	}
}
