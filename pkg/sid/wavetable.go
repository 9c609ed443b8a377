package sid

import (
	"embed"
	"fmt"
)

//go:embed data/*.bin
var waveData embed.FS

// Each table holds one 8-bit sample per 12-bit index.
const waveTableSize = 4096

// WaveTables holds the measured combined-waveform samples for one chip
// revision. When two or more of pulse, sawtooth and triangle are
// selected at once the output pins load each other and the result
// cannot be derived from the single waveforms; it has to come from
// reference data sampled off real chips.
//
// Entries are the top 8 bits of the 12-bit output and are shifted left
// four bits at lookup time.
type WaveTables struct {
	SawTri      []uint8 // sawtooth+triangle, indexed by the sawtooth sample
	PulseTri    []uint8 // pulse+triangle, indexed by the triangle sample >> 1
	PulseSaw    []uint8 // pulse+sawtooth, indexed by the sawtooth sample
	PulseSawTri []uint8 // pulse+sawtooth+triangle, indexed by the sawtooth sample
}

// LoadWaveTables loads the embedded reference data for model. A missing
// or short table is an initialization error; there is no algorithmic
// fallback.
func LoadWaveTables(model Model) (*WaveTables, error) {
	prefix := "data/wave6581"
	if model == MOS8580 {
		prefix = "data/wave8580"
	}

	w := &WaveTables{}
	for _, t := range []struct {
		suffix string
		dst    *[]uint8
	}{
		{"_ST.bin", &w.SawTri},
		{"_P_T.bin", &w.PulseTri},
		{"_PS.bin", &w.PulseSaw},
		{"_PST.bin", &w.PulseSawTri},
	} {
		name := prefix + t.suffix
		data, err := waveData.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("wavetable: %w", err)
		}
		if len(data) != waveTableSize {
			return nil, fmt.Errorf("wavetable: %s is %d bytes, want %d", name, len(data), waveTableSize)
		}
		*t.dst = data
	}
	return w, nil
}
