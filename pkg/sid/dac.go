package sid

import (
	"fmt"
	"sync"
)

// Measured 2R/R resistor ratios of the on-chip R-2R ladders. The 6581
// ladder is off ratio and missing its terminating resistor, which makes
// its low-order bit weights visibly non-linear; the 8580 ladder is a
// proper terminated ladder.
const (
	ladderRatio6581 = 2.20
	ladderRatio8580 = 2.00
)

// Fixed-point scale for the per-bit contributions accumulated while
// building a table.
const dacScaleShift = 8

// DACConfig identifies one resistor-ladder configuration.
type DACConfig struct {
	Bits       int     // ladder width, output codes are 0..2^Bits-1
	Ratio      float64 // 2R/R resistor ratio
	Terminated bool    // termination resistor present at the LSB end
}

// dacConfigFor returns the ladder configuration of a given width for a
// chip revision.
func dacConfigFor(m Model, bits int) DACConfig {
	if m == MOS8580 {
		return DACConfig{Bits: bits, Ratio: ladderRatio8580, Terminated: true}
	}
	return DACConfig{Bits: bits, Ratio: ladderRatio6581}
}

var (
	dacMu    sync.Mutex
	dacCache = map[DACConfig][]uint16{}
)

// DACTable returns the code-correction table for cfg, building and
// caching it on first use. table[code] is the analog output level the
// ladder actually produces for code, rescaled to the same 0..2^Bits-1
// range. Returned tables are shared and must not be modified.
func DACTable(cfg DACConfig) ([]uint16, error) {
	dacMu.Lock()
	defer dacMu.Unlock()
	if t, ok := dacCache[cfg]; ok {
		return t, nil
	}
	t, err := buildDACTable(cfg)
	if err != nil {
		return nil, err
	}
	dacCache[cfg] = t
	return t, nil
}

// buildDACTable derives each bit's output contribution by network
// analysis of the ladder: fold the ladder tail below the contributing
// bit into a single resistance, source-transform at the bit, then
// propagate toward the output through the remaining rungs tracking the
// voltage with Ohm's law. Superposition then gives every code.
func buildDACTable(cfg DACConfig) ([]uint16, error) {
	if cfg.Bits < 1 || cfg.Bits > 16 {
		return nil, fmt.Errorf("dac: unsupported ladder width %d", cfg.Bits)
	}
	if cfg.Ratio < 1.0 {
		return nil, fmt.Errorf("dac: unsupported 2R/R ratio %g", cfg.Ratio)
	}

	const rOpen = -1.0 // marks an unterminated (infinite) tail

	r := 1.0
	r2 := cfg.Ratio * r

	vbit := make([]float64, cfg.Bits)
	vsum := 0.0
	for set := 0; set < cfg.Bits; set++ {
		vn := 1.0
		rn := rOpen
		if cfg.Terminated {
			rn = r2
		}

		// Fold the tail rungs below the contributing bit.
		bit := 0
		for ; bit < set; bit++ {
			if rn == rOpen {
				rn = r + r2
			} else {
				rn = r + r2*rn/(r2+rn)
			}
		}

		// Source transformation at the contributing bit.
		if rn == rOpen {
			rn = r2
		} else {
			rn = r2 * rn / (r2 + rn)
			vn *= rn / r2
		}

		// Propagate through the rungs above, up to the output node.
		for bit++; bit < cfg.Bits; bit++ {
			rn += r
			i := vn / rn
			rn = r2 * rn / (r2 + rn)
			vn = rn * i
		}

		vbit[set] = vn
		vsum += vn
	}

	// Rescale so a full-scale code maps back to 2^Bits-1, then bake the
	// per-bit weights into fixed point and sum them per code.
	max := float64(uint32(1)<<uint(cfg.Bits) - 1)
	contrib := make([]uint32, cfg.Bits)
	for k := range contrib {
		contrib[k] = uint32(vbit[k]/vsum*max*float64(uint32(1)<<dacScaleShift) + 0.5)
	}

	table := make([]uint16, uint32(1)<<uint(cfg.Bits))
	for code := range table {
		acc := uint32(1) << (dacScaleShift - 1)
		for k := 0; k < cfg.Bits; k++ {
			if code&(1<<uint(k)) != 0 {
				acc += contrib[k]
			}
		}
		table[code] = uint16(acc >> dacScaleShift)
	}
	return table, nil
}
