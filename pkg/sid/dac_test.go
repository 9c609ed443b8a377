package sid

import "testing"

func TestDACTable8580Linear(t *testing.T) {
	// A properly terminated ladder with an exact 2R/R ratio has pure
	// binary bit weights: the rescaled table is the identity.
	table, err := DACTable(dacConfigFor(MOS8580, 12))
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 4096 {
		t.Fatalf("table has %d entries, want 4096", len(table))
	}
	for code, out := range table {
		if int(out) != code {
			t.Fatalf("table[%#03x] = %#03x, want identity", code, out)
		}
	}
}

func TestDACTable6581NonMonotonic(t *testing.T) {
	table, err := DACTable(dacConfigFor(MOS6581, 12))
	if err != nil {
		t.Fatal(err)
	}

	if table[0] != 0 {
		t.Errorf("table[0] = %d, want 0", table[0])
	}
	if table[4095] != 4095 {
		t.Errorf("table[4095] = %d, want 4095", table[4095])
	}

	// The off-ratio unterminated ladder under-weights the high bits:
	// stepping across a carry can step the output down. The mid-scale
	// transition is the classic case.
	if table[0x800] >= table[0x7ff] {
		t.Errorf("table[0x800] = %d, table[0x7ff] = %d: expected a downward step",
			table[0x800], table[0x7ff])
	}
	drops := 0
	for code := 0; code < 4095; code++ {
		if table[code+1] < table[code] {
			drops++
		}
	}
	if drops == 0 {
		t.Error("table is monotonic, expected non-monotonic low-bit weighting")
	}
}

func TestDACTableCached(t *testing.T) {
	cfg := dacConfigFor(MOS6581, 8)
	a, err := DACTable(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DACTable(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if &a[0] != &b[0] {
		t.Error("repeated lookups built distinct tables")
	}
}

func TestDACTableRejectsBadConfig(t *testing.T) {
	if _, err := DACTable(DACConfig{Bits: 0, Ratio: 2.0}); err == nil {
		t.Error("width 0 accepted")
	}
	if _, err := DACTable(DACConfig{Bits: 17, Ratio: 2.0}); err == nil {
		t.Error("width 17 accepted")
	}
	if _, err := DACTable(DACConfig{Bits: 8, Ratio: 0.5}); err == nil {
		t.Error("ratio 0.5 accepted")
	}
}
