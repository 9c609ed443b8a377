package sidplay

import (
	"bytes"
	"testing"

	"github.com/olivierh59500/sid-player/pkg/sid"
)

type dumpOpts struct {
	frames     [][]byte
	attrib     uint32
	chipClock  uint32
	playerRate uint16
	loopFrame  uint32
	model      byte
	title      string
	author     string
	comment    string
}

func be32(w *bytes.Buffer, v uint32) {
	w.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func be16(w *bytes.Buffer, v uint16) {
	w.Write([]byte{byte(v >> 8), byte(v)})
}

func buildDump(t *testing.T, d dumpOpts) []byte {
	t.Helper()
	if d.chipClock == 0 {
		d.chipClock = sid.ClockPAL
	}
	if d.playerRate == 0 {
		d.playerRate = 50
	}

	w := &bytes.Buffer{}
	w.WriteString("SDR1")
	w.WriteString(sdrSignature)
	be32(w, uint32(len(d.frames)))
	be32(w, d.attrib)
	be32(w, d.chipClock)
	be16(w, d.playerRate)
	be32(w, d.loopFrame)
	w.WriteByte(d.model)
	be16(w, 0) // no extension area
	w.WriteString(d.title)
	w.WriteByte(0)
	w.WriteString(d.author)
	w.WriteByte(0)
	w.WriteString(d.comment)
	w.WriteByte(0)

	for i, f := range d.frames {
		if len(f) != frameSize {
			t.Fatalf("frame %d is %d bytes", i, len(f))
		}
		w.Write(f)
	}
	return w.Bytes()
}

// sawFrame is a frame playing a sawtooth on voice 0 at full envelope.
func sawFrame() []byte {
	f := make([]byte, frameSize)
	f[0] = 0x00 // freq 0x1c00
	f[1] = 0x1c
	f[4] = 0x20 // sawtooth
	f[frameEnvOffset] = 0xff
	return f
}

func TestLoadDumpInfo(t *testing.T) {
	data := buildDump(t, dumpOpts{
		frames:  [][]byte{sawFrame(), sawFrame(), sawFrame()},
		model:   modelCode8580,
		title:   "Test Tune",
		author:  "Nobody",
		comment: "demo dump",
	})

	m := NewMusic(44100)
	if err := m.LoadMemory(data); err != nil {
		t.Fatal(err)
	}
	info := m.GetMusicInfo()
	if info.Title != "Test Tune" || info.Author != "Nobody" || info.Comment != "demo dump" {
		t.Errorf("metadata %q/%q/%q", info.Title, info.Author, info.Comment)
	}
	if info.Model != sid.MOS8580 {
		t.Errorf("model %v, want MOS 8580", info.Model)
	}
	if info.Frames != 3 || info.PlayerRate != 50 {
		t.Errorf("frames %d rate %d, want 3/50", info.Frames, info.PlayerRate)
	}
	if info.MusicTimeInMs != 3*1000/50 {
		t.Errorf("length %d ms", info.MusicTimeInMs)
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	good := buildDump(t, dumpOpts{frames: [][]byte{sawFrame()}})

	badModel := append([]byte{}, good...)
	badModel[30] = 7 // model code

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("NOPE"), good[4:]...)},
		{"bad check", append([]byte("SDR1GARBAGE!"), good[12:]...)},
		{"truncated stream", good[: len(good)-8 : len(good)-8]},
		{"bad model", badModel},
		{"no frames", buildDump(t, dumpOpts{})},
	} {
		m := NewMusic(44100)
		if err := m.LoadMemory(tc.data); err == nil {
			t.Errorf("%s: load succeeded", tc.name)
		}
	}
}

func TestDeinterleave(t *testing.T) {
	f0 := sawFrame()
	f1 := sawFrame()
	f1[1] = 0x2a

	// Register-major layout: all frame values of byte 0, then byte 1...
	interleaved := make([]byte, 2*frameSize)
	for reg := 0; reg < frameSize; reg++ {
		interleaved[reg*2] = f0[reg]
		interleaved[reg*2+1] = f1[reg]
	}

	plain := buildDump(t, dumpOpts{frames: [][]byte{f0, f1}})
	mixed := buildDump(t, dumpOpts{frames: [][]byte{interleaved[:frameSize], interleaved[frameSize:]}, attrib: attrInterleaved})

	a := NewMusic(44100)
	if err := a.LoadMemory(plain); err != nil {
		t.Fatal(err)
	}
	b := NewMusic(44100)
	if err := b.LoadMemory(mixed); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.stream, b.stream) {
		t.Error("de-interleaved stream differs from frame-major stream")
	}
}

func TestIsDumpData(t *testing.T) {
	if !IsDumpData(buildDump(t, dumpOpts{frames: [][]byte{sawFrame()}})) {
		t.Error("valid dump not recognized")
	}
	if IsDumpData([]byte("YM6!LeOnArD!")) {
		t.Error("foreign format recognized")
	}

	format, compressed, err := GetDumpFormat(buildDump(t, dumpOpts{frames: [][]byte{sawFrame()}}))
	if err != nil || compressed || format != "SDR1" {
		t.Errorf("format %q compressed %v err %v", format, compressed, err)
	}
}
