package lzh

import (
	"bytes"
	"testing"
)

// buildLH0 wraps payload in a minimal stored (-lh0-) level-0 header.
func buildLH0(payload []byte) []byte {
	header := make([]byte, 24)
	header[0] = 22 // header size, excluding its own two lead bytes
	copy(header[2:7], "-lh0-")
	size := len(payload)
	for i := 0; i < 4; i++ {
		header[7+i] = byte(size >> (8 * i))  // packed
		header[11+i] = byte(size >> (8 * i)) // original
	}
	return append(header, payload...)
}

func TestIsCompressed(t *testing.T) {
	if !IsCompressed(buildLH0([]byte("x"))) {
		t.Error("lh0 container not recognized")
	}
	if IsCompressed([]byte("SDR1SIDDUMP!")) {
		t.Error("raw dump recognized as compressed")
	}
	if IsCompressed([]byte("-lh5")) {
		t.Error("short data recognized as compressed")
	}
}

func TestMethod(t *testing.T) {
	if got := Method(buildLH0(nil)); got != "-lh0-" {
		t.Errorf("method %q, want -lh0-", got)
	}
	if got := Method([]byte("plain text, nothing else")); got != "" {
		t.Errorf("method %q for non-LZH data, want empty", got)
	}
}

func TestDecompressStored(t *testing.T) {
	payload := []byte("register dump payload 0123456789")
	out, err := Decompress(buildLH0(payload))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("payload mismatch: %q", out)
	}
}

func TestDecompressSkipsLeadingJunk(t *testing.T) {
	payload := []byte("payload behind junk")
	data := append([]byte{0xde, 0xad, 0xbe, 0xef, 0x00}, buildLH0(payload)...)
	out, err := Decompress(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("payload mismatch: %q", out)
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	if _, err := Decompress([]byte("not an archive at all......")); err == nil {
		t.Error("garbage accepted")
	}
	if _, err := Decompress(nil); err == nil {
		t.Error("empty input accepted")
	}

	// Unsupported method markers are rejected, not misparsed.
	bad := buildLH0([]byte("x"))
	copy(bad[2:7], "-lh7-")
	if _, err := Decompress(bad); err == nil {
		t.Error("lh7 accepted")
	}

	// Stored member shorter than its declared size.
	short := buildLH0([]byte("0123456789"))
	if _, err := Decompress(short[:len(short)-4]); err == nil {
		t.Error("truncated lh0 accepted")
	}
}
