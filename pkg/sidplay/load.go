package sidplay

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olivierh59500/sid-player/pkg/lzh"
	"github.com/olivierh59500/sid-player/pkg/sid"
)

// Headers use big-endian (Motorola) byte order throughout.
func readBE32(buf *bytes.Buffer) uint32 {
	var b [4]byte
	buf.Read(b[:])
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func readBE16(buf *bytes.Buffer) uint16 {
	var b [2]byte
	buf.Read(b[:])
	return uint16(b[0])<<8 | uint16(b[1])
}

func readNTString(buf *bytes.Buffer) string {
	var s []byte
	for {
		b, err := buf.ReadByte()
		if err != nil || b == 0 {
			break
		}
		s = append(s, b)
	}
	return string(s)
}

// IsDumpData reports whether data starts like an SDR dump, possibly
// LZH-compressed.
func IsDumpData(data []byte) bool {
	if lzh.IsCompressed(data) {
		return true
	}
	if len(data) < 12 {
		return false
	}
	id := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	return id == idSDR1 && string(data[4:12]) == sdrSignature
}

func (m *Music) load(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return m.loadMemory(data)
}

func (m *Music) loadMemory(data []byte) error {
	m.stop()
	m.unload()

	raw := make([]byte, len(data))
	copy(raw, data)

	raw, err := depack(raw)
	if err != nil {
		return err
	}
	if err := m.decode(raw); err != nil {
		return err
	}

	m.chip, err = sid.New(m.model)
	if err != nil {
		return err
	}
	m.recalcStep()
	m.musicOK = true
	m.pause = false
	return nil
}

// depack unwraps an LZH container if data carries one.
func depack(data []byte) ([]byte, error) {
	if !lzh.IsCompressed(data) {
		return data, nil
	}
	out, err := lzh.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("lzh decompression failed: %w", err)
	}
	return out, nil
}

func (m *Music) decode(data []byte) error {
	if len(data) < 12 {
		return errors.New("file too small")
	}
	id := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if id != idSDR1 {
		return fmt.Errorf("unknown dump format: %s (0x%08X)", string(data[:4]), id)
	}
	if string(data[4:12]) != sdrSignature {
		return errors.New("not a valid SDR dump")
	}

	buf := bytes.NewBuffer(data[12:])

	m.nbFrames = int(readBE32(buf))
	m.attrib = readBE32(buf)
	m.chipClock = readBE32(buf)
	m.playerRate = int(readBE16(buf))
	m.loopFrame = int(readBE32(buf))

	modelCode, err := buf.ReadByte()
	if err != nil {
		return errors.New("truncated header")
	}
	switch modelCode {
	case modelCode6581:
		m.model = sid.MOS6581
	case modelCode8580:
		m.model = sid.MOS8580
	default:
		return fmt.Errorf("unknown chip model code %d", modelCode)
	}

	// Extension area, skipped by players that don't know it.
	buf.Next(int(readBE16(buf)))

	m.title = readNTString(buf)
	m.author = readNTString(buf)
	m.comment = readNTString(buf)

	if m.nbFrames <= 0 || m.playerRate <= 0 || m.chipClock == 0 {
		return errors.New("corrupt dump header")
	}
	if m.loopFrame < 0 || m.loopFrame >= m.nbFrames {
		m.loopFrame = 0
	}
	if buf.Len() < m.nbFrames*frameSize {
		return fmt.Errorf("register stream truncated: %d bytes, want %d",
			buf.Len(), m.nbFrames*frameSize)
	}

	m.stream = make([]byte, m.nbFrames*frameSize)
	buf.Read(m.stream)

	m.deinterleave()
	return nil
}

// deinterleave converts a register-major stream (all values of register
// 0, then all of register 1, ...) into frame-major order.
func (m *Music) deinterleave() {
	if m.attrib&attrInterleaved == 0 {
		return
	}
	tmp := make([]byte, len(m.stream))
	for reg := 0; reg < frameSize; reg++ {
		src := reg * m.nbFrames
		for frame := 0; frame < m.nbFrames; frame++ {
			tmp[frame*frameSize+reg] = m.stream[src+frame]
		}
	}
	m.stream = tmp
	m.attrib &^= attrInterleaved
}
