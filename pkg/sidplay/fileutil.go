package sidplay

import (
	"fmt"
	"os"

	"github.com/olivierh59500/sid-player/pkg/lzh"
)

// LoadDumpFile reads a dump file from disk and unwraps compression, so
// callers always get raw SDR data.
func LoadDumpFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if lzh.IsCompressed(data) {
		out, err := lzh.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress LZH: %w", err)
		}
		return out, nil
	}
	if !IsDumpData(data) {
		return nil, fmt.Errorf("not a valid SDR dump")
	}
	return data, nil
}

// GetDumpFormat returns a short format description for data without
// fully loading it.
func GetDumpFormat(data []byte) (format string, compressed bool, err error) {
	if lzh.IsCompressed(data) {
		return fmt.Sprintf("Compressed SDR (%s)", lzh.Method(data)), true, nil
	}
	if !IsDumpData(data) {
		return "", false, fmt.Errorf("unknown dump format")
	}
	return "SDR1", false, nil
}

// AutoDetectAndLoad loads a dump file into a ready-to-play Music.
func AutoDetectAndLoad(filename string) (*Music, error) {
	data, err := LoadDumpFile(filename)
	if err != nil {
		return nil, err
	}
	m := NewMusic(44100)
	if err := m.LoadMemory(data); err != nil {
		return nil, err
	}
	return m, nil
}
