package main

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVOutput renders the audio stream to a 16-bit PCM WAV file.
type WAVOutput struct {
	filename string
	file     *os.File
	enc      *wav.Encoder
	format   *goaudio.Format
}

func NewWAVOutput(filename string) (*WAVOutput, error) {
	return &WAVOutput{filename: filename}, nil
}

func (w *WAVOutput) Open(sampleRate, channels, bufferSize int) error {
	file, err := os.Create(w.filename)
	if err != nil {
		return err
	}
	w.file = file
	w.format = &goaudio.Format{
		NumChannels: channels,
		SampleRate:  sampleRate,
	}
	w.enc = wav.NewEncoder(file, sampleRate, 16, channels, 1)
	return nil
}

func (w *WAVOutput) Close() error {
	if w.enc == nil {
		return nil
	}
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return err
	}
	w.enc = nil
	return w.file.Close()
}

func (w *WAVOutput) Write(samples []int16) error {
	if w.enc == nil {
		return fmt.Errorf("file not open")
	}
	buf := &goaudio.IntBuffer{
		Format:         w.format,
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	return w.enc.Write(buf)
}

func (w *WAVOutput) IsPlaying() bool { return w.enc != nil }
