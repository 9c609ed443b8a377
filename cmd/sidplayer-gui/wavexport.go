package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/olivierh59500/sid-player/pkg/sidplay"
)

func (g *gui) exportWAVDialog() {
	g.mu.Lock()
	path := g.currentFile
	g.mu.Unlock()
	if path == "" {
		dialog.ShowInformation("Export to WAV", "Load a dump file first.", g.window)
		return
	}

	fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		w.Close()
		dst := w.URI().Path()
		go func() {
			if err := exportWAV(path, dst); err != nil {
				fyne.Do(func() { dialog.ShowError(err, g.window) })
				return
			}
			fyne.Do(func() {
				dialog.ShowInformation("Export to WAV", "WAV file written.", g.window)
			})
		}()
	}, g.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
	fd.Show()
}

// exportWAV renders the dump at srcPath once through, without the
// loop mode, into a 16-bit mono WAV file at dstPath.
func exportWAV(srcPath, dstPath string) error {
	p := sidplay.CreateWithRate(guiSampleRate)
	defer p.Destroy()
	if err := p.Load(srcPath); err != nil {
		return err
	}

	f, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, guiSampleRate, 16, 1, 1)
	format := &goaudio.Format{NumChannels: 1, SampleRate: guiSampleRate}

	samples := make([]int16, guiBufferSize)
	ints := make([]int, guiBufferSize)
	p.Play()
	for p.Compute(samples, len(samples)) {
		for i, s := range samples {
			ints[i] = int(s)
		}
		chunk := &goaudio.IntBuffer{Format: format, SourceBitDepth: 16, Data: ints}
		if err := enc.Write(chunk); err != nil {
			enc.Close()
			f.Close()
			return err
		}
	}

	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
