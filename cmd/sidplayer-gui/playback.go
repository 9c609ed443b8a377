package main

import (
	"fmt"
	"math/rand"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/olivierh59500/sid-player/pkg/audio"
	"github.com/olivierh59500/sid-player/pkg/sidplay"
)

// loadFile replaces the current player with one playing path and
// pushes the dump metadata onto the window.
func (g *gui) loadFile(path string) error {
	g.stopPlayback()

	p := sidplay.CreateWithRate(guiSampleRate)
	if err := p.Load(path); err != nil {
		p.Destroy()
		return err
	}

	g.mu.Lock()
	if g.player != nil {
		g.player.Destroy()
	}
	g.player = p
	g.currentFile = path
	info := p.GetInfo()
	g.duration = info.MusicTimeInMs
	p.SetLoopMode(g.loop || g.repeat == RepeatOne)
	p.SetLowpassFilter(g.lowpass)
	g.mu.Unlock()

	fyne.Do(func() {
		title := info.Title
		if title == "" {
			title = path
		}
		g.title.SetText(title)
		g.author.SetText("by " + info.Author)
		g.comment.SetText(info.Comment)
		g.chip.SetText(fmt.Sprintf("%s at %d Hz, %d Hz replay, %d frames",
			info.Model, info.ChipClock, info.PlayerRate, info.Frames))
		g.progress.SetValue(0)
		g.clock.SetText("00:00 / " + formatTime(info.MusicTimeInMs))
		g.syncTransport()
	})
	return nil
}

// play opens an audio output for the loaded player and starts the
// render goroutine. Safe to call from any goroutine.
func (g *gui) play() {
	g.mu.Lock()
	if g.player == nil || g.playing {
		g.mu.Unlock()
		return
	}
	out, err := audio.NewOtoOutput()
	if err == nil {
		err = out.Open(guiSampleRate, 1, guiBufferSize)
	}
	if err != nil {
		g.mu.Unlock()
		fyne.Do(func() { dialog.ShowError(err, g.window) })
		return
	}
	g.out = out
	if g.player.IsOver() {
		g.player.Restart()
	}
	g.player.Play()
	g.playing = true
	g.paused = false
	p := g.player
	g.mu.Unlock()

	go g.renderLoop(p, out)
	fyne.Do(g.syncTransport)
}

// renderLoop feeds out until the track ends or playback is stopped.
// Track advance happens here so shuffle and repeat only apply to
// natural track ends.
func (g *gui) renderLoop(p *sidplay.Player, out audio.Output) {
	buf := make([]int16, guiBufferSize)
	for {
		g.mu.Lock()
		if !g.playing || g.player != p {
			g.mu.Unlock()
			return
		}
		over := !p.Compute(buf, len(buf))
		vol := g.volume
		repeat := g.repeat
		g.mu.Unlock()

		if over {
			if repeat == RepeatOne {
				p.Restart()
				continue
			}
			g.trackEnded()
			return
		}

		if vol != 1 {
			for i, s := range buf {
				buf[i] = clampSample(float64(s) * vol)
			}
		}
		out.Write(buf)
	}
}

func (g *gui) trackEnded() {
	next, ok := g.nextIndex()
	if !ok {
		g.stop()
		return
	}
	g.playIndex(next)
}

// nextIndex picks the track that follows the current one under the
// shuffle and repeat settings. ok is false when playback should end.
func (g *gui) nextIndex() (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.playlist.Size()
	if n == 0 {
		return 0, false
	}
	if g.shuffle {
		return rand.Intn(n), true
	}
	next := g.current + 1
	if next >= n {
		if g.repeat != RepeatAll {
			return 0, false
		}
		next = 0
	}
	return next, true
}

func (g *gui) playIndex(index int) {
	item, err := g.playlist.Get(index)
	if err != nil {
		return
	}
	if err := g.loadFile(item.Path); err != nil {
		fyne.Do(func() { dialog.ShowError(err, g.window) })
		return
	}
	g.mu.Lock()
	g.current = index
	g.mu.Unlock()
	g.play()
	fyne.Do(g.list.Refresh)
}

// playCurrent resumes the loaded track, or starts the selected (or
// first) playlist entry when nothing is loaded yet.
func (g *gui) playCurrent() {
	g.mu.Lock()
	loaded := g.player != nil
	g.mu.Unlock()
	if loaded {
		g.play()
		return
	}
	idx := g.selected
	if idx < 0 && g.playlist.Size() > 0 {
		idx = 0
	}
	if idx >= 0 {
		g.playIndex(idx)
	}
}

func (g *gui) playNext() {
	if idx, ok := g.nextIndex(); ok {
		g.playIndex(idx)
	}
}

func (g *gui) playPrevious() {
	g.mu.Lock()
	idx := g.current - 1
	g.mu.Unlock()
	n := g.playlist.Size()
	if n == 0 {
		return
	}
	if idx < 0 {
		idx = n - 1
	}
	g.playIndex(idx)
}

func (g *gui) pause() {
	g.mu.Lock()
	if g.player == nil || !g.playing {
		g.mu.Unlock()
		return
	}
	g.paused = !g.paused
	if g.paused {
		g.player.Pause()
	} else {
		g.player.Play()
	}
	g.mu.Unlock()
	g.syncTransport()
}

// stopPlayback halts the render goroutine and closes the output.
func (g *gui) stopPlayback() {
	g.mu.Lock()
	g.playing = false
	g.paused = false
	out := g.out
	g.out = nil
	if g.player != nil {
		g.player.Stop()
	}
	g.mu.Unlock()
	if out != nil {
		out.Close()
	}
}

// stop is the transport stop action: end playback and rewind the
// displayed position.
func (g *gui) stop() {
	g.stopPlayback()
	fyne.Do(func() {
		g.mu.Lock()
		dur := g.duration
		g.mu.Unlock()
		g.progress.SetValue(0)
		g.clock.SetText("00:00 / " + formatTime(dur))
		g.syncTransport()
	})
}

// refreshLoop polls playback state on a timer and pushes widget
// updates onto the fyne event loop.
func (g *gui) refreshLoop() {
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	for {
		select {
		case <-g.stopTick:
			return
		case <-tick.C:
		}

		g.mu.Lock()
		active := g.player != nil && g.playing && !g.paused
		var pos uint32
		var osc [3]uint8
		if g.player != nil {
			pos = g.player.GetPos()
			for v := range osc {
				osc[v] = g.player.ReadOSC(v)
			}
		}
		dur := g.duration
		playing := g.playing
		g.mu.Unlock()

		if !playing {
			continue
		}
		fyne.Do(func() {
			if dur > 0 {
				g.progress.SetValue(float64(pos) / float64(dur))
			}
			g.clock.SetText(formatTime(pos) + " / " + formatTime(dur))
			for v, bar := range g.voiceBars {
				level := 0.0
				if active {
					level = float64(osc[v]) / 255
				}
				bar.SetValue(level)
			}
		})
	}
}
