package main

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"

	"github.com/olivierh59500/sid-player/pkg/audio"
	"github.com/olivierh59500/sid-player/pkg/sidplay"
)

const (
	guiSampleRate = 44100
	guiBufferSize = 2048
	tickInterval  = 100 * time.Millisecond
)

// RepeatMode selects what happens when a track finishes.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatOne
	RepeatAll
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	}
	return "off"
}

// gui owns the window, the playback state and the playlist. Playback
// state is guarded by mu; widgets are only touched on the fyne event
// loop, from goroutines via fyne.Do.
type gui struct {
	app    fyne.App
	window fyne.Window

	mu          sync.Mutex
	player      *sidplay.Player
	out         audio.Output
	playing     bool
	paused      bool
	volume      float64
	loop        bool
	lowpass     bool
	shuffle     bool
	repeat      RepeatMode
	current     int
	currentFile string
	duration    uint32

	playlist *Playlist
	selected int

	stopTick chan struct{}

	// now playing
	title     *widget.Label
	author    *widget.Label
	comment   *widget.Label
	chip      *widget.Label
	clock     *widget.Label
	progress  *widget.ProgressBar
	voiceBars [3]*widget.ProgressBar

	// transport
	playBtn  *widget.Button
	pauseBtn *widget.Button
	stopBtn  *widget.Button
	prevBtn  *widget.Button
	nextBtn  *widget.Button

	// playlist pane
	list      *widget.List
	listLabel *widget.Label
	removeBtn *widget.Button
	upBtn     *widget.Button
	downBtn   *widget.Button
	repeatBtn *widget.Button
}

func newGUI() *gui {
	g := &gui{
		app:      app.New(),
		volume:   1,
		lowpass:  true,
		playlist: NewPlaylist("Default"),
		current:  -1,
		selected: -1,
		stopTick: make(chan struct{}),
	}
	g.app.Settings().SetTheme(newSIDTheme())

	g.window = g.app.NewWindow("SID Player")
	g.window.Resize(fyne.NewSize(920, 620))
	g.window.SetMainMenu(g.buildMenu())
	g.window.SetContent(g.buildContent())
	g.window.SetOnClosed(g.shutdown)

	go g.refreshLoop()
	return g
}

// Run shows the window and blocks until it is closed.
func (g *gui) Run() {
	g.window.ShowAndRun()
}

func (g *gui) shutdown() {
	close(g.stopTick)
	g.stopPlayback()
	g.mu.Lock()
	if g.player != nil {
		g.player.Destroy()
		g.player = nil
	}
	g.mu.Unlock()
}

func formatTime(ms uint32) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func clampSample(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
