package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func (g *gui) buildMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Add Files...", g.addFiles),
		fyne.NewMenuItem("Add Folder...", g.addFolder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Playlist...", g.savePlaylistDialog),
		fyne.NewMenuItem("Load Playlist...", g.loadPlaylistDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export to WAV...", g.exportWAVDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", g.app.Quit),
	)
	list := fyne.NewMenu("Playlist",
		fyne.NewMenuItem("Sort by Title", func() { g.sortAndRefresh(SortByTitle) }),
		fyne.NewMenuItem("Sort by Author", func() { g.sortAndRefresh(SortByAuthor) }),
		fyne.NewMenuItem("Sort by Duration", func() { g.sortAndRefresh(SortByDuration) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Shuffle Order", func() {
			g.playlist.Shuffle()
			g.refreshPlaylist()
		}),
		fyne.NewMenuItem("Clear", g.clearPlaylist),
	)
	help := fyne.NewMenu("Help", fyne.NewMenuItem("About", g.showAbout))
	return fyne.NewMainMenu(file, list, help)
}

func (g *gui) buildContent() fyne.CanvasObject {
	left := container.NewVBox(
		g.buildNowPlaying(),
		g.buildVoiceMeters(),
		g.buildTransport(),
		g.buildOptions(),
	)
	split := container.NewHSplit(left, g.buildPlaylistPane())
	split.SetOffset(0.58)
	return split
}

func (g *gui) buildNowPlaying() fyne.CanvasObject {
	g.title = widget.NewLabelWithStyle("No file loaded", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	g.author = widget.NewLabel("")
	g.comment = widget.NewLabel("")
	g.chip = widget.NewLabel("")
	g.progress = widget.NewProgressBar()
	g.clock = widget.NewLabel("00:00 / 00:00")
	g.clock.Alignment = fyne.TextAlignCenter

	return widget.NewCard("Now Playing", "", container.NewVBox(
		g.title, g.author, g.comment, g.chip, g.progress, g.clock))
}

// buildVoiceMeters shows the live oscillator readback of each voice,
// the byte register 0x1b exposes on hardware.
func (g *gui) buildVoiceMeters() fyne.CanvasObject {
	rows := make([]fyne.CanvasObject, 0, len(g.voiceBars))
	for v := range g.voiceBars {
		bar := widget.NewProgressBar()
		bar.TextFormatter = func() string { return "" }
		g.voiceBars[v] = bar
		label := widget.NewLabel(fmt.Sprintf("Voice %d", v+1))
		rows = append(rows, container.NewBorder(nil, nil, label, nil, bar))
	}
	return widget.NewCard("Oscillators", "", container.NewVBox(rows...))
}

func (g *gui) buildTransport() fyne.CanvasObject {
	g.prevBtn = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), g.playPrevious)
	g.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), g.playCurrent)
	g.pauseBtn = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), g.pause)
	g.stopBtn = widget.NewButtonWithIcon("", theme.MediaStopIcon(), g.stop)
	g.nextBtn = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), g.playNext)
	for _, b := range []*widget.Button{g.prevBtn, g.playBtn, g.pauseBtn, g.stopBtn, g.nextBtn} {
		b.Disable()
	}
	buttons := container.NewGridWithColumns(5,
		g.prevBtn, g.playBtn, g.pauseBtn, g.stopBtn, g.nextBtn)

	volume := widget.NewSlider(0, 2)
	volume.Value = 1
	volume.Step = 0.05
	volume.OnChanged = func(v float64) {
		g.mu.Lock()
		g.volume = v
		g.mu.Unlock()
	}
	volumeRow := container.NewBorder(nil, nil, widget.NewIcon(theme.VolumeUpIcon()), nil, volume)

	return container.NewVBox(buttons, volumeRow)
}

func (g *gui) buildOptions() fyne.CanvasObject {
	loopCheck := widget.NewCheck("Loop track", func(on bool) {
		g.mu.Lock()
		g.loop = on
		if g.player != nil {
			g.player.SetLoopMode(on || g.repeat == RepeatOne)
		}
		g.mu.Unlock()
	})
	lowpassCheck := widget.NewCheck("Low-pass filter", func(on bool) {
		g.mu.Lock()
		g.lowpass = on
		if g.player != nil {
			g.player.SetLowpassFilter(on)
		}
		g.mu.Unlock()
	})
	lowpassCheck.SetChecked(true)
	shuffleCheck := widget.NewCheck("Shuffle", func(on bool) {
		g.mu.Lock()
		g.shuffle = on
		g.mu.Unlock()
	})
	g.repeatBtn = widget.NewButton("Repeat: off", g.cycleRepeat)

	return container.NewHBox(loopCheck, lowpassCheck, shuffleCheck, g.repeatBtn)
}

func (g *gui) buildPlaylistPane() fyne.CanvasObject {
	g.listLabel = widget.NewLabel("0 tracks")
	g.list = widget.NewList(
		func() int { return g.playlist.Size() },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, nil, widget.NewLabel(""), label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			item, err := g.playlist.Get(id)
			if err != nil {
				return
			}
			row := obj.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: id == g.current}
			label.SetText(fmt.Sprintf("%s - %s", item.Author, item.Title))
			row.Objects[1].(*widget.Label).SetText(formatTime(item.Duration))
		},
	)
	g.list.OnSelected = func(id widget.ListItemID) {
		g.selected = id
		g.removeBtn.Enable()
		g.upBtn.Enable()
		g.downBtn.Enable()
		g.syncTransport()
	}

	addBtn := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), g.addFiles)
	g.removeBtn = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), g.removeSelected)
	g.upBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { g.moveSelected(-1) })
	g.downBtn = widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() { g.moveSelected(1) })
	for _, b := range []*widget.Button{g.removeBtn, g.upBtn, g.downBtn} {
		b.Disable()
	}
	tools := container.NewHBox(addBtn, g.removeBtn, g.upBtn, g.downBtn)

	header := container.NewBorder(nil, nil, g.listLabel, tools)
	return container.NewBorder(header, nil, nil, nil, g.list)
}

func (g *gui) sortAndRefresh(by SortBy) {
	g.playlist.Sort(by)
	g.mu.Lock()
	g.current = -1
	g.mu.Unlock()
	g.selected = -1
	g.list.UnselectAll()
	g.refreshPlaylist()
}

func (g *gui) removeSelected() {
	idx := g.selected
	if idx < 0 || g.playlist.Remove(idx) != nil {
		return
	}
	g.mu.Lock()
	switch {
	case g.current == idx:
		g.current = -1
	case g.current > idx:
		g.current--
	}
	g.mu.Unlock()
	g.selected = -1
	g.list.UnselectAll()
	for _, b := range []*widget.Button{g.removeBtn, g.upBtn, g.downBtn} {
		b.Disable()
	}
	g.refreshPlaylist()
}

func (g *gui) moveSelected(dir int) {
	idx := g.selected
	var err error
	if dir < 0 {
		err = g.playlist.MoveUp(idx)
	} else {
		err = g.playlist.MoveDown(idx)
	}
	if err != nil {
		return
	}
	g.mu.Lock()
	if g.current == idx {
		g.current += dir
	} else if g.current == idx+dir {
		g.current -= dir
	}
	g.mu.Unlock()
	g.selected = idx + dir
	g.list.Select(g.selected)
	g.list.Refresh()
}

func (g *gui) refreshPlaylist() {
	g.listLabel.SetText(fmt.Sprintf("%d tracks, %s",
		g.playlist.Size(), formatTime(g.playlist.TotalDuration())))
	g.list.Refresh()
	g.syncTransport()
}

func (g *gui) cycleRepeat() {
	g.mu.Lock()
	g.repeat = (g.repeat + 1) % 3
	mode := g.repeat
	if g.player != nil {
		g.player.SetLoopMode(g.loop || mode == RepeatOne)
	}
	g.mu.Unlock()
	g.repeatBtn.SetText("Repeat: " + mode.String())
}

// syncTransport aligns the transport buttons with the playback state.
// Must run on the fyne event loop.
func (g *gui) syncTransport() {
	g.mu.Lock()
	loaded := g.player != nil
	playing, paused := g.playing, g.paused
	g.mu.Unlock()
	tracks := g.playlist.Size()

	setEnabled := func(b *widget.Button, on bool) {
		if on {
			b.Enable()
		} else {
			b.Disable()
		}
	}
	setEnabled(g.playBtn, (loaded || tracks > 0) && !playing)
	setEnabled(g.pauseBtn, playing)
	setEnabled(g.stopBtn, playing)
	setEnabled(g.prevBtn, tracks > 0)
	setEnabled(g.nextBtn, tracks > 0)

	if paused {
		g.pauseBtn.SetIcon(theme.MediaPlayIcon())
	} else {
		g.pauseBtn.SetIcon(theme.MediaPauseIcon())
	}
}
