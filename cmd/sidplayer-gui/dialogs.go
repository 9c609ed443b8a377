package main

import (
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/olivierh59500/sid-player/pkg/sidplay"
)

func (g *gui) addFiles() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		r.Close()
		g.addTrack(r.URI().Path())
	}, g.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".sdr", ".lzh"}))
	fd.Show()
}

func (g *gui) addFolder() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		entries, err := dir.List()
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		for _, e := range entries {
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".sdr", ".lzh":
				g.addTrack(e.Path())
			}
		}
	}, g.window)
}

// addTrack loads path once for its metadata and appends it to the
// playlist. Unreadable files are skipped with a log line.
func (g *gui) addTrack(path string) {
	scratch := sidplay.CreateWithRate(guiSampleRate)
	defer scratch.Destroy()
	if err := scratch.Load(path); err != nil {
		log.Printf("skipping %s: %v", path, err)
		return
	}
	info := scratch.GetInfo()

	item := &PlaylistItem{
		Path:     path,
		Title:    info.Title,
		Author:   info.Author,
		Comment:  info.Comment,
		Duration: info.MusicTimeInMs,
		Model:    info.Model.String(),
	}
	if item.Title == "" {
		item.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if item.Author == "" {
		item.Author = "Unknown"
	}
	g.playlist.Add(item)
	g.refreshPlaylist()
}

func (g *gui) savePlaylistDialog() {
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		w.Close()
		path := w.URI().Path()
		if strings.EqualFold(filepath.Ext(path), ".m3u") {
			err = g.playlist.SaveM3U(path)
		} else {
			err = g.playlist.Save(path)
		}
		if err != nil {
			dialog.ShowError(err, g.window)
		}
	}, g.window)
}

func (g *gui) loadPlaylistDialog() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		r.Close()
		path := r.URI().Path()
		var pl *Playlist
		if strings.EqualFold(filepath.Ext(path), ".m3u") {
			pl, err = LoadM3U(path)
		} else {
			pl, err = LoadPlaylist(path)
		}
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		g.playlist = pl
		g.mu.Lock()
		g.current = -1
		g.mu.Unlock()
		g.selected = -1
		g.list.UnselectAll()
		g.refreshPlaylist()
	}, g.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".m3u"}))
	fd.Show()
}

func (g *gui) clearPlaylist() {
	dialog.ShowConfirm("Clear Playlist", "Remove all tracks?", func(ok bool) {
		if !ok {
			return
		}
		g.stop()
		g.playlist.Clear()
		g.mu.Lock()
		g.current = -1
		g.mu.Unlock()
		g.selected = -1
		g.list.UnselectAll()
		g.refreshPlaylist()
	}, g.window)
}

func (g *gui) showAbout() {
	dialog.ShowInformation("About",
		"SID Player\n\n"+
			"Plays SDR register dumps through a cycle-level model\n"+
			"of the MOS 6581 and 8580 sound chips.\n\n"+
			"Supports LZH compressed dumps, playlists and WAV export.",
		g.window)
}
