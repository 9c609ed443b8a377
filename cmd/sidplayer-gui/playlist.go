package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PlaylistItem represents a single item in the playlist
type PlaylistItem struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Duration uint32 `json:"duration"` // in milliseconds
	Comment  string `json:"comment,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Playlist manages a collection of SID dump files
type Playlist struct {
	Name  string          `json:"name"`
	Items []*PlaylistItem `json:"items"`
}

// NewPlaylist creates a new empty playlist
func NewPlaylist(name string) *Playlist {
	return &Playlist{
		Name:  name,
		Items: make([]*PlaylistItem, 0),
	}
}

// Add adds a new item to the playlist
func (p *Playlist) Add(item *PlaylistItem) {
	p.Items = append(p.Items, item)
}

// Remove removes an item at the specified index
func (p *Playlist) Remove(index int) error {
	if index < 0 || index >= len(p.Items) {
		return fmt.Errorf("index out of range")
	}
	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	return nil
}

// MoveUp moves an item up in the playlist
func (p *Playlist) MoveUp(index int) error {
	if index <= 0 || index >= len(p.Items) {
		return fmt.Errorf("cannot move item up")
	}
	p.Items[index], p.Items[index-1] = p.Items[index-1], p.Items[index]
	return nil
}

// MoveDown moves an item down in the playlist
func (p *Playlist) MoveDown(index int) error {
	if index < 0 || index >= len(p.Items)-1 {
		return fmt.Errorf("cannot move item down")
	}
	p.Items[index], p.Items[index+1] = p.Items[index+1], p.Items[index]
	return nil
}

// Clear removes all items from the playlist
func (p *Playlist) Clear() {
	p.Items = make([]*PlaylistItem, 0)
}

// Size returns the number of items in the playlist
func (p *Playlist) Size() int {
	return len(p.Items)
}

// Get returns the item at the specified index
func (p *Playlist) Get(index int) (*PlaylistItem, error) {
	if index < 0 || index >= len(p.Items) {
		return nil, fmt.Errorf("index out of range")
	}
	return p.Items[index], nil
}

// TotalDuration returns the total duration of all items in milliseconds
func (p *Playlist) TotalDuration() uint32 {
	var total uint32
	for _, item := range p.Items {
		total += item.Duration
	}
	return total
}

// Save saves the playlist to a JSON file
func (p *Playlist) Save(filename string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadPlaylist loads a playlist from a JSON file
func LoadPlaylist(filename string) (*Playlist, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var playlist Playlist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// SaveM3U exports the playlist as M3U format
func (p *Playlist) SaveM3U(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "#EXTM3U")
	fmt.Fprintf(file, "#PLAYLIST:%s\n", p.Name)

	for _, item := range p.Items {
		duration := int(item.Duration / 1000)
		fmt.Fprintf(file, "#EXTINF:%d,%s - %s\n", duration, item.Author, item.Title)
		fmt.Fprintln(file, item.Path)
	}

	return nil
}

// LoadM3U loads a playlist from M3U format. Extended info lines are
// used for title and author when present.
func LoadM3U(filename string) (*Playlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	playlist := NewPlaylist(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))

	var pendingTitle, pendingAuthor string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#EXTINF:") {
			// "#EXTINF:123,Author - Title"
			if idx := strings.Index(line, ","); idx >= 0 {
				desc := line[idx+1:]
				if sep := strings.Index(desc, " - "); sep >= 0 {
					pendingAuthor = desc[:sep]
					pendingTitle = desc[sep+3:]
				} else {
					pendingTitle = desc
				}
			}
			continue
		}
		if line[0] == '#' {
			continue
		}

		item := &PlaylistItem{
			Path:   line,
			Title:  pendingTitle,
			Author: pendingAuthor,
		}
		if item.Title == "" {
			item.Title = filepath.Base(line)
		}
		if item.Author == "" {
			item.Author = "Unknown"
		}
		playlist.Add(item)
		pendingTitle, pendingAuthor = "", ""
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return playlist, nil
}

// Shuffle randomizes the order of items in the playlist
func (p *Playlist) Shuffle() {
	rand.Shuffle(len(p.Items), func(i, j int) {
		p.Items[i], p.Items[j] = p.Items[j], p.Items[i]
	})
}

// SortBy selects the field used when ordering the playlist
type SortBy int

const (
	SortByTitle SortBy = iota
	SortByAuthor
	SortByDuration
	SortByPath
)

// Sort orders the playlist by the given field
func (p *Playlist) Sort(by SortBy) {
	sort.SliceStable(p.Items, func(i, j int) bool {
		a, b := p.Items[i], p.Items[j]
		switch by {
		case SortByAuthor:
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		case SortByDuration:
			return a.Duration < b.Duration
		case SortByPath:
			return a.Path < b.Path
		default:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	})
}
