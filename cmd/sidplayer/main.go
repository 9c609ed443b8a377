package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivierh59500/sid-player/pkg/audio"
	"github.com/olivierh59500/sid-player/pkg/sidplay"
)

var (
	sampleRate = flag.Int("rate", 44100, "Sample rate (Hz)")
	bufferSize = flag.Int("buffer", 2048, "Buffer size")
	loop       = flag.Bool("loop", false, "Loop playback")
	volume     = flag.Float64("volume", 1.0, "Volume (0.0 to 10.0)")
	lowpass    = flag.Bool("lowpass", true, "Enable lowpass filter")
	info       = flag.Bool("info", false, "Show file info only")
	output     = flag.String("output", "oto", "Output backend (oto, wav, null)")
	wavFile    = flag.String("wav", "", "Output WAV file (when using wav output)")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6))
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4))
	styleErr   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1))
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <sdr-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "SID Player - Play C64 SID register dumps\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	dumpFile := flag.Arg(0)

	data, err := os.ReadFile(dumpFile)
	if err != nil {
		log.Fatalf("%s", styleErr.Render(fmt.Sprintf("Failed to read file: %v", err)))
	}

	format, compressed, err := sidplay.GetDumpFormat(data)
	if err != nil {
		log.Fatalf("%s", styleErr.Render(fmt.Sprintf("Failed to identify file format: %v", err)))
	}
	if compressed {
		format += " (compressed)"
	}
	fmt.Printf("%s %s\n", styleLabel.Render("File format:"), format)

	player := sidplay.CreateWithRate(*sampleRate)
	defer player.Destroy()

	fmt.Printf("Loading %s...\n", filepath.Base(dumpFile))
	if err := player.Load(dumpFile); err != nil {
		log.Fatalf("%s", styleErr.Render(fmt.Sprintf("Failed to load dump: %v", err)))
	}

	musicInfo := player.GetInfo()
	fmt.Printf("\n")
	fmt.Printf("%s %s\n", styleLabel.Render("Title:   "), styleTitle.Render(musicInfo.Title))
	fmt.Printf("%s %s\n", styleLabel.Render("Author:  "), musicInfo.Author)
	fmt.Printf("%s %s\n", styleLabel.Render("Comment: "), musicInfo.Comment)
	fmt.Printf("%s %s\n", styleLabel.Render("Chip:    "), musicInfo.Model.String())
	fmt.Printf("%s %d Hz, %d frames\n", styleLabel.Render("Replay:  "), musicInfo.PlayerRate, musicInfo.Frames)
	fmt.Printf("%s %s\n", styleLabel.Render("Duration:"), formatDuration(musicInfo.MusicTimeInMs))
	fmt.Printf("\n")

	if *info {
		return
	}

	player.SetLoopMode(*loop)
	player.SetLowpassFilter(*lowpass)

	var audioOut audio.Output
	switch *output {
	case "oto":
		audioOut, err = audio.NewOtoOutput()
		if err != nil {
			fmt.Printf("Warning: Failed to create audio output (%v)\n", err)
			fmt.Printf("Falling back to timing-based output...\n")
			audioOut, err = audio.NewFallbackOutput()
		}
	case "wav":
		if *wavFile == "" {
			*wavFile = strings.TrimSuffix(dumpFile, filepath.Ext(dumpFile)) + ".wav"
		}
		audioOut, err = NewWAVOutput(*wavFile)
	case "null":
		audioOut = &NullOutput{}
	default:
		log.Fatalf("Unknown output backend: %s", *output)
	}
	if err != nil {
		log.Fatalf("Failed to create audio output: %v", err)
	}

	if err := audioOut.Open(*sampleRate, 1, *bufferSize); err != nil {
		log.Fatalf("Failed to open audio output: %v", err)
	}
	defer audioOut.Close()

	fmt.Printf("Playing... (Press Ctrl+C to stop)\n")
	if *loop {
		fmt.Printf("Looping enabled\n")
	}
	fmt.Printf("\n")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool)
	go func() {
		buffer := make([]int16, *bufferSize)
		player.Play()
		for {
			if !player.Compute(buffer, len(buffer)) {
				if !*loop {
					done <- true
					return
				}
			}

			if *volume != 1.0 {
				for i := range buffer {
					sample := float64(buffer[i]) * *volume
					if sample > 32767 {
						buffer[i] = 32767
					} else if sample < -32768 {
						buffer[i] = -32768
					} else {
						buffer[i] = int16(sample)
					}
				}
			}

			if err := audioOut.Write(buffer); err != nil {
				log.Printf("Audio write error: %v", err)
			}
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Printf("\n\nStopping...\n")
			return

		case <-done:
			fmt.Printf("\n\nPlayback finished.\n")
			return

		case <-ticker.C:
			pos := player.GetPos()
			total := musicInfo.MusicTimeInMs
			if total > 0 {
				percent := float64(pos) / float64(total) * 100
				fmt.Printf("\r[%s] %s / %s (%.1f%%)",
					makeProgressBar(percent, 30),
					formatDuration(pos),
					formatDuration(total),
					percent)
			}
		}
	}
}

func formatDuration(ms uint32) string {
	seconds := ms / 1000
	minutes := seconds / 60
	seconds %= 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func makeProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("=", filled)
	if filled < width {
		bar += ">"
		bar += strings.Repeat(" ", width-filled-1)
	}
	return bar
}

// NullOutput discards all audio, pacing writes in real time.
type NullOutput struct{}

func (n *NullOutput) Open(sampleRate, channels, bufferSize int) error { return nil }
func (n *NullOutput) Close() error                                    { return nil }

func (n *NullOutput) Write(samples []int16) error {
	time.Sleep(time.Duration(len(samples)) * time.Second / 44100)
	return nil
}

func (n *NullOutput) IsPlaying() bool { return true }
