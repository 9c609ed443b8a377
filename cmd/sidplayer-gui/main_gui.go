//go:build gui
// +build gui

package main

import (
	"log"
	"os"
)

func main() {
	g := newGUI()
	if len(os.Args) > 1 {
		if err := g.loadFile(os.Args[1]); err != nil {
			log.Printf("cannot load %s: %v", os.Args[1], err)
		}
	}
	g.Run()
}
