//go:build !js

package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		solidName  = flag.String("solid", "cube", "Built-in solid to display (cube or icosahedron).")
		scriptPath = flag.String("script", "", "Part script to evaluate instead of a built-in solid.")
		width      = flag.Int("width", 800, "Initial window width.")
		height     = flag.Int("height", 600, "Initial window height.")
	)
	flag.Parse()

	var script string
	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		script = string(src)
	}

	frame, err := buildFrame(*solidName, script)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("xylem")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewApp(frame)); err != nil {
		log.Fatal(err)
	}
}
