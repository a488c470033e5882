//go:build js

package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// The wasm build has no command line; the browser page gets the cube.
func main() {
	frame, err := buildFrame("cube", "")
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("xylem")

	if err := ebiten.RunGame(NewApp(frame)); err != nil {
		log.Fatal(err)
	}
}
