//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	in := flag.String("in", "project.json", "project file to preview")
	flag.Parse()

	v, err := newViewer(*in)
	if err != nil {
		log.Fatalf("load %s: %v", *in, err)
	}

	w, h := v.Layout(0, 0)
	ebiten.SetWindowTitle("Panel Layout Preview - " + *in)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
