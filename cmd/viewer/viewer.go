//go:build ebiten

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// viewer shows the isometric preview of a project file. PageUp and PageDown
// change the highlighted story, R reloads the file, Q or Esc quits.
type viewer struct {
	path     string
	building *layout.Building
	frame    *ebiten.Image
	dirty    bool
}

func newViewer(path string) (*viewer, error) {
	v := &viewer{path: path}
	if err := v.reload(); err != nil {
		return nil, err
	}
	if err := v.render(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) reload() error {
	f, err := os.Open(v.path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := parser.Decode(f)
	if err != nil {
		return err
	}
	v.building = b
	v.dirty = true
	return nil
}

func (v *viewer) render() error {
	img, err := mapper.PreviewImage(scene.Build(v.building, scene.DefaultConfig()))
	if err != nil {
		return err
	}
	v.frame = ebiten.NewImageFromImage(img)
	v.dirty = false
	return nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	active := v.building.ActiveIndex()
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) && active+1 < v.building.StoryCount() {
		v.building.SetActive(active + 1)
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) && active > 0 {
		v.building.SetActive(active - 1)
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.reload(); err != nil {
			log.Printf("[VIEWER] reload %s: %v", v.path, err)
		}
	}

	if v.dirty {
		return v.render()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.frame, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("story %d/%d  panels %d",
		v.building.ActiveIndex()+1, v.building.StoryCount(), v.building.PanelCount()))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	b := v.frame.Bounds()
	return b.Dx(), b.Dy()
}
