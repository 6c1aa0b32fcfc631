package deepsea

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size in logical pixels.
	// If zero, defaults to 1280x720.
	Width, Height int
	// ShowFPS enables a small FPS/TPS overlay in the top-left corner.
	ShowFPS bool
}

// Run is a convenience entry point that opens a resizable window and runs
// the scene as the whole game. The scene is torn down when the loop exits.
// Hosts that draw their own content should call Scene.Update, Scene.Draw,
// and Scene.Layout from their own ebiten.Game instead.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 720
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	scene.ShowFPS = cfg.ShowFPS

	defer scene.Teardown()
	if err := ebiten.RunGame(scene); err != nil {
		return fmt.Errorf("deepsea: run: %w", err)
	}
	return nil
}
