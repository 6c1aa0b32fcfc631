package deepsea

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS. The text is redrawn every
// ~0.5 seconds of scene time.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	stale   bool
	op      ebiten.DrawImageOptions
}

func (f *fpsOverlay) update(dt float64) {
	f.elapsed += dt
	if f.elapsed >= 0.5 {
		f.elapsed = 0
		f.stale = true
	}
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.stale = true
	}
	if f.stale {
		f.stale = false
		f.img.Clear()
		// Semi-transparent background for readability
		f.img.Fill(Color{0, 0, 0, 0.5}.toRGBA())
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	f.op.GeoM.Reset()
	screen.DrawImage(f.img, &f.op)
}

func (f *fpsOverlay) dispose() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}
