package deepsea

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera looking down -Z at the bubble column. It
// owns the output surface size; resizing touches nothing else in the scene.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV  float64
	Near float64
	Far  float64
	// Position is the eye position in world units.
	Position mgl64.Vec3
	// Aspect is width / height of the surface.
	Aspect float64
	// Viewport is the surface rectangle in device pixels.
	Viewport Rect
	// PixelRatio is the device pixels per logical pixel.
	PixelRatio float64

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
	dirty    bool
}

// NewCamera creates a camera for a w x h device-pixel surface.
func NewCamera(cfg CameraConfig, w, h int) *Camera {
	c := &Camera{
		FOV:        cfg.FOV,
		Near:       cfg.Near,
		Far:        cfg.Far,
		Position:   mgl64.Vec3{0, 0, cfg.Z},
		PixelRatio: 1,
	}
	c.Resize(w, h, 1)
	return c
}

// Resize updates the aspect ratio, surface size, and device pixel ratio and
// rebuilds the projection. Non-positive sizes are ignored.
func (c *Camera) Resize(w, h int, pixelRatio float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c.Viewport = Rect{Width: float64(w), Height: float64(h)}
	c.Aspect = float64(w) / float64(h)
	c.PixelRatio = pixelRatio
	c.dirty = true
}

// computeMatrices recomputes the cached matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	target := c.Position.Sub(mgl64.Vec3{0, 0, 1})
	c.view = mgl64.LookAtV(c.Position, target, mgl64.Vec3{0, 1, 0})
	c.viewProj = c.proj.Mul4(c.view)
}

// Project maps a world-space point to surface pixels. pxPerUnit is the size
// in pixels of one world unit at that depth, and depth is the clip-space w
// (distance in front of the eye). ok is false for points behind the near
// plane.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy, pxPerUnit, depth float64, ok bool) {
	c.computeMatrices()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < c.Near {
		return 0, 0, 0, w, false
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	vp := c.Viewport
	sx = vp.X + (ndcX+1)/2*vp.Width
	sy = vp.Y + (1-ndcY)/2*vp.Height
	pxPerUnit = c.proj.At(1, 1) / w * vp.Height / 2
	return sx, sy, pxPerUnit, w, true
}
