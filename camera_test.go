package deepsea

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestCamera() *Camera {
	return NewCamera(DefaultConfig().Camera, 1280, 720)
}

func TestCameraDefaults(t *testing.T) {
	c := newTestCamera()
	if c.FOV != 45 || c.Near != 1 || c.Far != 1000 {
		t.Errorf("fov=%f near=%f far=%f", c.FOV, c.Near, c.Far)
	}
	if c.Position != (mgl64.Vec3{0, 0, 5}) {
		t.Errorf("position = %v, want (0, 0, 5)", c.Position)
	}
	if !approxEqual(c.Aspect, 1280.0/720.0, 1e-12) || c.PixelRatio != 1 {
		t.Errorf("aspect=%f ratio=%f", c.Aspect, c.PixelRatio)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	c := newTestCamera()
	x, y, ppu, depth, ok := c.Project(mgl64.Vec3{0, 0, 0})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	if !approxEqual(x, 640, 1e-6) || !approxEqual(y, 360, 1e-6) {
		t.Errorf("origin projected to (%f, %f), want (640, 360)", x, y)
	}
	if !approxEqual(depth, 5, 1e-9) {
		t.Errorf("depth = %f, want 5", depth)
	}
	want := 360 / (5 * math.Tan(mgl64.DegToRad(22.5)))
	if !approxEqual(ppu, want, 1e-6) {
		t.Errorf("pxPerUnit = %f, want %f", ppu, want)
	}
}

func TestCameraProjectTopEdge(t *testing.T) {
	c := newTestCamera()
	// Half the visible height at z=0, five units in front of the eye.
	top := 5 * math.Tan(mgl64.DegToRad(22.5))
	_, y, _, _, ok := c.Project(mgl64.Vec3{0, top, 0})
	if !ok || !approxEqual(y, 0, 1e-6) {
		t.Errorf("top edge projected to y=%f ok=%v, want 0", y, ok)
	}
}

func TestCameraProjectUpIsScreenUp(t *testing.T) {
	c := newTestCamera()
	_, yLow, _, _, _ := c.Project(mgl64.Vec3{0, -1, 0})
	_, yHigh, _, _, _ := c.Project(mgl64.Vec3{0, 1, 0})
	if yHigh >= yLow {
		t.Errorf("higher world y should be higher on screen: %f vs %f", yHigh, yLow)
	}
}

func TestCameraPerspectiveShrinksFarther(t *testing.T) {
	c := newTestCamera()
	_, _, near, _, _ := c.Project(mgl64.Vec3{0, 0, 2})
	_, _, far, _, _ := c.Project(mgl64.Vec3{0, 0, -2})
	if far >= near {
		t.Errorf("farther point should be smaller: near=%f far=%f", near, far)
	}
}

func TestCameraBehindNearPlane(t *testing.T) {
	c := newTestCamera()
	if _, _, _, _, ok := c.Project(mgl64.Vec3{0, 0, 6}); ok {
		t.Error("point behind the camera should not project")
	}
	if _, _, _, _, ok := c.Project(mgl64.Vec3{0, 0, 4.5}); ok {
		t.Error("point inside the near plane should not project")
	}
}

func TestCameraResize(t *testing.T) {
	c := newTestCamera()
	c.computeMatrices()
	before := c.proj
	c.Resize(600, 600, 2)
	if c.Aspect != 1 || c.PixelRatio != 2 {
		t.Errorf("aspect=%f ratio=%f", c.Aspect, c.PixelRatio)
	}
	c.computeMatrices()
	if c.proj == before {
		t.Error("projection not rebuilt after resize")
	}
	c.Resize(0, 100, 1)
	c.Resize(100, -1, 1)
	if c.Viewport.Width != 600 || c.Viewport.Height != 600 {
		t.Errorf("invalid sizes changed the viewport: %+v", c.Viewport)
	}
	c.Resize(300, 200, 0)
	if c.PixelRatio != 1 {
		t.Errorf("non-positive pixel ratio should default to 1, got %f", c.PixelRatio)
	}
}
