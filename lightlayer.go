package deepsea

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Beam is a slanted shaft of light falling from the top edge of the surface.
type Beam struct {
	// Anchor is the horizontal position of the beam's top as a fraction of
	// surface width.
	Anchor float64
	// Angle is the resting tilt in radians; zero points straight down.
	Angle float64
	// Sway is the angular amplitude in radians and SwaySpeed its frequency
	// in radians per second.
	Sway      float64
	SwaySpeed float64
	// Width is in logical pixels; Length is a fraction of surface height.
	Width  float64
	Length float64
	// Intensity is the peak brightness in [0, 1].
	Intensity float64
	// Enabled determines whether this beam is drawn.
	Enabled bool
	// Color is the tint color.
	Color Color

	phase float64
	node  *Node
}

// LightRig owns the light-beam overlay: its beam list, the render nodes for
// them, and the generated beam texture. Nothing is stored on the scene root.
type LightRig struct {
	cfg   BeamConfig
	layer *Node
	beams []*Beam

	// Reveal fades the whole rig in, from 0 to 1.
	Reveal float64

	texture *ebiten.Image
	imgOp   ebiten.DrawImageOptions
}

// NewLightRig creates cfg.Count beams with randomized placement under layer.
// layer may be nil for headless use.
func NewLightRig(cfg BeamConfig, rng *rand.Rand, layer *Node) *LightRig {
	r := &LightRig{cfg: cfg, layer: layer}
	for range max(cfg.Count, 0) {
		r.AddBeam(&Beam{
			Anchor:    cfg.Anchor.Random(rng),
			Angle:     cfg.Angle.Random(rng),
			Sway:      cfg.Sway.Random(rng),
			SwaySpeed: cfg.SwaySpeed.Random(rng),
			Width:     cfg.Width.Random(rng),
			Length:    cfg.Length.Random(rng),
			Intensity: cfg.Intensity.Random(rng),
			Enabled:   true,
			Color:     cfg.Color,
			phase:     rng.Float64() * 2 * math.Pi,
		})
	}
	return r
}

// AddBeam adds a beam to the rig.
func (r *LightRig) AddBeam(b *Beam) {
	b.node = NewBeamNode("beam")
	if r.layer != nil {
		r.layer.AddChild(b.node)
	}
	r.beams = append(r.beams, b)
}

// Beams returns the current beam list. The returned slice MUST NOT be mutated.
func (r *LightRig) Beams() []*Beam {
	return r.beams
}

// Update sways and flickers every beam and copies the result into its node.
// w and h are the surface size in device pixels; scale is the device pixel
// ratio.
func (r *LightRig) Update(time float64, w, h int, scale float64) {
	if r == nil {
		return
	}
	for _, b := range r.beams {
		n := b.node
		if n == nil {
			continue
		}
		n.Visible = b.Enabled && b.Intensity > 0 && r.Reveal > 0
		if !n.Visible {
			continue
		}
		// Two sines at different rates keep neighbouring beams out of step.
		sway := math.Sin(time*b.SwaySpeed+b.phase) * b.Sway
		flicker := 0.85 + 0.1*math.Sin(time*1.7+b.phase) + 0.05*math.Sin(time*4.3+b.phase*1.3)

		n.Position[0] = b.Anchor * float64(w)
		n.Position[1] = 0
		n.Rotation = b.Angle + sway
		n.Radius = b.Width * scale / 2
		n.Length = b.Length * float64(h)
		n.Alpha = clamp01(b.Intensity*flicker) * clamp01(r.Reveal)
		n.Color = b.Color
	}
}

// Dispose releases all resources owned by the rig. Safe to call more than once.
func (r *LightRig) Dispose() {
	if r == nil {
		return
	}
	for _, b := range r.beams {
		if b.node != nil {
			b.node.Dispose()
			b.node = nil
		}
	}
	r.beams = nil
	if r.texture != nil {
		r.texture.Deallocate()
		r.texture = nil
	}
}

// beamTexture returns the shared beam texture, generating it on first use.
func (r *LightRig) beamTexture() *ebiten.Image {
	if r.texture == nil {
		r.texture = generateBeam(beamTextureW, beamTextureH)
	}
	return r.texture
}

const (
	beamTextureW = 64
	beamTextureH = 256
)

// drawBeam renders one beam node with additive blending. The texture's top
// center is pinned to the node position and rotated about it.
func (r *LightRig) drawBeam(target *ebiten.Image, n *Node) {
	img := r.beamTexture()
	op := &r.imgOp
	op.GeoM.Reset()
	op.GeoM.Translate(-beamTextureW/2, 0)
	op.GeoM.Scale(n.Radius*2/beamTextureW, n.Length/beamTextureH)
	op.GeoM.Rotate(n.Rotation)
	op.GeoM.Translate(n.Position[0], n.Position[1])
	op.ColorScale.Reset()
	a := float32(n.Alpha)
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)
	op.Blend = n.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	target.DrawImage(img, op)
}

// generateBeam creates a white shaft texture: smoothstep falloff across the
// width and a fade toward the far end. Uses premultiplied alpha.
func generateBeam(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	pix := make([]byte, w*h*4)

	for y := 0; y < h; y++ {
		along := 1 - float64(y)/float64(h-1)
		along = along * along
		for x := 0; x < w; x++ {
			dx := math.Abs(float64(x)+0.5-float64(w)/2) / (float64(w) / 2)
			t := clamp01(1 - dx)
			across := t * t * (3 - 2*t)

			a := uint8(across * along * 255)
			off := (y*w + x) * 4
			pix[off+0] = a // premultiplied white
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	img.WritePixels(pix)
	return img
}
