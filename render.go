package deepsea

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// poolView mirrors a bubble slice into render nodes, index for index.
type poolView struct {
	layer *Node
	nodes []*Node
}

func newPoolView(parent *Node, name string, bubbles []Bubble) *poolView {
	v := &poolView{layer: NewContainer(name), nodes: make([]*Node, len(bubbles))}
	parent.AddChild(v.layer)
	for i := range bubbles {
		n := NewBubbleNode(name, bubbles[i].Radius)
		n.Visible = false
		v.layer.AddChild(n)
		v.nodes[i] = n
	}
	return v
}

// sync copies the drawable subset of each bubble into its node. fade scales
// every bubble of the pool.
func (v *poolView) sync(bubbles []Bubble, fade, time float64) {
	if v.layer.IsDisposed() {
		return
	}
	for i := range bubbles {
		b := &bubbles[i]
		n := v.nodes[i]
		n.Visible = b.Active && fade > 0
		if !n.Visible {
			continue
		}
		n.Position = b.Position
		n.Radius = b.Radius
		n.Scale = b.Scale * fade
		n.Alpha = b.Opacity
		n.Material.SetTime(time)
	}
}

// drawCommand is a projected sphere waiting to be drawn.
type drawCommand struct {
	node  *Node
	x, y  float64 // center in surface pixels
	size  float64 // diameter in surface pixels
	depth float64
	order int // traversal order for stable sorting
}

// Draw paints the backdrop, the depth-sorted bubbles and fragments, the light
// beams, and the optional FPS overlay onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.torn {
		return
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drawBackdrop(screen)

	s.commands = s.commands[:0]
	s.beamCmds = s.beamCmds[:0]
	order := 0
	s.traverse(s.root, &order)

	if s.debug {
		stats.collectTime = time.Since(t0)
		t0 = time.Now()
	}

	// Far to near, so nearer bubbles cover farther ones.
	slices.SortStableFunc(s.commands, func(a, b drawCommand) int {
		return cmp.Compare(b.depth, a.depth)
	})

	if s.debug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	for i := range s.commands {
		s.drawSphere(screen, &s.commands[i])
	}
	for _, n := range s.beamCmds {
		s.lights.drawBeam(screen, n)
	}
	if s.ShowFPS {
		s.fps.draw(screen)
	}

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.drawCallCount = len(s.commands) + len(s.beamCmds) + 1
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// traverse walks the node tree depth-first and projects every visible
// drawable node.
func (s *Scene) traverse(n *Node, order *int) {
	if !n.Visible {
		return
	}
	switch n.Type {
	case NodeTypeBubble, NodeTypeFragment:
		if cmd, ok := s.project(n); ok {
			*order++
			cmd.order = *order
			s.commands = append(s.commands, cmd)
		}
	case NodeTypeBeam:
		if s.lights != nil && n.Alpha > 0 {
			s.beamCmds = append(s.beamCmds, n)
		}
	}
	for _, child := range n.children {
		s.traverse(child, order)
	}
}

// project converts a sphere node to surface space. Nodes that are
// transparent, behind the camera, sub-pixel, or off-surface are dropped.
func (s *Scene) project(n *Node) (drawCommand, bool) {
	if n.Alpha <= 0 || n.Scale <= 0 || n.Radius <= 0 || n.Material == nil {
		return drawCommand{}, false
	}
	x, y, ppu, depth, ok := s.camera.Project(n.Position)
	if !ok {
		return drawCommand{}, false
	}
	size := 2 * n.Radius * n.Scale * ppu
	if size < 0.5 {
		return drawCommand{}, false
	}
	if !s.camera.Viewport.Inflate(size/2).Contains(x, y) {
		return drawCommand{}, false
	}
	return drawCommand{node: n, x: x, y: y, size: size, depth: depth}, true
}

// drawSphere issues one shader draw, loading the node's own uniforms into
// the shared program uniforms first.
func (s *Scene) drawSphere(target *ebiten.Image, cmd *drawCommand) {
	n := cmd.node
	side := int(math.Ceil(cmd.size))
	op := &s.rectOp
	op.GeoM.Reset()
	op.GeoM.Translate(cmd.x-float64(side)/2, cmd.y-float64(side)/2)
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(clamp01(n.Alpha)))
	op.Blend = n.BlendMode.EbitenBlend()
	op.Uniforms = s.uniforms.loadBubble(n.Material, float64(side))
	target.DrawRectShader(side, side, n.Material.shader(), op)
}

// drawBackdrop fills the surface with the animated background shader.
func (s *Scene) drawBackdrop(target *ebiten.Image) {
	b := target.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	op := &s.rectOp
	op.GeoM.Reset()
	op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	op.ColorScale.Reset()
	op.Blend = BlendNone.EbitenBlend()
	op.Uniforms = s.uniforms.loadBackground(s.backdrop, s.Background, w, h)
	target.DrawRectShader(w, h, s.backdrop.shader(), op)
}
