package deepsea

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Fragment is one piece of burst debris. Fragments are allocated per burst,
// animate once, and are released; they are never recycled.
type Fragment struct {
	Position mgl64.Vec3
	Radius   float64
	Scale    float64
	Opacity  float64
	Duration float64

	start    mgl64.Vec3
	dir      mgl64.Vec3
	distance float64
	endScale float64
	progress float64

	node  *Node
	tween *TweenGroup
}

// apply derives position, scale, and opacity from the eased progress.
func (f *Fragment) apply() {
	p := f.progress
	f.Position = f.start.Add(f.dir.Mul(f.distance * p))
	f.Scale = lerp(1, f.endScale, p)
	f.Opacity = 1 - p
}

// Done reports whether the fragment has finished and been released.
func (f *Fragment) Done() bool {
	return f.node == nil
}

// FragmentSet owns the live fragments of a scene.
type FragmentSet struct {
	cfg   FragmentConfig
	rng   *rand.Rand
	anim  *Animator
	layer *Node
	live  []*Fragment

	spawned int
}

// NewFragmentSet returns an empty set whose fragment nodes are added under
// layer. layer may be nil for headless use.
func NewFragmentSet(cfg FragmentConfig, rng *rand.Rand, anim *Animator, layer *Node) *FragmentSet {
	return &FragmentSet{cfg: cfg, rng: rng, anim: anim, layer: layer}
}

// Spawn creates a spray of fragments at origin sized relative to
// originRadius and starts their animations. It returns the new fragments.
func (fs *FragmentSet) Spawn(origin mgl64.Vec3, originRadius float64) []*Fragment {
	if fs == nil {
		return nil
	}
	n := fs.cfg.Count.Random(fs.rng)
	out := make([]*Fragment, 0, n)
	for range n {
		out = append(out, fs.spawnOne(origin, originRadius))
	}
	return out
}

func (fs *FragmentSet) spawnOne(origin mgl64.Vec3, originRadius float64) *Fragment {
	rng := fs.rng
	jitter := Range{-fs.cfg.Jitter, fs.cfg.Jitter}
	start := origin.Add(mgl64.Vec3{jitter.Random(rng), jitter.Random(rng), jitter.Random(rng)})

	dir := mgl64.Vec3{
		Range{-1, 1}.Random(rng),
		fs.cfg.Lift.Random(rng),
		Range{-1, 1}.Random(rng),
	}
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = mgl64.Vec3{0, 1, 0}
	}

	f := &Fragment{
		start:    start,
		dir:      dir,
		distance: fs.cfg.Distance.Random(rng),
		endScale: fs.cfg.EndScale,
		Radius:   originRadius * fs.cfg.RadiusFactor.Random(rng),
		Duration: fs.cfg.Duration.Random(rng),
	}
	f.apply()

	f.node = NewFragmentNode("fragment", f.Radius)
	if fs.layer != nil {
		fs.layer.AddChild(f.node)
	}
	fs.live = append(fs.live, f)
	fs.spawned++

	f.tween = TweenValue(&f.progress, 1, float32(f.Duration), ease.OutQuad).Bind(f.node)
	f.tween.OnComplete = func() { fs.release(f) }
	if fs.anim == nil {
		f.tween.Update(float32(f.Duration) + 1)
	} else {
		fs.anim.Add(f.tween)
	}
	return f
}

// release removes f from the live set and disposes its render node.
func (fs *FragmentSet) release(f *Fragment) {
	for i, live := range fs.live {
		if live == f {
			last := len(fs.live) - 1
			fs.live[i] = fs.live[last]
			fs.live[last] = nil
			fs.live = fs.live[:last]
			break
		}
	}
	if f.tween != nil {
		f.tween.Kill()
		f.tween = nil
	}
	if f.node != nil {
		f.node.Dispose()
		f.node = nil
	}
}

// Update recomputes derived fragment state from tween progress and copies it
// into the render nodes.
func (fs *FragmentSet) Update(time float64) {
	if fs == nil {
		return
	}
	for _, f := range fs.live {
		f.apply()
		n := f.node
		n.Position = f.Position
		n.Radius = f.Radius
		n.Scale = f.Scale
		n.Alpha = f.Opacity
		if n.Material != nil {
			n.Material.SetTime(time)
		}
	}
}

// Len returns the number of live fragments.
func (fs *FragmentSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.live)
}

// Spawned returns the total number of fragments created.
func (fs *FragmentSet) Spawned() int {
	if fs == nil {
		return 0
	}
	return fs.spawned
}

// Clear releases every live fragment without finishing its animation.
func (fs *FragmentSet) Clear() {
	if fs == nil {
		return
	}
	for len(fs.live) > 0 {
		fs.release(fs.live[len(fs.live)-1])
	}
}
