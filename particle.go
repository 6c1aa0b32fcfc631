package deepsea

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// BurstState is the per-bubble burst lifecycle stage.
type BurstState uint8

const (
	BurstNormal   BurstState = iota // rising and aging
	BurstBursting                   // swelling and fading; motion and age frozen
)

func (s BurstState) String() string {
	switch s {
	case BurstNormal:
		return "normal"
	case BurstBursting:
		return "bursting"
	default:
		return "unknown"
	}
}

// Bubble holds per-bubble simulation state. Pools store bubbles by value in a
// slice that is never reallocated, so tweens may hold pointers into it.
type Bubble struct {
	Position mgl64.Vec3
	// Speed is the rise per tick in world units.
	Speed float64
	// FinalSpeed is drawn at spawn for rise bubbles and otherwise unused.
	FinalSpeed    float64
	WobbleSpeed   float64
	WobbleAmount  float64
	Age           float64
	Lifespan      float64
	Radius        float64
	Scale         float64
	Opacity       float64
	TargetOpacity float64
	Active        bool
	State         BurstState
}

// Bursting reports whether the bubble is inside its burst animation.
func (b *Bubble) Bursting() bool {
	return b.State == BurstBursting
}

// rise applies one tick of vertical motion and sine wobble.
func (b *Bubble) rise(time, wobbleFactor float64) {
	b.Position[1] += b.Speed
	b.Position[0] += math.Sin(time*b.WobbleSpeed) * b.WobbleAmount * wobbleFactor
}

// RisePool is the fast-rise population of the opening burst. Bubbles are
// never repositioned: once they leave through the top they stay inactive.
type RisePool struct {
	cfg     RiseConfig
	bubbles []Bubble

	// Fade multiplies every bubble's drawn scale. The phase controller
	// animates it to zero before hiding the pool.
	Fade float64
}

// NewRisePool creates cfg.Count active bubbles below the visible area.
func NewRisePool(cfg RiseConfig, rng *rand.Rand) *RisePool {
	count := max(cfg.Count, 0)
	p := &RisePool{
		cfg:     cfg,
		bubbles: make([]Bubble, count),
		Fade:    1,
	}
	for i := range p.bubbles {
		b := &p.bubbles[i]
		b.Position = mgl64.Vec3{cfg.X.Random(rng), cfg.Y.Random(rng), cfg.Z.Random(rng)}
		b.Speed = cfg.Speed.Random(rng)
		b.FinalSpeed = cfg.FinalSpeed.Random(rng)
		b.WobbleSpeed = cfg.WobbleSpeed.Random(rng)
		b.WobbleAmount = cfg.WobbleAmount.Random(rng)
		b.Radius = cfg.Radius.Random(rng)
		b.Scale = 1
		b.Opacity = 1
		b.TargetOpacity = 1
		b.Active = true
	}
	return p
}

// Update advances every active bubble by one tick at the given clock time.
func (p *RisePool) Update(time float64) {
	if p == nil {
		return
	}
	for i := range p.bubbles {
		b := &p.bubbles[i]
		if !b.Active {
			continue
		}
		b.rise(time, p.cfg.WobbleFactor)
		if b.Position[1] > p.cfg.TopBound {
			b.Active = false
		}
	}
}

// Hide deactivates every bubble.
func (p *RisePool) Hide() {
	if p == nil {
		return
	}
	for i := range p.bubbles {
		p.bubbles[i].Active = false
	}
}

// Len returns the fixed pool size.
func (p *RisePool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.bubbles)
}

// ActiveCount returns the number of active bubbles.
func (p *RisePool) ActiveCount() int {
	if p == nil {
		return 0
	}
	return countActive(p.bubbles)
}

// Bubble returns a pointer to the bubble at index i for inspection.
func (p *RisePool) Bubble(i int) *Bubble {
	return &p.bubbles[i]
}

// Bubbles returns the backing slice. The returned slice MUST NOT be resized.
func (p *RisePool) Bubbles() []Bubble {
	return p.bubbles
}

func countActive(bubbles []Bubble) int {
	n := 0
	for i := range bubbles {
		if bubbles[i].Active {
			n++
		}
	}
	return n
}
