package deepsea

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// AmbientPool is the slow population that rises for the rest of the scene.
// Bubbles burst at random, spawn fragments, and are reset in place; the pool
// never grows or shrinks.
type AmbientPool struct {
	cfg       AmbientConfig
	burst     BurstConfig
	bubbles   []Bubble
	tweens    []*TweenGroup // running opacity or burst tween per bubble
	rng       *rand.Rand
	anim      *Animator
	fragments *FragmentSet

	// OnBurst, if set, runs after a bubble's burst animation ends with the
	// bubble's index, its position, and the number of fragments spawned.
	OnBurst func(i int, pos mgl64.Vec3, fragments int)

	bursts int
}

// NewAmbientPool creates cfg.Count bubbles on the baseline. Each fades in
// after a random delay. anim and fragments may be nil: without an animator,
// fades and bursts complete immediately; without a fragment set, bursts
// leave no debris.
func NewAmbientPool(cfg AmbientConfig, burst BurstConfig, rng *rand.Rand, anim *Animator, fragments *FragmentSet) *AmbientPool {
	count := max(cfg.Count, 0)
	p := &AmbientPool{
		cfg:       cfg,
		burst:     burst,
		bubbles:   make([]Bubble, count),
		tweens:    make([]*TweenGroup, count),
		rng:       rng,
		anim:      anim,
		fragments: fragments,
	}
	for i := range p.bubbles {
		p.spawn(i)
	}
	return p
}

// spawn places bubble i on the baseline with fresh motion parameters and
// starts its fade-in.
func (p *AmbientPool) spawn(i int) {
	b := &p.bubbles[i]
	b.Position = mgl64.Vec3{p.cfg.X.Random(p.rng), p.cfg.BaselineY, p.cfg.Z.Random(p.rng)}
	b.Speed = p.cfg.Speed.Random(p.rng)
	b.WobbleSpeed = p.cfg.WobbleSpeed.Random(p.rng)
	b.WobbleAmount = p.cfg.WobbleAmount.Random(p.rng)
	b.Lifespan = p.cfg.Lifespan.Random(p.rng)
	b.Radius = p.cfg.Radius.Random(p.rng)
	b.TargetOpacity = p.cfg.TargetOpacity.Random(p.rng)
	b.Age = 0
	b.Scale = 1
	b.Opacity = 0
	b.Active = true
	b.State = BurstNormal

	delay := p.cfg.FadeInDelay.Random(p.rng)
	p.play(i, TweenValue(&b.Opacity, b.TargetOpacity, float32(p.cfg.FadeIn), ease.Linear).
		WithDelay(float32(delay)))
}

// play replaces bubble i's running tween with g.
func (p *AmbientPool) play(i int, g *TweenGroup) {
	if old := p.tweens[i]; old != nil {
		old.Kill()
	}
	p.tweens[i] = g
	if p.anim == nil {
		// No clock to animate on: jump to the end state.
		g.Update(float32(1 << 20))
		return
	}
	p.anim.Add(g)
}

// BurstChance is the per-tick probability that a bubble of the given age
// bursts. It is 0 at birth, grows linearly, and holds at factor from the end
// of the lifespan on.
func BurstChance(age, lifespan, factor float64) float64 {
	if lifespan <= 0 {
		return factor
	}
	return clamp01(age/lifespan) * factor
}

// Update advances every normal bubble by one tick at the given clock time and
// starts bursts. Bursting bubbles are left to their tweens.
func (p *AmbientPool) Update(time float64) {
	if p == nil {
		return
	}
	for i := range p.bubbles {
		b := &p.bubbles[i]
		if !b.Active || b.State != BurstNormal {
			continue
		}
		b.Age += p.cfg.Tick
		b.rise(time, p.cfg.WobbleFactor)
		if p.shouldBurst(b) {
			p.beginBurst(i)
		}
	}
}

// shouldBurst rolls the burst decision for one tick. Rising past the top
// bound or outliving the lifespan always bursts.
func (p *AmbientPool) shouldBurst(b *Bubble) bool {
	if b.Position[1] > p.cfg.TopBound || b.Age >= b.Lifespan {
		return true
	}
	return p.rng.Float64() < BurstChance(b.Age, b.Lifespan, p.cfg.BurstFactor)
}

// Len returns the fixed pool size.
func (p *AmbientPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.bubbles)
}

// ActiveCount returns the number of active bubbles.
func (p *AmbientPool) ActiveCount() int {
	if p == nil {
		return 0
	}
	return countActive(p.bubbles)
}

// Bursts returns how many bursts have started since the pool was created.
func (p *AmbientPool) Bursts() int {
	if p == nil {
		return 0
	}
	return p.bursts
}

// Bubble returns a pointer to the bubble at index i for inspection or
// tuning.
func (p *AmbientPool) Bubble(i int) *Bubble {
	return &p.bubbles[i]
}

// Bubbles returns the backing slice. The returned slice MUST NOT be resized.
func (p *AmbientPool) Bubbles() []Bubble {
	return p.bubbles
}

// stop kills every running tween without completing it.
func (p *AmbientPool) stop() {
	if p == nil {
		return
	}
	for i, g := range p.tweens {
		if g != nil {
			g.Kill()
			p.tweens[i] = nil
		}
	}
}
