package deepsea

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// newTestAmbient builds a pool wired to its own animator and fragment set.
func newTestAmbient(seed uint64, mutate func(*AmbientConfig)) (*AmbientPool, *Animator, *FragmentSet) {
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg.Ambient)
	}
	rng := NewRand(seed)
	anim := NewAnimator()
	frags := NewFragmentSet(cfg.Fragments, rng, anim, nil)
	return NewAmbientPool(cfg.Ambient, cfg.Burst, rng, anim, frags), anim, frags
}

func TestBurstChance(t *testing.T) {
	if got := BurstChance(0, 10, 0.01); got != 0 {
		t.Errorf("chance at birth = %f, want 0", got)
	}
	if got := BurstChance(5, 10, 0.01); !approxEqual(got, 0.005, 1e-12) {
		t.Errorf("chance at half life = %f, want 0.005", got)
	}
	if got := BurstChance(10, 10, 0.01); !approxEqual(got, 0.01, 1e-12) {
		t.Errorf("chance at lifespan = %f, want 0.01", got)
	}
	if got := BurstChance(40, 10, 0.01); !approxEqual(got, 0.01, 1e-12) {
		t.Errorf("chance past lifespan = %f, want 0.01", got)
	}
	prev := 0.0
	for age := 0.0; age <= 12; age += 0.5 {
		c := BurstChance(age, 10, 0.01)
		if c < prev {
			t.Fatalf("chance decreased at age %f", age)
		}
		prev = c
	}
}

func TestAmbientPoolSpawnState(t *testing.T) {
	p, _, _ := newTestAmbient(1, nil)
	if p.Len() != 30 || p.ActiveCount() != 30 {
		t.Fatalf("Len=%d Active=%d, want 30/30", p.Len(), p.ActiveCount())
	}
	ranges := []struct {
		name string
		r    Range
		get  func(*Bubble) float64
	}{
		{"x", Range{-4, 4}, func(b *Bubble) float64 { return b.Position[0] }},
		{"z", Range{-0.5, 0.5}, func(b *Bubble) float64 { return b.Position[2] }},
		{"speed", Range{0.002, 0.007}, func(b *Bubble) float64 { return b.Speed }},
		{"wobbleSpeed", Range{0.02, 0.07}, func(b *Bubble) float64 { return b.WobbleSpeed }},
		{"wobbleAmount", Range{0.05, 0.15}, func(b *Bubble) float64 { return b.WobbleAmount }},
		{"lifespan", Range{10, 30}, func(b *Bubble) float64 { return b.Lifespan }},
		{"radius", Range{0.03, 0.1}, func(b *Bubble) float64 { return b.Radius }},
		{"targetOpacity", Range{0.5, 0.9}, func(b *Bubble) float64 { return b.TargetOpacity }},
	}
	for i := range p.Len() {
		b := p.Bubble(i)
		if b.Position[1] != -2.5 {
			t.Errorf("bubble %d y = %f, want -2.5", i, b.Position[1])
		}
		for _, rr := range ranges {
			if v := rr.get(b); !rr.r.Contains(v) {
				t.Errorf("bubble %d %s = %f, want in [%g, %g)", i, rr.name, v, rr.r.Min, rr.r.Max)
			}
		}
		if b.Opacity != 0 || b.Age != 0 || b.Scale != 1 || !b.Active || b.State != BurstNormal {
			t.Errorf("bubble %d initial state %+v", i, *b)
		}
		g := p.tweens[i]
		if g == nil || g.started || g.delay < 0 || g.delay > 0.5 {
			t.Errorf("bubble %d fade-in tween %+v, want pending with delay in [0, 0.5]", i, g)
		}
	}
}

func TestAmbientPoolFadeIn(t *testing.T) {
	p, anim, _ := newTestAmbient(2, func(c *AmbientConfig) { c.BurstFactor = 0 })
	// Longest delay plus the fade itself.
	anim.Update(0.5)
	anim.Update(1.0)
	for i := range p.Len() {
		b := p.Bubble(i)
		if b.Opacity != b.TargetOpacity {
			t.Errorf("bubble %d opacity %f, want %f", i, b.Opacity, b.TargetOpacity)
		}
	}
}

func TestAmbientPoolWithoutAnimator(t *testing.T) {
	cfg := DefaultConfig()
	p := NewAmbientPool(cfg.Ambient, cfg.Burst, NewRand(3), nil, nil)
	b := p.Bubble(0)
	if b.Opacity != b.TargetOpacity {
		t.Errorf("opacity = %f, want target %f", b.Opacity, b.TargetOpacity)
	}
	// Bursts finish at once and leave a reset bubble.
	b.Age = 50
	p.Burst(0)
	if b.State != BurstNormal || b.Age != 0 || p.Bursts() != 1 {
		t.Errorf("state=%s age=%f bursts=%d", b.State, b.Age, p.Bursts())
	}
}

func TestAmbientForcedBurstAtLifespan(t *testing.T) {
	p, _, _ := newTestAmbient(4, func(c *AmbientConfig) { c.BurstFactor = 0 })
	b := p.Bubble(0)
	b.Lifespan = 10
	b.Age = 10
	if b.Position[1] > 5 {
		t.Fatal("bubble should start below the top bound")
	}
	p.Update(0)
	if !b.Bursting() {
		t.Fatal("bubble at its lifespan should burst on the next tick")
	}
	if p.Bursts() != 1 {
		t.Errorf("Bursts = %d, want 1", p.Bursts())
	}
	for i := 1; i < p.Len(); i++ {
		if p.Bubble(i).Bursting() {
			t.Errorf("bubble %d burst with zero chance", i)
		}
	}
}

func TestAmbientForcedBurstAboveTop(t *testing.T) {
	p, _, _ := newTestAmbient(5, func(c *AmbientConfig) { c.BurstFactor = 0 })
	b := p.Bubble(3)
	b.Position[1] = 5.5
	p.Update(0)
	if !b.Bursting() {
		t.Error("bubble above the top bound should burst")
	}
}

func TestAmbientBurstFreezesMotion(t *testing.T) {
	p, _, _ := newTestAmbient(6, func(c *AmbientConfig) { c.BurstFactor = 0 })
	p.Burst(0)
	b := p.Bubble(0)
	pos, age := b.Position, b.Age
	for i := range 5 {
		p.Update(float64(i))
	}
	if b.Position != pos || b.Age != age {
		t.Error("bursting bubble moved or aged")
	}
	// A second trigger during the animation is ignored.
	p.Burst(0)
	if p.Bursts() != 1 {
		t.Errorf("Bursts = %d, want 1", p.Bursts())
	}
}

func TestAmbientBurstResetsAndSpawnsFragments(t *testing.T) {
	p, anim, frags := newTestAmbient(7, func(c *AmbientConfig) { c.BurstFactor = 0 })
	cfg := DefaultConfig()

	var events int
	var fragCount int
	p.OnBurst = func(i int, _ mgl64.Vec3, n int) {
		events++
		fragCount = n
	}

	b := p.Bubble(0)
	for range 30 {
		p.Update(0)
	}
	p.Burst(0)
	anim.Update(0.1)
	if b.Scale <= 1 || b.Scale >= cfg.Burst.Scale {
		t.Errorf("mid-burst scale = %f", b.Scale)
	}
	anim.Update(0.1)

	if b.Bursting() || !b.Active {
		t.Fatalf("bubble not reset: %+v", *b)
	}
	if b.Age != 0 || b.Position[1] != cfg.Ambient.BaselineY || b.Scale != 1 || b.Opacity != 0 {
		t.Errorf("reset state %+v", *b)
	}
	if !cfg.Ambient.Lifespan.Contains(b.Lifespan) {
		t.Errorf("new lifespan %f out of range", b.Lifespan)
	}
	if frags.Len() < 3 || frags.Len() > 5 {
		t.Errorf("fragments = %d, want 3..5", frags.Len())
	}
	if events != 1 || fragCount != frags.Len() {
		t.Errorf("OnBurst events=%d fragments=%d, want 1 and %d", events, fragCount, frags.Len())
	}
}

func TestAmbientBurstOverridesFadeIn(t *testing.T) {
	p, anim, _ := newTestAmbient(8, func(c *AmbientConfig) {
		c.BurstFactor = 0
		c.FadeInDelay = Range{0, 0}
	})
	anim.Update(0.5)
	b := p.Bubble(0)
	if b.Opacity <= 0 || b.Opacity >= b.TargetOpacity {
		t.Fatalf("expected mid fade-in, opacity %f", b.Opacity)
	}
	p.Burst(0)
	anim.Update(0.1)
	mid := b.Opacity
	anim.Update(0.05)
	if b.Opacity > mid {
		t.Errorf("fade-in still running during burst: %f -> %f", mid, b.Opacity)
	}
}

func TestAmbientPoolSizeStable(t *testing.T) {
	p, anim, _ := newTestAmbient(9, func(c *AmbientConfig) { c.BurstFactor = 0.5 })
	for i := range 600 {
		p.Update(float64(i) / 60)
		anim.Update(1.0 / 60)
	}
	if p.Bursts() == 0 {
		t.Fatal("expected bursts with a high burst factor")
	}
	if p.Len() != 30 || p.ActiveCount() != 30 {
		t.Errorf("Len=%d Active=%d, want 30/30", p.Len(), p.ActiveCount())
	}
}

func TestAmbientSeededRunsMatch(t *testing.T) {
	run := func() *AmbientPool {
		p, anim, _ := newTestAmbient(1234, nil)
		for i := range 1200 {
			p.Update(float64(i) / 60)
			anim.Update(1.0 / 60)
		}
		return p
	}
	a, b := run(), run()
	if a.Bursts() != b.Bursts() {
		t.Fatalf("bursts differ: %d vs %d", a.Bursts(), b.Bursts())
	}
	for i := range a.Len() {
		if *a.Bubble(i) != *b.Bubble(i) {
			t.Fatalf("bubble %d differs", i)
		}
	}
}

func TestAmbientStopKillsTweens(t *testing.T) {
	p, anim, _ := newTestAmbient(10, nil)
	p.stop()
	anim.Update(5)
	for i := range p.Len() {
		if p.Bubble(i).Opacity != 0 {
			t.Fatalf("bubble %d faded in after stop", i)
		}
	}
}

func TestAmbientNilSafe(t *testing.T) {
	var p *AmbientPool
	p.Update(0)
	p.Burst(0)
	p.stop()
	if p.Len() != 0 || p.ActiveCount() != 0 || p.Bursts() != 0 {
		t.Error("nil pool should report zero")
	}
}
