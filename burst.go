package deepsea

import "github.com/tanema/gween/ease"

// Burst lifecycle of an ambient bubble:
//
//	normal -> bursting -> fragments spawned -> reset -> normal
//
// The bubble never leaves the pool. While bursting its position and age are
// frozen and only the burst tween touches it.

// beginBurst swells bubble i and fades it out; finishBurst runs when both
// reach their targets.
func (p *AmbientPool) beginBurst(i int) {
	b := &p.bubbles[i]
	if !b.Active || b.State == BurstBursting {
		return
	}
	b.State = BurstBursting
	p.bursts++

	g := TweenPair(&b.Scale, p.burst.Scale, &b.Opacity, 0, float32(p.burst.Duration), ease.OutQuad)
	g.OnComplete = func() { p.finishBurst(i) }
	p.play(i, g)
}

// finishBurst leaves debris where the bubble was and recycles it.
func (p *AmbientPool) finishBurst(i int) {
	b := &p.bubbles[i]
	if b.State != BurstBursting {
		return
	}
	p.tweens[i] = nil
	pos := b.Position
	spawned := p.fragments.Spawn(pos, b.Radius*b.Scale)
	p.reset(i)
	if p.OnBurst != nil {
		p.OnBurst(i, pos, len(spawned))
	}
}

// reset returns bubble i to the baseline as a fresh, fading-in bubble.
func (p *AmbientPool) reset(i int) {
	p.spawn(i)
}

// Burst forces bubble i into its burst animation. No-op if it is already
// bursting or inactive.
func (p *AmbientPool) Burst(i int) {
	if p == nil || i < 0 || i >= len(p.bubbles) {
		return
	}
	p.beginBurst(i)
}
