package deepsea

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously with a shared
// duration and easing. Call Update(dt) each frame directly, or hand the group
// to an Animator. The start values are read when the group starts (after any
// delay), so a delayed group picks up whatever the fields hold at that time.
// If the bound node is disposed, the group stops without completing.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	fields   [4]*float64
	to       [4]float64
	count    int
	duration float32
	easing   ease.TweenFunc
	delay    float32
	started  bool
	target   *Node

	// OnComplete runs once, on the frame every tween reaches its end value.
	// It does not run for killed groups.
	OnComplete func()
	Done       bool
}

func newTweenGroup(duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	return &TweenGroup{duration: duration, easing: fn}
}

func (g *TweenGroup) add(field *float64, to float64) {
	g.fields[g.count] = field
	g.to[g.count] = to
	g.count++
}

// TweenValue creates a TweenGroup that animates *field to the target value
// over the specified duration using the easing function.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(duration, fn)
	g.add(field, to)
	return g
}

// TweenPair creates a TweenGroup that animates two fields together.
func TweenPair(a *float64, toA float64, b *float64, toB float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(duration, fn)
	g.add(a, toA)
	g.add(b, toB)
	return g
}

// TweenColor creates a TweenGroup that animates all four components of *c.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(duration, fn)
	g.add(&c.R, to.R)
	g.add(&c.G, to.G)
	g.add(&c.B, to.B)
	g.add(&c.A, to.A)
	return g
}

// WithDelay postpones the start of the group by d seconds.
func (g *TweenGroup) WithDelay(d float32) *TweenGroup {
	if d > 0 {
		g.delay = d
	}
	return g
}

// Bind ties the group to a render node; disposing the node stops the group.
func (g *TweenGroup) Bind(n *Node) *TweenGroup {
	g.target = n
	return g
}

// Then sets OnComplete and returns the group.
func (g *TweenGroup) Then(fn func()) *TweenGroup {
	g.OnComplete = fn
	return g
}

// Kill stops the group where it is. OnComplete will not run.
func (g *TweenGroup) Kill() {
	g.Done = true
	g.OnComplete = nil
}

func (g *TweenGroup) start() {
	g.started = true
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(float32(*g.fields[i]), float32(g.to[i]), g.duration, g.easing)
	}
}

// Update advances the group by dt seconds and writes values to the target
// fields. Remaining delay is consumed first.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Kill()
		return
	}

	if g.delay > 0 {
		if dt < g.delay {
			g.delay -= dt
			return
		}
		dt -= g.delay
		g.delay = 0
	}
	if !g.started {
		g.start()
	}

	allDone := true
	if g.duration <= 0 {
		// gween reports the begin value for zero-length tweens.
		for i := 0; i < g.count; i++ {
			*g.fields[i] = g.to[i]
		}
	} else {
		for i := 0; i < g.count; i++ {
			val, finished := g.tweens[i].Update(dt)
			if finished {
				*g.fields[i] = g.to[i]
				continue
			}
			*g.fields[i] = float64(val)
			allDone = false
		}
	}
	if !allDone {
		return
	}

	g.Done = true
	if fn := g.OnComplete; fn != nil {
		g.OnComplete = nil
		fn()
	}
}

// Animator owns the tweens in flight for one scene. Groups added from a
// completion callback start on the next Update.
type Animator struct {
	groups []*TweenGroup
}

// NewAnimator returns an empty Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Add registers g and returns it.
func (a *Animator) Add(g *TweenGroup) *TweenGroup {
	a.groups = append(a.groups, g)
	return g
}

// Len returns the number of groups still running.
func (a *Animator) Len() int {
	n := 0
	for _, g := range a.groups {
		if !g.Done {
			n++
		}
	}
	return n
}

// Update advances every group by dt and drops finished ones.
func (a *Animator) Update(dt float32) {
	n := len(a.groups)
	for i := 0; i < n && i < len(a.groups); i++ {
		a.groups[i].Update(dt)
	}

	live := a.groups[:0]
	for _, g := range a.groups {
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(a.groups[len(live):])
	a.groups = live
}

// KillAll stops every group without running completion callbacks.
func (a *Animator) KillAll() {
	for _, g := range a.groups {
		g.Kill()
	}
	clear(a.groups)
	a.groups = a.groups[:0]
}
