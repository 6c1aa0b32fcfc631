package deepsea

import "testing"

func TestRisePoolSpawnRanges(t *testing.T) {
	p := NewRisePool(DefaultConfig().Rise, NewRand(1))
	if p.Len() != 300 || p.ActiveCount() != 300 {
		t.Fatalf("Len=%d Active=%d, want 300/300", p.Len(), p.ActiveCount())
	}
	ranges := []struct {
		name string
		r    Range
		get  func(*Bubble) float64
	}{
		{"x", Range{-5, 5}, func(b *Bubble) float64 { return b.Position[0] }},
		{"y", Range{-15, -5}, func(b *Bubble) float64 { return b.Position[1] }},
		{"z", Range{-2.5, 2.5}, func(b *Bubble) float64 { return b.Position[2] }},
		{"speed", Range{0.04, 0.34}, func(b *Bubble) float64 { return b.Speed }},
		{"finalSpeed", Range{0.04, 0.2}, func(b *Bubble) float64 { return b.FinalSpeed }},
		{"wobbleSpeed", Range{0.01, 0.03}, func(b *Bubble) float64 { return b.WobbleSpeed }},
		{"wobbleAmount", Range{0.1, 0.3}, func(b *Bubble) float64 { return b.WobbleAmount }},
		{"radius", Range{0.1, 0.6}, func(b *Bubble) float64 { return b.Radius }},
	}
	for i := range p.Len() {
		b := p.Bubble(i)
		for _, rr := range ranges {
			if v := rr.get(b); !rr.r.Contains(v) {
				t.Fatalf("bubble %d %s = %f, want in [%g, %g)", i, rr.name, v, rr.r.Min, rr.r.Max)
			}
		}
		if b.Scale != 1 || b.Opacity != 1 || b.TargetOpacity != 1 || !b.Active || b.State != BurstNormal {
			t.Fatalf("bubble %d bad initial state %+v", i, *b)
		}
	}
}

func TestRisePoolRisesBySpeedPerTick(t *testing.T) {
	p := NewRisePool(DefaultConfig().Rise, NewRand(2))
	b := p.Bubble(0)
	y0, speed := b.Position[1], b.Speed

	const ticks = 20
	for i := range ticks {
		p.Update(float64(i) / 60)
	}
	if !approxEqual(b.Position[1], y0+ticks*speed, 1e-9) {
		t.Errorf("y = %f, want %f", b.Position[1], y0+ticks*speed)
	}
}

func TestRisePoolDeactivatesAboveTop(t *testing.T) {
	cfg := DefaultConfig().Rise
	cfg.Count = 10
	cfg.TopBound = -4.9 // every bubble starts below -5
	p := NewRisePool(cfg, NewRand(3))

	for i := range 400 {
		p.Update(float64(i) / 60)
	}
	if p.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", p.ActiveCount())
	}
	// Inactive bubbles are never repositioned.
	for i := range p.Len() {
		if y := p.Bubble(i).Position[1]; y <= cfg.TopBound {
			t.Errorf("bubble %d at y=%f was moved back", i, y)
		}
	}
	if p.Len() != 10 {
		t.Errorf("Len = %d, want 10", p.Len())
	}
}

func TestRisePoolHide(t *testing.T) {
	p := NewRisePool(DefaultConfig().Rise, NewRand(4))
	p.Hide()
	if p.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d after Hide", p.ActiveCount())
	}
	y := p.Bubble(0).Position[1]
	p.Update(0)
	if p.Bubble(0).Position[1] != y {
		t.Error("hidden bubble moved")
	}
}

func TestRisePoolNilSafe(t *testing.T) {
	var p *RisePool
	p.Update(0)
	p.Hide()
	if p.Len() != 0 || p.ActiveCount() != 0 {
		t.Error("nil pool should report zero")
	}
}

func TestBurstStateString(t *testing.T) {
	if BurstNormal.String() != "normal" || BurstBursting.String() != "bursting" {
		t.Error("unexpected BurstState names")
	}
}
