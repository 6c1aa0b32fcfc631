package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/deepsea"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []deepsea.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e deepsea.SceneEvent) {
		received = append(received, e)
	})

	store.EmitEvent(deepsea.SceneEvent{
		Type:      deepsea.EventBurst,
		Time:      3.5,
		Index:     7,
		Position:  mgl64.Vec3{1, 2, 0.25},
		Fragments: 4,
	})
	store.EmitEvent(deepsea.SceneEvent{Type: deepsea.EventTeardown})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before ProcessEvents, got %d", len(received))
	}
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != deepsea.EventBurst || e0.Index != 7 || e0.Fragments != 4 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Position != (mgl64.Vec3{1, 2, 0.25}) {
		t.Errorf("event 0 position: %v", e0.Position)
	}
	if received[1].Type != deepsea.EventTeardown {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store deepsea.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_SceneLifecycle(t *testing.T) {
	world := donburi.NewWorld()

	var types []deepsea.EventType
	SceneEventType.Subscribe(world, func(w donburi.World, e deepsea.SceneEvent) {
		types = append(types, e.Type)
	})

	cfg := deepsea.DefaultConfig()
	cfg.Seed = 1
	cfg.FixedStep = 1.0 / 60.0
	scene := deepsea.NewScene(cfg)
	scene.SetEntityStore(NewDonburiStore(world))

	// 2.5 s covers the fade-out, ambient, and light transitions.
	for range 150 {
		if err := scene.Update(); err != nil {
			t.Fatal(err)
		}
	}
	scene.Teardown()
	SceneEventType.ProcessEvents(world)

	want := map[deepsea.EventType]bool{
		deepsea.EventStart:          false,
		deepsea.EventRiseFadeOut:    false,
		deepsea.EventAmbientCreated: false,
		deepsea.EventLightsCreated:  false,
		deepsea.EventTeardown:       false,
	}
	for _, typ := range types {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}
	for typ, seen := range want {
		if !seen {
			t.Errorf("missing %s event", typ)
		}
	}
	if types[0] != deepsea.EventStart {
		t.Errorf("first event = %s, want start", types[0])
	}
	if types[len(types)-1] != deepsea.EventTeardown {
		t.Errorf("last event = %s, want teardown", types[len(types)-1])
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	SceneEventType.Subscribe(world, func(w donburi.World, e deepsea.SceneEvent) {
		count1++
	})
	SceneEventType.Subscribe(world, func(w donburi.World, e deepsea.SceneEvent) {
		count2++
	})

	store.EmitEvent(deepsea.SceneEvent{Type: deepsea.EventStart})
	SceneEventType.ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("subscribers: count1=%d count2=%d, want 1 each", count1, count2)
	}
}
