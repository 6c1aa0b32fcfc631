package deepsea

import "github.com/go-gl/mathgl/mgl64"

// EventType identifies a scene event.
type EventType uint8

const (
	EventStart          EventType = iota // opening began; rise pool created
	EventRiseFadeOut                     // fast-rise pool started fading out
	EventAmbientCreated                  // ambient pool created
	EventLightsCreated                   // light beams created
	EventBurst                           // an ambient bubble finished bursting
	EventTeardown                        // scene torn down
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventRiseFadeOut:
		return "rise-fade-out"
	case EventAmbientCreated:
		return "ambient-created"
	case EventLightsCreated:
		return "lights-created"
	case EventBurst:
		return "burst"
	case EventTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// SceneEvent carries a lifecycle notification for an EntityStore.
type SceneEvent struct {
	Type EventType
	// Time is the scene clock time of the event.
	Time float64
	// Index, Position, and Fragments are set for EventBurst: the pool index
	// of the bubble, where it burst, and how many fragments it left.
	Index     int
	Position  mgl64.Vec3
	Fragments int
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, lifecycle and burst events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}

// SetEntityStore sets the optional ECS bridge. Pass nil to detach it.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// emit forwards ev to the entity store, stamping the clock time.
func (s *Scene) emit(ev SceneEvent) {
	if s.store == nil {
		return
	}
	ev.Time = s.clock.Now()
	s.store.EmitEvent(ev)
}
