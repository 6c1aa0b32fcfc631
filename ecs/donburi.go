// Package ecs provides ECS adapters for deepsea.
package ecs

import (
	"github.com/phanxgames/deepsea"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for deepsea scene events.
// Subscribe to this in your ECS systems to receive phase and burst events.
var SceneEventType = events.NewEventType[deepsea.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) deepsea.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event deepsea.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
