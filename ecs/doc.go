// Package ecs provides ECS adapters for deepsea's scene events.
//
// The primary adapter is [NewDonburiStore], which bridges deepsea lifecycle
// events (phase transitions, bubble bursts, teardown) into a [Donburi] world
// as typed events. Subscribe to [SceneEventType] in your ECS systems to
// receive them, for example to play a sound on every burst.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
