// Package ecs bridges canopy's routed input events into a [Donburi] world.
//
// Every event a widget consumes is published to [WidgetEventType]. Widgets
// bound with [Sink.Bind] also get an entity carrying a [WidgetRef], and
// their events name that entity so ECS systems can react per widget.
//
// Usage:
//
//	sink := ecs.NewSink(world)
//	scene.SetEventSink(sink)
//	ecs.WidgetEventType.Subscribe(world, onWidgetEvent)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
