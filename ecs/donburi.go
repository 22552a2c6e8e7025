package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/canopy"
)

// WidgetRef identifies the widget an entity stands for.
type WidgetRef struct {
	WidgetID uint32
	ThemeID  string
}

// WidgetComponent holds the WidgetRef of a bound widget's entity.
var WidgetComponent = donburi.NewComponentType[WidgetRef]()

// WidgetEvent is a routed canopy event as seen by ECS systems. Entity is
// donburi.Null when the widget was never bound.
type WidgetEvent struct {
	canopy.RoutedEvent
	Entity donburi.Entity
}

// WidgetEventType is the Donburi event type widget events are published to.
var WidgetEventType = events.NewEventType[WidgetEvent]()

// Sink is a canopy.EventSink that publishes into a Donburi world. Events
// are queued and delivered by ProcessEvents.
type Sink struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewSink returns a sink publishing into world.
func NewSink(world donburi.World) *Sink {
	return &Sink{world: world, entities: make(map[uint32]donburi.Entity)}
}

// Bind creates an entity for w, or returns the existing one.
func (s *Sink) Bind(w *canopy.Widget) donburi.Entity {
	if e, ok := s.entities[w.ID]; ok && s.world.Valid(e) {
		return e
	}
	e := s.world.Create(WidgetComponent)
	WidgetComponent.SetValue(s.world.Entry(e), WidgetRef{WidgetID: w.ID, ThemeID: w.FullThemeID()})
	s.entities[w.ID] = e
	return e
}

// Unbind removes w's entity, if any.
func (s *Sink) Unbind(w *canopy.Widget) {
	e, ok := s.entities[w.ID]
	if !ok {
		return
	}
	delete(s.entities, w.ID)
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
}

// Entity returns the entity bound to widget id.
func (s *Sink) Entity(widgetID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[widgetID]
	if !ok || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

func (s *Sink) EmitEvent(ev canopy.RoutedEvent) {
	e, _ := s.Entity(ev.WidgetID)
	WidgetEventType.Publish(s.world, WidgetEvent{RoutedEvent: ev, Entity: e})
}

// ProcessEvents delivers queued widget events to subscribers.
func (s *Sink) ProcessEvents() {
	WidgetEventType.ProcessEvents(s.world)
}
