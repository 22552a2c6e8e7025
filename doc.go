// Package canopy is a retained-mode widget tree for game user interfaces,
// drawn either to a graphics backend or to a character grid.
//
// A [Scene] owns a tree of [Widget] values. Each widget pairs a
// [WidgetState] (geometry, flags, text args, callbacks) with a
// [WidgetKind] that supplies behavior through optional hook interfaces
// such as [Adder], [Layouter], [MousePresser] and [GraphicsDrawer].
//
// # Frame loop
//
// Backends push input with [Scene.Push] and call [Scene.Update] then
// [Scene.Draw] (or [Scene.DrawText]) once per frame:
//
//	scene := canopy.NewScene(canopy.WithDefaults(root), 320, 180, theme)
//	scene.Push(canopy.MouseMove(10, 10))
//	scene.Update(16)
//	scene.Draw(renderer, 16)
//
// Update dispatches queued events, removes widgets marked for removal,
// rebuilds invalidated children, lays out invalidated subtrees and then
// runs each kind's Update hook. Removals and rebuilds requested from
// callbacks are deferred to the next sweep, so handlers may freely remove
// or rebuild widgets. Children added to a live parent attach at once.
//
// # Input
//
// Positional events go to the top-most eligible widget under the cursor
// and bubble to its ancestors until one consumes them. While a modal
// widget is visible only it and its ancestors receive input. Hover state
// follows the cursor, and [Scene.SetMouseOver] keeps at most one hover
// widget such as a tooltip.
//
// # Themes
//
// Layout is driven by a [Theme]. [LoadTheme] reads YAML with nested
// children; entries are looked up by dotted theme id, falling back to
// shorter suffixes, and widgets without an entry keep the geometry set in
// code.
//
// # Backends
//
// Subpackage ebitenrender draws with [Ebitengine], termrender draws to a
// terminal through bubbletea, and ecs forwards consumed events into a
// [Donburi] world. Widget kinds live in widgets and the game views
// (area view, character selector, ability pane) in view.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package canopy
