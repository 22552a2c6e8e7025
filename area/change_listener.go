package area

// ChangeListenerList notifies registered functions when a value changes.
// Listeners are keyed by id so an owner can replace or remove its own.
type ChangeListenerList[T any] struct {
	listeners []changeListener[T]
}

type changeListener[T any] struct {
	id string
	fn func(T)
}

// Add registers fn under id, replacing any listener with the same id.
func (l *ChangeListenerList[T]) Add(id string, fn func(T)) {
	for i := range l.listeners {
		if l.listeners[i].id == id {
			l.listeners[i].fn = fn
			return
		}
	}
	l.listeners = append(l.listeners, changeListener[T]{id: id, fn: fn})
}

// Remove drops the listener registered under id.
func (l *ChangeListenerList[T]) Remove(id string) {
	for i := range l.listeners {
		if l.listeners[i].id == id {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of listeners.
func (l *ChangeListenerList[T]) Len() int { return len(l.listeners) }

// Notify calls every listener with v in registration order. Listeners
// added during notification are not called until the next Notify.
func (l *ChangeListenerList[T]) Notify(v T) {
	ls := l.listeners
	for _, cl := range ls {
		cl.fn(v)
	}
}
