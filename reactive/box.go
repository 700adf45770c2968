package reactive

// Box is an observable value cell.
type Box[T any] struct {
	rt        *Runtime
	value     T
	equal     EqualFunc[T]
	observers observers
}

// BoxOption configures a Box.
type BoxOption[T any] func(*Box[T])

// WithEquals overrides the comparison used to skip no-op writes.
func WithEquals[T any](fn EqualFunc[T]) BoxOption[T] {
	return func(b *Box[T]) {
		b.equal = fn
	}
}

// NewBox creates a Box holding initial on rt (nil selects Default()).
func NewBox[T any](rt *Runtime, initial T, opts ...BoxOption[T]) *Box[T] {
	b := &Box[T]{
		rt:    resolve(rt),
		value: initial,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.equal = equalOrDefault(b.equal)
	return b
}

// Get returns the value and registers the box as a dependency of the running
// derivation, if any.
func (b *Box[T]) Get() T {
	b.rt.reportObserved(b)
	return b.value
}

// Peek returns the value without registering a dependency.
func (b *Box[T]) Peek() T {
	return b.value
}

// Set stores value and notifies observers. Writes equal to the current value
// are ignored; the result reports whether the value changed.
func (b *Box[T]) Set(value T) bool {
	if b.equal(b.value, value) {
		return false
	}
	b.value = value
	b.rt.Batch(b.observers.notify)
	return true
}

// Update sets the box to fn(current).
func (b *Box[T]) Update(fn func(T) T) bool {
	return b.Set(fn(b.value))
}

// ObserverCount returns the number of computeds and reactions currently
// depending on the box.
func (b *Box[T]) ObserverCount() int {
	return b.observers.len()
}

func (b *Box[T]) addObserver(o observer) {
	b.observers.add(o)
}

func (b *Box[T]) removeObserver(o observer) {
	b.observers.remove(o)
}
