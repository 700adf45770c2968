package reactive

// Computed is a derived value. It is recomputed lazily on Get after any of the
// values it read during its last evaluation changed.
type Computed[T any] struct {
	rt        *Runtime
	fn        func() T
	equal     EqualFunc[T]
	value     T
	stale     bool
	deps      []observable
	observers observers
}

// ComputedOption configures a Computed.
type ComputedOption[T any] func(*Computed[T])

// WithComputedEquals overrides the comparison used to decide whether a
// recomputation produced a new value.
func WithComputedEquals[T any](fn EqualFunc[T]) ComputedOption[T] {
	return func(c *Computed[T]) {
		c.equal = fn
	}
}

// NewComputed creates a derived value on rt (nil selects Default()).
func NewComputed[T any](rt *Runtime, fn func() T, opts ...ComputedOption[T]) *Computed[T] {
	c := &Computed[T]{
		rt:    resolve(rt),
		fn:    fn,
		stale: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.equal = equalOrDefault(c.equal)
	return c
}

// Get returns the current derived value, recomputing it when stale.
func (c *Computed[T]) Get() T {
	c.rt.reportObserved(c)
	if c.stale {
		var next T
		c.deps = c.rt.track(c, c.deps, func() { next = c.fn() })
		c.stale = false
		if !c.equal(c.value, next) {
			c.value = next
		}
	}
	return c.value
}

// ObserverCount returns the number of derivations depending on c.
func (c *Computed[T]) ObserverCount() int {
	return c.observers.len()
}

// Dispose detaches c from its dependencies. A later Get re-links it.
func (c *Computed[T]) Dispose() {
	for _, dep := range c.deps {
		dep.removeObserver(c)
	}
	c.deps = nil
	c.stale = true
}

func (c *Computed[T]) markStale() {
	if c.stale {
		return
	}
	c.stale = true
	c.observers.notify()
}

func (c *Computed[T]) addObserver(o observer) {
	c.observers.add(o)
}

func (c *Computed[T]) removeObserver(o observer) {
	c.observers.remove(o)
}
