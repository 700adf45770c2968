package reactive

type reaction[T any] struct {
	rt        *Runtime
	read      func() T
	effect    func(T)
	equal     EqualFunc[T]
	last      T
	deps      []observable
	scheduled bool
	disposed  bool
}

// ReactionOption configures a reaction.
type ReactionOption[T any] func(*reaction[T])

// WithReactionEquals overrides the comparison deciding whether read produced
// a new value.
func WithReactionEquals[T any](fn EqualFunc[T]) ReactionOption[T] {
	return func(r *reaction[T]) {
		r.equal = fn
	}
}

// Reaction runs read immediately to record its dependencies and baseline
// value, without calling effect. Whenever a dependency changes afterwards,
// read runs again and effect receives the result if it differs from the
// previous one. Inside a batch the re-run happens when the batch ends.
func Reaction[T any](rt *Runtime, read func() T, effect func(T), opts ...ReactionOption[T]) Disposer {
	r := &reaction[T]{
		rt:     resolve(rt),
		read:   read,
		effect: effect,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.equal = equalOrDefault(r.equal)
	r.deps = r.rt.track(r, nil, func() { r.last = r.read() })
	return r.dispose
}

func (r *reaction[T]) markStale() {
	if r.disposed || r.scheduled {
		return
	}
	r.scheduled = true
	r.rt.schedule(r)
}

func (r *reaction[T]) unschedule() {
	r.scheduled = false
}

func (r *reaction[T]) run() {
	if r.disposed {
		return
	}
	var next T
	r.deps = r.rt.track(r, r.deps, func() { next = r.read() })
	if r.equal(r.last, next) {
		return
	}
	r.last = next
	r.effect(next)
}

func (r *reaction[T]) dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	for _, dep := range r.deps {
		dep.removeObserver(r)
	}
	r.deps = nil
}
