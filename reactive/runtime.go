package reactive

import (
	"errors"
	"slices"
)

// MaxReactionIterations bounds how many times one reaction may run within a
// single flush before the runtime assumes reactions keep re-triggering each
// other.
const MaxReactionIterations = 10000

// ErrReactionCycle is raised (as a panic value) when a reaction runs more than
// MaxReactionIterations times in one flush.
var ErrReactionCycle = errors.New("reactive: reaction cycle detected")

// Disposer stops a reaction. Calling it more than once is safe.
type Disposer func()

type observable interface {
	addObserver(o observer)
	removeObserver(o observer)
}

type observer interface {
	markStale()
}

type runner interface {
	observer
	run()
	unschedule()
}

// Runtime coordinates dependency tracking and batched reaction delivery.
type Runtime struct {
	collector  *collector
	batchDepth int
	pending    []runner
	flushing   bool
}

var defaultRuntime = NewRuntime()

// NewRuntime creates an isolated runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// Default returns the process wide runtime used when a nil *Runtime is given.
func Default() *Runtime {
	return defaultRuntime
}

func resolve(rt *Runtime) *Runtime {
	if rt == nil {
		return defaultRuntime
	}
	return rt
}

// Batch runs fn and delays reactions scheduled by it until the outermost batch
// completes. Each reaction runs at most once per flush.
func (rt *Runtime) Batch(fn func()) {
	rt = resolve(rt)
	rt.batchDepth++
	defer rt.endBatch()
	fn()
}

// InBatch reports whether a batch is currently open.
func (rt *Runtime) InBatch() bool {
	return resolve(rt).batchDepth > 0
}

// Untracked runs fn without registering any dependencies on the active
// derivation.
func Untracked[T any](rt *Runtime, fn func() T) T {
	rt = resolve(rt)
	prev := rt.collector
	rt.collector = nil
	defer func() { rt.collector = prev }()
	return fn()
}

func (rt *Runtime) endBatch() {
	rt.batchDepth--
	if rt.batchDepth == 0 {
		rt.flush()
	}
}

func (rt *Runtime) schedule(r runner) {
	rt.pending = append(rt.pending, r)
	if rt.batchDepth == 0 {
		rt.flush()
	}
}

func (rt *Runtime) flush() {
	if rt.flushing {
		return
	}
	rt.flushing = true
	i := 0
	defer func() {
		if i < len(rt.pending) {
			for _, r := range rt.pending[i:] {
				r.unschedule()
			}
		}
		rt.pending = rt.pending[:0]
		rt.flushing = false
	}()

	runs := make(map[runner]int)
	for ; i < len(rt.pending); i++ {
		r := rt.pending[i]
		runs[r]++
		if runs[r] > MaxReactionIterations {
			panic(ErrReactionCycle)
		}
		r.unschedule()
		r.run()
	}
}

func (rt *Runtime) reportObserved(o observable) {
	if rt.collector != nil {
		rt.collector.add(o)
	}
}

type collector struct {
	deps []observable
	seen map[observable]struct{}
}

func (c *collector) add(o observable) {
	if _, ok := c.seen[o]; ok {
		return
	}
	c.seen[o] = struct{}{}
	c.deps = append(c.deps, o)
}

// track runs fn while collecting the observables it reads, then relinks o so
// it observes exactly that set. On panic the previous links are kept.
func (rt *Runtime) track(o observer, current []observable, fn func()) []observable {
	c := &collector{seen: make(map[observable]struct{})}
	prev := rt.collector
	rt.collector = c
	defer func() { rt.collector = prev }()

	fn()

	for _, dep := range current {
		if _, ok := c.seen[dep]; !ok {
			dep.removeObserver(o)
		}
	}
	for _, dep := range c.deps {
		dep.addObserver(o)
	}
	return c.deps
}

type observers struct {
	list []observer
}

func (s *observers) add(o observer) {
	if slices.Contains(s.list, o) {
		return
	}
	s.list = append(s.list, o)
}

func (s *observers) remove(o observer) {
	if i := slices.Index(s.list, o); i >= 0 {
		s.list = slices.Delete(s.list, i, i+1)
	}
}

func (s *observers) notify() {
	for _, o := range slices.Clone(s.list) {
		o.markStale()
	}
}

func (s *observers) len() int {
	return len(s.list)
}
