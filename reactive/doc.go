// Package reactive is a small synchronous reactivity runtime: observable boxes,
// lazily derived computed values, and reactions that fire when the value they
// read changes.
//
// Dependencies are discovered by running a derivation while the runtime is
// tracking. Every Box.Get or Computed.Get performed during that run links the
// value to the derivation. A later Box.Set that changes the stored value marks
// linked computeds stale and schedules linked reactions.
//
//	rt := reactive.NewRuntime()
//	count := reactive.NewBox(rt, 1)
//	double := reactive.NewComputed(rt, func() int { return count.Get() * 2 })
//
//	stop := reactive.Reaction(rt, double.Get, func(v int) {
//		fmt.Println("double is now", v)
//	})
//	defer stop()
//
//	count.Set(2) // prints "double is now 4"
//
// Batching:
//
// Runtime.Batch defers scheduled reactions until the outermost batch returns,
// so several writes surface to reactions as one transition:
//
//	rt.Batch(func() {
//		count.Set(3)
//		count.Set(1)
//	}) // double went 4 -> 2 -> 4 inside the batch; the reaction does not fire
//
// A Runtime has no locks. Confine it, and every value created on it, to a
// single goroutine.
package reactive
