package undo

import "github.com/goliatone/go-undo/reactive"

// Subscriber is the change notification primitive a Tracker observes its value
// through. Subscribe must call onChange once per observed distinct value
// produced by read, stop calling it for good once cancel runs, and accept any
// number of re-subscriptions.
type Subscriber[T any] interface {
	Subscribe(read func() T, onChange func(T)) (cancel func())
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc[T any] func(read func() T, onChange func(T)) (cancel func())

// Subscribe implements Subscriber.
func (fn SubscriberFunc[T]) Subscribe(read func() T, onChange func(T)) func() {
	return fn(read, onChange)
}

// ReactiveSubscriber observes values through reactive.Reaction on rt.
func ReactiveSubscriber[T any](rt *reactive.Runtime, opts ...reactive.ReactionOption[T]) Subscriber[T] {
	return SubscriberFunc[T](func(read func() T, onChange func(T)) func() {
		return reactive.Reaction(rt, read, onChange, opts...)
	})
}
