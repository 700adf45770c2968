package undo

import (
	"time"

	"github.com/goliatone/go-undo/pkg/activity"
)

// WithActivityHooks attaches activity hooks notified on record, merge, undo,
// redo and dispose. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Clone()
	return func(cfg *trackerConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel sets the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *trackerConfig) {
		cfg.activityChannel = channel
	}
}

// WithActivityIdentity attributes emitted events to an actor, user and tenant.
func WithActivityIdentity(identity activity.Identity) Option {
	return func(cfg *trackerConfig) {
		cfg.identity = identity
	}
}

// ActivityHooks returns a copy of the configured hooks. The returned slice can
// be safely mutated by the caller.
func (t *Tracker[T]) ActivityHooks() activity.Hooks {
	if t == nil {
		return nil
	}
	return t.cfg.activityHooks.Clone()
}

func (t *Tracker[T]) emit(op string, value T, hasValue bool) {
	if !t.emitter.Enabled() {
		return
	}
	input := activity.HistoryEventInput{
		Identity:   t.cfg.identity,
		TrackerID:  t.cfg.id,
		Cursor:     t.cursor.Peek(),
		Length:     len(t.entries),
		Value:      value,
		HasValue:   hasValue,
		OccurredAt: t.cfg.clock(),
	}

	var event activity.Event
	switch op {
	case OpRecord:
		event = activity.BuildHistoryRecordedEvent(input)
	case OpMerge:
		event = activity.BuildHistoryMergedEvent(input)
	case OpUndo:
		event = activity.BuildHistoryUndoneEvent(input)
	case OpRedo:
		event = activity.BuildHistoryRedoneEvent(input)
	case OpDispose:
		event = activity.BuildHistoryDisposedEvent(input)
	default:
		return
	}

	if err := t.emitter.Emit(t.cfg.ctx, event); err != nil {
		t.logOperation(OpActivity, time.Now(), err)
	}
}
