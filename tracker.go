package undo

import (
	"fmt"
	"slices"
	"time"

	"github.com/goliatone/go-undo/internal/clone"
	"github.com/goliatone/go-undo/pkg/activity"
	"github.com/goliatone/go-undo/reactive"
)

// Tracker records every change of an externally owned value and steps back
// and forth through the recorded history.
//
// A Tracker is bound to a reactive.Runtime and shares its threading rules:
// use it from a single goroutine.
type Tracker[T any] struct {
	cfg        trackerConfig
	read       func() T
	write      func(T)
	subscriber Subscriber[T]
	cancel     func()

	entries  []T
	cursor   *reactive.Box[int]
	length   *reactive.Box[int]
	revision *reactive.Box[int]
	hasUndo *reactive.Computed[bool]
	hasRedo *reactive.Computed[bool]

	rule         CompiledRule
	ruleEngine   string
	lastRecorded time.Time

	emitter  *activity.Emitter
	disposed bool
}

// New starts tracking the value exposed by read. Changes are observed through
// a reaction on the configured runtime, so read must obtain the value through
// reactive values of that runtime (Box.Get, Computed.Get).
func New[T any](read func() T, write func(T), opts ...Option) (*Tracker[T], error) {
	cfg := applyOptions(opts)
	return newTracker(ReactiveSubscriber[T](cfg.runtime), read, write, cfg)
}

// NewWithSubscriber starts tracking using a caller supplied change
// notification primitive.
func NewWithSubscriber[T any](subscriber Subscriber[T], read func() T, write func(T), opts ...Option) (*Tracker[T], error) {
	if subscriber == nil {
		return nil, ErrNilSubscriber
	}
	return newTracker(subscriber, read, write, applyOptions(opts))
}

func newTracker[T any](subscriber Subscriber[T], read func() T, write func(T), cfg trackerConfig) (*Tracker[T], error) {
	if read == nil {
		return nil, ErrNilReader
	}
	if write == nil {
		return nil, ErrNilWriter
	}

	rule, engine, err := compileMergeRule(cfg)
	if err != nil {
		return nil, err
	}

	rt := cfg.runtime
	t := &Tracker[T]{
		cfg:        cfg,
		read:       read,
		write:      write,
		subscriber: subscriber,
		rule:       rule,
		ruleEngine: engine,
		emitter: activity.NewEmitter(cfg.activityHooks, activity.Config{
			Enabled: true,
			Channel: cfg.activityChannel,
		}),
	}
	t.entries = []T{t.copyValue(reactive.Untracked(rt, read))}
	t.cursor = reactive.NewBox(rt, 0)
	t.length = reactive.NewBox(rt, 1)
	t.revision = reactive.NewBox(rt, 0)
	t.hasUndo = reactive.NewComputed(rt, func() bool {
		return t.cursor.Get() > 0
	})
	t.hasRedo = reactive.NewComputed(rt, func() bool {
		return t.cursor.Get() < t.length.Get()-1
	})
	t.lastRecorded = cfg.clock()

	t.subscribe()
	return t, nil
}

// Undo moves one entry back and writes it to the tracked value. It does
// nothing when no earlier entry exists.
func (t *Tracker[T]) Undo() error {
	return t.step(OpUndo, -1)
}

// Redo moves one entry forward and writes it to the tracked value. It does
// nothing when the cursor already sits on the newest entry.
func (t *Tracker[T]) Redo() error {
	return t.step(OpRedo, 1)
}

// HasUndo reports whether Undo would change the value. Reading it inside a
// reaction or computed subscribes to availability changes.
func (t *Tracker[T]) HasUndo() bool {
	return t.hasUndo.Get()
}

// HasRedo reports whether Redo would change the value. Reading it inside a
// reaction or computed subscribes to availability changes.
func (t *Tracker[T]) HasRedo() bool {
	return t.hasRedo.Get()
}

// Dispose stops tracking. Further Undo and Redo calls return
// ErrAlreadyDisposed. Calling Dispose again has no effect.
func (t *Tracker[T]) Dispose() {
	if t.disposed {
		return
	}
	start := time.Now()
	t.unsubscribe()
	t.disposed = true
	t.logOperation(OpDispose, start, nil)
	var zero T
	t.emit(OpDispose, zero, false)
}

// Disposed reports whether Dispose has run.
func (t *Tracker[T]) Disposed() bool {
	return t.disposed
}

// ID returns the tracker identifier used in logs and events.
func (t *Tracker[T]) ID() string {
	return t.cfg.id
}

// Cursor returns the index of the entry currently applied. It is reactive.
func (t *Tracker[T]) Cursor() int {
	return t.cursor.Get()
}

// Len returns the number of history entries. It is reactive.
func (t *Tracker[T]) Len() int {
	return t.length.Get()
}

// Current returns the entry at the cursor. It is reactive.
func (t *Tracker[T]) Current() T {
	t.revision.Get()
	return t.copyValue(t.entries[t.cursor.Get()])
}

// Entries returns a copy of the history, oldest first. It is reactive.
func (t *Tracker[T]) Entries() []T {
	t.revision.Get()
	out := make([]T, len(t.entries))
	for i, entry := range t.entries {
		out[i] = t.copyValue(entry)
	}
	return out
}

func (t *Tracker[T]) subscribe() {
	t.cancel = t.subscriber.Subscribe(t.read, t.record)
}

func (t *Tracker[T]) unsubscribe() {
	if t.cancel == nil {
		return
	}
	cancel := t.cancel
	t.cancel = nil
	cancel()
}

// record is the change callback: it stores value after the cursor, dropping
// any entries that were reachable by Redo.
func (t *Tracker[T]) record(value T) {
	if t.disposed {
		panic(ErrAlreadyDisposed)
	}
	start := time.Now()
	value = t.copyValue(value)
	op := OpRecord

	t.cfg.runtime.Batch(func() {
		cursor := t.cursor.Peek()
		if t.shouldMerge(cursor, value) {
			op = OpMerge
		} else {
			cursor++
		}
		t.truncate(cursor)
		t.entries = append(t.entries, value)
		cursor = t.enforceLimit(cursor)
		t.cursor.Set(cursor)
		t.length.Set(len(t.entries))
		t.revision.Update(func(n int) int { return n + 1 })
	})
	t.lastRecorded = t.cfg.clock()

	t.logOperation(op, start, nil)
	t.emit(op, value, true)
}

func (t *Tracker[T]) step(op string, delta int) (err error) {
	if t.disposed {
		return ErrAlreadyDisposed
	}
	current := t.cursor.Peek()
	target := current + delta
	if target < 0 || target >= len(t.entries) {
		return nil
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.logOperation(op, start, fmt.Errorf("undo: %s: writer panicked: %v", op, r))
			panic(r)
		}
	}()

	t.cfg.runtime.Batch(func() {
		t.apply(current, target)
	})

	t.logOperation(op, start, nil)
	t.emit(op, t.entries[target], true)
	return nil
}

// apply moves the cursor to target and writes that entry with the change
// subscription suspended, so the write is not recorded as a new edit. If the
// writer panics the cursor is restored before the panic continues.
func (t *Tracker[T]) apply(previous, target int) {
	t.cursor.Set(target)
	t.unsubscribe()

	written := false
	defer func() {
		if !written {
			t.cursor.Set(previous)
		}
		t.subscribe()
	}()

	t.write(t.copyValue(t.entries[target]))
	written = true
}

func (t *Tracker[T]) truncate(n int) {
	clear(t.entries[n:])
	t.entries = t.entries[:n]
}

func (t *Tracker[T]) enforceLimit(cursor int) int {
	limit := t.cfg.maxEntries
	if limit <= 0 || len(t.entries) <= limit {
		return cursor
	}
	excess := len(t.entries) - limit
	t.entries = slices.Clone(t.entries[excess:])
	return cursor - excess
}

func (t *Tracker[T]) copyValue(value T) T {
	if !t.cfg.deepCopy {
		return value
	}
	return clone.Value(value)
}

func (t *Tracker[T]) logOperation(op string, start time.Time, err error) {
	t.cfg.logger.LogOperation(LogEvent{
		Op:        op,
		TrackerID: t.cfg.id,
		Cursor:    t.cursor.Peek(),
		Length:    len(t.entries),
		Duration:  time.Since(start),
		Err:       err,
	})
}
