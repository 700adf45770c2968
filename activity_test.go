package undo

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/goliatone/go-undo/pkg/activity"
)

func TestWithActivityHooksClonesAndFiltersNil(t *testing.T) {
	hook := activity.HookFunc(func(context.Context, activity.Event) error { return nil })

	_, _, tracker := newBoxTracker(t, 1, WithActivityHooks(activity.Hooks{nil, hook}))
	hooks := tracker.ActivityHooks()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}

	hooks[0] = nil
	again := tracker.ActivityHooks()
	if len(again) != 1 || again[0] == nil {
		t.Fatalf("expected cloned hooks unaffected by mutation, got %+v", again)
	}
}

func TestActivityHooksDefaultNil(t *testing.T) {
	_, _, tracker := newBoxTracker(t, 1)
	if hooks := tracker.ActivityHooks(); hooks != nil {
		t.Fatalf("expected nil hooks by default, got %+v", hooks)
	}
}

func TestTrackerEmitsHistoryEvents(t *testing.T) {
	capture := &activity.CaptureHook{}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, box, tracker := newBoxTracker(t, "a",
		WithTrackerID("doc-7"),
		WithActivityHooks(activity.Hooks{capture}),
		WithActivityChannel("editor"),
		WithActivityIdentity(activity.Identity{ActorID: "actor-1", TenantID: "tenant-1"}),
		WithClock(func() time.Time { return at }),
	)

	box.Set("b")
	_ = tracker.Undo()
	_ = tracker.Redo()
	tracker.Dispose()

	want := []string{
		activity.VerbRecorded,
		activity.VerbUndone,
		activity.VerbRedone,
		activity.VerbDisposed,
	}
	if got := capture.Verbs(); !slices.Equal(got, want) {
		t.Fatalf("expected verbs %v, got %v", want, got)
	}

	undone := capture.Events[1]
	if undone.ObjectType != activity.ObjectTypeHistory || undone.ObjectID != "doc-7" {
		t.Fatalf("unexpected object fields %+v", undone)
	}
	if undone.Channel != "editor" || undone.ActorID != "actor-1" || undone.TenantID != "tenant-1" {
		t.Fatalf("unexpected attribution %+v", undone)
	}
	if !undone.OccurredAt.Equal(at) {
		t.Fatalf("expected clock timestamp, got %v", undone.OccurredAt)
	}
	if undone.Metadata["cursor"] != 0 || undone.Metadata["length"] != 2 || undone.Metadata["value"] != "a" {
		t.Fatalf("unexpected metadata %+v", undone.Metadata)
	}
	if _, ok := capture.Events[3].Metadata["value"]; ok {
		t.Fatalf("expected dispose event without value")
	}
}

func TestTrackerEmitsMergedEvent(t *testing.T) {
	capture := &activity.CaptureHook{}
	_, box, _ := newBoxTracker(t, 0,
		WithActivityHooks(activity.Hooks{capture}),
		WithMergeRule("true"),
	)
	box.Set(1)
	box.Set(2)

	if got := capture.Verbs(); !slices.Equal(got, []string{activity.VerbRecorded, activity.VerbMerged}) {
		t.Fatalf("unexpected verbs %v", got)
	}
}

func TestActivityHookErrorIsLoggedNotReturned(t *testing.T) {
	boom := errors.New("sink down")
	capture := &activity.CaptureHook{Err: boom}

	var logged []LogEvent
	_, box, tracker := newBoxTracker(t, 0,
		WithActivityHooks(activity.Hooks{capture}),
		WithLogger(LoggerFunc(func(e LogEvent) { logged = append(logged, e) })),
	)
	box.Set(1)
	if err := tracker.Undo(); err != nil {
		t.Fatalf("expected hook failure not to fail Undo, got %v", err)
	}

	failures := 0
	for _, event := range logged {
		if event.Op == OpActivity {
			failures++
			if !errors.Is(event.Err, boom) {
				t.Fatalf("expected hook error logged, got %v", event.Err)
			}
		}
	}
	if failures != 2 {
		t.Fatalf("expected 2 activity failures logged, got %d", failures)
	}
}
