package activity

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:       " history.undone ",
		ActorID:    " actor ",
		UserID:     " user ",
		TenantID:   " tenant ",
		ObjectType: " history ",
		ObjectID:   " 42 ",
		Channel:    " editor ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != "history.undone" || got.ObjectType != "history" || got.ObjectID != "42" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.UserID != "user" || got.TenantID != "tenant" || got.Channel != "editor" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyShortCircuitsMissingRequired(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	if err := hooks.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	boom1 := errors.New("boom1")
	boom2 := errors.New("boom2")
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, event Event) error {
			if ctx != nil {
				ctxSeen = true
			}
			return nil
		}),
		capture,
		HookFunc(func(_ context.Context, _ Event) error { return boom1 }),
		nil,
		HookFunc(func(_ context.Context, _ Event) error { return boom2 }),
	}

	err := hooks.Notify(nil, Event{Verb: VerbRecorded, ObjectType: ObjectTypeHistory, ObjectID: "1"})
	if !errors.Is(err, boom1) || !errors.Is(err, boom2) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event to be captured once, got %d", len(capture.Events))
	}
}

func TestHooksCloneDropsNil(t *testing.T) {
	if got := (Hooks{nil, nil}).Clone(); got != nil {
		t.Fatalf("expected nil clone for all-nil hooks, got %v", got)
	}
	hook := HookFunc(func(context.Context, Event) error { return nil })
	if got := (Hooks{nil, hook}).Clone(); len(got) != 1 {
		t.Fatalf("expected one hook, got %d", len(got))
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Emit(context.Background(), Event{Verb: VerbRecorded, ObjectType: ObjectTypeHistory, ObjectID: "1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	enabled := NewEmitter(Hooks{capture}, Config{Enabled: true})
	if !enabled.Enabled() {
		t.Fatalf("expected emitter to be enabled")
	}
	if err := enabled.Emit(context.Background(), Event{Verb: VerbRecorded, ObjectType: ObjectTypeHistory, ObjectID: "1"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(capture.Events))
	}
	if capture.Events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel applied, got %q", capture.Events[0].Channel)
	}

	var nilEmitter *Emitter
	if nilEmitter.Enabled() {
		t.Fatalf("expected nil emitter to be disabled")
	}
}

func TestEmitterPreservesExplicitChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "default"})
	occurred := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := emitter.Emit(context.Background(), Event{
		Verb:       VerbUndone,
		ObjectType: ObjectTypeHistory,
		ObjectID:   "1",
		Channel:    "custom",
		OccurredAt: occurred,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if capture.Events[0].Channel != "custom" {
		t.Fatalf("expected explicit channel preserved, got %q", capture.Events[0].Channel)
	}
	if !capture.Events[0].OccurredAt.Equal(occurred) {
		t.Fatalf("expected occurred_at preserved, got %v", capture.Events[0].OccurredAt)
	}
}

func TestBuildHistoryEvents(t *testing.T) {
	input := HistoryEventInput{
		Identity:  Identity{ActorID: " actor "},
		TrackerID: " tracker-1 ",
		Cursor:    2,
		Length:    3,
		Value:     456,
		HasValue:  true,
		Metadata:  map[string]any{"label": "counter"},
	}

	builders := []struct {
		verb  string
		build func(HistoryEventInput) Event
	}{
		{VerbRecorded, BuildHistoryRecordedEvent},
		{VerbMerged, BuildHistoryMergedEvent},
		{VerbUndone, BuildHistoryUndoneEvent},
		{VerbRedone, BuildHistoryRedoneEvent},
		{VerbDisposed, BuildHistoryDisposedEvent},
	}

	for _, b := range builders {
		t.Run(b.verb, func(t *testing.T) {
			event := b.build(input)
			if event.Verb != b.verb {
				t.Fatalf("expected verb %q, got %q", b.verb, event.Verb)
			}
			if event.ObjectType != ObjectTypeHistory || event.ObjectID != "tracker-1" {
				t.Fatalf("unexpected object: %s/%s", event.ObjectType, event.ObjectID)
			}
			if event.ActorID != "actor" {
				t.Fatalf("expected actor trimmed, got %q", event.ActorID)
			}
			if event.Metadata["cursor"] != 2 || event.Metadata["length"] != 3 || event.Metadata["value"] != 456 {
				t.Fatalf("unexpected metadata: %+v", event.Metadata)
			}
			if event.Metadata["label"] != "counter" {
				t.Fatalf("expected caller metadata kept: %+v", event.Metadata)
			}
		})
	}

	if input.Metadata["cursor"] != nil {
		t.Fatalf("expected input metadata untouched: %+v", input.Metadata)
	}
}

func TestBuildHistoryEventWithoutValueOrID(t *testing.T) {
	event := BuildHistoryDisposedEvent(HistoryEventInput{Cursor: 0, Length: 1})
	if _, ok := event.Metadata["value"]; ok {
		t.Fatalf("expected no value key when HasValue is false")
	}
	if event.ObjectID != ObjectTypeHistory {
		t.Fatalf("expected fallback object id, got %q", event.ObjectID)
	}
}

func TestCaptureHookVerbsAndReset(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	_ = hooks.Notify(context.Background(), BuildHistoryRecordedEvent(HistoryEventInput{TrackerID: "t"}))
	_ = hooks.Notify(context.Background(), BuildHistoryUndoneEvent(HistoryEventInput{TrackerID: "t"}))

	if got := capture.Verbs(); !slices.Equal(got, []string{VerbRecorded, VerbUndone}) {
		t.Fatalf("unexpected verbs %v", got)
	}
	capture.Reset()
	if len(capture.Verbs()) != 0 {
		t.Fatalf("expected reset to clear events")
	}
}
