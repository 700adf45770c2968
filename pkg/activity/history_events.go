package activity

import (
	"strings"
	"time"
)

// Verbs emitted by a history tracker.
const (
	VerbRecorded = "history.recorded"
	VerbMerged   = "history.merged"
	VerbUndone   = "history.undone"
	VerbRedone   = "history.redone"
	VerbDisposed = "history.disposed"
)

// ObjectTypeHistory identifies tracker events.
const ObjectTypeHistory = "history"

// HistoryEventInput carries the tracker state attached to every event.
type HistoryEventInput struct {
	Identity   Identity
	TrackerID  string
	Channel    string
	Cursor     int
	Length     int
	Value      any
	HasValue   bool
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildHistoryRecordedEvent describes an external change appended to history.
func BuildHistoryRecordedEvent(input HistoryEventInput) Event {
	return buildHistoryEvent(VerbRecorded, input)
}

// BuildHistoryMergedEvent describes an external change folded into the
// current entry by a merge rule.
func BuildHistoryMergedEvent(input HistoryEventInput) Event {
	return buildHistoryEvent(VerbMerged, input)
}

// BuildHistoryUndoneEvent describes a step backwards.
func BuildHistoryUndoneEvent(input HistoryEventInput) Event {
	return buildHistoryEvent(VerbUndone, input)
}

// BuildHistoryRedoneEvent describes a step forwards.
func BuildHistoryRedoneEvent(input HistoryEventInput) Event {
	return buildHistoryEvent(VerbRedone, input)
}

// BuildHistoryDisposedEvent describes a tracker shutting down.
func BuildHistoryDisposedEvent(input HistoryEventInput) Event {
	return buildHistoryEvent(VerbDisposed, input)
}

func buildHistoryEvent(verb string, input HistoryEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["cursor"] = input.Cursor
	metadata["length"] = input.Length
	if input.HasValue {
		metadata["value"] = input.Value
	}

	objectID := strings.TrimSpace(input.TrackerID)
	if objectID == "" {
		objectID = ObjectTypeHistory
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.Identity.ActorID),
		UserID:     strings.TrimSpace(input.Identity.UserID),
		TenantID:   strings.TrimSpace(input.Identity.TenantID),
		ObjectType: ObjectTypeHistory,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
