package undo

import (
	"context"
	"time"

	"github.com/goliatone/go-undo/pkg/activity"
	"github.com/goliatone/go-undo/reactive"
	"github.com/google/uuid"
)

// Option configures a Tracker.
type Option func(*trackerConfig)

type trackerConfig struct {
	runtime         *reactive.Runtime
	logger          Logger
	id              string
	maxEntries      int
	deepCopy        bool
	mergeRule       string
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	activityHooks   activity.Hooks
	activityChannel string
	identity        activity.Identity
	clock           func() time.Time
	ctx             context.Context
}

func applyOptions(opts []Option) trackerConfig {
	cfg := trackerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.runtime == nil {
		cfg.runtime = reactive.Default()
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	if cfg.ctx == nil {
		cfg.ctx = context.Background()
	}
	return cfg
}

// WithRuntime binds the tracker's cursor, availability flags and default
// subscriber to rt.
func WithRuntime(rt *reactive.Runtime) Option {
	return func(cfg *trackerConfig) {
		cfg.runtime = rt
	}
}

// WithTrackerID sets the identifier reported in logs and activity events.
// A random UUID is used when unset.
func WithTrackerID(id string) Option {
	return func(cfg *trackerConfig) {
		cfg.id = id
	}
}

// WithMaxEntries caps the history length. Once the cap is exceeded the oldest
// entries are dropped, so the earliest states stop being reachable by Undo.
// Zero or a negative value keeps every entry.
func WithMaxEntries(n int) Option {
	return func(cfg *trackerConfig) {
		cfg.maxEntries = n
	}
}

// WithDeepCopy stores deep copies of observed values and writes deep copies
// back on undo/redo, so history never aliases memory the caller mutates.
func WithDeepCopy() Option {
	return func(cfg *trackerConfig) {
		cfg.deepCopy = true
	}
}

// WithClock overrides the time source used for events and the elapsed_ms rule
// binding.
func WithClock(now func() time.Time) Option {
	return func(cfg *trackerConfig) {
		cfg.clock = now
	}
}

// WithContext sets the context handed to activity hooks.
func WithContext(ctx context.Context) Option {
	return func(cfg *trackerConfig) {
		cfg.ctx = ctx
	}
}
