package undo

import "time"

// RuleContext carries inputs needed when evaluating a merge rule.
type RuleContext struct {
	Snapshot any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache used by the default evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *trackerConfig) {
		cfg.programCache = cache
	}
}

// WithEvaluator selects the engine used to run the merge rule.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *trackerConfig) {
		cfg.evaluator = e
	}
}

// WithMergeRule configures an expression deciding whether an observed change
// replaces the current entry instead of being appended after it. The rule is
// only consulted while the cursor sits on the newest entry and past the
// construction entry, so a change made after Undo always starts a new branch.
//
// Bindings: previous, next, cursor, length, elapsed_ms, now, args, metadata
// and any registered functions.
func WithMergeRule(expression string) Option {
	return func(cfg *trackerConfig) {
		cfg.mergeRule = expression
	}
}
