package undo

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// resolveEvaluator returns the configured evaluator or builds the default expr
// evaluator wired with the configured cache and functions.
func resolveEvaluator(cfg trackerConfig) Evaluator {
	if cfg.evaluator != nil {
		return cfg.evaluator
	}
	var exprOpts []ExprEvaluatorOption
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	return NewExprEvaluator(exprOpts...)
}

func compileMergeRule(cfg trackerConfig) (CompiledRule, string, error) {
	if cfg.mergeRule == "" {
		return nil, "", nil
	}
	evaluator := resolveEvaluator(cfg)
	engine := evaluatorEngineName(evaluator)
	rule, err := evaluator.Compile(cfg.mergeRule)
	if err != nil {
		return nil, engine, wrapRuleError(engine, cfg.mergeRule, err)
	}
	return rule, engine, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if name := jsEngineName(e); name != "" {
			return name
		}
		return "custom"
	}
}

// shouldMerge evaluates the merge rule for a change observed while the cursor
// sits at cursor. Only the newest entry can absorb a change: after an undo the
// entry at the cursor is kept and the change starts a new branch. Rule
// failures are logged and treated as "append".
func (t *Tracker[T]) shouldMerge(cursor int, next T) bool {
	if t.rule == nil || cursor == 0 || cursor < len(t.entries)-1 {
		return false
	}
	start := time.Now()
	now := t.cfg.clock()
	ctx := RuleContext{
		Snapshot: map[string]any{
			"previous":   ruleValue(t.entries[cursor]),
			"next":       ruleValue(next),
			"cursor":     cursor,
			"length":     len(t.entries),
			"elapsed_ms": now.Sub(t.lastRecorded).Milliseconds(),
		},
		Now: &now,
	}
	out, err := t.rule.Evaluate(ctx.withDefaultMaps())
	if err != nil {
		t.logOperation(OpRule, start, wrapRuleError(t.ruleEngine, t.cfg.mergeRule, err))
		return false
	}
	merge, ok := out.(bool)
	if !ok {
		err := fmt.Errorf("%w: got %T", ErrRuleNotBool, out)
		t.logOperation(OpRule, start, wrapRuleError(t.ruleEngine, t.cfg.mergeRule, err))
		return false
	}
	return merge
}

// ruleValue exposes scalars as they are and everything else in its JSON form,
// so struct fields are reachable by their json names from every engine.
func ruleValue(value any) any {
	if value == nil {
		return nil
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return value
	}
	return out
}

// IsRuleError reports whether err came from compiling or evaluating a merge
// rule.
func IsRuleError(err error) bool {
	var ruleErr *RuleError
	return errors.As(err, &ruleErr)
}
