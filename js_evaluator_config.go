package undo

// JSEvaluatorOption configures the goja merge-rule engine. The options are
// accepted in every build so callers compile without the js_eval tag; they
// only take effect when it is set.
type JSEvaluatorOption func(*jsRuleSettings)

type jsRuleSettings struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSWithProgramCache stores compiled merge-rule scripts in cache, keyed by
// "js:" plus the expression.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(s *jsRuleSettings) { s.cache = cache }
}

// JSWithFunctionRegistry makes the registry's functions callable from merge
// rules, both as globals and through call(name, ...args).
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(s *jsRuleSettings) { s.registry = registry.Clone() }
}

func applyJSEvaluatorOptions(opts []JSEvaluatorOption) jsRuleSettings {
	var s jsRuleSettings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
