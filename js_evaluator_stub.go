//go:build !js_eval

package undo

// NewJSEvaluator returns nil unless the module is built with the js_eval tag.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

func jsEngineName(Evaluator) string {
	return ""
}
