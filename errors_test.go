package undo

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapRuleErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapRuleError("expr", "elapsed_ms < 500", base)

	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected RuleError, got %T", err)
	}
	if ruleErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", ruleErr.Engine)
	}
	if ruleErr.Expr != "elapsed_ms < 500" {
		t.Fatalf("expected expression metadata, got %q", ruleErr.Expr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	if !strings.Contains(err.Error(), `expr="elapsed_ms < 500"`) {
		t.Fatalf("expected expression in message, got %q", err.Error())
	}
}

func TestWrapRuleErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &RuleError{Engine: "expr", Err: base}

	err := wrapRuleError("cel", "rule", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
}

func TestWrapRuleErrorNil(t *testing.T) {
	if wrapRuleError("expr", "x", nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
	if wrapEvaluatorError("expr", nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}

func TestWrapEvaluatorErrorPrefixes(t *testing.T) {
	err := wrapEvaluatorError("cel", errors.New("env failed"))
	if err.Error() != "undo: cel evaluator: env failed" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if again := wrapEvaluatorError("expr", err); again != err {
		t.Fatalf("expected already prefixed error to pass through")
	}
	ruleErr := &RuleError{Engine: "js", Err: errors.New("x")}
	if got := wrapEvaluatorError("expr", ruleErr); got != error(ruleErr) {
		t.Fatalf("expected RuleError to pass through")
	}
}

func TestRuleErrorNilReceiver(t *testing.T) {
	var ruleErr *RuleError
	if ruleErr.Error() != "<nil>" || ruleErr.Unwrap() != nil {
		t.Fatalf("expected nil-safe RuleError methods")
	}
}

func TestDescribeExpressionEmpty(t *testing.T) {
	if describeExpression("") != "expr=<empty>" {
		t.Fatalf("unexpected description %q", describeExpression(""))
	}
}
