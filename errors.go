package undo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyDisposed is returned by Undo and Redo once Dispose has run.
	ErrAlreadyDisposed = errors.New("undo: already disposed")
	ErrNilReader       = errors.New("undo: reader is required")
	ErrNilWriter       = errors.New("undo: writer is required")
	ErrNilSubscriber   = errors.New("undo: subscriber is required")
	// ErrRuleNotBool reports a merge rule that produced a non-boolean result.
	ErrRuleNotBool = errors.New("undo: merge rule must evaluate to bool")
)

// RuleError captures merge rule metadata alongside the originating error.
type RuleError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *RuleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("undo: %s rule %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
}

func (e *RuleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "undo:") {
		return err
	}
	return fmt.Errorf("undo: %s evaluator: %w", engine, err)
}

func wrapRuleError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		if ruleErr.Engine == "" {
			ruleErr.Engine = engine
		}
		if ruleErr.Expr == "" {
			ruleErr.Expr = expr
		}
		return ruleErr
	}

	return &RuleError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}
