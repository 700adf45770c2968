// Package undo records the history of a reactive value and moves back and
// forth through it.
//
// A Tracker is given a reader and a writer for the value. Every distinct value
// the reader produces is appended to the history. Undo and Redo write an older
// or newer entry back through the writer without recording that write as a
// new change:
//
//	rt := reactive.NewRuntime()
//	text := reactive.NewBox(rt, "hello")
//
//	tracker, err := undo.New(text.Get, func(v string) { text.Set(v) },
//		undo.WithRuntime(rt),
//	)
//	if err != nil {
//		return err
//	}
//	defer tracker.Dispose()
//
//	text.Set("hello world")
//	_ = tracker.Undo() // text is "hello" again
//	_ = tracker.Redo() // and back to "hello world"
//
// Recording a change while the cursor is behind the newest entry drops the
// entries that Redo could have reached.
//
// HasUndo and HasRedo are reactive: reading them from a reactive.Reaction or
// reactive.Computed on the same runtime subscribes to availability changes.
//
// Merge rules:
//
// WithMergeRule folds bursts of changes into a single entry. The expression
// runs on expr-lang by default; NewCELEvaluator and NewJSEvaluator (build tag
// js_eval) select other engines:
//
//	undo.New(read, write, undo.WithMergeRule("elapsed_ms < 500"))
//
// Trackers are not safe for concurrent use.
package undo
