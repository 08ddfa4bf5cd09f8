package desk

import (
	"context"
	"errors"
	"fmt"
)

// step is one mutation of a multi-step operation. undo reverses do and may
// be nil when there is nothing to reverse.
type step struct {
	name string
	do   func(ctx context.Context) error
	undo func(ctx context.Context) error
}

// run executes steps in order. When a step fails, the steps already done are
// undone in reverse order and every undo failure is joined to the returned
// error. Undo runs even if ctx was cancelled.
func (d *Desk) run(ctx context.Context, steps []step) error {
	for i, st := range steps {
		err := st.do(ctx)
		if err == nil {
			d.log().Debug("step done", "step", st.name)
			continue
		}

		err = fmt.Errorf("%s: %w", st.name, err)
		undoCtx := context.WithoutCancel(ctx)
		for j := i - 1; j >= 0; j-- {
			done := steps[j]
			if done.undo == nil {
				continue
			}
			if uerr := done.undo(undoCtx); uerr != nil {
				d.log().Error("undo failed", "step", done.name, "error", uerr)
				err = errors.Join(err, fmt.Errorf("undoing %s: %w", done.name, uerr))
				continue
			}
			d.log().Warn("step undone", "step", done.name, "cause", st.name)
		}
		return err
	}
	return nil
}
