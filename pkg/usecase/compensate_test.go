package usecase

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestRollbackUnwindReversesOrder(t *testing.T) {
	guard := newRollback()

	var order []int
	guard.add(func(ctx context.Context) { order = append(order, 1) })
	guard.add(func(ctx context.Context) { order = append(order, 2) })
	guard.add(func(ctx context.Context) { order = append(order, 3) })

	guard.unwind(context.Background())
	gt.Array(t, order).Equal([]int{3, 2, 1})

	// A second unwind is a no-op.
	guard.unwind(context.Background())
	gt.Array(t, order).Equal([]int{3, 2, 1})
}

func TestRollbackReleaseDisarms(t *testing.T) {
	guard := newRollback()

	var fired bool
	guard.add(func(ctx context.Context) { fired = true })
	guard.release()
	guard.unwind(context.Background())

	gt.Bool(t, fired).False()
}
