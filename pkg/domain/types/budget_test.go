package types_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/osmload/pkg/domain/types"
)

func TestAttemptBudget(t *testing.T) {
	t.Run("allows exactly the cap", func(t *testing.T) {
		b := types.NewAttemptBudget(types.MaxResolveAttempts)
		for i := 0; i < types.MaxResolveAttempts; i++ {
			gt.NoError(t, b.Enter())
		}
		err := b.Enter()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrRetryExhausted))
		gt.Number(t, b.Used()).Equal(types.MaxResolveAttempts)
	})

	t.Run("cannot be raised above the cap", func(t *testing.T) {
		b := types.NewAttemptBudget(100)
		for i := 0; i < types.MaxResolveAttempts; i++ {
			gt.NoError(t, b.Enter())
		}
		gt.Error(t, b.Enter())
	})

	t.Run("can be lowered", func(t *testing.T) {
		b := types.NewAttemptBudget(2)
		gt.NoError(t, b.Enter())
		gt.NoError(t, b.Enter())
		gt.Error(t, b.Enter())
	})

	t.Run("zero falls back to default", func(t *testing.T) {
		b := types.NewAttemptBudget(0)
		for i := 0; i < types.MaxResolveAttempts; i++ {
			gt.NoError(t, b.Enter())
		}
		gt.Error(t, b.Enter())
	})
}
