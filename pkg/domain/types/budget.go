package types

import "github.com/m-mizutani/goerr/v2"

// ErrRetryExhausted is returned once an AttemptBudget has been used up.
var ErrRetryExhausted = goerr.New("either an incorrect input was entered too many times, or a serious error has occurred")

// AttemptBudget counts entries into the download resolution flow. It is owned by
// a single Fetch call and never shared or reset.
type AttemptBudget struct {
	max  int
	used int
}

// NewAttemptBudget returns a budget allowing max entries. Values outside
// 1..MaxResolveAttempts fall back to MaxResolveAttempts.
func NewAttemptBudget(max int) *AttemptBudget {
	if max <= 0 || max > MaxResolveAttempts {
		max = MaxResolveAttempts
	}
	return &AttemptBudget{max: max}
}

// Enter records one more entry. It fails without side effects once the cap
// would be exceeded, so callers must call it before the guarded action.
func (b *AttemptBudget) Enter() error {
	if b.used >= b.max {
		return goerr.Wrap(ErrRetryExhausted, "attempt budget exhausted", goerr.V("max", b.max))
	}
	b.used++
	return nil
}

// Used returns how many entries were recorded.
func (b *AttemptBudget) Used() int { return b.used }
