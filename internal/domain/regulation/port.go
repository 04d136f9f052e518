package regulation

import (
	"context"
	"errors"
)

// ErrIndexUnavailable indicates the search index cannot be reached. Search
// endpoints surface it as 503; the advisor degrades to empty context.
var ErrIndexUnavailable = errors.New("regulation index unavailable")

// Index port over the keyword search store. Results come back ranked by the
// store (BM25); callers must not re-sort them.
type Index interface {
	AddRegulation(ctx context.Context, r Regulation) error
	AddCase(ctx context.Context, c EnforcementCase) error
	SearchRegulations(ctx context.Context, query, framework string, limit int) ([]Regulation, error)
	SearchCases(ctx context.Context, query string, limit int) ([]EnforcementCase, error)
	Ready(ctx context.Context) error
}
