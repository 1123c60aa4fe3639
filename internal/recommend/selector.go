// Package recommend implements the recommendation candidate selection: a
// two-stage, strict-priority pick over the catalog. Stage one matches the
// user's interest tags against content tags; stage two tops up with the
// most recently created content. Both stages exclude what the user has
// recently viewed or completed. There is no scoring or ranking beyond
// insertion order.
package recommend

import "context"

// Source labels reported to clients so tests (and the dashboard) can tell
// which stage produced the list.
const (
	SourceInterests = "user_interests"
	SourceFallback  = "fallback_recent"
	SourceComposite = SourceInterests + "+" + SourceFallback
)

// historyWindow is how many recent view/complete log entries form the
// exclusion set. Only the distinct content ids inside this window are
// excluded; older history is fair game again.
const historyWindow = 20

// DefaultLimit is used when the caller passes a non-positive limit.
const DefaultLimit = 5

// seenTypes are the interaction types that count as "already seen".
var seenTypes = []string{"view", "complete"}

// InterestSource yields a user's interest tags. A missing user must yield
// an empty slice, not an error, so selection degrades to the fallback
// stage instead of failing.
type InterestSource interface {
	InterestsByUser(ctx context.Context, userID uint64) ([]string, error)
}

// HistorySource yields the distinct content ids referenced by a user's
// most recent interaction log entries of the given types, newest first.
type HistorySource interface {
	RecentContentIDs(ctx context.Context, userID uint64, types []string, limit int) ([]uint64, error)
}

// CandidateSource yields recommendation candidates from the catalog. Both
// methods must return deterministic orders for a fixed dataset: tag
// matches by id ascending, recent content by creation time descending.
type CandidateSource interface {
	IDsByTagsExcluding(ctx context.Context, tags []string, exclude []uint64, limit int) ([]uint64, error)
	RecentIDsExcluding(ctx context.Context, exclude []uint64, limit int) ([]uint64, error)
}

// Result is the outcome of one selection: the ordered, deduplicated
// content ids (interest picks before fallback picks, capped at the
// requested limit) and the label of the stage(s) that contributed.
type Result struct {
	IDs    []uint64
	Source string
}

// Selector wires the three data sources together. Construct one at
// startup and share it; it holds no per-request state.
type Selector struct {
	interests  InterestSource
	history    HistorySource
	candidates CandidateSource
}

// NewSelector builds a Selector from its data sources.
func NewSelector(interests InterestSource, history HistorySource, candidates CandidateSource) *Selector {
	return &Selector{interests: interests, history: history, candidates: candidates}
}

// Select produces up to limit distinct content ids to suggest to a user.
//
// The selection never fails on account of the user: an unknown user id or
// an empty catalog simply produce fewer (or zero) ids. Errors are only
// returned for underlying storage failures.
func (s *Selector) Select(ctx context.Context, userID uint64, limit int) (Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	// Exclusion set: distinct content ids from the last historyWindow
	// view/complete entries.
	seen, err := s.history.RecentContentIDs(ctx, userID, seenTypes, historyWindow)
	if err != nil {
		return Result{}, err
	}

	// Stage 1: interest-tag intersection.
	interests, err := s.interests.InterestsByUser(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	var picked []uint64
	if len(interests) > 0 {
		picked, err = s.candidates.IDsByTagsExcluding(ctx, interests, seen, limit)
		if err != nil {
			return Result{}, err
		}
	}

	// Stage 2: recency fallback for whatever stage 1 left unfilled. The
	// exclusion now also covers stage-1 picks so the final list stays
	// distinct.
	var fallback []uint64
	if remaining := limit - len(picked); remaining > 0 {
		exclude := make([]uint64, 0, len(seen)+len(picked))
		exclude = append(exclude, seen...)
		exclude = append(exclude, picked...)
		fallback, err = s.candidates.RecentIDsExcluding(ctx, exclude, remaining)
		if err != nil {
			return Result{}, err
		}
	}

	ids := append(picked, fallback...)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return Result{IDs: ids, Source: sourceLabel(len(picked), len(fallback))}, nil
}

// sourceLabel reports which stage(s) contributed. An entirely empty result
// is labeled as fallback: the fallback stage ran and found nothing.
func sourceLabel(interestPicks, fallbackPicks int) string {
	switch {
	case interestPicks > 0 && fallbackPicks > 0:
		return SourceComposite
	case interestPicks > 0:
		return SourceInterests
	default:
		return SourceFallback
	}
}
