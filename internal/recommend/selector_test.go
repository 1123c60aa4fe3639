package recommend

import (
	"context"
	"testing"
	"time"
)

// fakeCatalog implements InterestSource, HistorySource and CandidateSource
// over in-memory data, mimicking the ordering contracts of the real
// repositories: tag matches by id ascending, recency by creation time
// descending.
type fakeCatalog struct {
	interests map[uint64][]string           // userID -> tags
	history   map[uint64][]uint64           // userID -> content ids, newest first, may repeat
	tags      map[uint64][]string           // contentID -> tags
	created   map[uint64]time.Time          // contentID -> creation time
	order     []uint64                      // all content ids ascending
}

func (f *fakeCatalog) InterestsByUser(_ context.Context, userID uint64) ([]string, error) {
	return f.interests[userID], nil
}

func (f *fakeCatalog) RecentContentIDs(_ context.Context, userID uint64, _ []string, limit int) ([]uint64, error) {
	seen := map[uint64]bool{}
	var out []uint64
	for i, id := range f.history[userID] {
		if i >= limit {
			break
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeCatalog) IDsByTagsExcluding(_ context.Context, tags []string, exclude []uint64, limit int) ([]uint64, error) {
	want := map[string]bool{}
	for _, t := range tags {
		want[t] = true
	}
	skip := toSet(exclude)
	var out []uint64
	for _, id := range f.order { // ascending id order
		if len(out) >= limit {
			break
		}
		if skip[id] {
			continue
		}
		for _, t := range f.tags[id] {
			if want[t] {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCatalog) RecentIDsExcluding(_ context.Context, exclude []uint64, limit int) ([]uint64, error) {
	skip := toSet(exclude)
	// Collect ids by creation time descending (ties broken by id desc).
	ids := append([]uint64{}, f.order...)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if f.created[b].After(f.created[a]) || (f.created[b].Equal(f.created[a]) && b > a) {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	var out []uint64
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		if !skip[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func toSet(ids []uint64) map[uint64]bool {
	m := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// newCatalog builds a catalog of n content items with ids 1..n where item
// i was created i minutes after a fixed epoch (higher id = newer).
func newCatalog(n int, tags map[uint64][]string) *fakeCatalog {
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &fakeCatalog{
		interests: map[uint64][]string{},
		history:   map[uint64][]uint64{},
		tags:      tags,
		created:   map[uint64]time.Time{},
	}
	if f.tags == nil {
		f.tags = map[uint64][]string{}
	}
	for i := uint64(1); i <= uint64(n); i++ {
		f.order = append(f.order, i)
		f.created[i] = epoch.Add(time.Duration(i) * time.Minute)
	}
	return f
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectInterestsOnly(t *testing.T) {
	// Items 1..10; 1,3,5,7,9 tagged "go". User likes "go" with no history.
	cat := newCatalog(10, map[uint64][]string{
		1: {"go"}, 3: {"go"}, 5: {"go"}, 7: {"go"}, 9: {"go"},
	})
	cat.interests[42] = []string{"go"}

	res, err := NewSelector(cat, cat, cat).Select(context.Background(), 42, 5)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if res.Source != SourceInterests {
		t.Fatalf("source = %q, want %q", res.Source, SourceInterests)
	}
	if want := []uint64{1, 3, 5, 7, 9}; !equalIDs(res.IDs, want) {
		t.Fatalf("ids = %v, want %v", res.IDs, want)
	}
}

func TestSelectFallbackWhenNoInterests(t *testing.T) {
	cat := newCatalog(10, nil)

	res, err := NewSelector(cat, cat, cat).Select(context.Background(), 42, 3)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", res.Source, SourceFallback)
	}
	// Fallback is newest-first: ids 10, 9, 8.
	if want := []uint64{10, 9, 8}; !equalIDs(res.IDs, want) {
		t.Fatalf("ids = %v, want %v", res.IDs, want)
	}
}

func TestSelectCompositeTopUp(t *testing.T) {
	// Only two items tagged to the user's interest; the rest of the limit
	// comes from recency, with interest picks first.
	cat := newCatalog(10, map[uint64][]string{2: {"sql"}, 4: {"sql"}})
	cat.interests[7] = []string{"sql"}

	res, err := NewSelector(cat, cat, cat).Select(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if res.Source != SourceComposite {
		t.Fatalf("source = %q, want %q", res.Source, SourceComposite)
	}
	// Interest picks 2,4 then newest unseen: 10, 9, 8.
	if want := []uint64{2, 4, 10, 9, 8}; !equalIDs(res.IDs, want) {
		t.Fatalf("ids = %v, want %v", res.IDs, want)
	}
}

func TestSelectExcludesRecentlySeen(t *testing.T) {
	cat := newCatalog(10, map[uint64][]string{
		1: {"go"}, 3: {"go"}, 5: {"go"},
	})
	cat.interests[1] = []string{"go"}
	// User has viewed 3 and completed 10 recently.
	cat.history[1] = []uint64{10, 3}

	res, err := NewSelector(cat, cat, cat).Select(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	banned := toSet(cat.history[1])
	for _, id := range res.IDs {
		if banned[id] {
			t.Fatalf("ids %v contain recently seen id %d", res.IDs, id)
		}
	}
	// Interest picks 1,5 then fallback 9,8,7 (10 seen, 1/5 already picked).
	if want := []uint64{1, 5, 9, 8, 7}; !equalIDs(res.IDs, want) {
		t.Fatalf("ids = %v, want %v", res.IDs, want)
	}
}

func TestSelectDistinctAndCapped(t *testing.T) {
	cat := newCatalog(30, map[uint64][]string{
		1: {"go"}, 2: {"go"}, 3: {"go"}, 4: {"go"}, 5: {"go"}, 6: {"go"}, 7: {"go"},
	})
	cat.interests[9] = []string{"go"}

	for _, limit := range []int{1, 3, 5, 7} {
		res, err := NewSelector(cat, cat, cat).Select(context.Background(), 9, limit)
		if err != nil {
			t.Fatalf("Select(limit=%d) returned error: %v", limit, err)
		}
		if len(res.IDs) > limit {
			t.Fatalf("limit=%d produced %d ids", limit, len(res.IDs))
		}
		seen := map[uint64]bool{}
		for _, id := range res.IDs {
			if seen[id] {
				t.Fatalf("limit=%d produced duplicate id %d in %v", limit, id, res.IDs)
			}
			seen[id] = true
		}
	}
}

func TestSelectDefaultLimit(t *testing.T) {
	cat := newCatalog(10, nil)
	for _, limit := range []int{0, -3} {
		res, err := NewSelector(cat, cat, cat).Select(context.Background(), 1, limit)
		if err != nil {
			t.Fatalf("Select returned error: %v", err)
		}
		if len(res.IDs) != DefaultLimit {
			t.Fatalf("limit=%d yielded %d ids, want default %d", limit, len(res.IDs), DefaultLimit)
		}
	}
}

func TestSelectUnknownUserDegradesToFallback(t *testing.T) {
	cat := newCatalog(4, nil)
	res, err := NewSelector(cat, cat, cat).Select(context.Background(), 999, 5)
	if err != nil {
		t.Fatalf("Select returned error for unknown user: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", res.Source, SourceFallback)
	}
	if len(res.IDs) != 4 {
		t.Fatalf("got %d ids, want the whole 4-item catalog", len(res.IDs))
	}
}

func TestSelectEmptyCatalog(t *testing.T) {
	cat := newCatalog(0, nil)
	res, err := NewSelector(cat, cat, cat).Select(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("Select returned error for empty catalog: %v", err)
	}
	if len(res.IDs) != 0 {
		t.Fatalf("expected zero ids, got %v", res.IDs)
	}
	if res.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", res.Source, SourceFallback)
	}
}
