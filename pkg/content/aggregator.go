package content

import (
	"context"
	"sync"
	"time"
)

// SliceState is one category's view inside a snapshot: the fetched document,
// the fetch error if any, and whether the first fetch has settled.
type SliceState struct {
	Doc     Document
	Err     error
	Settled bool
}

// Snapshot is a point-in-time combination of every category's current state.
// IsAnyLoading is true while any category's first fetch is outstanding; once
// every first fetch has settled it is false forever, manual refreshes included.
type Snapshot struct {
	Slices       map[Category]SliceState
	IsAnyLoading bool
}

// Aggregator fetches all categories concurrently and exposes the combined
// snapshot. Categories never wait on each other and one category's failure
// is isolated to its own slice.
type Aggregator struct {
	repo         Repository
	fetchTimeout time.Duration

	mu      sync.Mutex
	states  map[Category]*SliceState
	started bool
	pending int
	done    chan struct{}
}

func NewAggregator(repo Repository, fetchTimeout time.Duration) *Aggregator {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	states := make(map[Category]*SliceState, len(Categories()))
	for _, c := range Categories() {
		states[c] = &SliceState{}
	}
	return &Aggregator{
		repo:         repo,
		fetchTimeout: fetchTimeout,
		states:       states,
		done:         make(chan struct{}),
	}
}

// Fetch triggers the first fetch of every category. It is safe to call more
// than once; only the first call starts anything.
func (a *Aggregator) Fetch(ctx context.Context) {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.pending = len(a.states)
	a.mu.Unlock()

	for _, c := range Categories() {
		go a.fetchOne(ctx, c)
	}
}

func (a *Aggregator) fetchOne(ctx context.Context, c Category) {
	ctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()
	doc, err := a.repo.GetDocument(ctx, c)

	a.mu.Lock()
	st := a.states[c]
	st.Doc = doc
	st.Err = err
	st.Settled = true
	a.pending--
	if a.pending == 0 {
		close(a.done)
	}
	a.mu.Unlock()
}

// Refresh refetches a single category (the retry affordance for a failed
// slice). It never flips IsAnyLoading back on.
func (a *Aggregator) Refresh(ctx context.Context, c Category) error {
	if _, err := ParseCategory(string(c)); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()
	doc, err := a.repo.GetDocument(ctx, c)

	a.mu.Lock()
	st := a.states[c]
	st.Doc = doc
	st.Err = err
	a.mu.Unlock()
	return err
}

// Snapshot returns a copy of the current combined state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := Snapshot{Slices: make(map[Category]SliceState, len(a.states))}
	for c, st := range a.states {
		out.Slices[c] = *st
		if a.started && !st.Settled {
			out.IsAnyLoading = true
		}
	}
	if !a.started {
		out.IsAnyLoading = true // nothing fetched yet counts as loading
	}
	return out
}

// WaitSettled blocks until every category's first fetch has settled or the
// context ends. Used by callers that need a complete first snapshot.
func (a *Aggregator) WaitSettled(ctx context.Context) error {
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
