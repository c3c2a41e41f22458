// Package browse is the state container behind the competition listing UI:
// the current page of competitions, the featured subset, the selection, the
// active filters, and pagination. All mutations go through the action
// methods; each one is a single atomic transition and subscribers only ever
// observe complete states.
package browse

import (
	"sync"

	"go.uber.org/zap"

	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/metrics"
	"prize-portal-service/internal/persist"
)

const (
	storeName  = "browse"
	persistKey = "browse"
)

// Filters is the closed set of filterable dimensions. Nil fields are unset;
// SetFilters merges non-nil fields into the current set.
type Filters struct {
	Category *string                   `json:"category,omitempty"`
	Status   *domain.CompetitionStatus `json:"status,omitempty"`
	MinPrice *float64                  `json:"minPrice,omitempty"`
	MaxPrice *float64                  `json:"maxPrice,omitempty"`
	MinPrize *float64                  `json:"minPrize,omitempty"`
	MaxPrize *float64                  `json:"maxPrize,omitempty"`
	Featured *bool                     `json:"featured,omitempty"`
	Search   *string                   `json:"search,omitempty"`
}

func (f Filters) merge(patch Filters) Filters {
	if patch.Category != nil {
		f.Category = patch.Category
	}
	if patch.Status != nil {
		f.Status = patch.Status
	}
	if patch.MinPrice != nil {
		f.MinPrice = patch.MinPrice
	}
	if patch.MaxPrice != nil {
		f.MaxPrice = patch.MaxPrice
	}
	if patch.MinPrize != nil {
		f.MinPrize = patch.MinPrize
	}
	if patch.MaxPrize != nil {
		f.MaxPrize = patch.MaxPrize
	}
	if patch.Featured != nil {
		f.Featured = patch.Featured
	}
	if patch.Search != nil {
		f.Search = patch.Search
	}
	return f
}

// State is the complete store state. Subscribers receive copies; mutating a
// received State does not affect the store.
type State struct {
	Competitions []domain.Competition `json:"competitions"`
	Featured     []domain.Competition `json:"featured"`
	Selected     *domain.Competition  `json:"selected,omitempty"`
	Filters      Filters              `json:"filters"`
	SearchQuery  string               `json:"searchQuery"`
	Loading      bool                 `json:"loading"`
	Err          string               `json:"error,omitempty"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"totalPages"`
	TotalCount   int                  `json:"totalCount"`
}

func initialState() State {
	return State{Page: 1}
}

func (s State) snapshot() State {
	out := s
	out.Competitions = append([]domain.Competition(nil), s.Competitions...)
	out.Featured = append([]domain.Competition(nil), s.Featured...)
	if s.Selected != nil {
		selected := *s.Selected
		out.Selected = &selected
	}
	return out
}

// persistedSlice is the whitelisted subset that survives restarts. Item
// collections and loading/error state are always re-fetched fresh.
type persistedSlice struct {
	Filters     Filters `json:"filters"`
	SearchQuery string  `json:"searchQuery"`
	CurrentPage int     `json:"currentPage"`
}

// Subscriber receives a state snapshot after every mutation.
type Subscriber func(State)

// Options configures a Store.
type Options struct {
	Persist  persist.Store
	Recorder *metrics.Recorder
	Logger   *zap.Logger
}

// Store is the competition listing state container.
type Store struct {
	mu       sync.Mutex
	state    State
	subs     map[int]Subscriber
	nextSub  int
	persist  persist.Store
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// New constructs a Store, restoring the persisted filter slice when one
// exists.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		state:    initialState(),
		subs:     make(map[int]Subscriber),
		persist:  opts.Persist,
		recorder: opts.Recorder,
		logger:   logger,
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	if s.persist == nil {
		return
	}
	var slice persistedSlice
	if err := s.persist.Load(persistKey, &slice); err != nil {
		return
	}
	s.state.Filters = slice.Filters
	s.state.SearchQuery = slice.SearchQuery
	if slice.CurrentPage > 0 {
		s.state.Page = slice.CurrentPage
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.snapshot()
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetCompetitions replaces the current collection.
func (s *Store) SetCompetitions(items []domain.Competition) {
	s.mutate("setCompetitions", false, func(st *State) {
		st.Competitions = append([]domain.Competition(nil), items...)
	})
}

// SetFeatured replaces the featured subset.
func (s *Store) SetFeatured(items []domain.Competition) {
	s.mutate("setFeatured", false, func(st *State) {
		st.Featured = append([]domain.Competition(nil), items...)
	})
}

// Select sets the currently-selected competition.
func (s *Store) Select(c domain.Competition) {
	s.mutate("select", false, func(st *State) {
		st.Selected = &c
	})
}

// ClearSelection clears the current selection.
func (s *Store) ClearSelection() {
	s.mutate("clearSelection", false, func(st *State) {
		st.Selected = nil
	})
}

// InsertOne prepends a competition; the collection is newest-first.
func (s *Store) InsertOne(c domain.Competition) {
	s.mutate("insertOne", false, func(st *State) {
		st.Competitions = append([]domain.Competition{c}, st.Competitions...)
	})
}

// UpdateOne merges patch into the competition with the given id wherever it
// appears: main collection, featured subset, and the current selection, all
// in one transition.
func (s *Store) UpdateOne(id string, patch CompetitionPatch) {
	s.mutate("updateOne", false, func(st *State) {
		for i := range st.Competitions {
			if st.Competitions[i].ID == id {
				patch.apply(&st.Competitions[i])
			}
		}
		for i := range st.Featured {
			if st.Featured[i].ID == id {
				patch.apply(&st.Featured[i])
			}
		}
		if st.Selected != nil && st.Selected.ID == id {
			patch.apply(st.Selected)
		}
	})
}

// RemoveOne removes the competition with the given id from the collection,
// the featured subset, and the selection. A removed selection becomes none.
func (s *Store) RemoveOne(id string) {
	s.mutate("removeOne", false, func(st *State) {
		st.Competitions = removeByID(st.Competitions, id)
		st.Featured = removeByID(st.Featured, id)
		if st.Selected != nil && st.Selected.ID == id {
			st.Selected = nil
		}
	})
}

// SetFilters shallow-merges patch into the active filters and resets the
// page to 1: a filter change invalidates prior pagination.
func (s *Store) SetFilters(patch Filters) {
	s.mutate("setFilters", true, func(st *State) {
		st.Filters = st.Filters.merge(patch)
		st.Page = 1
	})
}

// ClearFilters resets to the empty filter set and page 1.
func (s *Store) ClearFilters() {
	s.mutate("clearFilters", true, func(st *State) {
		st.Filters = Filters{}
		st.Page = 1
	})
}

// SetSearchQuery sets the free-text query and resets the page to 1.
func (s *Store) SetSearchQuery(query string) {
	s.mutate("setSearchQuery", true, func(st *State) {
		st.SearchQuery = query
		st.Page = 1
	})
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mutate("setLoading", false, func(st *State) {
		st.Loading = loading
	})
}

// SetError sets the error message; the empty string clears it.
func (s *Store) SetError(msg string) {
	s.mutate("setError", false, func(st *State) {
		st.Err = msg
	})
}

// SetPagination updates all pagination counters in one transition.
func (s *Store) SetPagination(page, totalPages, totalCount int) {
	s.mutate("setPagination", true, func(st *State) {
		st.Page = page
		st.TotalPages = totalPages
		st.TotalCount = totalCount
	})
}

// Reset returns every field to its initial value.
func (s *Store) Reset() {
	s.mutate("reset", true, func(st *State) {
		*st = initialState()
	})
}

func (s *Store) mutate(action string, persistAfter bool, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.snapshot()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	// The blob is written before the lock is released so a restore can
	// never see an older slice than the latest mutation.
	var persistErr error
	if persistAfter && s.persist != nil {
		persistErr = s.persist.Save(persistKey, persistedSlice{
			Filters:     s.state.Filters,
			SearchQuery: s.state.SearchQuery,
			CurrentPage: s.state.Page,
		})
	}
	s.mu.Unlock()

	s.recorder.RecordStoreMutation(storeName, action)

	if persistErr != nil {
		s.logger.Warn("persist browse state",
			zap.String(logging.FieldAction, action),
			zap.Error(persistErr),
		)
	}

	// Subscribers run outside the lock so they may call back into the store.
	for _, sub := range subs {
		sub(snap)
	}
}

func removeByID(items []domain.Competition, id string) []domain.Competition {
	out := items[:0]
	for _, c := range items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
