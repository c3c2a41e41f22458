// Package refresher keeps the browse store warm: it fetches the current
// page of competitions and the featured subset on an interval, honoring
// whatever filters the store holds at the time of each cycle.
package refresher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/services/competitions"
	"prize-portal-service/internal/store/browse"
)

const defaultInterval = 60 * time.Second

// Fetcher is the slice of the competitions service the refresher needs.
type Fetcher interface {
	List(ctx context.Context, p competitions.ListParams) (competitions.ListResult, error)
	Featured(ctx context.Context) ([]domain.Competition, error)
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has a recent success and is not failing
// repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Refresher periodically syncs the browse store from the upstream API.
type Refresher struct {
	fetcher  Fetcher
	store    *browse.Store
	logger   *zap.Logger
	interval time.Duration
	pageSize int

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Options configures a Refresher.
type Options struct {
	Fetcher  Fetcher
	Store    *browse.Store
	Logger   *zap.Logger
	Interval time.Duration
	PageSize int
}

// New constructs a Refresher with sane defaults.
func New(opts Options) *Refresher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		logger:   logger,
		interval: interval,
		pageSize: opts.PageSize,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
// The first fetch runs immediately to warm the store on boot.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		r.logger.Info("refresher started",
			zap.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		r.RefreshNow(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				r.logger.Info("refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				r.logger.Info("refresher stopped")
				return
			case <-r.ticker.C:
				r.RefreshNow(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

// RefreshNow runs a single refresh cycle synchronously.
func (r *Refresher) RefreshNow(ctx context.Context) {
	start := time.Now()
	r.recordAttempt(start)
	r.store.SetLoading(true)

	params := paramsFromState(r.store.State(), r.pageSize)
	result, err := r.fetcher.List(ctx, params)
	if err != nil {
		r.fail(err, start)
		return
	}

	featured, err := r.fetcher.Featured(ctx)
	if err != nil {
		r.fail(err, start)
		return
	}

	r.store.SetCompetitions(result.Competitions)
	r.store.SetFeatured(featured)
	r.store.SetPagination(result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.TotalCount)
	r.store.SetError("")
	r.store.SetLoading(false)

	r.recordSuccess(start)
	r.logger.Info("refreshed competitions",
		zap.Int(logging.FieldCount, len(result.Competitions)),
		zap.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (r *Refresher) fail(err error, start time.Time) {
	r.store.SetError(err.Error())
	r.store.SetLoading(false)
	r.recordFailure(err, start)
	r.logger.Error("refresh cycle failed",
		zap.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		zap.Error(err),
	)
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func paramsFromState(st browse.State, pageSize int) competitions.ListParams {
	p := competitions.ListParams{
		Search:   st.SearchQuery,
		Page:     st.Page,
		PageSize: pageSize,
		MinPrice: st.Filters.MinPrice,
		MaxPrice: st.Filters.MaxPrice,
		MinPrize: st.Filters.MinPrize,
		MaxPrize: st.Filters.MaxPrize,
		Featured: st.Filters.Featured,
	}
	if st.Filters.Category != nil {
		p.Category = *st.Filters.Category
	}
	if st.Filters.Status != nil {
		p.Status = *st.Filters.Status
	}
	if p.Search == "" && st.Filters.Search != nil {
		p.Search = *st.Filters.Search
	}
	return p
}
