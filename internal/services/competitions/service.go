// Package competitions wraps the upstream competition endpoints and
// normalizes their payloads.
package competitions

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/normalize"
)

// ErrNotFound signals that a requested competition was absent from an
// otherwise-successful response.
var ErrNotFound = errors.New("competition not found in response")

// Service fetches competitions from the platform API.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService constructs a competition service.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// ListParams are the browsable filter dimensions. Nil pointer fields are
// omitted from the query.
type ListParams struct {
	Category string
	Status   domain.CompetitionStatus
	MinPrice *float64
	MaxPrice *float64
	MinPrize *float64
	MaxPrize *float64
	Featured *bool
	Search   string
	Page     int
	PageSize int
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	setFloat := func(key string, v *float64) {
		if v != nil {
			q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	setFloat("minPrice", p.MinPrice)
	setFloat("maxPrice", p.MaxPrice)
	setFloat("minPrize", p.MinPrize)
	setFloat("maxPrize", p.MaxPrize)
	if p.Featured != nil {
		q.Set("featured", strconv.FormatBool(*p.Featured))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("limit", strconv.Itoa(p.PageSize))
	}
	return q
}

// ListResult is one page of competitions plus pagination counters.
type ListResult struct {
	Competitions []domain.Competition
	Pagination   api.Pagination
}

// List fetches a filtered, paginated page of competitions.
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	env, err := s.client.Get(ctx, "/competitions", p.query())
	if err != nil {
		return ListResult{}, err
	}

	var raw []normalize.RawCompetition
	env.DecodeList("competitions", &raw)

	result := ListResult{
		Competitions: make([]domain.Competition, 0, len(raw)),
		Pagination:   pagination(env, p.Page),
	}
	for _, r := range raw {
		result.Competitions = append(result.Competitions, normalize.Competition(r))
	}

	logging.FromContext(ctx, s.logger).Debug("competitions listed",
		zap.Int(logging.FieldCount, len(result.Competitions)),
	)
	return result, nil
}

// Featured fetches the curated featured subset.
func (s *Service) Featured(ctx context.Context) ([]domain.Competition, error) {
	env, err := s.client.Get(ctx, "/competitions/featured", nil)
	if err != nil {
		return nil, err
	}

	var raw []normalize.RawCompetition
	env.DecodeList("competitions", &raw)

	out := make([]domain.Competition, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalize.Competition(r))
	}
	return out, nil
}

// Get fetches a single competition by id or slug.
func (s *Service) Get(ctx context.Context, idOrSlug string) (domain.Competition, error) {
	env, err := s.client.Get(ctx, "/competitions/"+url.PathEscape(idOrSlug), nil)
	if err != nil {
		return domain.Competition{}, err
	}

	var raw normalize.RawCompetition
	if !env.DecodeEntity("competition", &raw) {
		return domain.Competition{}, fmt.Errorf("get %q: %w", idOrSlug, ErrNotFound)
	}
	return normalize.Competition(raw), nil
}

func pagination(env api.Envelope, requestedPage int) api.Pagination {
	if env.Meta != nil && env.Meta.Pagination != nil {
		return *env.Meta.Pagination
	}
	page := requestedPage
	if page <= 0 {
		page = 1
	}
	return api.Pagination{Page: page}
}
