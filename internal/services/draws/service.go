// Package draws wraps the upstream draw endpoints.
package draws

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/normalize"
)

// ErrNotFound signals that a requested draw was absent from an
// otherwise-successful response.
var ErrNotFound = errors.New("draw not found in response")

// Service fetches draws from the platform API.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService constructs a draw service.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// ListResult is one page of draws plus pagination counters.
type ListResult struct {
	Draws      []domain.Draw
	Pagination api.Pagination
}

// List fetches a page of draws, newest first.
func (s *Service) List(ctx context.Context, page, pageSize int) (ListResult, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("limit", strconv.Itoa(pageSize))
	}

	env, err := s.client.Get(ctx, "/draws", q)
	if err != nil {
		return ListResult{}, err
	}

	var raw []normalize.RawDraw
	env.DecodeList("draws", &raw)

	result := ListResult{Draws: make([]domain.Draw, 0, len(raw))}
	for _, r := range raw {
		result.Draws = append(result.Draws, normalize.Draw(r))
	}
	if env.Meta != nil && env.Meta.Pagination != nil {
		result.Pagination = *env.Meta.Pagination
	} else if page > 0 {
		result.Pagination = api.Pagination{Page: page}
	} else {
		result.Pagination = api.Pagination{Page: 1}
	}
	return result, nil
}

// Get fetches a single draw by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Draw, error) {
	env, err := s.client.Get(ctx, "/draws/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Draw{}, err
	}

	var raw normalize.RawDraw
	if !env.DecodeEntity("draw", &raw) {
		return domain.Draw{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return normalize.Draw(raw), nil
}
