// Package champions wraps the upstream success-story endpoints.
package champions

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/normalize"
)

// ErrNotFound signals that a requested champion was absent from an
// otherwise-successful response.
var ErrNotFound = errors.New("champion not found in response")

// Service fetches champion stories from the platform API.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService constructs a champion service.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// List fetches the curated champion stories. When featuredOnly is set the
// upstream filters to the featured subset.
func (s *Service) List(ctx context.Context, featuredOnly bool) ([]domain.Champion, error) {
	q := url.Values{}
	if featuredOnly {
		q.Set("featured", "true")
	}

	env, err := s.client.Get(ctx, "/champions", q)
	if err != nil {
		return nil, err
	}

	var raw []normalize.RawChampion
	env.DecodeList("champions", &raw)

	out := make([]domain.Champion, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalize.Champion(r))
	}
	return out, nil
}

// Get fetches a single champion story by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Champion, error) {
	env, err := s.client.Get(ctx, "/champions/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Champion{}, err
	}

	var raw normalize.RawChampion
	if !env.DecodeEntity("champion", &raw) {
		return domain.Champion{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return normalize.Champion(raw), nil
}
