// Package users wraps the upstream account and admin-list endpoints.
package users

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

// ErrNotFound signals that a user payload was absent from an
// otherwise-successful response.
var ErrNotFound = errors.New("user not found in response")

// Service fetches account records from the platform API.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService constructs a user service.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Me fetches the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (domain.User, error) {
	env, err := s.client.Get(ctx, "/users/me", nil)
	if err != nil {
		return domain.User{}, err
	}
	return s.decodeUser(env)
}

// Update patches the authenticated user's profile and returns the updated
// record.
func (s *Service) Update(ctx context.Context, patch map[string]any) (domain.User, error) {
	env, err := s.client.Patch(ctx, "/users/me", patch)
	if err != nil {
		return domain.User{}, err
	}
	return s.decodeUser(env)
}

// AdminListResult is one page of accounts for the admin list view.
type AdminListResult struct {
	Users      []domain.User
	Pagination api.Pagination
}

// AdminList fetches a page of accounts, optionally filtered by role or a
// free-text search.
func (s *Service) AdminList(ctx context.Context, role domain.Role, search string, page, pageSize int) (AdminListResult, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", string(role))
	}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("limit", strconv.Itoa(pageSize))
	}

	env, err := s.client.Get(ctx, "/admin/users", q)
	if err != nil {
		return AdminListResult{}, err
	}

	var raw []normalize.RawUser
	env.DecodeList("users", &raw)

	result := AdminListResult{Users: make([]domain.User, 0, len(raw))}
	for _, r := range raw {
		result.Users = append(result.Users, normalize.User(r))
	}
	if env.Meta != nil && env.Meta.Pagination != nil {
		result.Pagination = *env.Meta.Pagination
	} else {
		result.Pagination = api.Pagination{Page: max(page, 1)}
	}
	return result, nil
}

// AdminSetActive toggles an account's active flag and returns the updated
// record.
func (s *Service) AdminSetActive(ctx context.Context, userID string, active bool) (domain.User, error) {
	body := map[string]any{"isActive": active}
	env, err := s.client.Patch(ctx, "/admin/users/"+url.PathEscape(userID), body)
	if err != nil {
		return domain.User{}, err
	}
	return s.decodeUser(env)
}

func (s *Service) decodeUser(env api.Envelope) (domain.User, error) {
	var raw normalize.RawUser
	if !env.DecodeEntity("user", &raw) {
		return domain.User{}, fmt.Errorf("decode user: %w", ErrNotFound)
	}
	return normalize.User(raw), nil
}
