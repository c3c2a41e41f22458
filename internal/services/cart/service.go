// Package cart wraps the upstream cart endpoints. All pricing arithmetic is
// the server's; this package never recomputes totals.
package cart

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

// ErrNotFound signals that the cart payload was absent from an
// otherwise-successful response.
var ErrNotFound = errors.New("cart not found in response")

// Service manages the session cart through the platform API.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService constructs a cart service.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Get fetches the current cart.
func (s *Service) Get(ctx context.Context) (domain.Cart, error) {
	env, err := s.client.Get(ctx, "/cart", nil)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.decodeCart(env)
}

// AddItem adds quantity entries for a competition and returns the updated
// cart.
func (s *Service) AddItem(ctx context.Context, competitionID string, quantity int) (domain.Cart, error) {
	body := map[string]any{
		"competitionId": competitionID,
		"quantity":      quantity,
	}
	env, err := s.client.Post(ctx, "/cart/items", body)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.decodeCart(env)
}

// UpdateItem changes the quantity of an existing cart line.
func (s *Service) UpdateItem(ctx context.Context, itemID string, quantity int) (domain.Cart, error) {
	body := map[string]any{"quantity": quantity}
	env, err := s.client.Patch(ctx, "/cart/items/"+url.PathEscape(itemID), body)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.decodeCart(env)
}

// RemoveItem deletes a cart line.
func (s *Service) RemoveItem(ctx context.Context, itemID string) (domain.Cart, error) {
	env, err := s.client.Delete(ctx, "/cart/items/"+url.PathEscape(itemID))
	if err != nil {
		return domain.Cart{}, err
	}
	return s.decodeCart(env)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) (domain.Cart, error) {
	env, err := s.client.Delete(ctx, "/cart")
	if err != nil {
		return domain.Cart{}, err
	}
	return s.decodeCart(env)
}

func (s *Service) decodeCart(env api.Envelope) (domain.Cart, error) {
	var raw normalize.RawCart
	if !env.DecodeEntity("cart", &raw) {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", ErrNotFound)
	}
	return normalize.Cart(raw), nil
}
