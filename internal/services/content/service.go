// Package content wraps the upstream legal/informational page endpoint and
// carries bundled fallback copies for the core legal pages.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/normalize"
)

// ErrPageNotFound signals that a requested page's content object was missing
// from an otherwise-successful response. This is distinct from a transport
// failure: callers fall back to the bundled default on this error only.
var ErrPageNotFound = errors.New("content page not found")

//go:embed defaults/*.json
var defaultPages embed.FS

// Service fetches content pages from the platform API.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService constructs a content service.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Page fetches a named page. A successful response without a page payload
// yields ErrPageNotFound.
func (s *Service) Page(ctx context.Context, slug string) (domain.ContentPage, error) {
	env, err := s.client.Get(ctx, "/content/pages/"+url.PathEscape(slug), nil)
	if err != nil {
		return domain.ContentPage{}, err
	}

	var raw normalize.RawContentPage
	if !env.DecodeKeyed("page", &raw) {
		return domain.ContentPage{}, fmt.Errorf("page %q: %w", slug, ErrPageNotFound)
	}

	page := normalize.ContentPage(raw)
	if page.Slug == "" {
		page.Slug = slug
	}
	return page, nil
}

// PageOrDefault fetches a named page, falling back to the bundled default
// when the upstream has no content for it. The second return value reports
// whether the fallback was used, so presenters can show an inline notice.
// Transport failures propagate unchanged.
func (s *Service) PageOrDefault(ctx context.Context, slug string) (domain.ContentPage, bool, error) {
	page, err := s.Page(ctx, slug)
	if err == nil {
		return page, false, nil
	}
	if !errors.Is(err, ErrPageNotFound) {
		return domain.ContentPage{}, false, err
	}

	fallback, ok := s.defaultPage(slug)
	if !ok {
		return domain.ContentPage{}, false, err
	}
	logging.FromContext(ctx, s.logger).Warn("serving bundled default content",
		zap.String(logging.FieldSlug, slug),
	)
	return fallback, true, nil
}

func (s *Service) defaultPage(slug string) (domain.ContentPage, bool) {
	data, err := defaultPages.ReadFile("defaults/" + slug + ".json")
	if err != nil {
		return domain.ContentPage{}, false
	}
	var raw normalize.RawContentPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.ContentPage{}, false
	}
	page := normalize.ContentPage(raw)
	if page.Slug == "" {
		page.Slug = slug
	}
	return page, true
}
